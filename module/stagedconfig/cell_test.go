package stagedconfig_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graviton-network/graviton-go/module/stagedconfig"
	"github.com/graviton-network/graviton-go/utils/unittest"
)

func TestCellStageAndCommit(t *testing.T) {
	cell := stagedconfig.New("interval", uint64(100))
	assert.Equal(t, uint64(100), cell.Get())
	_, pending := cell.Pending()
	assert.False(t, pending)

	require.NoError(t, cell.Stage(200))
	assert.Equal(t, uint64(100), cell.Get(), "staging must not change the committed value")
	staged, pending := cell.Pending()
	assert.True(t, pending)
	assert.Equal(t, uint64(200), staged)

	// re-staging replaces the previous staged value
	require.NoError(t, cell.Stage(300))

	assert.True(t, cell.Commit())
	assert.Equal(t, uint64(300), cell.Get())
	_, pending = cell.Pending()
	assert.False(t, pending)

	assert.False(t, cell.Commit(), "commit with nothing staged is a no-op")
}

func TestCellValidation(t *testing.T) {
	cell := stagedconfig.NewValidated("interval", uint64(100), func(v uint64) error {
		if v == 0 {
			return errors.New("must be positive")
		}
		return nil
	})

	require.Error(t, cell.Stage(0))
	_, pending := cell.Pending()
	assert.False(t, pending, "rejected values must not be staged")

	require.NoError(t, cell.Stage(50))
	assert.True(t, cell.Commit())
	assert.Equal(t, uint64(50), cell.Get())
}

func TestRegistryCommitAll(t *testing.T) {
	interval := stagedconfig.New("interval", uint64(100))
	version := stagedconfig.New("version", uint64(1))
	name := stagedconfig.New("name", "alpha")

	registry := stagedconfig.NewRegistry(unittest.Logger())
	registry.Add(interval, version, name)

	assert.Equal(t, 0, registry.CommitAll())

	require.NoError(t, interval.Stage(200))
	require.NoError(t, name.Stage("beta"))

	assert.Equal(t, 2, registry.CommitAll())
	assert.Equal(t, uint64(200), interval.Get())
	assert.Equal(t, uint64(1), version.Get())
	assert.Equal(t, "beta", name.Get())

	assert.Equal(t, 0, registry.CommitAll(), "staged values commit exactly once")
}
