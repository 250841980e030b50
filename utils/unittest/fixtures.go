// Package unittest provides test fixtures and helpers shared across the
// test suites.
package unittest

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/graviton-network/graviton-go/genesis"
	"github.com/graviton-network/graviton-go/model/stake"
	"github.com/graviton-network/graviton-go/module/validators"
)

// Logger returns a logger for tests. It is silent unless the VERBOSE
// environment variable is set.
func Logger() zerolog.Logger {
	writer := io.Discard
	if os.Getenv("VERBOSE") != "" {
		writer = os.Stderr
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: writer}).Level(zerolog.DebugLevel)
}

// AddressFixture returns a random non-system address.
func AddressFixture() stake.Address {
	var addr stake.Address
	readRand(addr[:])
	addr[0] |= 0x01
	return addr
}

// ConsensusKeyFixture returns a random byte string of consensus public key
// length.
func ConsensusKeyFixture() []byte {
	key := make([]byte, stake.ConsensusPubkeyLength)
	readRand(key)
	return key
}

// PopFixture returns a random byte string of proof-of-possession length.
func PopFixture() []byte {
	pop := make([]byte, stake.ConsensusPopLength)
	readRand(pop)
	return pop
}

// RegisterRequestFixture returns a registration request with fresh random
// identity material. The pool defaults to the operator address.
func RegisterRequestFixture(opts ...func(*validators.RegisterRequest)) validators.RegisterRequest {
	operator := AddressFixture()
	req := validators.RegisterRequest{
		Pool:              operator,
		Operator:          operator,
		ConsensusPubkey:   ConsensusKeyFixture(),
		ConsensusPop:      PopFixture(),
		Moniker:           fmt.Sprintf("validator-%s", operator.Hex()[:8]),
		FeeRecipient:      operator,
		NetworkAddresses:  []byte("/ip4/127.0.0.1/tcp/6180"),
		FullnodeAddresses: []byte("/ip4/127.0.0.1/tcp/6181"),
	}
	for _, opt := range opts {
		opt(&req)
	}
	return req
}

// InitialValidatorFixture returns a genesis validator entry with fresh
// random identity material and the given stake.
func InitialValidatorFixture(stakeAmount uint64) genesis.InitialValidator {
	operator := AddressFixture()
	owner := AddressFixture()
	return genesis.InitialValidator{
		Operator:          operator.Hex(),
		Owner:             owner.Hex(),
		StakeAmount:       fmt.Sprintf("%d", stakeAmount),
		Moniker:           fmt.Sprintf("validator-%s", operator.Hex()[:8]),
		ConsensusPubkey:   hex.EncodeToString(ConsensusKeyFixture()),
		ConsensusPop:      hex.EncodeToString(PopFixture()),
		NetworkAddresses:  "/ip4/127.0.0.1/tcp/6180",
		FullnodeAddresses: "/ip4/127.0.0.1/tcp/6181",
	}
}

// GenesisConfigFixture returns a valid single-chain genesis configuration
// with the given validators. Amounts are chosen so voting power totals stay
// multiples of 100.
func GenesisConfigFixture(vals ...genesis.InitialValidator) *genesis.Config {
	return &genesis.Config{
		ChainID: 4,
		ValidatorConfig: genesis.ValidatorConfigParams{
			MinimumBond:                 "100",
			MaximumBond:                 "1000000",
			UnbondingDelayMicros:        7 * 24 * 3600 * 1_000_000,
			AllowValidatorSetChange:     true,
			VotingPowerIncreaseLimitPct: 20,
			MaxValidatorSetSize:         "100",
			AutoEvictEnabled:            false,
		},
		StakingConfig: genesis.StakingConfigParams{
			MinimumStake:         "100",
			LockupDurationMicros: 24 * 3600 * 1_000_000,
			UnbondingDelayMicros: 24 * 3600 * 1_000_000,
			MinimumProposalStake: "100",
		},
		GovernanceConfig: genesis.GovernanceConfigParams{
			MinVotingThreshold:    "1000",
			RequiredProposerStake: "100",
			VotingDurationMicros:  24 * 3600 * 1_000_000,
			ExecutionDelayMicros:  3600 * 1_000_000,
			ExecutionWindowMicros: 24 * 3600 * 1_000_000,
		},
		EpochIntervalMicros: 2 * 3600 * 1_000_000,
		GenesisTimeMicros:   1_700_000_000_000_000,
		MajorVersion:        1,
		ConsensusConfig:     "0x0a0b0c",
		ExecutionConfig:     "0x0d0e0f",
		RandomnessConfig: genesis.RandomnessConfigData{
			Variant: 0,
		},
		Validators: vals,
	}
}

func readRand(b []byte) {
	if _, err := rand.Read(b); err != nil {
		panic("could not read randomness for fixture: " + err.Error())
	}
}
