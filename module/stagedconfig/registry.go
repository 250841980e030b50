package stagedconfig

import (
	"github.com/rs/zerolog"
)

// Committer is the commit-side view of a cell, type-erased so cells of
// different value types can register with one registry.
type Committer interface {
	Name() string
	Commit() bool
}

// Registry collects every per-epoch tunable so the orchestrator can commit
// all staged changes in a single pass, in registration order, at the start
// of the epoch-boundary apply step.
type Registry struct {
	log   zerolog.Logger
	cells []Committer
}

// NewRegistry creates an empty commit registry.
func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		log: log.With().Str("component", "staged_config_registry").Logger(),
	}
}

// Add registers cells for commit. Registration order is commit order.
func (r *Registry) Add(cells ...Committer) {
	r.cells = append(r.cells, cells...)
}

// CommitAll applies every staged value and returns the number of cells whose
// committed value changed.
func (r *Registry) CommitAll() int {
	changed := 0
	for _, cell := range r.cells {
		if cell.Commit() {
			r.log.Info().Str("config", cell.Name()).Msg("committed staged config change")
			changed++
		}
	}
	return changed
}
