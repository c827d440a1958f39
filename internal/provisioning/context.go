package provisioning

import (
	"context"

	"github.com/imamik/slsfw/internal/config"
	"github.com/imamik/slsfw/internal/state"
)

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config     *config.Prepared
	Components Components
	// Prior is the record of the previous deployment, empty on first deploy.
	Prior    *state.Record
	Outputs  *Outputs
	Observer Observer
	Metrics  PhaseRecorder
}

// NewContext creates a new provisioning context.
func NewContext(
	ctx context.Context,
	cfg *config.Prepared,
	components Components,
	prior *state.Record,
	observer Observer,
) *Context {
	if prior == nil {
		prior = &state.Record{}
	}
	if observer == nil {
		observer = NopObserver()
	}
	return &Context{
		Context:    ctx,
		Config:     cfg,
		Components: components,
		Prior:      prior,
		Outputs:    NewOutputs(),
		Observer:   observer,
	}
}
