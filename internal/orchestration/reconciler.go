package orchestration

import (
	"context"
	"fmt"

	"github.com/imamik/slsfw/internal/config"
	"github.com/imamik/slsfw/internal/config/node"
	"github.com/imamik/slsfw/internal/provisioning"
	"github.com/imamik/slsfw/internal/provisioning/deploy"
	"github.com/imamik/slsfw/internal/provisioning/destroy"
	"github.com/imamik/slsfw/internal/state"
)

// Reconciler orchestrates the deploy and remove workflows.
type Reconciler struct {
	store      state.Store
	components provisioning.Components
	stateName  string
	prepare    config.Options
	observer   provisioning.Observer
	metrics    provisioning.PhaseRecorder
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithPrepareOptions sets the options inputs are normalized with. Prior is
// always taken from the state store.
func WithPrepareOptions(opts config.Options) Option {
	return func(r *Reconciler) { r.prepare = opts }
}

// WithObserver sets the observer phases report to.
func WithObserver(o provisioning.Observer) Option {
	return func(r *Reconciler) { r.observer = o }
}

// WithMetrics sets the recorder phase durations are reported to.
func WithMetrics(m provisioning.PhaseRecorder) Option {
	return func(r *Reconciler) { r.metrics = m }
}

// NewReconciler creates a reconciler keeping its state under stateName.
func NewReconciler(store state.Store, components provisioning.Components, stateName string, opts ...Option) *Reconciler {
	r := &Reconciler{
		store:      store,
		components: components,
		stateName:  stateName,
		observer:   provisioning.NopObserver(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result is what a deployment produced.
type Result struct {
	Config  *config.Prepared
	Outputs *provisioning.Outputs
	Record  *state.Record
}

// Node renders the deployment outputs.
func (r *Result) Node() *node.Node {
	return r.Outputs.ToNode()
}

// Render normalizes in the way Deploy would, without deploying anything.
func (r *Reconciler) Render(ctx context.Context, in *node.Node) (*config.Prepared, error) {
	prior, err := r.loadPrior(ctx)
	if err != nil {
		return nil, err
	}
	return r.prepareInputs(ctx, in, prior)
}

// Deploy normalizes in, deploys it and saves the resulting state. State is
// only written after every phase succeeded.
func (r *Reconciler) Deploy(ctx context.Context, in *node.Node) (*Result, error) {
	prior, err := r.loadPrior(ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := r.prepareInputs(ctx, in, prior)
	if err != nil {
		return nil, err
	}

	pCtx := r.newContext(ctx, cfg, prior)
	if err := deploy.NewProvisioner().Provision(pCtx); err != nil {
		return nil, err
	}

	record := deploy.Record(pCtx)
	if err := r.store.Save(ctx, r.stateName, record); err != nil {
		return nil, fmt.Errorf("deployed but failed to save state: %w", err)
	}
	r.observer.Printf("[State] Saved %s", r.stateName)

	return &Result{Config: cfg, Outputs: pCtx.Outputs, Record: record}, nil
}

// Remove deletes everything the recorded deployment created. framework may
// be empty when the state names it.
func (r *Reconciler) Remove(ctx context.Context, framework string) error {
	prior, err := r.loadPrior(ctx)
	if err != nil {
		return err
	}

	pCtx := r.newContext(ctx, &config.Prepared{Framework: framework}, prior)
	if err := provisioning.RunPhases(pCtx, []provisioning.Phase{destroy.NewProvisioner()}); err != nil {
		return err
	}

	if err := r.store.Delete(ctx, r.stateName); err != nil {
		return fmt.Errorf("removed but failed to delete state: %w", err)
	}
	r.observer.Printf("[State] Deleted %s", r.stateName)
	return nil
}

func (r *Reconciler) loadPrior(ctx context.Context) (*state.Record, error) {
	prior, err := r.store.Load(ctx, r.stateName)
	if err != nil {
		return nil, fmt.Errorf("failed to load state %s: %w", r.stateName, err)
	}
	if prior == nil {
		prior = &state.Record{}
	}
	return prior, nil
}

func (r *Reconciler) prepareInputs(ctx context.Context, in *node.Node, prior *state.Record) (*config.Prepared, error) {
	opts := r.prepare
	opts.Prior = prior.Prior()
	cfg, err := config.Prepare(ctx, in, opts)
	if err != nil {
		return nil, fmt.Errorf("invalid inputs: %w", err)
	}
	return cfg, nil
}

func (r *Reconciler) newContext(ctx context.Context, cfg *config.Prepared, prior *state.Record) *provisioning.Context {
	pCtx := provisioning.NewContext(ctx, cfg, r.components, prior, r.observer)
	pCtx.Metrics = r.metrics
	return pCtx
}
