package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/slsfw/internal/config"
	"github.com/imamik/slsfw/internal/orchestration"
	"github.com/imamik/slsfw/internal/provisioning"
	"github.com/imamik/slsfw/internal/ui/summary"
	"github.com/imamik/slsfw/internal/util/naming"
)

// Remove handles the remove command.
//
// It removes everything the recorded deployment created and deletes the
// state. The inputs file is optional: without it the framework recorded in
// the state is used.
func Remove(ctx context.Context, flags config.Settings) error {
	s, err := newSession(ctx, flags, false)
	if err != nil {
		return err
	}
	return s.finish("remove", remove(ctx, s))
}

func remove(ctx context.Context, s *session) error {
	prior, err := s.store.Load(ctx, s.stateName)
	if err != nil {
		return fmt.Errorf("failed to load state %s: %w", s.stateName, err)
	}

	framework, _ := s.inputs.Get("framework").AsString()
	if framework == "" && prior.IsEmpty() {
		framework = s.settings.Framework
	}

	components, err := newComponents(s.settings, s.stateName, s.logger)
	if err != nil {
		return err
	}

	r := orchestration.NewReconciler(s.store, components, s.stateName,
		orchestration.WithObserver(provisioning.NewLogObserver(s.logger)),
		orchestration.WithMetrics(s.recorder),
	)

	remark := framework
	if remark == "" {
		remark = prior.Framework
	}
	remark = naming.ClientRemark(remark)

	s.logger.Info().Str("state", s.stateName).Msg("removing")
	if err := r.Remove(ctx, framework); err != nil {
		fmt.Fprint(stdout, summary.Remove(remark, nil, err))
		return fmt.Errorf("remove failed: %w", err)
	}

	_, err = fmt.Fprint(stdout, summary.Remove(remark, prior.CNS, nil))
	return err
}
