package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/imamik/slsfw/internal/config"
	"github.com/imamik/slsfw/internal/orchestration"
	"github.com/imamik/slsfw/internal/provisioning"
	"github.com/imamik/slsfw/internal/ui/summary"
)

// Deploy handles the deploy command.
//
// It normalizes the inputs, deploys function, gateway and DNS records and
// saves the state. Outputs are printed as a summary or, with jsonOutput, as
// JSON.
func Deploy(ctx context.Context, flags config.Settings, jsonOutput bool) error {
	s, err := newSession(ctx, flags, true)
	if err != nil {
		return err
	}
	return s.finish("deploy", deploy(ctx, s, jsonOutput))
}

func deploy(ctx context.Context, s *session, jsonOutput bool) error {
	components, err := newComponents(s.settings, s.stateName, s.logger)
	if err != nil {
		return err
	}

	r := orchestration.NewReconciler(s.store, components, s.stateName,
		orchestration.WithPrepareOptions(config.Options{
			Framework: s.settings.Framework,
			WorkDir:   s.settings.WorkDir,
		}),
		orchestration.WithObserver(provisioning.NewLogObserver(s.logger)),
		orchestration.WithMetrics(s.recorder),
	)

	s.logger.Info().Str("state", s.stateName).Msg("deploying")
	result, err := r.Deploy(ctx, s.inputs)
	if err != nil {
		return fmt.Errorf("deploy failed: %w", err)
	}

	for _, b := range result.Config.Bindings {
		s.recorder.RecordDNSRecords(b.Domain, len(b.Records))
	}

	if jsonOutput {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Node())
	}
	_, err = fmt.Fprint(stdout, summary.Deploy(result.Outputs))
	return err
}
