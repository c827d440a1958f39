package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/imamik/slsfw/internal/config"
	"github.com/imamik/slsfw/internal/orchestration"
	"github.com/imamik/slsfw/internal/provisioning"
)

// Render handles the render command. It prints what deploy would hand to
// the components, including the function name recorded in the state.
func Render(ctx context.Context, flags config.Settings, output string) error {
	if output != "yaml" && output != "json" {
		return fmt.Errorf("unknown output format %q (want yaml or json)", output)
	}

	s, err := newSession(ctx, flags, true)
	if err != nil {
		return err
	}

	r := orchestration.NewReconciler(s.store, provisioning.Components{}, s.stateName,
		orchestration.WithPrepareOptions(config.Options{
			Framework: s.settings.Framework,
			WorkDir:   s.settings.WorkDir,
		}),
	)

	prepared, err := r.Render(ctx, s.inputs)
	if err != nil {
		return s.finish("render", err)
	}

	out := prepared.ToNode()
	if output == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return s.finish("render", enc.Encode(out))
	}

	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return s.finish("render", err)
	}
	return s.finish("render", enc.Close())
}
