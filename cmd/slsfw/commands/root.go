// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/imamik/slsfw/internal/config"
)

// Root returns the root command for the slsfw CLI.
//
// Settings shared by every command are bound as persistent flags. Unset
// flags fall back to SLSFW_* environment variables, then to defaults.
func Root() *cobra.Command {
	var flags config.Settings

	cmd := &cobra.Command{
		Use:           "slsfw",
		Short:         "Deploy web frameworks as serverless functions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	bindSettings(cmd, &flags)

	cmd.AddCommand(Init())
	cmd.AddCommand(Deploy(&flags))
	cmd.AddCommand(Remove(&flags))
	cmd.AddCommand(Render(&flags))
	cmd.AddCommand(Version())

	return cmd
}

func bindSettings(cmd *cobra.Command, s *config.Settings) {
	f := cmd.PersistentFlags()
	f.StringVarP(&s.InputFile, "file", "f", "", "Path to the inputs file (default: serverless.yml in the work dir)")
	f.StringVarP(&s.WorkDir, "work-dir", "d", "", "Directory holding the app code")
	f.StringVar(&s.Framework, "framework", "", "Framework used when the inputs name none")
	f.StringVarP(&s.Stage, "stage", "s", "", "Deployment stage")
	f.StringVar(&s.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file")

	f.StringVar(&s.State.Backend, "state-backend", "", "State backend (local, s3)")
	f.StringVar(&s.State.Dir, "state-dir", "", "Directory of the local state backend")
	f.StringVar(&s.State.S3.Bucket, "state-bucket", "", "Bucket of the s3 state backend")
	f.StringVar(&s.State.S3.Endpoint, "state-endpoint", "", "Endpoint of an S3-compatible state backend")

	f.StringVar(&s.Component.Endpoint, "endpoint", "", "Component runtime endpoint")
	f.DurationVar(&s.Component.Timeout, "timeout", 0, "Timeout of a single component request")
	f.Var(optionalInt{&s.Component.Retries}, "retries", "Retries of a failed component request (default 3)")

	f.StringVar(&s.Log.Level, "log-level", "", "Log level (debug, info, warn, error)")
	f.StringVar(&s.Log.Format, "log-format", "", "Log format (auto, console, json)")
}

// optionalInt is an int flag that stays nil until given, so an explicit 0
// is not mistaken for unset.
type optionalInt struct{ p **int }

func (o optionalInt) String() string {
	if o.p == nil || *o.p == nil {
		return ""
	}
	return strconv.Itoa(**o.p)
}

func (o optionalInt) Set(v string) error {
	i, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*o.p = &i
	return nil
}

func (o optionalInt) Type() string { return "int" }
