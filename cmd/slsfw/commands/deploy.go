package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/slsfw/cmd/slsfw/handlers"
	"github.com/imamik/slsfw/internal/config"
)

// Deploy returns the deploy command.
//
// The deploy command deploys the function to every configured region, then
// the API gateway, then the DNS records of every custom domain.
func Deploy(flags *config.Settings) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the function, API gateway and DNS records",
		Long: `Deploy normalizes the inputs and deploys them in order:
  - the function, to every region
  - the API gateway, unless apigatewayConf.isDisabled is set
  - the DNS records of every custom domain

Per-region overrides are merged over the shared configuration.
A redeploy keeps the function name recorded in the state.

Example:
  slsfw deploy -f serverless.yml --stage prod`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), *flags, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the outputs as JSON")

	return cmd
}
