package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/slsfw/cmd/slsfw/handlers"
	"github.com/imamik/slsfw/internal/config"
)

// Remove returns the remove command.
//
// The remove command deletes the function, the gateway and the DNS records
// of every domain recorded in the state.
func Remove(flags *config.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Remove everything a deployment created",
		Long: `Remove deletes the resources of the recorded deployment:
  - the function in every region
  - the API gateway
  - the DNS records of every recorded custom domain

The state is deleted once every resource is gone.

WARNING: This operation is irreversible.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Remove(cmd.Context(), *flags)
		},
	}
}
