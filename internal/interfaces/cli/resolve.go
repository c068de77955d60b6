package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewResolveCommand creates the resolve command, the scriptable entry to
// the rewriting core: it prints the composed address and opens nothing.
func NewResolveCommand(container *CLIContainer) *cobra.Command {
	var targetUser string

	cmd := &cobra.Command{
		Use:   "resolve FILE",
		Short: "Print the elevated address for a file without opening it",
		Long: `Compute the privilege-elevated address for a file and print it.

Useful for wiring doas-edit into other tooling:
  doas-edit resolve /ssh:bob@web1:/etc/fstab
  doas-edit resolve --user http /srv/www/index.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if targetUser == "" {
				targetUser = container.Settings.DefaultUser
			}

			target, err := container.Composer.Compose(args[0], targetUser)
			if err != nil {
				return err
			}

			fmt.Println(target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetUser, "user", "u", "", "Target user to resolve for (default from configuration)")

	return cmd
}
