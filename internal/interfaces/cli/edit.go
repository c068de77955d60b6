package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cemkeylan/doas-edit/internal/core/domain"
	"github.com/cemkeylan/doas-edit/internal/core/rewrite"
)

// EditFlags holds command-line flags for the edit command
type EditFlags struct {
	User   string
	Method string
	Print  bool
	Staged bool
}

// NewEditCommand creates the edit command
func NewEditCommand(container *CLIContainer) *cobra.Command {
	flags := &EditFlags{}

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Rewrite a file address for elevated access and open it",
		Long: `Rewrite a file address so it is opened as the target user, then open
an editing session for it. Without a file argument an interactive prompt
asks for one.

Examples:
  doas-edit edit /etc/hosts
  doas-edit edit --user http /ssh:bob@web1:/srv/www/index.html
  doas-edit edit --print /ssh:bob@web1:/etc/fstab`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(container, flags, args)
		},
	}

	addEditFlags(cmd, flags)

	return cmd
}

// addEditFlags registers the edit flag set on cmd. The root command
// shares it so "doas-edit FILE" works without the subcommand.
func addEditFlags(cmd *cobra.Command, flags *EditFlags) {
	cmd.Flags().StringVarP(&flags.User, "user", "u", "", "Target user to edit as (default from configuration)")
	cmd.Flags().StringVar(&flags.Method, "method", "", "Elevation method to use (doas, sudo, su)")
	cmd.Flags().BoolVar(&flags.Print, "print", false, "Print the rewritten address instead of opening it")
	cmd.Flags().BoolVar(&flags.Staged, "staged", false, "Copy the file locally, edit, and write it back")
}

// runEdit resolves defaults, rewrites the address and opens the session.
func runEdit(container *CLIContainer, flags *EditFlags, args []string) error {
	filename := ""
	if len(args) > 0 {
		filename = args[0]
	}

	if filename == "" {
		prompted, err := promptFilename()
		if err != nil {
			return err
		}
		filename = prompted
	}
	if filename == "" {
		return domain.ErrNoFilename
	}

	// The default user comes from configuration; the core never guesses.
	targetUser := flags.User
	if targetUser == "" {
		targetUser = container.Settings.DefaultUser
	}

	composer := container.Composer
	if flags.Method != "" {
		if !container.Registry.IsElevation(flags.Method) {
			return fmt.Errorf("%q is not an elevation method", flags.Method)
		}
		composer = rewrite.NewComposer(container.Registry, container.Codec, flags.Method)
	}

	target, err := composer.Compose(filename, targetUser)
	if err != nil {
		return err
	}

	if flags.Print {
		fmt.Println(target)
		return nil
	}

	container.Logger.Printf("opening %s", target)
	return container.Launcher.Open(target, flags.Staged)
}
