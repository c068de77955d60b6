package cli

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/cemkeylan/doas-edit/internal/core/ports"
	"github.com/cemkeylan/doas-edit/internal/core/rewrite"
	"github.com/cemkeylan/doas-edit/internal/infrastructure/address"
	"github.com/cemkeylan/doas-edit/internal/infrastructure/config"
	"github.com/cemkeylan/doas-edit/internal/infrastructure/shell"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// CLIContainer holds all the dependencies for CLI commands
type CLIContainer struct {
	Composer *rewrite.Composer
	Launcher *shell.Launcher
	Registry ports.TransportRegistry
	Codec    *address.Codec
	Settings *config.Settings
	Logger   *log.Logger

	// ReloadConfig rebuilds settings-derived dependencies from an
	// alternate config file. Wired by the DI container.
	ReloadConfig func(path string) error
}

// NewRootCommand represents the base command; without a subcommand it
// behaves like "edit".
func NewRootCommand(container *CLIContainer) *cobra.Command {
	flags := &EditFlags{}

	rootCmd := &cobra.Command{
		Use:   "doas-edit [file]",
		Short: "Edit local and remote files as another user",
		Long: `doas-edit opens a file as a different (typically privileged) account,
without changing how the file is addressed. Remote files keep every hop
of their transport chain; the elevation step is inserted at the end.

Examples:
  doas-edit /etc/hosts                              # edit locally as root
  doas-edit -u http /srv/www/index.html             # edit locally as http
  doas-edit /ssh:bob@web1:/etc/nginx/nginx.conf     # elevate on web1
  doas-edit /ssh:gw|ssh:bob@web1:/etc/fstab         # through a jump host
  doas-edit resolve /scp:bob@web1:/etc/fstab        # print the address only`,
		Version: Version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if path, _ := cmd.Flags().GetString("config"); cmd.Flags().Changed("config") && container.ReloadConfig != nil {
				if err := container.ReloadConfig(path); err != nil {
					return fmt.Errorf("failed to apply configuration overrides: %w", err)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(container, flags, args)
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	rootCmd.PersistentFlags().String("config", "", "Config file path (default is $HOME/.config/doas-edit/config.json)")
	addEditFlags(rootCmd, flags)

	rootCmd.AddCommand(NewEditCommand(container))
	rootCmd.AddCommand(NewResolveCommand(container))
	rootCmd.AddCommand(NewMethodsCommand(container))

	return rootCmd
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(container *CLIContainer) {
	rootCmd := NewRootCommand(container)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
