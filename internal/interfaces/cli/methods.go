package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	methodHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	methodNameStyle   = lipgloss.NewStyle().Bold(true)
	methodKindStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// NewMethodsCommand creates the methods command
func NewMethodsCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List the registered transport methods",
		Long: `List every transport method the registry knows, with its login and
copy programs. Methods marked as elevation are the ones --method accepts;
mount-type and copy-based methods are downgraded to plain ssh when they
appear as an intermediate hop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), methodHeaderStyle.Render(fmt.Sprintf("%-10s %-14s %-14s %s", "METHOD", "LOGIN", "COPY", "KIND")))

			for _, m := range container.Registry.Methods() {
				var kinds []string
				if m.Elevation {
					kinds = append(kinds, "elevation")
				}
				if m.MountType {
					kinds = append(kinds, "mount")
				}
				if m.CopyProgram != "" {
					kinds = append(kinds, "out-of-band copy")
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s %-14s %-14s %s\n",
					methodNameStyle.Render(fmt.Sprintf("%-10s", m.Name)),
					orDash(m.LoginProgram),
					orDash(m.CopyProgram),
					methodKindStyle.Render(strings.Join(kinds, ", ")))
			}

			return nil
		},
	}
}

// orDash substitutes a dash for an empty table cell.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
