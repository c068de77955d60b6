package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var promptHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

// promptModel asks for the file to edit when none was given on the
// command line.
type promptModel struct {
	input     textinput.Model
	done      bool
	cancelled bool
}

// newPromptModel builds the filename prompt.
func newPromptModel() promptModel {
	ti := textinput.New()
	ti.Placeholder = "/ssh:user@host:/path/to/file or /local/path"
	ti.Prompt = "File to edit: "
	ti.Focus()

	return promptModel{input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return m.input.View() + "\n" + promptHelpStyle.Render("enter to open, esc to cancel") + "\n"
}

// promptFilename runs the interactive prompt and returns the trimmed
// answer. Cancelling returns an error so the caller does not proceed
// with a guessed path.
func promptFilename() (string, error) {
	program := tea.NewProgram(newPromptModel())

	result, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	model, ok := result.(promptModel)
	if !ok || model.cancelled {
		return "", fmt.Errorf("cancelled")
	}

	return strings.TrimSpace(model.input.Value()), nil
}
