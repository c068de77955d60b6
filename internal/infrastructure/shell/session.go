package shell

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/crypto/ssh"
	"golang.org/x/term"

	"github.com/cemkeylan/doas-edit/internal/core/domain"
)

// interactiveEdit runs the editor on the final host inside a pty, wrapped
// in the elevation command when the final step is an elevation method.
func (l *Launcher) interactiveEdit(client *ssh.Client, final domain.Descriptor) error {
	session, err := client.NewSession()
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	session.Stdin = os.Stdin
	session.Stdout = os.Stdout
	session.Stderr = os.Stderr

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("failed to set terminal mode: %w", err)
		}
		defer term.Restore(fd, oldState)

		width, height, err := term.GetSize(fd)
		if err != nil {
			width, height = 80, 40
		}

		modes := ssh.TerminalModes{
			ssh.ECHO:          1,
			ssh.TTY_OP_ISPEED: 14400,
			ssh.TTY_OP_OSPEED: 14400,
		}

		termType := os.Getenv("TERM")
		if termType == "" {
			termType = "xterm-256color"
		}

		if err := session.RequestPty(termType, height, width, modes); err != nil {
			return fmt.Errorf("failed to request pty: %w", err)
		}
	}

	if err := session.Run(l.remoteEditCommand(final)); err != nil {
		return fmt.Errorf("remote editor failed: %w", err)
	}
	return nil
}

// remoteEditCommand builds the shell command that opens the file as the
// target user on the final host.
func (l *Launcher) remoteEditCommand(final domain.Descriptor) string {
	target := shellQuote(final.Path())

	switch final.Method() {
	case "sudo":
		return fmt.Sprintf("sudo -u %s -- %s %s", shellQuote(final.User()), l.editor, target)
	case "su":
		return fmt.Sprintf("su %s -c %s", shellQuote(final.User()), shellQuote(l.editor+" "+target))
	case "doas":
		return fmt.Sprintf("doas -u %s %s %s", shellQuote(final.User()), l.editor, target)
	default:
		return fmt.Sprintf("%s %s", l.editor, target)
	}
}

// localElevationArgv builds the argv for elevating on this machine.
func localElevationArgv(desc domain.Descriptor, editor string) []string {
	editorArgv := splitCommand(editor)

	switch desc.Method() {
	case "sudo":
		argv := []string{"sudo", "-u", desc.User(), "--"}
		argv = append(argv, editorArgv...)
		return append(argv, desc.Path())
	case "su":
		return []string{"su", desc.User(), "-c", editor + " " + shellQuote(desc.Path())}
	default:
		argv := []string{desc.Method(), "-u", desc.User()}
		argv = append(argv, editorArgv...)
		return append(argv, desc.Path())
	}
}

// newLocalCommand wraps exec.Command so argv construction stays testable.
func newLocalCommand(argv []string) *exec.Cmd {
	return exec.Command(argv[0], argv[1:]...)
}

// splitCommand splits an editor setting like "emacs -nw" into argv parts.
// Editor settings with quoted arguments are not supported.
func splitCommand(command string) []string {
	return strings.Fields(command)
}

// shellQuote wraps s in single quotes for the remote shell.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
