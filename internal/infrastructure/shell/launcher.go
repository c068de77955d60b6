package shell

import (
	"fmt"
	"log"
	"os"

	"github.com/cemkeylan/doas-edit/internal/core/domain"
	"github.com/cemkeylan/doas-edit/internal/core/ports"
	"github.com/cemkeylan/doas-edit/internal/infrastructure/address"
	"github.com/cemkeylan/doas-edit/internal/infrastructure/transport"
)

// Launcher opens an editing session for a composed address. It is the
// file-open collaborator the rewriting core hands its result to; all I/O
// of the tool happens here, none in the core.
type Launcher struct {
	registry  ports.TransportRegistry
	codec     *address.Codec
	connector *Connector
	editor    string
	logger    *log.Logger
}

// NewLauncher creates a launcher. editor is the already-resolved editor
// command; resolution from configuration and $VISUAL/$EDITOR belongs to
// the caller.
func NewLauncher(registry ports.TransportRegistry, codec *address.Codec, connector *Connector, editor string, logger *log.Logger) *Launcher {
	return &Launcher{
		registry:  registry,
		codec:     codec,
		connector: connector,
		editor:    editor,
		logger:    logger,
	}
}

// Open edits the file behind raw. Local paths open directly, local
// elevation addresses run the elevation command in place, and remote
// addresses are dialed hop by hop. When staged is set, remote files are
// copied to a local temp file, edited there and written back instead of
// running the editor on the remote side.
func (l *Launcher) Open(raw string, staged bool) error {
	desc, remote, err := l.codec.Parse(raw)
	if err != nil {
		return err
	}

	if !remote {
		return l.runLocalCommand(l.editor, raw)
	}

	if desc.HopChain() == "" && l.registry.IsElevation(desc.Method()) && l.registry.IsLocalHost(desc.Host()) {
		return l.openLocalElevated(desc)
	}

	hops, err := l.codec.ParseHops(desc.HopChain())
	if err != nil {
		return err
	}

	// A non-elevation final step is itself the last hop to dial; the
	// editor then runs unelevated on that host.
	if !l.registry.IsElevation(desc.Method()) {
		hops = append(hops, desc.WithPath("").WithHopChain(""))
	}

	for _, hop := range hops {
		login, ok := l.registry.Parameter(hop.Method(), transport.ParamLoginProgram)
		if !ok || login != "ssh" {
			return fmt.Errorf("transport %q cannot be dialed by the built-in session layer", hop.Method())
		}
	}

	client, err := l.connector.Dial(hops)
	if err != nil {
		return err
	}
	defer client.Close()

	l.logger.Printf("connected to %s", desc.Host())

	if staged {
		return l.stagedEdit(client, desc)
	}
	return l.interactiveEdit(client, desc)
}

// openLocalElevated runs the elevation command directly on this machine.
func (l *Launcher) openLocalElevated(desc domain.Descriptor) error {
	argv := localElevationArgv(desc, l.editor)
	return l.runLocalArgv(argv)
}

// runLocalCommand opens path with the editor, no elevation involved.
func (l *Launcher) runLocalCommand(editor, path string) error {
	return l.runLocalArgv(append(splitCommand(editor), path))
}

// runLocalArgv executes argv with the caller's terminal attached.
func (l *Launcher) runLocalArgv(argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}

	cmd := newLocalCommand(argv)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", argv[0], err)
	}
	return nil
}
