package rewrite

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cemkeylan/doas-edit/internal/core/domain"
	"github.com/cemkeylan/doas-edit/internal/core/ports"
)

// LocalHostName is the host sentinel used when elevating a local file.
const LocalHostName = "localhost"

// Composer orchestrates classification and hop building to produce the
// elevated address for a file. It is stateless: every call is a pure
// function of its two inputs and the read-only transport registry.
type Composer struct {
	registry        ports.TransportRegistry
	codec           ports.AddressCodec
	hops            *HopBuilder
	elevationMethod string
}

// NewComposer creates a composer that elevates through elevationMethod
// (e.g. "doas", "sudo"). The default target user is resolved by the
// caller before Compose is invoked; the composer takes no defaults.
func NewComposer(registry ports.TransportRegistry, codec ports.AddressCodec, elevationMethod string) *Composer {
	classifier := NewClassifier(registry)

	return &Composer{
		registry:        registry,
		codec:           codec,
		hops:            NewHopBuilder(classifier, codec),
		elevationMethod: elevationMethod,
	}
}

// Compose rewrites filename so that it is opened as targetUser, inserting
// or substituting the elevation transport while preserving every hop
// needed to reach the target host. It returns the raw address to hand to
// the file-open layer, or an error; there are no partial results.
func (c *Composer) Compose(filename, targetUser string) (string, error) {
	if strings.TrimSpace(targetUser) == "" {
		return "", domain.ErrInvalidUser
	}
	if filename == "" {
		return "", domain.ErrNoFilename
	}

	desc, remote, err := c.codec.Parse(filename)
	if err != nil {
		return "", domain.ErrUnparsableAddress(filename, err)
	}

	if !remote {
		return c.composeLocal(filename, targetUser)
	}

	// Elevating to the same user on a host the transport layer already
	// treats as local is a no-op; wrapping it again would be redundant.
	if targetUser == desc.User() && c.registry.IsLocalHost(desc.Host()) {
		return desc.Path(), nil
	}

	hop, err := c.hops.BuildHop(desc)
	if err != nil {
		return "", err
	}

	elevated, err := domain.NewDescriptor(c.elevationMethod, targetUser, desc.Domain(), desc.Host(), desc.Port(), desc.Path(), hop)
	if err != nil {
		return "", err
	}

	return c.codec.Format(elevated), nil
}

// composeLocal wraps a plain filesystem path in a single-hop elevation
// address on the fixed localhost sentinel.
func (c *Composer) composeLocal(filename, targetUser string) (string, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", filename, err)
	}

	elevated, err := domain.NewDescriptor(c.elevationMethod, targetUser, "", LocalHostName, "", abs, "")
	if err != nil {
		return "", err
	}

	return c.codec.Format(elevated), nil
}
