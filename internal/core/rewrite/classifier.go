package rewrite

import "github.com/cemkeylan/doas-edit/internal/core/ports"

const (
	// CanonicalMethod is the plain secure-shell transport that
	// hop-incompatible methods are downgraded to.
	CanonicalMethod = "ssh"

	paramLoginProgram = "login-program"
	paramCopyProgram  = "copy-program"
)

// Classifier decides whether a transport method can serve as an
// intermediate hop or must be replaced for that purpose.
type Classifier struct {
	registry ports.TransportRegistry
}

// NewClassifier creates a classifier backed by the given registry.
func NewClassifier(registry ports.TransportRegistry) *Classifier {
	return &Classifier{registry: registry}
}

// NeedsDowngrade reports whether method must be expressed as a plain
// secure-shell hop when it appears as the current transport to a remote
// host. That is the case for mount-style transports and for transports
// that copy out of band while logging in over ssh: neither supports the
// direct shell access the elevation layer chains onto. Swapping the hop
// method does not change how the file itself was reached, only how the
// elevation layer reaches the same host.
func (c *Classifier) NeedsDowngrade(method string) bool {
	if c.registry.IsMountType(method) {
		return true
	}

	if _, ok := c.registry.Parameter(method, paramCopyProgram); !ok {
		return false
	}

	login, ok := c.registry.Parameter(method, paramLoginProgram)
	return ok && login == CanonicalMethod
}
