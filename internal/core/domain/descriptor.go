package domain

import "fmt"

// Descriptor is the structured form of a remote or local file address.
// A zero HopChain means the address is reachable in a single hop.
//
// Descriptors are value objects: transformations return new values and
// never mutate the receiver.
type Descriptor struct {
	method   string
	user     string
	domain   string
	host     string
	port     string
	path     string
	hopChain string
}

// NewDescriptor creates a descriptor and validates its invariants.
// Method must be non-empty; everything else is transport-dependent
// and may be left blank.
func NewDescriptor(method, user, domain, host, port, path, hopChain string) (Descriptor, error) {
	if method == "" {
		return Descriptor{}, fmt.Errorf("descriptor method cannot be empty")
	}

	return Descriptor{
		method:   method,
		user:     user,
		domain:   domain,
		host:     host,
		port:     port,
		path:     path,
		hopChain: hopChain,
	}, nil
}

// Method returns the transport identifier (e.g. "ssh", "doas").
func (d Descriptor) Method() string {
	return d.method
}

// User returns the account to operate as; empty means the transport default.
func (d Descriptor) User() string {
	return d.user
}

// Domain returns the authentication domain, if the transport uses one.
func (d Descriptor) Domain() string {
	return d.domain
}

// Host returns the target machine identifier.
func (d Descriptor) Host() string {
	return d.host
}

// Port returns the non-default port, or empty for the transport default.
func (d Descriptor) Port() string {
	return d.port
}

// Path returns the filesystem path on the final host.
func (d Descriptor) Path() string {
	return d.path
}

// HopChain returns the serialized prior transport steps needed before
// applying Method, already in canonical form and appendable verbatim.
func (d Descriptor) HopChain() string {
	return d.hopChain
}

// WithMethod returns a copy of the descriptor with a different method.
func (d Descriptor) WithMethod(method string) Descriptor {
	d.method = method
	return d
}

// WithPath returns a copy of the descriptor with a different path.
func (d Descriptor) WithPath(path string) Descriptor {
	d.path = path
	return d
}

// WithHopChain returns a copy of the descriptor with a different hop chain.
func (d Descriptor) WithHopChain(hopChain string) Descriptor {
	d.hopChain = hopChain
	return d
}

// Equal reports whether two descriptors match in every field.
func (d Descriptor) Equal(other Descriptor) bool {
	return d == other
}

// String renders the descriptor for logs and error messages. It is not
// the wire form; use the address codec for that.
func (d Descriptor) String() string {
	userPart := d.user
	if d.domain != "" {
		userPart += "%" + d.domain
	}
	if userPart != "" {
		userPart += "@"
	}
	return fmt.Sprintf("Descriptor(%s:%s%s path=%s hops=%q)", d.method, userPart, d.host, d.path, d.hopChain)
}
