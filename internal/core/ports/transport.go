package ports

// MethodInfo describes one registered transport method for display and
// diagnostics.
type MethodInfo struct {
	Name         string
	LoginProgram string
	CopyProgram  string
	MountType    bool
	Elevation    bool
}

// TransportRegistry answers static questions about transport methods.
// The rewriting core only reads from it; it never registers methods or
// performs transport mechanics.
type TransportRegistry interface {
	// Parameter looks up a static per-method parameter such as
	// "login-program" or "copy-program". Unknown methods or parameters
	// return ("", false) rather than an error.
	Parameter(method, name string) (string, bool)

	// IsMountType reports whether the method is a virtual-filesystem-mount
	// style transport (e.g. sshfs).
	IsMountType(method string) bool

	// IsElevation reports whether the method re-executes file access as a
	// different account on the target host (doas, sudo, su).
	IsElevation(method string) bool

	// IsLocalHost reports whether the host name is recognized as the
	// local machine by the transport layer. The rewriting core must use
	// this instead of its own hostname pattern so the two never diverge.
	IsLocalHost(host string) bool

	// Methods lists every registered method, sorted by name.
	Methods() []MethodInfo
}
