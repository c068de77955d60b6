package transport

import (
	"os"
	"sort"
	"strings"

	"github.com/cemkeylan/doas-edit/internal/core/ports"
)

// Parameter names understood by the registry
const (
	ParamLoginProgram = "login-program"
	ParamCopyProgram  = "copy-program"
)

// Method is one entry in the transport parameter table.
type Method struct {
	Name         string
	LoginProgram string
	CopyProgram  string
	MountType    bool
	Elevation    bool
}

// StaticRegistry implements ports.TransportRegistry from a built-in
// method table plus any methods and local host names layered on top from
// configuration. It is read-only after wiring; the rewriting core never
// mutates it.
type StaticRegistry struct {
	methods    map[string]Method
	localHosts map[string]struct{}
}

// NewStaticRegistry creates a registry preloaded with the standard
// transport methods and the usual names for the local machine, including
// its own hostname when it can be determined.
func NewStaticRegistry() *StaticRegistry {
	r := &StaticRegistry{
		methods:    make(map[string]Method),
		localHosts: make(map[string]struct{}),
	}

	for _, m := range builtinMethods() {
		r.Register(m)
	}

	for _, h := range []string{"localhost", "localhost4", "localhost6", "127.0.0.1", "::1"} {
		r.AddLocalHost(h)
	}
	if hostname, err := os.Hostname(); err == nil {
		r.AddLocalHost(hostname)
	}

	return r
}

// builtinMethods returns the default transport parameter table.
func builtinMethods() []Method {
	return []Method{
		{Name: "ssh", LoginProgram: "ssh"},
		{Name: "scp", LoginProgram: "ssh", CopyProgram: "scp"},
		{Name: "rsync", LoginProgram: "ssh", CopyProgram: "rsync"},
		{Name: "sftp", LoginProgram: "ssh", CopyProgram: "sftp"},
		{Name: "sshfs", LoginProgram: "ssh", MountType: true},
		{Name: "telnet", LoginProgram: "telnet"},
		{Name: "doas", Elevation: true},
		{Name: "sudo", Elevation: true},
		{Name: "su", Elevation: true},
	}
}

// Register adds or replaces a method entry.
func (r *StaticRegistry) Register(m Method) {
	r.methods[m.Name] = m
}

// AddLocalHost records a host name as referring to the local machine.
// Matching is case-insensitive, as host names are.
func (r *StaticRegistry) AddLocalHost(host string) {
	r.localHosts[strings.ToLower(host)] = struct{}{}
}

// Parameter looks up a static per-method parameter. Unknown methods and
// unset parameters yield ("", false) rather than an error.
func (r *StaticRegistry) Parameter(method, name string) (string, bool) {
	m, ok := r.methods[method]
	if !ok {
		return "", false
	}

	switch name {
	case ParamLoginProgram:
		if m.LoginProgram != "" {
			return m.LoginProgram, true
		}
	case ParamCopyProgram:
		if m.CopyProgram != "" {
			return m.CopyProgram, true
		}
	}

	return "", false
}

// IsMountType reports whether the method mounts a virtual filesystem.
func (r *StaticRegistry) IsMountType(method string) bool {
	return r.methods[method].MountType
}

// IsElevation reports whether the method is a privilege-elevation
// transport.
func (r *StaticRegistry) IsElevation(method string) bool {
	return r.methods[method].Elevation
}

// IsLocalHost reports whether host names the local machine.
func (r *StaticRegistry) IsLocalHost(host string) bool {
	_, ok := r.localHosts[strings.ToLower(host)]
	return ok
}

// Methods lists every registered method, sorted by name.
func (r *StaticRegistry) Methods() []ports.MethodInfo {
	infos := make([]ports.MethodInfo, 0, len(r.methods))
	for _, m := range r.methods {
		infos = append(infos, ports.MethodInfo{
			Name:         m.Name,
			LoginProgram: m.LoginProgram,
			CopyProgram:  m.CopyProgram,
			MountType:    m.MountType,
			Elevation:    m.Elevation,
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})

	return infos
}
