package transport

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticRegistry_Parameter(t *testing.T) {
	registry := NewStaticRegistry()

	tests := []struct {
		name      string
		method    string
		parameter string
		want      string
		wantOK    bool
	}{
		{name: "ssh login program", method: "ssh", parameter: ParamLoginProgram, want: "ssh", wantOK: true},
		{name: "ssh has no copy program", method: "ssh", parameter: ParamCopyProgram, wantOK: false},
		{name: "scp copy program", method: "scp", parameter: ParamCopyProgram, want: "scp", wantOK: true},
		{name: "scp logs in over ssh", method: "scp", parameter: ParamLoginProgram, want: "ssh", wantOK: true},
		{name: "telnet login program", method: "telnet", parameter: ParamLoginProgram, want: "telnet", wantOK: true},
		{name: "unknown method is tolerated", method: "carrier-pigeon", parameter: ParamLoginProgram, wantOK: false},
		{name: "unknown parameter is tolerated", method: "ssh", parameter: "compression", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := registry.Parameter(tt.method, tt.parameter)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStaticRegistry_Classification(t *testing.T) {
	registry := NewStaticRegistry()

	assert.True(t, registry.IsMountType("sshfs"))
	assert.False(t, registry.IsMountType("ssh"))
	assert.False(t, registry.IsMountType("carrier-pigeon"))

	assert.True(t, registry.IsElevation("doas"))
	assert.True(t, registry.IsElevation("sudo"))
	assert.True(t, registry.IsElevation("su"))
	assert.False(t, registry.IsElevation("ssh"))
}

func TestStaticRegistry_IsLocalHost(t *testing.T) {
	registry := NewStaticRegistry()

	assert.True(t, registry.IsLocalHost("localhost"))
	assert.True(t, registry.IsLocalHost("LOCALHOST"), "host matching is case-insensitive")
	assert.True(t, registry.IsLocalHost("127.0.0.1"))
	assert.True(t, registry.IsLocalHost("::1"))
	assert.False(t, registry.IsLocalHost("web1"))

	if hostname, err := os.Hostname(); err == nil {
		assert.True(t, registry.IsLocalHost(hostname), "the machine's own hostname is local")
	}
}

func TestStaticRegistry_AddLocalHost(t *testing.T) {
	registry := NewStaticRegistry()

	require.False(t, registry.IsLocalHost("workstation.corp"))
	registry.AddLocalHost("Workstation.corp")

	assert.True(t, registry.IsLocalHost("workstation.CORP"))
}

func TestStaticRegistry_RegisterOverridesBuiltin(t *testing.T) {
	registry := NewStaticRegistry()
	registry.Register(Method{Name: "ssh", LoginProgram: "ssh", CopyProgram: "scp"})

	got, ok := registry.Parameter("ssh", ParamCopyProgram)

	require.True(t, ok)
	assert.Equal(t, "scp", got)
}

func TestStaticRegistry_MethodsAreSorted(t *testing.T) {
	registry := NewStaticRegistry()

	methods := registry.Methods()
	require.NotEmpty(t, methods)

	for i := 1; i < len(methods); i++ {
		assert.Less(t, methods[i-1].Name, methods[i].Name)
	}

	names := make(map[string]bool, len(methods))
	for _, m := range methods {
		names[m.Name] = true
	}
	for _, expected := range []string{"ssh", "scp", "rsync", "sftp", "sshfs", "telnet", "doas", "sudo", "su"} {
		assert.True(t, names[expected], "builtin method %q missing", expected)
	}
}
