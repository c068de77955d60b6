package cli

import (
	"io"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cemkeylan/doas-edit/internal/core/rewrite"
	"github.com/cemkeylan/doas-edit/internal/infrastructure/address"
	"github.com/cemkeylan/doas-edit/internal/infrastructure/config"
	"github.com/cemkeylan/doas-edit/internal/infrastructure/transport"
)

func newTestContainer() *CLIContainer {
	registry := transport.NewStaticRegistry()
	codec := address.NewCodec()

	return &CLIContainer{
		Composer: rewrite.NewComposer(registry, codec, "doas"),
		Registry: registry,
		Codec:    codec,
		Settings: &config.Settings{DefaultUser: "root", ElevationMethod: "doas"},
		Logger:   log.New(io.Discard, "", 0),
	}
}

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// what was written.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = old

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out), runErr
}

func TestRootCommandHasSubcommands(t *testing.T) {
	rootCmd := NewRootCommand(newTestContainer())

	names := make([]string, 0)
	for _, sub := range rootCmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.Contains(t, names, "edit")
	assert.Contains(t, names, "resolve")
	assert.Contains(t, names, "methods")
}

func TestResolveCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "remote file with default user",
			args: []string{"resolve", "/ssh:bob@web1:/etc/fstab"},
			want: "/ssh:bob@web1|doas:root@web1:/etc/fstab",
		},
		{
			name: "explicit target user",
			args: []string{"resolve", "--user", "http", "/ssh:bob@web1:/srv/www/index.html"},
			want: "/ssh:bob@web1|doas:http@web1:/srv/www/index.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd := NewRootCommand(newTestContainer())
			rootCmd.SetArgs(tt.args)

			out, err := captureStdout(t, rootCmd.Execute)

			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}
}

func TestEditPrintFlag(t *testing.T) {
	rootCmd := NewRootCommand(newTestContainer())
	rootCmd.SetArgs([]string{"edit", "--print", "/ssh:bob@web1:/etc/fstab"})

	out, err := captureStdout(t, rootCmd.Execute)

	require.NoError(t, err)
	assert.Equal(t, "/ssh:bob@web1|doas:root@web1:/etc/fstab", strings.TrimSpace(out))
}

func TestEditRejectsNonElevationMethod(t *testing.T) {
	rootCmd := NewRootCommand(newTestContainer())
	rootCmd.SetArgs([]string{"edit", "--method", "ssh", "--print", "/etc/hosts"})
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an elevation method")
}

func TestEditMethodOverride(t *testing.T) {
	rootCmd := NewRootCommand(newTestContainer())
	rootCmd.SetArgs([]string{"edit", "--method", "sudo", "--print", "/ssh:bob@web1:/etc/fstab"})

	out, err := captureStdout(t, rootCmd.Execute)

	require.NoError(t, err)
	assert.Equal(t, "/ssh:bob@web1|sudo:root@web1:/etc/fstab", strings.TrimSpace(out))
}
