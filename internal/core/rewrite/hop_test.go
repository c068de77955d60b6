package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cemkeylan/doas-edit/internal/core/domain"
	"github.com/cemkeylan/doas-edit/internal/infrastructure/address"
	"github.com/cemkeylan/doas-edit/internal/infrastructure/transport"
)

func newTestHopBuilder() *HopBuilder {
	registry := transport.NewStaticRegistry()
	return NewHopBuilder(NewClassifier(registry), address.NewCodec())
}

func TestHopBuilder_BuildHop(t *testing.T) {
	builder := newTestHopBuilder()

	tests := []struct {
		name     string
		method   string
		user     string
		domain   string
		host     string
		port     string
		path     string
		hopChain string
		want     string
	}{
		{
			name:   "ssh hop keeps its method",
			method: "ssh",
			user:   "bob",
			host:   "web1",
			path:   "/etc/fstab",
			want:   "ssh:bob@web1|",
		},
		{
			name:   "scp hop is downgraded with user host and port unchanged",
			method: "scp",
			user:   "bob",
			host:   "web1",
			port:   "2222",
			path:   "/etc/fstab",
			want:   "ssh:bob@web1#2222|",
		},
		{
			name:   "mount hop is downgraded",
			method: "sshfs",
			user:   "bob",
			host:   "web1",
			want:   "ssh:bob@web1|",
		},
		{
			name:   "domain survives the downgrade",
			method: "scp",
			user:   "bob",
			domain: "corp",
			host:   "web1",
			want:   "ssh:bob%corp@web1|",
		},
		{
			name:     "deeper chain is preserved in front",
			method:   "ssh",
			user:     "bob",
			host:     "web1",
			hopChain: "ssh:alice@gw|",
			want:     "ssh:alice@gw|ssh:bob@web1|",
		},
		{
			name:   "path never leaks into the hop",
			method: "ssh",
			user:   "bob",
			host:   "web1",
			path:   "/var/log/syslog",
			want:   "ssh:bob@web1|",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := domain.NewDescriptor(tt.method, tt.user, tt.domain, tt.host, tt.port, tt.path, tt.hopChain)
			require.NoError(t, err)

			hop, err := builder.BuildHop(desc)

			require.NoError(t, err)
			assert.Equal(t, tt.want, hop)
		})
	}
}

func TestHopBuilder_HopComposesWithFinalDescriptor(t *testing.T) {
	codec := address.NewCodec()
	builder := newTestHopBuilder()

	source, err := domain.NewDescriptor("ssh", "bob", "", "web1", "", "/etc/fstab", "")
	require.NoError(t, err)

	hop, err := builder.BuildHop(source)
	require.NoError(t, err)

	final, err := domain.NewDescriptor("doas", "root", "", "web1", "", "/etc/fstab", hop)
	require.NoError(t, err)

	desc, remote, err := codec.Parse(codec.Format(final))

	require.NoError(t, err)
	require.True(t, remote)
	assert.True(t, desc.Equal(final), "hop fragment must compose into a parseable multi-hop address")
}
