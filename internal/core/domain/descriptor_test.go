package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDescriptor_RequiresMethod(t *testing.T) {
	_, err := NewDescriptor("", "root", "", "web1", "", "/etc/fstab", "")

	assert.Error(t, err)
}

func TestNewDescriptor_CarriesAllFields(t *testing.T) {
	desc, err := NewDescriptor("ssh", "bob", "corp", "web1", "2222", "/etc/fstab", "ssh:alice@gw|")
	require.NoError(t, err)

	assert.Equal(t, "ssh", desc.Method())
	assert.Equal(t, "bob", desc.User())
	assert.Equal(t, "corp", desc.Domain())
	assert.Equal(t, "web1", desc.Host())
	assert.Equal(t, "2222", desc.Port())
	assert.Equal(t, "/etc/fstab", desc.Path())
	assert.Equal(t, "ssh:alice@gw|", desc.HopChain())
}

func TestDescriptor_TransformationsReturnCopies(t *testing.T) {
	original, err := NewDescriptor("scp", "bob", "", "web1", "", "/etc/fstab", "")
	require.NoError(t, err)

	modified := original.WithMethod("ssh").WithPath("").WithHopChain("ssh:gw|")

	assert.Equal(t, "scp", original.Method(), "original descriptor must not change")
	assert.Equal(t, "/etc/fstab", original.Path())
	assert.Empty(t, original.HopChain())

	assert.Equal(t, "ssh", modified.Method())
	assert.Empty(t, modified.Path())
	assert.Equal(t, "ssh:gw|", modified.HopChain())
}

func TestDescriptor_Equal(t *testing.T) {
	a, err := NewDescriptor("ssh", "bob", "", "web1", "", "/etc/fstab", "")
	require.NoError(t, err)
	b, err := NewDescriptor("ssh", "bob", "", "web1", "", "/etc/fstab", "")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(b.WithPath("/etc/hosts")))
}
