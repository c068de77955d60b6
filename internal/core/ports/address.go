package ports

import "github.com/cemkeylan/doas-edit/internal/core/domain"

// Delimiters of the remote-addressing scheme. They are part of the codec
// contract so the hop builder can reshape a serialized address without
// knowing anything else about the syntax.
const (
	// PrefixDelimiter opens every remote address.
	PrefixDelimiter = "/"

	// PostfixDelimiter closes the host portion before the path.
	PostfixDelimiter = ":"

	// HopDelimiter separates one transport step from the next.
	HopDelimiter = "|"
)

// AddressCodec converts between raw address strings and descriptors.
// Parse and Format must be bit-exact inverses for every descriptor the
// rewriting core can produce, including delimiter handling: the hop
// builder depends on exact single-occurrence prefix/suffix stripping.
type AddressCodec interface {
	// Parse classifies raw as local or remote. For remote addresses it
	// returns the decomposed descriptor and remote=true. For local paths
	// it returns a zero descriptor and remote=false with a nil error.
	Parse(raw string) (desc domain.Descriptor, remote bool, err error)

	// Format serializes a descriptor back into a raw address string.
	Format(desc domain.Descriptor) string

	// StripPrefix removes prefix from s when s starts with it, exactly
	// once and case-sensitively. Otherwise s is returned unchanged.
	StripPrefix(s, prefix string) string

	// StripSuffix removes suffix from s when s ends with it, exactly
	// once and case-sensitively. Otherwise s is returned unchanged.
	StripSuffix(s, suffix string) string
}
