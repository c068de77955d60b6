package address

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cemkeylan/doas-edit/internal/core/domain"
	"github.com/cemkeylan/doas-edit/internal/core/ports"
)

// remotePattern matches the opening of a remote address: the global
// prefix followed by a method name and its separator. Plain filesystem
// paths never match because their first segment ends in "/" or at the
// end of the string, not in ":".
var remotePattern = regexp.MustCompile(`^/[A-Za-z0-9-]+:`)

// Codec implements the address syntax
//
//	/method:[user[%domain]@]host[#port]:path
//
// with prior hops serialized in front of the final step and separated by
// "|". Parse and Format are exact inverses as long as field values do not
// themselves contain delimiter characters; the syntax has no escaping.
type Codec struct{}

// NewCodec creates the address codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Parse classifies raw as local or remote and decomposes remote addresses
// into a descriptor. The hop chain, if any, is kept verbatim: it is
// already in the canonical serialized form and is reattached unchanged
// when the descriptor is formatted again.
func (c *Codec) Parse(raw string) (domain.Descriptor, bool, error) {
	if !remotePattern.MatchString(raw) {
		return domain.Descriptor{}, false, nil
	}

	body := strings.TrimPrefix(raw, ports.PrefixDelimiter)

	hopChain := ""
	final := body
	if i := strings.LastIndex(body, ports.HopDelimiter); i >= 0 {
		hopChain = body[:i+1]
		final = body[i+1:]
	}

	method, rest, ok := strings.Cut(final, ":")
	if !ok || method == "" {
		return domain.Descriptor{}, false, fmt.Errorf("address %q has no method separator", raw)
	}

	hostPart, path, ok := strings.Cut(rest, ports.PostfixDelimiter)
	if !ok {
		return domain.Descriptor{}, false, fmt.Errorf("address %q has no host delimiter", raw)
	}

	user, authDomain, host, port := splitHostPart(hostPart)
	if host == "" {
		return domain.Descriptor{}, false, fmt.Errorf("address %q has an empty host", raw)
	}

	desc, err := domain.NewDescriptor(method, user, authDomain, host, port, path, hopChain)
	if err != nil {
		return domain.Descriptor{}, false, err
	}

	return desc, true, nil
}

// Format serializes a descriptor back into a raw address string, placing
// any hop chain verbatim between the prefix and the final step.
func (c *Codec) Format(desc domain.Descriptor) string {
	var b strings.Builder

	b.WriteString(ports.PrefixDelimiter)
	b.WriteString(desc.HopChain())
	b.WriteString(desc.Method())
	b.WriteString(":")

	if desc.User() != "" || desc.Domain() != "" {
		b.WriteString(desc.User())
		if desc.Domain() != "" {
			b.WriteString("%")
			b.WriteString(desc.Domain())
		}
		b.WriteString("@")
	}

	b.WriteString(desc.Host())
	if desc.Port() != "" {
		b.WriteString("#")
		b.WriteString(desc.Port())
	}

	b.WriteString(ports.PostfixDelimiter)
	b.WriteString(desc.Path())

	return b.String()
}

// ParseHops decomposes a serialized hop chain into one descriptor per
// step, in order. Each step carries no path; the chain only expresses how
// to reach the final host.
func (c *Codec) ParseHops(hopChain string) ([]domain.Descriptor, error) {
	if hopChain == "" {
		return nil, nil
	}

	fragments := strings.Split(strings.TrimSuffix(hopChain, ports.HopDelimiter), ports.HopDelimiter)
	hops := make([]domain.Descriptor, 0, len(fragments))

	for _, fragment := range fragments {
		method, hostPart, ok := strings.Cut(fragment, ":")
		if !ok || method == "" {
			return nil, fmt.Errorf("hop %q has no method separator", fragment)
		}

		user, authDomain, host, port := splitHostPart(hostPart)
		if host == "" {
			return nil, fmt.Errorf("hop %q has an empty host", fragment)
		}

		hop, err := domain.NewDescriptor(method, user, authDomain, host, port, "", "")
		if err != nil {
			return nil, err
		}
		hops = append(hops, hop)
	}

	return hops, nil
}

// StripPrefix removes prefix from s exactly once when present.
func (c *Codec) StripPrefix(s, prefix string) string {
	return strings.TrimPrefix(s, prefix)
}

// StripSuffix removes suffix from s exactly once when present.
func (c *Codec) StripSuffix(s, suffix string) string {
	return strings.TrimSuffix(s, suffix)
}

// splitHostPart decomposes "[user[%domain]@]host[#port]". The "@" split
// uses the last occurrence so user names containing "@" at least fail
// toward the host side, matching how login tooling resolves them.
func splitHostPart(hostPart string) (user, authDomain, host, port string) {
	rest := hostPart

	if i := strings.LastIndex(rest, "@"); i >= 0 {
		userPart := rest[:i]
		rest = rest[i+1:]

		if j := strings.Index(userPart, "%"); j >= 0 {
			user, authDomain = userPart[:j], userPart[j+1:]
		} else {
			user = userPart
		}
	}

	host = rest
	if i := strings.LastIndex(rest, "#"); i >= 0 {
		host = rest[:i]
		port = rest[i+1:]
	}

	return user, authDomain, host, port
}
