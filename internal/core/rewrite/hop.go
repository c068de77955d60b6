package rewrite

import (
	"github.com/cemkeylan/doas-edit/internal/core/domain"
	"github.com/cemkeylan/doas-edit/internal/core/ports"
)

// HopBuilder turns a descriptor into the serialized prefix that expresses
// "reach this host" without a trailing path or transport-closing marker.
type HopBuilder struct {
	classifier *Classifier
	codec      ports.AddressCodec
}

// NewHopBuilder creates a hop builder using the given classifier and codec.
func NewHopBuilder(classifier *Classifier, codec ports.AddressCodec) *HopBuilder {
	return &HopBuilder{
		classifier: classifier,
		codec:      codec,
	}
}

// BuildHop returns a string that, when prepended to a final descriptor's
// serialization, yields a valid multi-hop address. Any deeper hop chain
// already present on desc is preserved in front of the new hop. This is a
// pure string transformation; no network or file access occurs.
func (b *HopBuilder) BuildHop(desc domain.Descriptor) (string, error) {
	method := desc.Method()
	if b.classifier.NeedsDowngrade(method) {
		method = CanonicalMethod
	}

	hop, err := domain.NewDescriptor(method, desc.User(), desc.Domain(), desc.Host(), desc.Port(), "", desc.HopChain())
	if err != nil {
		return "", err
	}

	serialized := b.codec.Format(hop)
	serialized = b.codec.StripPrefix(serialized, ports.PrefixDelimiter)
	serialized = b.codec.StripSuffix(serialized, ports.PostfixDelimiter)

	return serialized + ports.HopDelimiter, nil
}
