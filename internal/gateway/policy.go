package gateway

import "github.com/irevlogix/irevlogix-console/internal/gateway/shape"

// PolicyKind selects how a route translates upstream responses.
type PolicyKind uint8

const (
	// KindWrapError re-emits upstream failures as {"error": <body>}.
	KindWrapError PolicyKind = iota
	// KindPassThrough forwards upstream status and bytes verbatim.
	KindPassThrough
	// KindNormalizeShape wraps errors and remaps successful bodies.
	KindNormalizeShape
)

func (k PolicyKind) String() string {
	switch k {
	case KindWrapError:
		return "wrap_error"
	case KindPassThrough:
		return "pass_through"
	case KindNormalizeShape:
		return "normalize_shape"
	default:
		return "unknown"
	}
}

// Policy is the response translation declared for a route at registration.
// The zero value is WrapError.
type Policy struct {
	kind    PolicyKind
	mapping *shape.Mapping
}

// WrapError returns the default translation policy.
func WrapError() Policy {
	return Policy{kind: KindWrapError}
}

// PassThrough returns a policy forwarding upstream responses untouched.
func PassThrough() Policy {
	return Policy{kind: KindPassThrough}
}

// NormalizeShape returns a policy remapping successful bodies with m.
func NormalizeShape(m shape.Mapping) Policy {
	return Policy{kind: KindNormalizeShape, mapping: &m}
}

// Kind reports the policy variant.
func (p Policy) Kind() PolicyKind {
	return p.kind
}

// Mapping returns the shape mapping of a NormalizeShape policy.
func (p Policy) Mapping() (shape.Mapping, bool) {
	if p.kind != KindNormalizeShape || p.mapping == nil {
		return shape.Mapping{}, false
	}
	return *p.mapping, true
}
