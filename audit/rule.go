package audit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Effect is the allow/deny disposition of an access rule.
type Effect string

const (
	Allow Effect = "Allow"
	Deny  Effect = "Deny"
)

// ParseEffect parses an AccessControlType value, case-insensitively.
func ParseEffect(s string) (Effect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "allow":
		return Allow, nil
	case "deny":
		return Deny, nil
	default:
		return "", fmt.Errorf("unknown access control type %q", s)
	}
}

// RawRights is the as-written rights value of a rule: either a numeric access
// mask or a symbolic rights expression. The representation is decided once at
// parse time and carried alongside the normalized rights so that
// reconciliation can still reason about generic masks.
type RawRights struct {
	Numeric  bool
	Mask     uint32
	Symbolic string
}

// ParseRawRights classifies a rights field as numeric or symbolic. Numeric
// values may be negative: exporters commonly serialize generic masks as
// signed 32-bit integers (GENERIC_READ alone is -2147483648). Values outside
// the signed or unsigned 32-bit range are not valid access masks and are
// rejected rather than truncated.
func ParseRawRights(field string) (RawRights, error) {
	field = strings.TrimSpace(field)
	if v, err := strconv.ParseInt(field, 10, 64); err == nil {
		if v < math.MinInt32 || v > math.MaxUint32 {
			return RawRights{}, fmt.Errorf("numeric rights value %d does not fit a 32-bit access mask", v)
		}
		return RawRights{Numeric: true, Mask: uint32(v)}, nil
	}
	return RawRights{Symbolic: field}, nil
}

func (r RawRights) String() string {
	if r.Numeric {
		return strconv.FormatUint(uint64(r.Mask), 10)
	}
	return r.Symbolic
}

// AccessRule is one (identity, rights, effect) entry of a security
// descriptor. Immutable once constructed; two rules are the same rule only if
// the full tuple matches.
type AccessRule struct {
	Identity string
	Rights   FileSystemRights
	Effect   Effect

	// Raw preserves the representation the rule was declared with.
	Raw RawRights
}

// newBaselineRule builds an AccessRule from a baseline row's raw fields.
// Numeric rights in a baseline are generic masks and go through the mapper;
// symbolic rights are parsed as a rights expression.
func newBaselineRule(identity, rights, effect string) (AccessRule, error) {
	eff, err := ParseEffect(effect)
	if err != nil {
		return AccessRule{}, err
	}
	raw, err := ParseRawRights(rights)
	if err != nil {
		return AccessRule{}, err
	}
	var resolved FileSystemRights
	if raw.Numeric {
		resolved = MapGenericToFileSystemRights(raw.Mask)
	} else {
		resolved, err = ParseRights(raw.Symbolic)
		if err != nil {
			return AccessRule{}, err
		}
	}
	return AccessRule{
		Identity: identity,
		Rights:   resolved,
		Effect:   eff,
		Raw:      raw,
	}, nil
}

// newLiveRule builds an AccessRule from a live snapshot entry. Numeric rights
// here are full access masks, so fine-grained bits are kept and generic bits
// decoded.
func newLiveRule(identity, rights, effect string) (AccessRule, error) {
	eff, err := ParseEffect(effect)
	if err != nil {
		return AccessRule{}, err
	}
	raw, err := ParseRawRights(rights)
	if err != nil {
		return AccessRule{}, err
	}
	var resolved FileSystemRights
	if raw.Numeric {
		resolved = normalizeNumericRights(raw.Mask)
	} else {
		resolved, err = ParseRights(raw.Symbolic)
		if err != nil {
			return AccessRule{}, err
		}
	}
	return AccessRule{
		Identity: identity,
		Rights:   resolved,
		Effect:   eff,
		Raw:      raw,
	}, nil
}
