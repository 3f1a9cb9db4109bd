package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ID is the canonical identifier used across the core. Stores may hand back
// identifiers as strings, integers or driver-specific object ids; every value
// is converted with NormalizeID before it is compared.
type ID string

// String returns the identifier as a plain string.
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is empty after normalization.
func (id ID) IsZero() bool {
	return id.Canonical() == ""
}

// Canonical returns the identifier with surrounding whitespace removed.
func (id ID) Canonical() ID {
	return ID(strings.TrimSpace(string(id)))
}

// NewID generates a new random identifier.
func NewID() ID {
	return ID(uuid.NewString())
}

type hexer interface {
	Hex() string
}

// NormalizeID converts an identifier of any supported representation into its
// canonical form. Unsupported values fall back to their default formatting.
func NormalizeID(value interface{}) ID {
	switch v := value.(type) {
	case nil:
		return ""
	case ID:
		return v.Canonical()
	case *ID:
		if v == nil {
			return ""
		}
		return v.Canonical()
	case string:
		return ID(v).Canonical()
	case *string:
		if v == nil {
			return ""
		}
		return ID(*v).Canonical()
	case []byte:
		return ID(v).Canonical()
	case int:
		return ID(strconv.FormatInt(int64(v), 10))
	case int32:
		return ID(strconv.FormatInt(int64(v), 10))
	case int64:
		return ID(strconv.FormatInt(v, 10))
	case uint:
		return ID(strconv.FormatUint(uint64(v), 10))
	case uint32:
		return ID(strconv.FormatUint(uint64(v), 10))
	case uint64:
		return ID(strconv.FormatUint(v, 10))
	case float64:
		// JSON decoders hand numeric ids back as float64
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return ID(strconv.FormatFloat(v, 'f', 0, 64))
		}
		return ID(strconv.FormatFloat(v, 'f', -1, 64))
	case hexer:
		return ID(v.Hex()).Canonical()
	case fmt.Stringer:
		return ID(v.String()).Canonical()
	default:
		return ID(fmt.Sprint(v)).Canonical()
	}
}

// NormalizeIDs normalizes every value and drops the ones that end up empty.
func NormalizeIDs[T any](values []T) []ID {
	ids := make([]ID, 0, len(values))
	for _, v := range values {
		id := NormalizeID(v)
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// UniqueIDs normalizes ids and removes duplicates, keeping first-seen order.
func UniqueIDs(ids []ID) []ID {
	seen := make(map[ID]struct{}, len(ids))
	result := make([]ID, 0, len(ids))

	for _, raw := range ids {
		id := raw.Canonical()
		if id == "" {
			continue
		}
		if _, exists := seen[id]; exists {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}

	return result
}

// ContainsID reports whether target is present in ids, comparing canonical forms.
func ContainsID(ids []ID, target ID) bool {
	want := target.Canonical()
	if want == "" {
		return false
	}
	for _, id := range ids {
		if id.Canonical() == want {
			return true
		}
	}
	return false
}

// IDSet is a set of canonical identifiers.
type IDSet map[ID]struct{}

// NewIDSet builds a set from ids, ignoring empty values.
func NewIDSet(ids ...ID) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		if c := id.Canonical(); c != "" {
			set[c] = struct{}{}
		}
	}
	return set
}

// Has reports whether id is in the set.
func (s IDSet) Has(id ID) bool {
	_, ok := s[id.Canonical()]
	return ok
}

// Intersects reports whether any of ids is in the set.
func (s IDSet) Intersects(ids []ID) bool {
	for _, id := range ids {
		if s.Has(id) {
			return true
		}
	}
	return false
}
