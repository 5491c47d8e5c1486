package entityref

import "github.com/google/uuid"

// Kind is the classification of an entity reference.
type Kind string

const (
	// KindUUID identifies a reference in canonical UUID form.
	KindUUID Kind = "UUID"

	// KindSlug identifies a human-readable slug reference.
	KindSlug Kind = "SLUG"
)

// canonicalUUIDLen is the length of the hyphenated textual UUID form
// (8-4-4-4-12 hex digits).
const canonicalUUIDLen = 36

// Kinds returns all valid kinds.
func Kinds() []Kind {
	return []Kind{KindUUID, KindSlug}
}

// IsValid returns true if this is a recognized kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindUUID, KindSlug:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Classify returns KindUUID if value is a canonical textual UUID and fallback
// otherwise.
//
// Only the hyphenated 36 character form is canonical. Letter case does not
// matter. Braced, "urn:uuid:" prefixed and unhyphenated forms, which
// uuid.Parse would otherwise accept, are classified as fallback.
func Classify(value string, fallback Kind) Kind {
	if IsCanonicalUUID(value) {
		return KindUUID
	}
	return fallback
}

// Detect classifies value, treating anything that is not a canonical UUID as
// a slug.
func Detect(value string) Kind {
	return Classify(value, KindSlug)
}

// IsCanonicalUUID reports whether value has the canonical textual UUID shape.
func IsCanonicalUUID(value string) bool {
	if len(value) != canonicalUUIDLen {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}
