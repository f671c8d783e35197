package pushid

import (
	"fmt"
	"strings"
	"time"
)

// ID is an immutable decoded push identifier.
type ID struct {
	// Raw is the full textual encoding.
	Raw string

	// Millis is the embedded timestamp in milliseconds since the epoch.
	Millis int64

	// Randomness is the random or hashed suffix.
	Randomness string

	// Tag is the optional type tag. Empty for legacy-format IDs.
	Tag string
}

// String returns the textual encoding.
func (id ID) String() string { return id.Raw }

// Time returns the embedded timestamp in UTC.
func (id ID) Time() time.Time { return time.UnixMilli(id.Millis).UTC() }

// IsZero reports whether the ID is the zero value, used throughout the
// session reducer to mean "absent".
func (id ID) IsZero() bool { return id.Raw == "" }

// Parse decodes an identifier string, accepting both formats.
//
// A string splitting into exactly three hyphen-separated parts is decoded as
// tagged format. Anything else is decoded as legacy format, which requires a
// minimum length of 8 with the leading 8 characters as the time field.
// Returns an error wrapping ErrInvalidID when the time field does not decode.
func Parse(s string) (ID, error) {
	if parts := strings.Split(s, "-"); len(parts) == 3 {
		ms, err := DecodeMillis(parts[0])
		if err != nil {
			return ID{}, fmt.Errorf("tagged time field: %w", err)
		}
		return ID{Raw: s, Millis: ms, Randomness: parts[2], Tag: parts[1]}, nil
	}

	if len(s) < TimeLength {
		return ID{}, fmt.Errorf("%w: length %d below minimum %d", ErrInvalidID, len(s), TimeLength)
	}

	ms, err := DecodeMillis(s[:TimeLength])
	if err != nil {
		return ID{}, fmt.Errorf("legacy time field: %w", err)
	}
	return ID{Raw: s, Millis: ms, Randomness: s[TimeLength:]}, nil
}

// ParseLenient decodes an identifier string, reporting absence instead of
// failing. It never returns an error; malformed or empty input yields
// (ID{}, false). This is the tolerant path the session reducer uses for
// whatever the storage collaborator holds.
func ParseLenient(s string) (ID, bool) {
	if s == "" {
		return ID{}, false
	}
	id, err := Parse(s)
	if err != nil {
		return ID{}, false
	}
	return id, true
}

// format renders the textual encoding for the given fields. Tagged format is
// chosen exactly when tag is non-empty.
func format(ms int64, tag, randomness string) string {
	enc := EncodeMillis(ms)
	if tag == "" {
		return enc + randomness
	}
	return enc + "-" + tag + "-" + randomness
}
