package pushid

import (
	"errors"
	"fmt"
	"time"

	"github.com/tracknest/sessionkit/canonical"
)

// Alphabet is the 64-character encoding alphabet. It is ordered so that
// character index order equals ASCII sort order, which keeps encoded
// timestamps lexicographically sortable.
const Alphabet = canonical.Alphabet

const (
	// TimeLength is the width of the encoded time field in characters.
	TimeLength = 8

	// MinRandomLength is the floor applied to every requested randomness
	// length.
	MinRandomLength = 12

	// MaxMillis is the largest encodable timestamp: 8 base-64 digits hold
	// exactly 48 bits.
	MaxMillis = 1<<48 - 1
)

// ErrInvalidID is returned by the strict decoding entry points when input
// cannot be parsed as a push ID.
var ErrInvalidID = errors.New("pushid: invalid identifier")

// alphaIndex maps an ASCII byte to its alphabet value, or -1.
var alphaIndex = func() (t [128]int8) {
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		t[Alphabet[i]] = int8(i)
	}
	return t
}()

// EncodeMillis encodes a millisecond timestamp as a fixed-width 8-character
// string. Only the low 48 bits participate; callers are expected to pass
// timestamps in [0, MaxMillis].
func EncodeMillis(ms int64) string {
	u := uint64(ms) & MaxMillis

	var b [TimeLength]byte
	for i := TimeLength - 1; i >= 0; i-- {
		b[i] = Alphabet[u&0x3F]
		u >>= 6
	}
	return string(b[:])
}

// EncodeTime encodes t's millisecond timestamp. See EncodeMillis.
func EncodeTime(t time.Time) string {
	return EncodeMillis(t.UnixMilli())
}

// DecodeMillis decodes an encoded time field back to milliseconds. It folds
// over the characters left to right and fails on the first character outside
// the alphabet or on empty input.
func DecodeMillis(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty time field", ErrInvalidID)
	}

	var total int64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 128 || alphaIndex[c] < 0 {
			return 0, fmt.Errorf("%w: character %q outside alphabet", ErrInvalidID, c)
		}
		total = total*64 + int64(alphaIndex[c])
	}
	return total, nil
}

// DecodeTime decodes an encoded time field into a time.Time in UTC.
func DecodeTime(s string) (time.Time, error) {
	ms, err := DecodeMillis(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms).UTC(), nil
}
