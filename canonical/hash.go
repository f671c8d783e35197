package canonical

import "unicode/utf16"

// Alphabet is the 64-character output alphabet shared by the hash and the
// identifier codec. Index order equals ASCII sort order (digits, uppercase,
// underscore, lowercase, tilde), so encoded strings sort lexicographically
// the same way their numeric values sort.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz~"

// MinHashLength is the floor applied to every requested hash length.
const MinHashLength = 12

// Accumulator seeds. Odd constants so the multiply chain never collapses
// to zero.
const (
	seed0 uint32 = 0x9E3779B1
	seed1 uint32 = 0x85EBCA77
	seed2 uint32 = 0xC2B2AE3D
	seed3 uint32 = 0x27D4EB2F
)

// Hash derives a deterministic, fixed-alphabet string of max(12, length)
// characters from s.
//
// The state is four 32-bit words mixed per UTF-16 code unit of the input.
// All arithmetic wraps at 2^32 (native uint32 semantics). The result is
// well distributed but not cryptographic; do not use it where collision
// resistance against an adversary matters.
func Hash(s string, length int) string {
	if length < MinHashLength {
		length = MinHashLength
	}

	h0, h1, h2, h3 := seed0, seed1, seed2, seed3

	for _, cu := range utf16.Encode([]rune(s)) {
		c := uint32(cu)

		h0 = (h0 ^ c) * 2654435761
		h1 = (h1 ^ h0) * 2246822519
		h2 = (h2 ^ h1) * 3266489917
		h3 = (h3 ^ h2) * 668265263

		// Avalanche the three carry words so low input bits reach high
		// output bits.
		h1 ^= h1 >> 15
		h1 *= 0x2C1B3C6D
		h2 ^= h2 >> 13
		h2 *= 0x297A2D39
		h3 ^= h3 >> 16
		h3 *= 0xB55A4F09

		h0 ^= c
	}

	words := [4]uint32{h0, h1, h2, h3}

	out := make([]byte, length)
	for i := 0; i < length; i++ {
		w := words[i%4]
		out[i] = Alphabet[(w>>(uint(i%5)*3))&0x3F]
	}
	return string(out)
}
