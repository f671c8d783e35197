// Package pushid generates and decodes compact, time-sortable identifiers.
//
// A push ID embeds a millisecond timestamp, a random or hashed suffix, and an
// optional type tag. Two textual encodings exist:
//
//   - Legacy: an 8-character time field concatenated with the randomness,
//     no delimiter, no tag ("0TBm2ci2Xa9fkO2QLqpu").
//   - Tagged: hyphen-delimited time, tag and randomness
//     ("0TBm2ci2-sID-Xa9fkO2QLqpu").
//
// The time field is 8 base-64 digits over an ASCII-ordered alphabet, so IDs
// in the same format sort lexicographically by creation time. Eight digits
// cover the full 48-bit millisecond range (valid until roughly year 10889).
//
// # Generating
//
//	id, err := pushid.New()                          // now + LCG randomness
//	id, err := pushid.New(pushid.WithTag("sID"))     // tagged format
//	id, err := pushid.New(pushid.WithData(payload))  // deterministic suffix
//
// When WithData is supplied the suffix is derived by hashing the canonical
// serialization of the value, so equal values at equal timestamps produce
// equal IDs. Otherwise the suffix comes from the generator's pseudo-random
// source, a linear-congruential sequence seeded at generator construction.
// That source is not cryptographically secure; callers needing stronger
// uniqueness can substitute one with WithSource while keeping the alphabet
// and length contract.
//
// # Decoding
//
// Parse is the strict entry point and returns an error for malformed input.
// ParseLenient never fails; it reports absence instead, which is what the
// session reducer depends on:
//
//	if id, ok := pushid.ParseLenient(raw); ok {
//	    fmt.Println(id.Time())
//	}
//
// # Generators
//
// Package-level functions delegate to a shared process-wide Generator. A
// dedicated Generator isolates the random sequence and the optional
// last-generated-ID cache:
//
//	gen := pushid.NewGenerator()
//	id, _ := gen.New()
//	last, ok := gen.Last()
package pushid
