// Package canonical provides deterministic string machinery for identifier
// generation: a canonical serializer and a fast mixing hash.
//
// # Serialization
//
// Serialize converts an arbitrary structured value into a canonical string.
// Mapping keys are rendered in sorted order, so two values with identical
// key/value pairs always serialize identically regardless of insertion order:
//
//	a, _ := canonical.Serialize(map[string]int{"a": 1, "b": 2})
//	b, _ := canonical.Serialize(map[string]int{"b": 2, "a": 1})
//	// a == b
//
// Sequences preserve element order. Scalars use their standard JSON encoding,
// and nil serializes as the literal "null".
//
// Values containing cycles are not supported; Serialize returns an error for
// them rather than recursing forever.
//
// # Hashing
//
// Hash derives a fixed-alphabet string of the requested length from an input
// string. The output length is clamped to a minimum of 12 characters. The
// hash is deterministic and well distributed, but it is NOT cryptographic:
// the only guaranteed property is that identical input always produces
// identical output.
//
//	h := canonical.Hash(s, 16)
//	// len(h) == 16, every character drawn from canonical.Alphabet
//
// # Alphabet
//
// Alphabet is a 64-character string whose index order equals ASCII sort
// order. Strings built from it compare lexicographically the same way the
// underlying 6-bit values compare numerically, which is what makes hash and
// identifier output sortable.
package canonical
