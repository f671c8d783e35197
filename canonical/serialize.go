package canonical

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Serialize converts a value into its canonical string form.
//
// Mapping keys are sorted ascending by their string form, so insertion order
// never affects the output. Sequence order is preserved. Scalars use their
// standard JSON encoding and nil renders as "null".
//
// Values that cannot be represented (cycles, channels, functions) return an
// error.
func Serialize(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("canonical: unsupported value: %w", err)
	}

	// Round-trip through a generic tree so structs, maps and typed slices
	// all normalize to the same shapes before canonical rendering. UseNumber
	// keeps numeric text exact instead of forcing float64.
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return "", fmt.Errorf("canonical: decode value: %w", err)
	}

	var b strings.Builder
	writeCanonical(&b, tree)
	return b.String(), nil
}

func writeCanonical(b *strings.Builder, v any) {
	switch t := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		b.WriteString(strconv.FormatBool(t))
	case json.Number:
		b.WriteString(t.String())
	case string:
		quoted, _ := json.Marshal(t)
		b.Write(quoted)
	case []any:
		b.WriteByte('[')
		for i, elem := range t {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonical(b, elem)
		}
		b.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			quoted, _ := json.Marshal(k)
			b.Write(quoted)
			b.WriteByte(':')
			writeCanonical(b, t[k])
		}
		b.WriteByte('}')
	default:
		// json.Decode only produces the cases above.
		quoted, _ := json.Marshal(t)
		b.Write(quoted)
	}
}
