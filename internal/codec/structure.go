package codec

import (
	"encoding/json"
	"strconv"
	"strings"
)

// EncodeStructure walks a generic JSON tree (maps, slices, scalars) and
// encodes every string or numeric leaf. Map keys are never transformed, so
// the encoded tree keeps the same structural shape and lookup keys as the
// plain one. Booleans and nulls pass through unchanged.
func EncodeStructure(value any) any {
	switch v := value.(type) {
	case string:
		return Encode(v)
	case json.Number:
		return Encode(v.String())
	case float64:
		return Encode(FormatNumber(v))
	case int:
		return Encode(strconv.Itoa(v))
	case int64:
		return Encode(strconv.FormatInt(v, 10))
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = EncodeStructure(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = EncodeStructure(item)
		}
		return out
	default:
		return value
	}
}

// DecodeStructure reverses EncodeStructure. String leaves are decoded
// permissively and then reclassified; everything else passes through.
func DecodeStructure(value any) any {
	switch v := value.(type) {
	case string:
		return Reclassify(MaybeDecode(v))
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = DecodeStructure(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = DecodeStructure(item)
		}
		return out
	default:
		return value
	}
}

// Reclassify converts a decoded leaf back to its numeric type, checking in
// order: a digits-only string becomes an int, a string containing "." that
// parses becomes a float64, anything else stays a string.
//
// The digits rule means a string that merely looks numeric ("007") comes back
// as the integer 7. Persisted scalars are usernames, amounts, and date
// strings, none of which are digits-only.
func Reclassify(s string) any {
	if isDigits(s) {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		return s
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

// FormatNumber renders a float the shortest way that round-trips, keeping a
// trailing ".0" on whole numbers so they reclassify as floats, not ints. The
// CSV exports use the same rendering so both layers agree on amount text.
func FormatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
