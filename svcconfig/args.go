package svcconfig

import (
	"math"
	"os"
)

// normalizeArgs converts decoded argument values to the types constructors
// are usually declared with.
//
// Integers decoded as int64 become int when they fit. Strings are expanded
// with lookup, so "${HOST}" and "$HOST" are replaced by their value.
func normalizeArgs(args []any, lookup func(string) string) []any {
	if len(args) == 0 {
		return nil
	}

	out := make([]any, len(args))
	for i, arg := range args {
		out[i] = normalizeArg(arg, lookup)
	}
	return out
}

func normalizeArg(arg any, lookup func(string) string) any {
	switch v := arg.(type) {
	case int64:
		if v >= math.MinInt && v <= math.MaxInt {
			return int(v)
		}
		return v
	case string:
		return os.Expand(v, lookup)
	case []any:
		return normalizeArgs(v, lookup)
	default:
		return v
	}
}
