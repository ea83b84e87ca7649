package request

import (
	"fmt"
	"sort"

	"github.com/spf13/cast"
)

// ToFormPairs converts a JSON-like map to ordered form pairs, any scalar
// type is mapped to string. String slices expand to "key[0]", "key[1]", ...
// and string maps to "key[name]" pairs. Keys are sorted so the encoded
// body is stable.
func ToFormPairs(in map[string]any) []Pair {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Pair, 0, len(in))
	for _, k := range keys {
		switch v := in[k].(type) {
		case []string:
			for i, s := range v {
				out = append(out, Pair{Key: fmt.Sprintf("%s[%d]", k, i), Value: s})
			}
		case map[string]string:
			nested := make([]string, 0, len(v))
			for n := range v {
				nested = append(nested, n)
			}
			sort.Strings(nested)
			for _, n := range nested {
				out = append(out, Pair{Key: fmt.Sprintf("%s[%s]", k, n), Value: v[n]})
			}
		default:
			out = append(out, Pair{Key: k, Value: castToString(v)})
		}
	}
	return out
}

func castToString(v any) string {
	out, err := cast.ToStringE(v)
	if err != nil {
		panic(fmt.Errorf(`cannot cast %T to string: %w`, v, err))
	}
	return out
}
