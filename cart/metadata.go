package cart

import (
	"encoding/json"
	"sort"

	"github.com/CybercentreCanada/cart-go/cartdata"
)

// jsonObject parses raw as a JSON object. A nil or empty raw is treated as
// "no metadata supplied" and returns a nil map with no error. Any other
// input that doesn't decode as a top-level JSON object - an array, a
// scalar, or malformed JSON - is a BadJSON error.
func jsonObject(raw []byte) (map[string]json.RawMessage, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, cartdata.Wrap(cartdata.BadJSON, err, "metadata must be a JSON object")
	}
	if obj == nil {
		return nil, cartdata.Newf(cartdata.BadJSON, "metadata must be a JSON object, got null")
	}
	return obj, nil
}

// canonicalJSON serializes obj compactly and deterministically: Go's
// encoding/json always emits map keys in sorted order, so packing the same
// metadata twice yields byte-identical output. A nil map still
// serializes to "{}", the same as an empty map, matching the format
// spec's empty-object rule.
func canonicalJSON(obj map[string]json.RawMessage) ([]byte, error) {
	if obj == nil {
		obj = map[string]json.RawMessage{}
	}
	return json.Marshal(obj)
}

// mergeComputedDigests layers computed digest values over caller-supplied
// footer metadata, with computed values winning any key collision. This
// matches the reference implementation's conflicting_footer_data test,
// which asserts a caller-supplied "md5" entry is overwritten by the real
// computed digest.
func mergeComputedDigests(caller map[string]json.RawMessage, digests []cartdata.Digester) (map[string]json.RawMessage, error) {
	if len(digests) == 0 {
		return caller, nil
	}
	out := make(map[string]json.RawMessage, len(caller)+len(digests))
	for k, v := range caller {
		out[k] = v
	}
	for _, d := range digests {
		raw, err := json.Marshal(d.Finish())
		if err != nil {
			return nil, err
		}
		out[d.Name()] = raw
	}
	return out, nil
}

// sortedKeys is used only by tests that want a deterministic view of a
// metadata map for assertions.
func sortedKeys(obj map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
