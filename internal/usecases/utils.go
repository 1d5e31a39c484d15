package usecases

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
)

// toDisplayString renders a template input value the way it should read in
// contract prose.
func toDisplayString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; keep integers unsuffixed.
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// generationCacheKey fingerprints (contract type, inputs). Go's json.Marshal
// emits map keys in sorted order, so equal inputs always hash equally.
func generationCacheKey(contractType string, inputs map[string]interface{}) string {
	encoded, err := json.Marshal(inputs)
	if err != nil {
		encoded = []byte("{}")
	}
	sum := sha256.Sum256(append([]byte(contractType+":"), encoded...))
	return hex.EncodeToString(sum[:])
}
