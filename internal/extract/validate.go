package extract

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// fieldObjectSchema constrains the model's reply to a flat object of scalar
// field values. Unknown keys are tolerated; arrays and nested objects are
// rejected before any value coercion happens, so a reply of container values
// surfaces as an error rather than an empty field map.
var fieldObjectSchema = jsonschema.MustCompileString("fieldobject.json", `{
	"type": "object",
	"additionalProperties": {"type": ["string", "number", "boolean", "null"]}
}`)

// ParseFieldObject decodes a completion body into a field-value map. The raw
// object is schema-validated first; the surviving scalar values are then
// normalized, coercing numbers and booleans to strings and empty/"null"
// strings to null, since the model does not reliably honor the requested
// value types.
func ParseFieldObject(raw []byte) (map[string]any, error) {
	const op = "ParseFieldObject"

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrBadResponse, err)
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: %w: expected a JSON object, got %T", op, ErrBadResponse, decoded)
	}

	if err := fieldObjectSchema.Validate(obj); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrBadResponse, err)
	}

	return sanitizeFieldValues(obj), nil
}

// sanitizeFieldValues normalizes the scalar value types the model tends to
// return. The input has already passed schema validation, so every value is
// a string, float64, bool, or nil.
func sanitizeFieldValues(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch t := v.(type) {
		case string:
			s := strings.TrimSpace(t)
			if s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "n/a") {
				out[k] = nil
			} else {
				out[k] = s
			}
		case float64:
			if t == math.Trunc(t) && math.Abs(t) < 1e15 {
				out[k] = strconv.FormatInt(int64(t), 10)
			} else {
				out[k] = strconv.FormatFloat(t, 'f', -1, 64)
			}
		case bool:
			out[k] = strconv.FormatBool(t)
		default:
			out[k] = nil
		}
	}
	return out
}
