package validation

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"math"
	"net/http"
	"sort"
	"strings"

	errors "github.com/frahmantamala/expense-tracker/internal"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type absent struct{}

// Absent marks a key missing from the payload, as opposed to an explicit null.
var Absent interface{} = absent{}

// Payload is an untyped JSON object as received from the client.
type Payload map[string]interface{}

func (p Payload) Get(key string) interface{} {
	v, ok := p[key]
	if !ok {
		return Absent
	}
	return v
}

func (p Payload) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DecodePayload reads a JSON object. An empty body decodes to an empty
// payload so that missing fields are reported individually.
func DecodePayload(r io.Reader) (Payload, *errors.AppError) {
	if r == nil {
		return Payload{}, nil
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		if stderrors.Is(err, io.EOF) {
			return Payload{}, nil
		}
		return nil, decodeError(err)
	}
	// exactly one JSON value per body
	var extra interface{}
	if err := dec.Decode(&extra); !stderrors.Is(err, io.EOF) {
		if err == nil {
			return nil, errors.ErrInvalidRequestBody
		}
		return nil, decodeError(err)
	}

	obj, ok := raw.(map[string]interface{})
	if !ok {
		v := NewValidator()
		v.Fail("expected object, received "+typeName(raw), errors.ErrCodeInvalidType)
		return nil, v.Validate()
	}
	return Payload(obj), nil
}

func decodeError(err error) *errors.AppError {
	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) {
		return errors.ErrBodyTooLarge
	}
	return errors.ErrInvalidRequestBody
}

// ValidateID checks a path identifier and returns it in canonical form.
func ValidateID(raw string) (string, *errors.AppError) {
	id, ok := canonicalUUID(raw)
	if !ok {
		return "", errors.ErrInvalidID
	}
	return id, nil
}

func IsUUID(s string) bool {
	_, ok := canonicalUUID(s)
	return ok
}

func canonicalUUID(s string) (string, bool) {
	// uuid.Parse also accepts urn and braced forms; only the bare 36 char form is valid here.
	if len(s) != 36 {
		return "", false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func coerceDecimal(value interface{}) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case nil:
		return decimal.Zero, true
	case json.Number:
		return parseBoundedDecimal(v.String())
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Decimal{}, false
		}
		return withinBounds(decimal.NewFromFloat(v))
	case int:
		return withinBounds(decimal.NewFromInt(int64(v)))
	case int64:
		return withinBounds(decimal.NewFromInt(v))
	case decimal.Decimal:
		return withinBounds(v)
	case bool:
		if v {
			return decimal.NewFromInt(1), true
		}
		return decimal.Zero, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return decimal.Zero, true
		}
		return parseBoundedDecimal(s)
	default:
		return decimal.Decimal{}, false
	}
}

const (
	// MaxIntegerDigits and MaxFractionExponent bound what a numeric(14,2)
	// column can hold, with room for digits the store rounds away.
	MaxIntegerDigits    = 12
	MaxFractionExponent = 32
	maxNumberLength     = 64
)

// parseBoundedDecimal rejects long inputs before parsing and out of range
// values before any arithmetic, so huge exponents never get rescaled.
func parseBoundedDecimal(s string) (decimal.Decimal, bool) {
	if len(s) > maxNumberLength {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return withinBounds(d)
}

func withinBounds(d decimal.Decimal) (decimal.Decimal, bool) {
	if d.IsZero() {
		return decimal.Zero, true
	}
	exp := int64(d.Exponent())
	if exp < -MaxFractionExponent || exp > MaxIntegerDigits {
		return decimal.Decimal{}, false
	}
	digits := int64(len(d.Coefficient().Text(10)))
	if d.Sign() < 0 {
		digits--
	}
	if digits+exp > MaxIntegerDigits {
		return decimal.Decimal{}, false
	}
	return d, true
}

func typeName(value interface{}) string {
	switch value.(type) {
	case absent:
		return "undefined"
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number, float64, int, int64:
		return "number"
	case bool:
		return "boolean"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return "unknown"
	}
}
