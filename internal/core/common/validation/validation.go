package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	errors "github.com/frahmantamala/expense-tracker/internal"
	"github.com/shopspring/decimal"
)

// DatePattern is the only check applied to calendar dates: 2024-02-30 passes.
var DatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type ValidationBuilder struct {
	fields []*FieldValidator
	errors []errors.ValidationError
}

// FieldValidator applies its rules as they are chained. The first failing rule
// records a violation and short-circuits the rest of the chain, so each field
// reports at most one reason.
type FieldValidator struct {
	FieldName string
	Value     interface{}

	builder *ValidationBuilder
	failed  bool
	skipped bool
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]*FieldValidator, 0),
		errors: make([]errors.ValidationError, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := &FieldValidator{
		FieldName: name,
		Value:     value,
		builder:   v,
	}
	v.fields = append(v.fields, fv)
	return fv
}

// Fail records a violation that is not attached to a field.
func (v *ValidationBuilder) Fail(message string, code errors.ErrorCode) {
	v.errors = append(v.errors, errors.ValidationError{Message: message, Code: string(code)})
}

// Strict rejects keys of the payload outside allowed.
func (v *ValidationBuilder) Strict(payload Payload, allowed ...string) {
	var unknown []string
	for _, key := range payload.Keys() {
		known := false
		for _, a := range allowed {
			if key == a {
				known = true
				break
			}
		}
		if !known {
			unknown = append(unknown, "'"+key+"'")
		}
	}
	if len(unknown) > 0 {
		v.Fail("unrecognized key(s) in object: "+strings.Join(unknown, ", "), errors.ErrCodeUnrecognizedField)
	}
}

func (v *ValidationBuilder) Validate() *errors.AppError {
	if len(v.errors) > 0 {
		return errors.NewValidationFieldErrors(v.errors)
	}
	return nil
}

func (fv *FieldValidator) active() bool {
	return !fv.failed && !fv.skipped
}

func (fv *FieldValidator) fail(message string, code errors.ErrorCode) *FieldValidator {
	fv.failed = true
	fv.builder.errors = append(fv.builder.errors, errors.ValidationError{
		Field:   fv.FieldName,
		Message: message,
		Code:    string(code),
	})
	return fv
}

func (fv *FieldValidator) Required() *FieldValidator {
	if fv.active() && (fv.Value == Absent || fv.Value == nil) {
		return fv.fail("required", errors.ErrCodeRequired)
	}
	return fv
}

// Optional stops the chain when the field is absent or null.
func (fv *FieldValidator) Optional() *FieldValidator {
	if fv.active() && (fv.Value == Absent || fv.Value == nil) {
		fv.Value = nil
		fv.skipped = true
	}
	return fv
}

// EmptyAsAbsent stops the chain for an empty string.
func (fv *FieldValidator) EmptyAsAbsent() *FieldValidator {
	if fv.active() {
		if s, ok := fv.Value.(string); ok && s == "" {
			fv.Value = nil
			fv.skipped = true
		}
	}
	return fv
}

func (fv *FieldValidator) Default(value interface{}) *FieldValidator {
	if fv.skipped && fv.Value == nil {
		fv.Value = value
	}
	return fv
}

func (fv *FieldValidator) String() *FieldValidator {
	if !fv.active() {
		return fv
	}
	if _, ok := fv.Value.(string); !ok {
		return fv.fail("expected string, received "+typeName(fv.Value), errors.ErrCodeInvalidType)
	}
	return fv
}

func (fv *FieldValidator) Trim() *FieldValidator {
	if fv.active() {
		if s, ok := fv.Value.(string); ok {
			fv.Value = strings.TrimSpace(s)
		}
	}
	return fv
}

func (fv *FieldValidator) MinLength(min int) *FieldValidator {
	if fv.active() {
		if s, ok := fv.Value.(string); ok && utf8.RuneCountInString(s) < min {
			return fv.fail(fmt.Sprintf("must contain at least %d character(s)", min), errors.ErrCodeTooShort)
		}
	}
	return fv
}

func (fv *FieldValidator) UUID() *FieldValidator {
	if fv.active() {
		if s, ok := fv.Value.(string); ok {
			id, valid := canonicalUUID(s)
			if !valid {
				return fv.fail("invalid uuid", errors.ErrCodeInvalidUUID)
			}
			fv.Value = id
		}
	}
	return fv
}

func (fv *FieldValidator) Pattern(re *regexp.Regexp, message string, code errors.ErrorCode) *FieldValidator {
	if fv.active() {
		if s, ok := fv.Value.(string); ok && !re.MatchString(s) {
			return fv.fail(message, code)
		}
	}
	return fv
}

func (fv *FieldValidator) OneOf(options ...string) *FieldValidator {
	if !fv.active() {
		return fv
	}
	s, ok := fv.Value.(string)
	if ok {
		for _, o := range options {
			if s == o {
				return fv
			}
		}
	}
	quoted := make([]string, len(options))
	for i, o := range options {
		quoted[i] = "'" + o + "'"
	}
	return fv.fail("must be one of "+strings.Join(quoted, " | "), errors.ErrCodeInvalidEnum)
}

// Number coerces the value to a decimal the way a loose JSON client expects:
// numbers and numeric strings parse, null and "" become zero, booleans become
// 1 or 0. A missing field or anything else is not a number.
func (fv *FieldValidator) Number() *FieldValidator {
	if !fv.active() {
		return fv
	}
	d, ok := coerceDecimal(fv.Value)
	if !ok {
		return fv.fail("expected number", errors.ErrCodeInvalidAmount)
	}
	fv.Value = d
	return fv
}

func (fv *FieldValidator) MinDecimal(min decimal.Decimal) *FieldValidator {
	if fv.active() {
		if d, ok := fv.Value.(decimal.Decimal); ok && d.LessThan(min) {
			return fv.fail("must be greater than or equal to "+min.String(), errors.ErrCodeInvalidAmount)
		}
	}
	return fv
}

func (fv *FieldValidator) Custom(validator func(interface{}) *errors.ValidationError) *FieldValidator {
	if fv.active() {
		if ve := validator(fv.Value); ve != nil {
			return fv.fail(ve.Message, errors.ErrorCode(ve.Code))
		}
	}
	return fv
}

// StringValue returns the validated string, or "" when the field was skipped.
func (fv *FieldValidator) StringValue() string {
	s, _ := fv.Value.(string)
	return s
}

// StringPtr returns nil when the field was skipped.
func (fv *FieldValidator) StringPtr() *string {
	s, ok := fv.Value.(string)
	if !ok {
		return nil
	}
	return &s
}

func (fv *FieldValidator) Decimal() decimal.Decimal {
	d, _ := fv.Value.(decimal.Decimal)
	return d
}
