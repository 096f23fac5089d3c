package internal

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeBusinessRule ErrorType = "BUSINESS_RULE"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeStore        ErrorType = "STORE_ERROR"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidID          ErrorCode = "INVALID_ID"
	ErrCodeInvalidRequestBody ErrorCode = "INVALID_REQUEST_BODY"
	ErrCodeRequired           ErrorCode = "REQUIRED"
	ErrCodeInvalidType        ErrorCode = "INVALID_TYPE"
	ErrCodeTooShort           ErrorCode = "TOO_SHORT"
	ErrCodeInvalidUUID        ErrorCode = "INVALID_UUID"
	ErrCodeInvalidAmount      ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidDate        ErrorCode = "INVALID_DATE"
	ErrCodeInvalidEnum        ErrorCode = "INVALID_ENUM"
	ErrCodeUnrecognizedField  ErrorCode = "UNRECOGNIZED_FIELD"

	ErrCodeExpenseNotFound ErrorCode = "EXPENSE_NOT_FOUND"
	ErrCodeExpenseNotOpen  ErrorCode = "EXPENSE_NOT_OPEN"

	ErrCodeStoreFailure ErrorCode = "STORE_FAILURE"
)

// FieldPlaceholder names a violation that is not attached to a field.
const FieldPlaceholder = "field"

// AppError is the single error type handlers translate into HTTP responses.
// Message is what the client sees in the {"error": ...} body.
type AppError struct {
	Type       ErrorType
	Code       ErrorCode
	Message    string
	Details    *ValidationErrors
	StatusCode int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil && e.Type != ErrorTypeStore {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Message flattens every violation into "field: reason" pairs joined by "; ".
func (v ValidationErrors) Message() string {
	parts := make([]string, 0, len(v.Errors))
	for _, e := range v.Errors {
		field := e.Field
		if field == "" {
			field = FieldPlaceholder
		}
		parts = append(parts, field+": "+e.Message)
	}
	return strings.Join(parts, "; ")
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldErrors(errs []ValidationError) *AppError {
	details := ValidationErrors{Errors: errs}
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    details.Message(),
		Details:    &details,
		StatusCode: http.StatusBadRequest,
	}
}

func NewBusinessRuleError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeBusinessRule,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewPayloadTooLargeError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeInvalidRequestBody,
		Message:    message,
		StatusCode: http.StatusRequestEntityTooLarge,
	}
}

// NewStoreError surfaces the store's own message to the client.
func NewStoreError(cause error) *AppError {
	msg := "store error"
	if cause != nil {
		msg = cause.Error()
	}
	return &AppError{
		Type:       ErrorTypeStore,
		Code:       ErrCodeStoreFailure,
		Message:    msg,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

const (
	MsgInvalidID          = "invalid id"
	MsgInvalidRequestBody = "invalid request body"
	MsgBodyTooLarge       = "request body too large"
	MsgExpenseNotFound    = "expense not found"
	MsgExpenseNotOpen     = "only open expenses may be deleted"
	MsgInternal           = "internal error"
)

var (
	ErrInvalidID          = NewValidationError(MsgInvalidID, ErrCodeInvalidID)
	ErrInvalidRequestBody = NewValidationError(MsgInvalidRequestBody, ErrCodeInvalidRequestBody)
	ErrExpenseNotFound    = NewNotFoundError(MsgExpenseNotFound, ErrCodeExpenseNotFound)
	ErrExpenseNotOpen     = NewBusinessRuleError(MsgExpenseNotOpen, ErrCodeExpenseNotOpen)
	ErrBodyTooLarge       = NewPayloadTooLargeError(MsgBodyTooLarge)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToHTTPResponse resolves any error to a status and body. Errors that are not
// an AppError are treated as store failures.
func ToHTTPResponse(err error) (int, ErrorResponse) {
	if appErr, ok := IsAppError(err); ok {
		return appErr.StatusCode, ErrorResponse{Error: appErr.Message}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: err.Error()}
}
