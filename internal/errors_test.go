package internal_test

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/frahmantamala/expense-tracker/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Errors", func() {
	DescribeTable("ToHTTPResponse",
		func(err error, status int, message string) {
			gotStatus, body := internal.ToHTTPResponse(err)
			Expect(gotStatus).To(Equal(status))
			Expect(body.Error).To(Equal(message))
		},
		Entry("invalid id", internal.ErrInvalidID, http.StatusBadRequest, "invalid id"),
		Entry("not open", internal.ErrExpenseNotOpen, http.StatusBadRequest, "only open expenses may be deleted"),
		Entry("not found", internal.ErrExpenseNotFound, http.StatusNotFound, "expense not found"),
		Entry("too large", internal.ErrBodyTooLarge, http.StatusRequestEntityTooLarge, "request body too large"),
		Entry("store", internal.NewStoreError(errors.New("connection refused")), http.StatusInternalServerError, "connection refused"),
		Entry("wrapped", fmt.Errorf("delete: %w", internal.ErrExpenseNotFound), http.StatusNotFound, "expense not found"),
		Entry("plain", errors.New("boom"), http.StatusInternalServerError, "boom"),
	)

	It("should join field violations in order", func() {
		err := internal.NewValidationFieldErrors([]internal.ValidationError{
			{Field: "description", Message: "required"},
			{Field: "amount", Message: "expected number"},
			{Message: "unrecognized key(s) in object: 'x'"},
		})

		Expect(err.StatusCode).To(Equal(http.StatusBadRequest))
		Expect(err.Message).To(Equal("description: required; amount: expected number; field: unrecognized key(s) in object: 'x'"))
	})

	It("should keep the store cause reachable", func() {
		cause := errors.New("deadlock detected")
		err := internal.NewStoreError(cause)

		Expect(errors.Is(err, cause)).To(BeTrue())
		Expect(err.Error()).To(Equal("deadlock detected"))
	})
})
