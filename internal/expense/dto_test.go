package expense_test

import (
	"encoding/json"
	"strings"

	"github.com/frahmantamala/expense-tracker/internal/core/common/validation"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func payloadOf(raw string) validation.Payload {
	var p map[string]interface{}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	Expect(dec.Decode(&p)).To(Succeed())
	return p
}

var _ = Describe("ParseExpenseInput", func() {
	It("should accept a complete payload", func() {
		input, err := expense.ParseExpenseInput(payloadOf(`{
			"responsible_id": "6F9619FF-8B86-4011-B42D-00C04FC964FF",
			"description": "  Groceries ",
			"amount": "25.90",
			"status": "paid",
			"spent_at": "2024-03-05"
		}`))

		Expect(err).To(BeNil())
		Expect(*input.ResponsibleID).To(Equal("6f9619ff-8b86-4011-b42d-00c04fc964ff"))
		Expect(input.Description).To(Equal("Groceries"))
		Expect(input.Amount.String()).To(Equal("25.9"))
		Expect(input.Status).To(Equal("paid"))
		Expect(input.SpentAt).To(Equal("2024-03-05"))
	})

	DescribeTable("normalizes an unassigned responsible to nil",
		func(raw string) {
			input, err := expense.ParseExpenseInput(payloadOf(raw))

			Expect(err).To(BeNil())
			Expect(input.ResponsibleID).To(BeNil())
		},
		Entry("empty string", `{"responsible_id":"","description":"x","amount":1,"spent_at":"2024-01-01"}`),
		Entry("null", `{"responsible_id":null,"description":"x","amount":1,"spent_at":"2024-01-01"}`),
		Entry("absent", `{"description":"x","amount":1,"spent_at":"2024-01-01"}`),
	)

	It("should default the status to open", func() {
		input, err := expense.ParseExpenseInput(payloadOf(`{"description":"x","amount":1,"spent_at":"2024-01-01"}`))

		Expect(err).To(BeNil())
		Expect(input.Status).To(Equal(expense.StatusOpen))
	})

	DescribeTable("coerces the amount",
		func(raw, want string) {
			input, err := expense.ParseExpenseInput(payloadOf(`{"description":"x","spent_at":"2024-01-01","amount":` + raw + `}`))

			Expect(err).To(BeNil())
			Expect(input.Amount.String()).To(Equal(want))
		},
		Entry("number", `12.5`, "12.5"),
		Entry("numeric string", `"7"`, "7"),
		Entry("null", `null`, "0"),
		Entry("empty string", `""`, "0"),
		Entry("true", `true`, "1"),
	)

	It("should accept a pattern-valid but impossible date", func() {
		input, err := expense.ParseExpenseInput(payloadOf(`{"description":"x","amount":1,"spent_at":"2024-02-30"}`))

		Expect(err).To(BeNil())
		Expect(input.SpentAt).To(Equal("2024-02-30"))
	})

	It("should report every invalid field in order", func() {
		_, err := expense.ParseExpenseInput(payloadOf(`{
			"responsible_id": "nope",
			"description": " ",
			"amount": -1,
			"status": "late",
			"spent_at": "05/03/2024"
		}`))

		Expect(err).NotTo(BeNil())
		Expect(err.StatusCode).To(Equal(400))
		Expect(err.Message).To(Equal(
			"responsible_id: invalid uuid; " +
				"description: must contain at least 1 character(s); " +
				"amount: must be greater than or equal to 0; " +
				"status: must be one of 'open' | 'paid'; " +
				"spent_at: invalid date, expected YYYY-MM-DD"))
	})

	It("should reject a missing amount and a non numeric one", func() {
		_, err := expense.ParseExpenseInput(payloadOf(`{"description":"x","spent_at":"2024-01-01"}`))
		Expect(err.Message).To(Equal("amount: expected number"))

		_, err = expense.ParseExpenseInput(payloadOf(`{"description":"x","spent_at":"2024-01-01","amount":"abc"}`))
		Expect(err.Message).To(Equal("amount: expected number"))
	})
})

var _ = Describe("ParseStatusInput", func() {
	It("should accept a lone status", func() {
		input, err := expense.ParseStatusInput(payloadOf(`{"status":"paid"}`))

		Expect(err).To(BeNil())
		Expect(input.Status).To(Equal("paid"))
	})

	It("should require the status", func() {
		_, err := expense.ParseStatusInput(payloadOf(`{}`))

		Expect(err.Message).To(Equal("status: required"))
	})

	It("should reject extra keys under the placeholder field", func() {
		_, err := expense.ParseStatusInput(payloadOf(`{"status":"open","amount":3}`))

		Expect(err.Message).To(Equal("field: unrecognized key(s) in object: 'amount'"))
	})
})
