// Package validation parses raw form submissions into typed inputs.
// Everything here is pure: no store access, deterministic output, safe to
// call any number of times for the same payload.
package validation

import (
	"errors"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Field messages shown inline next to the form controls.
const (
	MsgSelectCustomer = "Please select a customer."
	MsgAmountTooSmall = "Amount must be greater than $0."
	MsgSelectStatus   = "Please select an invoice status."
)

var validate = validator.New()

// InvoiceInput is a validated invoice form. Amount keeps the submitted
// decimal value; conversion to cents happens in the mutation workflow.
type InvoiceInput struct {
	CustomerID string `validate:"required"`
	Amount     decimal.Decimal
	Status     string `validate:"oneof=pending paid"`
}

// RegistrationInput is a validated sign-up form.
type RegistrationInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Name     string `validate:"required,min=2"`
}

// ParseInvoice validates an invoice create/update form. On failure it returns
// nil and a field-indexed error map; the two never coexist.
func ParseInvoice(form url.Values) (*InvoiceInput, map[string][]string) {
	in := &InvoiceInput{
		CustomerID: form.Get("customerId"),
		Status:     form.Get("status"),
	}

	fieldErrors := map[string][]string{}

	// Amount is coerced from the raw string; anything that is not a number
	// strictly greater than zero fails with the same message.
	amount, err := decimal.NewFromString(form.Get("amount"))
	if err != nil || !amount.IsPositive() {
		fieldErrors["amount"] = append(fieldErrors["amount"], MsgAmountTooSmall)
	} else {
		in.Amount = amount
	}

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				switch fe.StructField() {
				case "CustomerID":
					fieldErrors["customerId"] = append(fieldErrors["customerId"], MsgSelectCustomer)
				case "Status":
					fieldErrors["status"] = append(fieldErrors["status"], MsgSelectStatus)
				}
			}
		}
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}
	return in, nil
}

// ParseRegistration validates a sign-up form. Registration surfaces a single
// summary message, so callers only need to know whether it passed.
func ParseRegistration(form url.Values) (*RegistrationInput, bool) {
	in := &RegistrationInput{
		Email:    form.Get("email"),
		Password: form.Get("password"),
		Name:     form.Get("name"),
	}
	if err := validate.Struct(in); err != nil {
		return nil, false
	}
	return in, true
}
