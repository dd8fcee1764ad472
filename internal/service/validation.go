package service

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the ordered list of field errors for a rejected
// enquiry payload. It is a client error: the caller can correct the fields
// and retry.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// fieldMessages maps json field names to the messages reported to clients.
var fieldMessages = map[string]string{
	"clientName":  "Client name is required",
	"projectName": "Project name is required",
	"phone":       "Phone number must be valid (10 digits)",
	"description": "Description is required",
	"budget":      "Budget must be a number",
	"links":       "Must be valid URLs if provided",
}

var validate = newValidator()

// newValidator builds the validator used for enquiry payloads. Field names in
// reported errors follow the json tags so they match the wire contract.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateEnquiryInput checks in against the enquiry schema and returns a
// *ValidationError listing every violated field, in declaration order.
func validateEnquiryInput(in EnquiryInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fieldErrs := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = "Invalid value"
		}
		fieldErrs = append(fieldErrs, FieldError{Field: fe.Field(), Message: msg})
	}
	return &ValidationError{Errors: fieldErrs}
}
