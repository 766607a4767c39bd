package scoring

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field keys, in the order violations are reported.
const (
	FieldName              = "name"
	FieldAge               = "age"
	FieldAnnualIncome      = "annualIncome"
	FieldDebtToIncomeRatio = "debtToIncomeRatio"
	FieldLoanAmount        = "loanAmount"
	FieldCreditHistory     = "creditHistory"
)

type fieldRule struct {
	key     string
	order   int
	message string
}

// fieldRules maps struct fields of RawApplicant to their wire key and message.
var fieldRules = map[string]fieldRule{
	"Name":              {key: FieldName, order: 0, message: "Name must be between 1 and 100 characters"},
	"Age":               {key: FieldAge, order: 1, message: "Age must be an integer between 18 and 120"},
	"AnnualIncome":      {key: FieldAnnualIncome, order: 2, message: "Annual income must be a non-negative number"},
	"DebtToIncomeRatio": {key: FieldDebtToIncomeRatio, order: 3, message: "Debt-to-income ratio must be between 0 and 1"},
	"LoanAmount":        {key: FieldLoanAmount, order: 4, message: "Loan amount must be a positive number"},
	"CreditHistory":     {key: FieldCreditHistory, order: 5, message: `Credit history must be either "good" or "bad"`},
}

// Violation describes one failed field constraint.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violated field constraint, in field order.
type ValidationError struct {
	Violations []Violation
}

// NewValidationError builds a validation error for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Violations: []Violation{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Messages(), ", "))
}

// Messages returns the human-readable message of each violation.
func (e *ValidationError) Messages() []string {
	messages := make([]string, 0, len(e.Violations))
	for _, violation := range e.Violations {
		messages = append(messages, violation.Message)
	}
	return messages
}

// MessageFor returns the message reported when the given field is invalid.
func MessageFor(field string) string {
	for _, rule := range fieldRules {
		if rule.key == field {
			return rule.message
		}
	}
	return ""
}

// Validator checks raw applicant records against the field constraints.
type Validator struct {
	validate *validator.Validate
}

// NewValidator registers the applicant validation tags on validate.
func NewValidator(validate *validator.Validate) (*Validator, error) {
	if validate == nil {
		validate = validator.New(validator.WithRequiredStructEnabled())
	}
	if err := validate.RegisterValidation("finite", isFinite); err != nil {
		return nil, fmt.Errorf("register finite validation: %w", err)
	}
	if err := validate.RegisterValidation("whole", isWhole); err != nil {
		return nil, fmt.Errorf("register whole validation: %w", err)
	}
	return &Validator{validate: validate}, nil
}

// Validate normalizes raw and reports all violated constraints at once.
func (v *Validator) Validate(raw RawApplicant) (ApplicantInput, error) {
	raw.Name = strings.TrimSpace(raw.Name)

	if err := v.validate.Struct(raw); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return ApplicantInput{}, err
		}
		return ApplicantInput{}, newValidationError(fieldErrors)
	}

	return ApplicantInput{
		Name:              raw.Name,
		Age:               int(*raw.Age),
		AnnualIncome:      *raw.AnnualIncome,
		DebtToIncomeRatio: *raw.DebtToIncomeRatio,
		LoanAmount:        *raw.LoanAmount,
		CreditHistory:     CreditHistory(raw.CreditHistory),
	}, nil
}

func newValidationError(fieldErrors validator.ValidationErrors) *ValidationError {
	seen := make(map[string]bool, len(fieldErrors))
	rules := make([]fieldRule, 0, len(fieldErrors))
	for _, fieldErr := range fieldErrors {
		rule, ok := fieldRules[fieldErr.StructField()]
		if !ok || seen[rule.key] {
			continue
		}
		seen[rule.key] = true
		rules = append(rules, rule)
	}

	sort.Slice(rules, func(i, j int) bool { return rules[i].order < rules[j].order })

	violations := make([]Violation, 0, len(rules))
	for _, rule := range rules {
		violations = append(violations, Violation{Field: rule.key, Message: rule.message})
	}
	return &ValidationError{Violations: violations}
}

func isFinite(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		value := field.Float()
		return !math.IsNaN(value) && !math.IsInf(value, 0)
	default:
		return true
	}
}

func isWhole(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		value := field.Float()
		return value == math.Trunc(value)
	default:
		return true
	}
}
