package scoring

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator(validator.New(validator.WithRequiredStructEnabled()))
	require.NoError(t, err)
	return v
}

func ptr(v float64) *float64 {
	return &v
}

func validRaw() RawApplicant {
	return RawApplicant{
		Name:              "John Doe",
		Age:               ptr(35),
		AnnualIncome:      ptr(60000),
		DebtToIncomeRatio: ptr(0.3),
		LoanAmount:        ptr(25000),
		CreditHistory:     "good",
	}
}

func violationFields(t *testing.T, err error) []string {
	t.Helper()
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr), "expected *ValidationError, got %v", err)
	fields := make([]string, 0, len(validationErr.Violations))
	for _, violation := range validationErr.Violations {
		fields = append(fields, violation.Field)
	}
	return fields
}

func TestValidateAcceptsAndNormalizes(t *testing.T) {
	v := newTestValidator(t)
	raw := validRaw()
	raw.Name = "  John Doe  "

	applicant, err := v.Validate(raw)
	require.NoError(t, err)
	require.Equal(t, ApplicantInput{
		Name:              "John Doe",
		Age:               35,
		AnnualIncome:      60000,
		DebtToIncomeRatio: 0.3,
		LoanAmount:        25000,
		CreditHistory:     CreditHistoryGood,
	}, applicant)
}

func TestValidateReportsEveryViolatedField(t *testing.T) {
	v := newTestValidator(t)
	raw := RawApplicant{
		Name:              "John Doe",
		Age:               ptr(15),
		AnnualIncome:      ptr(-1000),
		DebtToIncomeRatio: ptr(2.0),
		LoanAmount:        ptr(-5000),
		CreditHistory:     "invalid",
	}

	_, err := v.Validate(raw)
	require.Error(t, err)
	require.Equal(t, []string{
		FieldAge,
		FieldAnnualIncome,
		FieldDebtToIncomeRatio,
		FieldLoanAmount,
		FieldCreditHistory,
	}, violationFields(t, err))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Messages(), 5)
	require.Equal(t, "Age must be an integer between 18 and 120", validationErr.Messages()[0])
	require.True(t, strings.HasPrefix(err.Error(), "validation failed: "))
}

func TestValidateMissingFields(t *testing.T) {
	v := newTestValidator(t)

	_, err := v.Validate(RawApplicant{})
	require.Equal(t, []string{
		FieldName,
		FieldAge,
		FieldAnnualIncome,
		FieldDebtToIncomeRatio,
		FieldLoanAmount,
		FieldCreditHistory,
	}, violationFields(t, err))
}

func TestValidateFieldConstraints(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RawApplicant)
		field  string
	}{
		{name: "blank name", mutate: func(r *RawApplicant) { r.Name = "   " }, field: FieldName},
		{name: "long name", mutate: func(r *RawApplicant) { r.Name = strings.Repeat("a", 101) }, field: FieldName},
		{name: "fractional age", mutate: func(r *RawApplicant) { r.Age = ptr(35.5) }, field: FieldAge},
		{name: "age above range", mutate: func(r *RawApplicant) { r.Age = ptr(121) }, field: FieldAge},
		{name: "nan income", mutate: func(r *RawApplicant) { r.AnnualIncome = ptr(math.NaN()) }, field: FieldAnnualIncome},
		{name: "infinite income", mutate: func(r *RawApplicant) { r.AnnualIncome = ptr(math.Inf(1)) }, field: FieldAnnualIncome},
		{name: "negative ratio", mutate: func(r *RawApplicant) { r.DebtToIncomeRatio = ptr(-0.1) }, field: FieldDebtToIncomeRatio},
		{name: "zero loan", mutate: func(r *RawApplicant) { r.LoanAmount = ptr(0) }, field: FieldLoanAmount},
		{name: "capitalised history", mutate: func(r *RawApplicant) { r.CreditHistory = "Good" }, field: FieldCreditHistory},
	}

	v := newTestValidator(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := validRaw()
			tc.mutate(&raw)
			_, err := v.Validate(raw)
			require.Equal(t, []string{tc.field}, violationFields(t, err))
		})
	}
}

func TestValidateBoundaryValuesPass(t *testing.T) {
	v := newTestValidator(t)

	raw := validRaw()
	raw.Name = strings.Repeat("é", 100)
	raw.Age = ptr(18)
	raw.AnnualIncome = ptr(0)
	raw.DebtToIncomeRatio = ptr(1)
	raw.LoanAmount = ptr(0.01)
	_, err := v.Validate(raw)
	require.NoError(t, err)

	raw.Age = ptr(120)
	raw.DebtToIncomeRatio = ptr(0)
	raw.CreditHistory = "bad"
	_, err = v.Validate(raw)
	require.NoError(t, err)
}

func TestMessageFor(t *testing.T) {
	require.Equal(t, "Name must be between 1 and 100 characters", MessageFor(FieldName))
	require.Empty(t, MessageFor("unknown"))
}
