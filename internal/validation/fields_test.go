package validation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
)

func TestFullNameRule(t *testing.T) {
	assert.NotEmpty(t, fullNameRule(""))
	assert.NotEmpty(t, fullNameRule("  "))
	assert.NotEmpty(t, fullNameRule("Al"))
	assert.Empty(t, fullNameRule("Rahul Sharma"))
	assert.Empty(t, fullNameRule("  Ram  "))
}

func TestEmailRule(t *testing.T) {
	assert.NotEmpty(t, emailRule(""))
	assert.NotEmpty(t, emailRule("not-an-email"))
	assert.NotEmpty(t, emailRule("a@b"))
	assert.NotEmpty(t, emailRule("a b@example.com"))
	assert.Empty(t, emailRule("rahul.sharma@example.com"))
}

func TestMobileRule(t *testing.T) {
	assert.Empty(t, mobileRule("9876543210"))
	assert.Empty(t, mobileRule("6000000000"))
	assert.NotEmpty(t, mobileRule("5876543210"), "leading digit 5 is invalid")
	assert.NotEmpty(t, mobileRule("987654321"), "9 digits are invalid")
	assert.NotEmpty(t, mobileRule("98765432100"), "11 digits are invalid")
	assert.NotEmpty(t, mobileRule(""))
}

func TestDOBRuleAgeWindow(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		dob   string
		valid bool
	}{
		{"2009-12-31", true},  // 15 by year arithmetic
		{"2010-01-01", false}, // 14
		{"1994-06-15", true},  // 30
		{"1993-12-31", false}, // 31
		{"", false},
		{"31-12-2005", false},
	}
	for _, tc := range cases {
		msg := dobRuleAt(tc.dob, now)
		if tc.valid {
			assert.Empty(t, msg, "dob %q", tc.dob)
		} else {
			assert.NotEmpty(t, msg, "dob %q", tc.dob)
		}
	}
}

func TestIncomeRule(t *testing.T) {
	assert.Empty(t, incomeRule("450000"))
	assert.Empty(t, incomeRule("0"))
	assert.NotEmpty(t, incomeRule(""))
	assert.NotEmpty(t, incomeRule("-1"))
	assert.NotEmpty(t, incomeRule("lots"))
}

func TestPercentageRuleThreshold(t *testing.T) {
	assert.Empty(t, percentageRule("60"))
	assert.Empty(t, percentageRule("100"))
	assert.Empty(t, percentageRule("85.5"))
	assert.Equal(t, "Minimum 60% required for scholarship", percentageRule("59.99"))
	assert.Equal(t, "Enter valid percentage (0-100) or CGPA", percentageRule("101"))
	assert.Equal(t, "Enter valid percentage (0-100) or CGPA", percentageRule("-1"))
	assert.NotEmpty(t, percentageRule(""))
}

func TestValidateDispatch(t *testing.T) {
	msg, err := Validate(models.StepPersonal, FieldMobile, "9876543210")
	require.NoError(t, err)
	assert.Empty(t, msg)

	msg, err = Validate(models.StepTerms, FieldTermsAccepted, "false")
	require.NoError(t, err)
	assert.NotEmpty(t, msg)

	_, err = Validate(models.StepPersonal, FieldRollNo, "x")
	assert.Error(t, err, "academic field is not dispatchable from the personal step")

	_, err = Validate(models.StepDocuments, FieldFullName, "x")
	assert.Error(t, err, "documents step has no field validators")
}

func TestStepFieldsComplete(t *testing.T) {
	assert.Len(t, StepFields(models.StepTerms), 1)
	assert.Len(t, StepFields(models.StepPersonal), 10)
	assert.Len(t, StepFields(models.StepAcademic), 5)
	assert.Empty(t, StepFields(models.StepDocuments))
	assert.Empty(t, StepFields(models.StepPayment))
}

func TestValidatorsArePure(t *testing.T) {
	// Running the same rule repeatedly yields identical results.
	for i := 0; i < 3; i++ {
		msg, err := Validate(models.StepAcademic, FieldPreviousPercentage, "59")
		require.NoError(t, err)
		assert.Equal(t, "Minimum 60% required for scholarship", msg, fmt.Sprintf("run %d", i))
	}
}
