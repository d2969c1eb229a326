// Package validation holds the per-field validators for the application wizard.
// Validators are pure: they map a raw value to an error message (empty when the
// value is acceptable) and never touch draft or error state themselves.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
)

// Field identifies a wizard form field.
type Field string

const (
	FieldTermsAccepted      Field = "termsAccepted"
	FieldFullName           Field = "fullName"
	FieldDOB                Field = "dob"
	FieldGender             Field = "gender"
	FieldCategory           Field = "category"
	FieldFatherName         Field = "fatherName"
	FieldMotherName         Field = "motherName"
	FieldIncome             Field = "income"
	FieldEmail              Field = "email"
	FieldMobile             Field = "mobile"
	FieldAddress            Field = "address"
	FieldClassName          Field = "className"
	FieldSchoolName         Field = "schoolName"
	FieldBoard              Field = "board"
	FieldRollNo             Field = "rollNo"
	FieldPreviousPercentage Field = "previousPercentage"
)

// Rule validates a single raw value, returning an error message or "".
type Rule func(value string) string

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
)

const (
	minAge = 15
	maxAge = 30

	// MinPassingPercentage is the eligibility threshold for the previous exam.
	MinPassingPercentage = 60
)

func required(message string) Rule {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return message
		}
		return ""
	}
}

func fullNameRule(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "Full name is required"
	}
	if len(trimmed) < 3 {
		return "Name must be at least 3 characters"
	}
	return ""
}

func emailRule(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Email is required"
	}
	if !emailPattern.MatchString(value) {
		return "Invalid email format"
	}
	return ""
}

func mobileRule(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Mobile number is required"
	}
	if !mobilePattern.MatchString(value) {
		return "Invalid Indian mobile number"
	}
	return ""
}

func dobRule(value string) string {
	return dobRuleAt(value, time.Now())
}

// dobRuleAt computes age as a plain calendar-year difference, deliberately not
// adjusted for month and day.
func dobRuleAt(value string, now time.Time) string {
	if strings.TrimSpace(value) == "" {
		return "Date of birth is required"
	}
	birth, err := time.Parse("2006-01-02", value)
	if err != nil {
		return "Date of birth is required"
	}
	age := now.Year() - birth.Year()
	if age < minAge || age > maxAge {
		return fmt.Sprintf("Age must be between %d and %d years", minAge, maxAge)
	}
	return ""
}

func incomeRule(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Annual income is required"
	}
	amount, err := strconv.ParseFloat(value, 64)
	if err != nil || amount < 0 {
		return "Invalid income amount"
	}
	return ""
}

func schoolNameRule(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "School/College name is required"
	}
	if len(trimmed) < 3 {
		return "Enter valid institution name"
	}
	return ""
}

func percentageRule(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Percentage/CGPA is required"
	}
	pct, err := strconv.ParseFloat(value, 64)
	if err != nil || pct < 0 || pct > 100 {
		return "Enter valid percentage (0-100) or CGPA"
	}
	if pct < MinPassingPercentage {
		return "Minimum 60% required for scholarship"
	}
	return ""
}

func termsRule(value string) string {
	if value != "true" {
		return "You must accept the terms and conditions to proceed"
	}
	return ""
}

var termsFields = map[Field]Rule{
	FieldTermsAccepted: termsRule,
}

var personalFields = map[Field]Rule{
	FieldFullName:   fullNameRule,
	FieldDOB:        dobRule,
	FieldGender:     required("This field is required"),
	FieldCategory:   required("This field is required"),
	FieldFatherName: required("This field is required"),
	FieldMotherName: required("This field is required"),
	FieldIncome:     incomeRule,
	FieldEmail:      emailRule,
	FieldMobile:     mobileRule,
	FieldAddress:    required("This field is required"),
}

var academicFields = map[Field]Rule{
	FieldClassName:          required("Class/Course is required"),
	FieldSchoolName:         schoolNameRule,
	FieldBoard:              required("Board/University is required"),
	FieldRollNo:             required("Roll number is required"),
	FieldPreviousPercentage: percentageRule,
}

// stepFields is the static dispatch table from step to its field rules. The
// documents and payment steps carry no per-field validators; their completion
// is decided by the step gate alone.
var stepFields = map[models.Step]map[Field]Rule{
	models.StepTerms:    termsFields,
	models.StepPersonal: personalFields,
	models.StepAcademic: academicFields,
}

func init() {
	// Every field must be reachable through exactly one step's table.
	seen := make(map[Field]models.Step)
	for step, fields := range stepFields {
		for field, rule := range fields {
			if rule == nil {
				panic(fmt.Sprintf("validation: nil rule for field %q on step %d", field, step))
			}
			if prev, ok := seen[field]; ok {
				panic(fmt.Sprintf("validation: field %q mapped to both step %d and %d", field, prev, step))
			}
			seen[field] = step
		}
	}
}

// Validate runs the rule registered for (step, field) against the raw value and
// returns the error message, or "" when valid. Unknown step/field combinations
// return an error so callers cannot silently probe nonexistent fields.
func Validate(step models.Step, field Field, value string) (string, error) {
	fields, ok := stepFields[step]
	if !ok {
		return "", fmt.Errorf("step %d has no field validators", step)
	}
	rule, ok := fields[field]
	if !ok {
		return "", fmt.Errorf("field %q is not part of step %d", field, step)
	}
	return rule(value), nil
}

// StepFields lists the fields validated on the given step.
func StepFields(step models.Step) []Field {
	fields := stepFields[step]
	out := make([]Field, 0, len(fields))
	for field := range fields {
		out = append(out, field)
	}
	return out
}
