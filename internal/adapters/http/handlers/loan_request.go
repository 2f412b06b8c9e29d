package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"edugate/internal/core/domain"
	"edugate/internal/core/services"
)

// loanBody is a loosely typed submission. Older clients send numbers as
// strings and use different field names, so every field is looked up by
// its canonical name first and then by its aliases.
type loanBody map[string]interface{}

func parseLoanBody(raw []byte) (loanBody, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var body loanBody
	if err := dec.Decode(&body); err != nil || body == nil {
		return nil, fmt.Errorf("%w: invalid request body", domain.ErrValidation)
	}
	return body, nil
}

// lookup returns the first non-null, non-empty value among keys
func (b loanBody) lookup(keys ...string) (interface{}, bool) {
	for _, k := range keys {
		v, ok := b[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

func (b loanBody) optString(field string, aliases ...string) (*string, error) {
	v, ok := b.lookup(append([]string{field}, aliases...)...)
	if !ok {
		return nil, nil
	}
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return &s, nil
	case json.Number:
		s := t.String()
		return &s, nil
	}
	return nil, fmt.Errorf("%w: %s must be a string", domain.ErrValidation, field)
}

func (b loanBody) str(field string, aliases ...string) (string, error) {
	s, err := b.optString(field, aliases...)
	if err != nil || s == nil {
		return "", err
	}
	return *s, nil
}

func (b loanBody) optFloat(field string, aliases ...string) (*float64, error) {
	v, ok := b.lookup(append([]string{field}, aliases...)...)
	if !ok {
		return nil, nil
	}

	var text string
	switch t := v.(type) {
	case json.Number:
		text = t.String()
	case string:
		text = strings.ReplaceAll(strings.TrimSpace(t), ",", "")
	default:
		return nil, fmt.Errorf("%w: %s must be a number", domain.ErrValidation, field)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %s must be a number", domain.ErrValidation, field)
	}
	return &f, nil
}

func (b loanBody) optInt(field string, aliases ...string) (*int, error) {
	f, err := b.optFloat(field, aliases...)
	if err != nil || f == nil {
		return nil, err
	}
	if *f != math.Trunc(*f) || math.Abs(*f) > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %s must be a whole number", domain.ErrValidation, field)
	}
	n := int(*f)
	return &n, nil
}

func (b loanBody) boolean(field string, aliases ...string) (bool, error) {
	v, ok := b.lookup(append([]string{field}, aliases...)...)
	if !ok {
		return false, nil
	}
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes":
			return true, nil
		case "false", "no":
			return false, nil
		}
	}
	return false, fmt.Errorf("%w: %s must be true/false or yes/no", domain.ErrValidation, field)
}

// toSubmitInput resolves canonical fields and legacy aliases
func (b loanBody) toSubmitInput() (*services.SubmitLoanInput, error) {
	var (
		in  services.SubmitLoanInput
		err error
	)

	if in.ApplicantName, err = b.str("applicant_name", "student_name", "name"); err != nil {
		return nil, err
	}
	if in.Email, err = b.str("email"); err != nil {
		return nil, err
	}
	if in.Phone, err = b.optString("phone"); err != nil {
		return nil, err
	}
	amount, err := b.optFloat("amount", "loan_amount", "loanAmount")
	if err != nil {
		return nil, err
	}
	if amount != nil {
		in.Amount = *amount
	}
	if in.Duration, err = b.optInt("duration", "loan_duration", "loanDuration"); err != nil {
		return nil, err
	}
	if in.Purpose, err = b.optString("purpose", "employment_type"); err != nil {
		return nil, err
	}
	if in.FamilyIncome, err = b.optFloat("family_income", "income", "familyannualincome"); err != nil {
		return nil, err
	}
	if in.CreditScore, err = b.optInt("credit_score", "creditScore"); err != nil {
		return nil, err
	}
	if in.PreviousDefaults, err = b.boolean("previous_defaults", "previousDefaults"); err != nil {
		return nil, err
	}
	if in.Aadhar, err = b.optString("aadhar"); err != nil {
		return nil, err
	}
	if in.DOB, err = b.optString("dob"); err != nil {
		return nil, err
	}

	return &in, nil
}
