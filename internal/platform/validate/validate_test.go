// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bizportal/internal/platform/apperr"
	"github.com/taibuivan/bizportal/internal/platform/validate"
)

/*
TestValidator_Rules runs each rule against one passing and one failing value.
*/
func TestValidator_Rules(t *testing.T) {
	tests := []struct {
		name string
		rule func(v *validate.Validator) *validate.Validator
		fail bool
	}{
		{"required_ok", func(v *validate.Validator) *validate.Validator { return v.Required("name", "North Depot") }, false},
		{"required_blank", func(v *validate.Validator) *validate.Validator { return v.Required("name", "   ") }, true},
		{"maxlen_runes", func(v *validate.Validator) *validate.Validator { return v.MaxLen("name", "ĐàNẵng", 6) }, false},
		{"maxlen_over", func(v *validate.Validator) *validate.Validator { return v.MaxLen("name", "warehouse", 4) }, true},
		{"range_edge", func(v *validate.Validator) *validate.Validator { return v.Range("days", 366, 1, 366) }, false},
		{"range_out", func(v *validate.Validator) *validate.Validator { return v.Range("days", 0, 1, 366) }, true},
		{"nonnegative_zero", func(v *validate.Validator) *validate.Validator { return v.NonNegative("price_cents", 0) }, false},
		{"nonnegative_below", func(v *validate.Validator) *validate.Validator { return v.NonNegative("price_cents", -1) }, true},
		{"email_ok", func(v *validate.Validator) *validate.Validator { return v.Email("email", "ops@bizportal.app") }, false},
		{"email_bad", func(v *validate.Validator) *validate.Validator { return v.Email("email", "ops@") }, true},
		{"oneof_ok", func(v *validate.Validator) *validate.Validator { return v.OneOf("status", "open", "open", "closed") }, false},
		{"oneof_bad", func(v *validate.Validator) *validate.Validator { return v.OneOf("status", "lost", "open", "closed") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.rule(&validate.Validator{})
			assert.Equal(t, tt.fail, v.HasErrors())
		})
	}
}

/*
TestValidator_AccountID checks the role-prefixed account id format.
*/
func TestValidator_AccountID(t *testing.T) {
	for value, valid := range map[string]bool{
		"MGR-001": true,
		"CUS-7K2": true,
		"mgr-001": false,
		"MGR001":  false,
		"M-1":     false,
		"":        false,
	} {
		v := (&validate.Validator{}).AccountID("user_id", value)
		assert.Equal(t, !valid, v.HasErrors(), value)
	}
}

/*
TestValidator_Accumulates verifies every failure is reported in one error.
*/
func TestValidator_Accumulates(t *testing.T) {
	err := (&validate.Validator{}).
		Required("subject", "").
		MaxLen("subject", "", 10).
		Email("email", "not-an-email").
		Range("quantity", 0, 1, 10).
		Err()

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeValidation, ae.Code)
	require.Len(t, ae.Fields, 3)
	assert.Equal(t, []string{"subject", "email", "quantity"}, []string{ae.Fields[0].Field, ae.Fields[1].Field, ae.Fields[2].Field})

	assert.NoError(t, (&validate.Validator{}).Required("subject", "Late delivery").Err())
}
