package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyArithmeticIsExact(t *testing.T) {
	// 0.1 + 0.2 is the canonical float trap; decimal math must be exact.
	sum := MustMoney("0.1").Add(MustMoney("0.2"))
	assert.True(t, sum.Equal(MustMoney("0.3")))

	balance := MustMoney("1000.11").Sub(MustMoney("100.11"))
	assert.True(t, balance.Equal(MustMoney("900.00")))
	assert.Equal(t, "900.00", balance.String())
}

func TestMoneyComparison(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"less", "10.00", "10.01", -1},
		{"equal", "5", "5.00", 0},
		{"greater", "-1", "-2", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MustMoney(tt.a).Cmp(MustMoney(tt.b)))
		})
	}
}

func TestMoneySignPredicates(t *testing.T) {
	assert.True(t, MustMoney("-0.01").IsNegative())
	assert.False(t, MustMoney("0").IsNegative())
	assert.True(t, MustMoney("0.00").IsZero())
	assert.True(t, MustMoney("0.01").IsPositive())

	neg := MustMoney("12.34").Neg()
	assert.True(t, neg.Equal(MustMoney("-12.34")))
	assert.True(t, neg.Neg().Equal(MustMoney("12.34")))
}

func TestNewMoneyRejectsGarbage(t *testing.T) {
	_, err := NewMoney("not-a-number")
	require.Error(t, err)
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	type payload struct {
		Amount Money `json:"amount"`
	}

	// Both string and numeric JSON forms must parse.
	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"100.11"}`), &p))
	assert.True(t, p.Amount.Equal(MustMoney("100.11")))

	require.NoError(t, json.Unmarshal([]byte(`{"amount":42.5}`), &p))
	assert.True(t, p.Amount.Equal(MustMoney("42.5")))
}
