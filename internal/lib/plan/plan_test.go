package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDays(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{1, Daily},
		{7, Weekly},
		{30, Monthly},
		{0, ""},
		{14, ""},
		{365, ""},
		{-7, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FromDays(tt.days), "days=%d", tt.days)
	}
}

func TestDurationDays(t *testing.T) {
	days, ok := DurationDays(Weekly)
	require.True(t, ok)
	assert.Equal(t, 7, days)

	_, ok = DurationDays(Annual)
	assert.False(t, ok, "annual plan has no duration entry")
	assert.False(t, Known(Annual))
	assert.True(t, Known(Monthly))
}

func TestExpiresAt(t *testing.T) {
	activated := time.Date(2025, 5, 1, 10, 30, 0, 0, Location())

	exp, ok := ExpiresAt(activated, Daily)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 5, 2, 10, 30, 0, 0, Location()), exp)

	exp, ok = ExpiresAt(activated, Monthly)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 5, 31, 10, 30, 0, 0, Location()), exp)

	_, ok = ExpiresAt(activated, Annual)
	assert.False(t, ok)
}

func TestExpiresAt_NormalizesForeignZone(t *testing.T) {
	// 13:30 UTC == 10:30 по Сан-Паулу (UTC-3)
	activatedUTC := time.Date(2025, 5, 1, 13, 30, 0, 0, time.UTC)

	exp, ok := ExpiresAt(activatedUTC, Daily)
	require.True(t, ok)
	assert.Equal(t, Location(), exp.Location())
	assert.Equal(t, 10, exp.Hour())
	assert.True(t, exp.Equal(activatedUTC.Add(24*time.Hour)))
}

func TestNow_IsInServiceZone(t *testing.T) {
	now := Now()
	assert.Equal(t, TimezoneName, now.Location().String())
	assert.Equal(t, 0, now.Nanosecond())
}

func TestSelectFromProduct(t *testing.T) {
	tests := []struct {
		product string
		want    string
	}{
		{"Plano Diário", Daily},
		{"Plano Diario", Daily},
		{"Bot Semanal", Weekly},
		{"Assinatura MENSAL", Monthly},
		{"Monthly access", Monthly},
		{"Plano Anual", Annual},
		{"Annual plan", Annual},
		{"Lifetime", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SelectFromProduct(tt.product), "product=%q", tt.product)
	}
}
