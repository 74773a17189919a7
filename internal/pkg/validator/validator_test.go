package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"jane@example.com",
		"jane.doe+payroll@example.com.au",
		"j_d@sub.example.org",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"jane",
		"jane@",
		"@example.com",
		"jane@example",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2025-07-14")
	assert.True(t, ok)
	assert.Equal(t, 2025, date.Year())

	_, ok = IsValidDate("14/07/2025")
	assert.False(t, ok)

	_, ok = IsValidDate("2025-13-01")
	assert.False(t, ok)
}

func TestIsValidTime(t *testing.T) {
	valid := []string{"00:00", "09:30", "18:00", "23:59"}
	for _, s := range valid {
		assert.True(t, IsValidTime(s), s)
	}

	invalid := []string{"", "24:00", "9:30", "18:60", "1800", "18:00:00"}
	for _, s := range invalid {
		assert.False(t, IsValidTime(s), s)
	}
}
