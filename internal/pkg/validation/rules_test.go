package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	valid := []string{"student@example.com", "a.b+c@sub.example.org", " padded@example.com "}
	for _, email := range valid {
		assert.True(t, ValidEmail(email), "expected %q to be valid", email)
	}

	invalid := []string{"", "   ", "not-an-email", "missing@domain@double.com"}
	for _, email := range invalid {
		assert.False(t, ValidEmail(email), "expected %q to be invalid", email)
	}
}

func TestValidGrade(t *testing.T) {
	// Zero is the ungraded sentinel and must be accepted.
	for _, grade := range []float64{0, 0.5, 2.5, 5} {
		assert.True(t, ValidGrade(grade), "grade %.2f", grade)
	}
	for _, grade := range []float64{-0.1, 5.1, 100} {
		assert.False(t, ValidGrade(grade), "grade %.2f", grade)
	}
}

func TestValidRating(t *testing.T) {
	for _, rating := range []int{1, 3, 5} {
		assert.True(t, ValidRating(rating), "rating %d", rating)
	}
	for _, rating := range []int{0, -1, 6} {
		assert.False(t, ValidRating(rating), "rating %d", rating)
	}
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole("student"))
	assert.True(t, ValidRole("admin"))
	assert.False(t, ValidRole("teacher"))
	assert.False(t, ValidRole(""))
}
