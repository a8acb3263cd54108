package validation

import (
	"net/mail"
	"strings"

	"github.com/zhanel/coursehub/internal/app/models"
)

// ValidEmail reports whether the address parses as an RFC 5322 address.
func ValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}

// ValidGrade reports whether a grade falls in the assessment 0-5 scale.
// Zero is accepted: it is the ungraded sentinel, not an earned score.
func ValidGrade(grade float64) bool {
	return grade >= models.GradeMin && grade <= models.GradeMax
}

// ValidRating reports whether a feedback rating falls in the checked 1-5 range.
func ValidRating(rating int) bool {
	return rating >= models.RatingMin && rating <= models.RatingMax
}

// ValidRole reports whether the role is one of the supported account roles.
func ValidRole(role string) bool {
	switch models.RoleType(role) {
	case models.RoleStudent, models.RoleAdmin:
		return true
	}
	return false
}
