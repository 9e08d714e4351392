package services

import (
	"time"

	"birthday-reminder/models"
	"birthday-reminder/utils"
)

// BirthdayMatcher decides whether a user's birthday send is due at a given
// instant. The trigger is a fixed clock hour in the user's own timezone;
// matching is an exact-minute equality on times truncated to the minute.
type BirthdayMatcher struct {
	TriggerHour int
}

// Matches reports whether now falls on the user's birthday at the trigger
// minute, evaluated in the user's timezone. An unknown timezone falls back
// to the server's local zone.
func (m BirthdayMatcher) Matches(user *models.User, now time.Time) bool {
	birthMonth, birthDay, err := user.BirthMonthDay()
	if err != nil {
		return false
	}

	loc, err := time.LoadLocation(user.Location)
	if err != nil {
		loc = time.Local
	}

	current := utils.TruncateToMinute(now.In(loc))
	target := time.Date(current.Year(), birthMonth, birthDay, m.TriggerHour, 0, 0, 0, loc)

	// time.Date normalizes Feb 29 to Mar 1 in non-leap years; treat that
	// as no birthday this year rather than firing a day late.
	if target.Month() != birthMonth || target.Day() != birthDay {
		return false
	}

	return current.Equal(target)
}
