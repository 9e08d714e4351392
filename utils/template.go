package utils

import (
	"strings"

	"birthday-reminder/models"
)

// RenderTemplate substitutes user fields into a message template. Each
// placeholder is replaced at its first occurrence only; unrecognized
// placeholders stay verbatim.
func RenderTemplate(template string, user *models.User) string {
	replacements := [][2]string{
		{"{first_name}", user.FirstName},
		{"{last_name}", user.LastName},
		{"{email}", user.Email},
		{"{birth_date}", user.BirthDate},
		{"{location}", user.Location},
	}

	rendered := template
	for _, r := range replacements {
		rendered = strings.Replace(rendered, r[0], r[1], 1)
	}
	return rendered
}
