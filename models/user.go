package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Delivery states for User.StatusMessage.
const (
	StatusUnsent = "UNSENT"
	StatusSent   = "SENT"
)

// DefaultMessage is the template applied when a user is created without one.
const DefaultMessage = "Hey, {first_name} {last_name} it's your birthday"

type User struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	FirstName string `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName  string `gorm:"type:varchar(50);not null" json:"last_name"`
	Email     string `gorm:"type:varchar(50);not null;index" json:"email"`

	// BirthDate is date-only (YYYY-MM-DD). The year is stored but only
	// month and day drive birthday matching.
	BirthDate string `gorm:"type:varchar(10);not null" json:"birth_date"`

	// Location is an IANA timezone identifier from the Zones catalog.
	Location string `gorm:"type:varchar(50);not null" json:"location"`

	Message       string     `gorm:"type:text;not null" json:"message"`
	StatusMessage string     `gorm:"type:varchar(20);not null;default:'UNSENT'" json:"status_message"`
	SentTime      *time.Time `json:"sent_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Message == "" {
		u.Message = DefaultMessage
	}
	if u.StatusMessage == "" {
		u.StatusMessage = StatusUnsent
	}
	return
}

// BirthMonthDay splits BirthDate into its month and day components.
func (u *User) BirthMonthDay() (time.Month, int, error) {
	d, err := time.Parse("2006-01-02", u.BirthDate)
	if err != nil {
		return 0, 0, err
	}
	return d.Month(), d.Day(), nil
}
