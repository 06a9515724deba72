package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Inquiry is one contact-form submission. Records are write-once.
type Inquiry struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	Name      string    `gorm:"size:200;not null" bson:"name" json:"name"`
	Email     string    `gorm:"size:254;not null" bson:"email" json:"email"`
	Message   string    `gorm:"type:text;not null" bson:"message" json:"message"`
	CreatedAt time.Time `gorm:"not null" bson:"createdAt" json:"createdAt"`
}

// TableName keeps SQL backends on the same collection name as the document store.
func (Inquiry) TableName() string {
	return "contacts"
}

// NewInquiry builds a record from validated fields. Name and message are stored trimmed.
func NewInquiry(name, email, message string, now time.Time) *Inquiry {
	return &Inquiry{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Email:     email,
		Message:   strings.TrimSpace(message),
		CreatedAt: now.UTC(),
	}
}
