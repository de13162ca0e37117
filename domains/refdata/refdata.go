package refdata

import (
	"context"
	"time"
)

type ServiceCategory string

const (
	CategoryFood    ServiceCategory = "food"
	CategoryShelter ServiceCategory = "shelter"
	CategoryHealth  ServiceCategory = "health"
)

type ContactType string

const (
	ContactEmergency ContactType = "emergency"
	ContactHospital  ContactType = "hospital"
	ContactGeneral   ContactType = "general"
)

// Service is an assistance service offered by a partner organization.
type Service struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Category     ServiceCategory `gorm:"index;not null" json:"category"`
	Organization string          `gorm:"not null" json:"organization"`
	Description  string          `json:"description"`
	Location     string          `json:"location"`
	Phone        string          `json:"phone"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Contact is a referral contact (hotlines, hospitals, agencies).
type Contact struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Type        ContactType `gorm:"index;not null" json:"type"`
	Entity      string      `gorm:"not null" json:"entity"`
	Description string      `json:"description"`
	Phone       string      `json:"phone"`
	Email       string      `json:"email"`
	IsUrgent    bool        `gorm:"not null;default:false" json:"is_urgent"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// RegistrationStep is one step of the official registration procedure.
type RegistrationStep struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StepNumber  int       `gorm:"index;not null" json:"step_number"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RequiredDocument is a document requested during registration. Essential
// documents block registration when missing; the rest are nice to have.
type RequiredDocument struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	IsEssential bool      `gorm:"not null;default:false" json:"is_essential"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IRefDataStore is the read-only reference-data gateway the response
// composer pulls from. Every method returns an ordered slice, possibly
// empty, never nil.
type IRefDataStore interface {
	ListServicesByCategory(ctx context.Context, category ServiceCategory) ([]Service, error)
	ListContacts(ctx context.Context) ([]Contact, error)
	ListContactsByType(ctx context.Context, contactType ContactType) ([]Contact, error)
	ListRegistrationSteps(ctx context.Context) ([]RegistrationStep, error)
	ListRequiredDocuments(ctx context.Context) ([]RequiredDocument, error)
}
