package refdata

import (
	"context"

	domainRefdata "github.com/saharabot/sahara/domains/refdata"
	"gorm.io/gorm"
)

// GormStore implements the reference-data gateway on top of gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// AutoMigrate creates or updates the reference tables.
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(
		&domainRefdata.Service{},
		&domainRefdata.Contact{},
		&domainRefdata.RegistrationStep{},
		&domainRefdata.RequiredDocument{},
	)
}

func (s *GormStore) ListServicesByCategory(ctx context.Context, category domainRefdata.ServiceCategory) ([]domainRefdata.Service, error) {
	services := make([]domainRefdata.Service, 0)
	err := s.db.WithContext(ctx).
		Where("category = ?", category).
		Order("organization ASC").
		Find(&services).Error
	return services, err
}

func (s *GormStore) ListContacts(ctx context.Context) ([]domainRefdata.Contact, error) {
	contacts := make([]domainRefdata.Contact, 0)
	err := s.db.WithContext(ctx).
		Order("entity ASC").
		Find(&contacts).Error
	return contacts, err
}

func (s *GormStore) ListContactsByType(ctx context.Context, contactType domainRefdata.ContactType) ([]domainRefdata.Contact, error) {
	contacts := make([]domainRefdata.Contact, 0)
	err := s.db.WithContext(ctx).
		Where("type = ?", contactType).
		Order("entity ASC").
		Find(&contacts).Error
	return contacts, err
}

func (s *GormStore) ListRegistrationSteps(ctx context.Context) ([]domainRefdata.RegistrationStep, error) {
	steps := make([]domainRefdata.RegistrationStep, 0)
	err := s.db.WithContext(ctx).
		Order("step_number ASC").
		Find(&steps).Error
	return steps, err
}

func (s *GormStore) ListRequiredDocuments(ctx context.Context) ([]domainRefdata.RequiredDocument, error) {
	documents := make([]domainRefdata.RequiredDocument, 0)
	err := s.db.WithContext(ctx).
		Order("is_essential DESC, name ASC").
		Find(&documents).Error
	return documents, err
}
