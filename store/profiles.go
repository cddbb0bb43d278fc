package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Rangsey10/sport-jerseys-api/models"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileStore reads the identity records the auth provider maintains.
type ProfileStore interface {
	Get(ctx context.Context, id string) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
}

type Profiles struct {
	db *gorm.DB
}

func NewProfiles(db *gorm.DB) *Profiles {
	return &Profiles{db: db}
}

func (s *Profiles) Get(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Profiles) List(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&profiles).Error
	return profiles, err
}
