package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/pantry-chef/backend/internal/model"
)

// PreferenceService stores dietary preferences per session
type PreferenceService struct {
	db *gorm.DB
}

// NewPreferenceService creates a new PreferenceService instance
func NewPreferenceService(db *gorm.DB) *PreferenceService {
	return &PreferenceService{db: db}
}

// SavePreferences creates or replaces the preferences of pref.UserSession
func (s *PreferenceService) SavePreferences(ctx context.Context, pref *model.UserPreference) (*model.UserPreference, error) {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_session"}},
		DoUpdates: clause.AssignmentColumns([]string{"dietary_restrictions", "favorite_cuisines", "allergies", "updated_at"}),
	}).Create(pref).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}

	stored, err := s.GetPreferences(ctx, pref.UserSession)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// GetPreferences returns the preferences of session, or nil when none are stored
func (s *PreferenceService) GetPreferences(ctx context.Context, session string) (*model.UserPreference, error) {
	var pref model.UserPreference
	if err := s.db.WithContext(ctx).First(&pref, "user_session = ?", session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	return &pref, nil
}
