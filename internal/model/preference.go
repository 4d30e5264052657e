package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserPreference stores the dietary profile of one session
type UserPreference struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserSession         string           `gorm:"size:255;not null;uniqueIndex" json:"user_session"`
	DietaryRestrictions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dietary_restrictions"`
	FavoriteCuisines    JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"favorite_cuisines"`
	Allergies           JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"allergies"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

func (p *UserPreference) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
