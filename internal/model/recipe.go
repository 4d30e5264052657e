package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// Recipe difficulty levels
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ValidDifficulty reports whether d is one of the known difficulty levels
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is a stored recipe
type Recipe struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string           `gorm:"size:255;not null" json:"name"`
	Ingredients  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Cuisine      string           `gorm:"size:100;index" json:"cuisine"`
	Difficulty   string           `gorm:"size:20;not null;default:'medium'" json:"difficulty"`
	CookingTime  int              `gorm:"not null" json:"cooking_time"`
	ServingSize  int              `gorm:"not null" json:"serving_size"`
	DietaryTags  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dietary_tags"`
	Nutrition    Nutrition        `gorm:"embedded;embeddedPrefix:nutrition_" json:"nutrition"`
	ImageURL     *string          `gorm:"size:512" json:"image_url"`
	Embedding    pgvector.Vector  `gorm:"type:vector(3)" json:"-"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// BeforeCreate assigns an ID when the caller did not
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeSave refreshes the search embedding
func (r *Recipe) BeforeSave(tx *gorm.DB) error {
	r.Embedding = GenerateEmbedding(r.Name + " " + r.Cuisine)
	return nil
}
