package sqlstore

import (
	"time"

	"github.com/healthwhisperer/wellness/internal/core/domain"
)

// userRecord mirrors the users table created by 00001_create_users.sql.
type userRecord struct {
	ID           string              `gorm:"type:varchar(36);primaryKey"`
	Username     string              `gorm:"type:varchar(80);uniqueIndex;not null"`
	Email        string              `gorm:"type:varchar(120);uniqueIndex;not null"`
	PasswordHash string              `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time           `gorm:"not null"`
	Interactions []interactionRecord `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (userRecord) TableName() string { return "users" }

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

type interactionRecord struct {
	ID             string    `gorm:"type:varchar(36);primaryKey"`
	UserID         string    `gorm:"type:varchar(36);not null;index:idx_interactions_user_created,priority:1"`
	MoodInput      string    `gorm:"type:text;not null"`
	NutritionInput string    `gorm:"type:text;not null;default:''"`
	Suggestion     string    `gorm:"column:ai_suggestion;type:text;not null"`
	Source         string    `gorm:"column:suggestion_source;type:varchar(16);not null"`
	CreatedAt      time.Time `gorm:"not null;index:idx_interactions_user_created,priority:2"`
}

func (interactionRecord) TableName() string { return "wellness_interactions" }

func (r *interactionRecord) toDomain() domain.Interaction {
	return domain.Interaction{
		ID:             r.ID,
		UserID:         r.UserID,
		MoodInput:      r.MoodInput,
		NutritionInput: r.NutritionInput,
		Suggestion:     r.Suggestion,
		Source:         domain.SuggestionSource(r.Source),
		CreatedAt:      r.CreatedAt.UTC(),
	}
}
