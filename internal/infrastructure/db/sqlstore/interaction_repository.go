package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/healthwhisperer/wellness/internal/core/domain"
	"github.com/healthwhisperer/wellness/internal/core/ports"
)

var _ ports.InteractionRepository = (*InteractionRepository)(nil)

// InteractionRepository implements ports.InteractionRepository with GORM.
// Every query filters on user_id.
type InteractionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository wraps an open GORM handle.
func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{db: db}
}

func (r *InteractionRepository) Create(ctx context.Context, in *domain.Interaction) error {
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	rec := interactionRecord{
		ID:             in.ID,
		UserID:         in.UserID,
		MoodInput:      in.MoodInput,
		NutritionInput: in.NutritionInput,
		Suggestion:     in.Suggestion,
		Source:         string(in.Source),
		CreatedAt:      in.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

func (r *InteractionRepository) FindByID(ctx context.Context, userID, id string) (*domain.Interaction, error) {
	var rec interactionRecord
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInteractionNotFound
		}
		return nil, fmt.Errorf("find interaction: %w", err)
	}
	in := rec.toDomain()
	return &in, nil
}

func (r *InteractionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Interaction, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var recs []interactionRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}

	out := make([]domain.Interaction, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toDomain())
	}
	return out, nil
}

func (r *InteractionRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&interactionRecord{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count interactions: %w", err)
	}
	return n, nil
}
