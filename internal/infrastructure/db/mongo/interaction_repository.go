package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/healthwhisperer/wellness/internal/core/domain"
	"github.com/healthwhisperer/wellness/internal/core/ports"
)

// InteractionRepository implements ports.InteractionRepository using MongoDB.
type InteractionRepository struct {
	coll *mongo.Collection
}

func NewInteractionRepository(db *mongo.Database) ports.InteractionRepository {
	return &InteractionRepository{coll: db.Collection(interactionsCollection)}
}

type interactionDoc struct {
	ID             string    `bson:"_id"`
	UserID         string    `bson:"user_id"`
	MoodInput      string    `bson:"mood_input"`
	NutritionInput string    `bson:"nutrition_input,omitempty"`
	Suggestion     string    `bson:"ai_suggestion"`
	Source         string    `bson:"suggestion_source"`
	CreatedAt      time.Time `bson:"created_at"`
}

func (d interactionDoc) toDomain() domain.Interaction {
	return domain.Interaction{
		ID:             d.ID,
		UserID:         d.UserID,
		MoodInput:      d.MoodInput,
		NutritionInput: d.NutritionInput,
		Suggestion:     d.Suggestion,
		Source:         domain.SuggestionSource(d.Source),
		CreatedAt:      d.CreatedAt.UTC(),
	}
}

func (r *InteractionRepository) Create(ctx context.Context, in *domain.Interaction) error {
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	doc := interactionDoc{
		ID:             in.ID,
		UserID:         in.UserID,
		MoodInput:      in.MoodInput,
		NutritionInput: in.NutritionInput,
		Suggestion:     in.Suggestion,
		Source:         string(in.Source),
		CreatedAt:      in.CreatedAt.UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

func (r *InteractionRepository) FindByID(ctx context.Context, userID, id string) (*domain.Interaction, error) {
	var doc interactionDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInteractionNotFound
		}
		return nil, fmt.Errorf("find interaction: %w", err)
	}
	in := doc.toDomain()
	return &in, nil
}

func (r *InteractionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Interaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	defer cur.Close(ctx)

	var docs []interactionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode interactions: %w", err)
	}

	out := make([]domain.Interaction, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *InteractionRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("count interactions: %w", err)
	}
	return n, nil
}
