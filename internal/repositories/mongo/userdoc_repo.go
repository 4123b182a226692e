package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/gigfeed/gigfeed/internal/models"
	"github.com/gigfeed/gigfeed/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserDocRepository wraps the per-user document. All writes are merges:
// only the named top-level fields are set, everything else on the
// document survives. Concurrent merges are last-writer-wins per field.
type UserDocRepository interface {
	Get(ctx context.Context, userID string) (*models.UserDocument, error)
	MergeAIProfile(ctx context.Context, userID string, p *models.StructuredProfile, processedAt time.Time) error
	MergeProcessingError(ctx context.Context, userID string, pe *models.ProcessingError) error
	MergeApprovedProfile(ctx context.Context, userID string, ap *models.ApprovedProfile) error
}

type userDocRepo struct {
	col *mongo.Collection
}

func NewUserDocRepo(db *mongo.Database) UserDocRepository {
	return &userDocRepo{col: db.Collection("user_docs")}
}

func (r *userDocRepo) Get(ctx context.Context, userID string) (*models.UserDocument, error) {
	var doc models.UserDocument
	err := r.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &doc, err
}

func (r *userDocRepo) MergeAIProfile(ctx context.Context, userID string, p *models.StructuredProfile, processedAt time.Time) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{
			"aiProfileData":     p,
			"resumeProcessedAt": processedAt.UTC(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *userDocRepo) MergeProcessingError(ctx context.Context, userID string, pe *models.ProcessingError) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"resumeProcessingError": pe}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *userDocRepo) MergeApprovedProfile(ctx context.Context, userID string, ap *models.ApprovedProfile) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"approvedProfileData": ap}},
		options.Update().SetUpsert(true),
	)
	return err
}
