package mongo

import (
	"context"
	"errors"

	"github.com/gigfeed/gigfeed/internal/models"
	"github.com/gigfeed/gigfeed/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DraftRepository holds one ApplicationDraft per (user, job). Save is an
// upsert keyed by job id; it never touches status on an existing draft,
// so "applied" cannot be reverted by a re-save. Status moves only via
// MarkApplied.
type DraftRepository interface {
	Save(ctx context.Context, d *models.ApplicationDraft) error
	MarkApplied(ctx context.Context, userID, jobID string) error
	Get(ctx context.Context, userID, jobID string) (*models.ApplicationDraft, error)
	ListByUser(ctx context.Context, userID string) ([]models.ApplicationDraft, error)
	Delete(ctx context.Context, userID, jobID string) error
}

type draftRepo struct {
	col *mongo.Collection
}

func NewDraftRepo(db *mongo.Database) DraftRepository {
	return &draftRepo{col: db.Collection("application_drafts")}
}

func draftFilter(userID, jobID string) bson.M {
	return bson.M{"user_id": userID, "job_id": jobID}
}

// saveUpdate builds the upsert document for Save. status lives only in
// $setOnInsert: a plain save on an existing draft leaves it alone.
func saveUpdate(d *models.ApplicationDraft) bson.M {
	return bson.M{
		"$set": bson.M{
			"jobTitle":          d.JobTitle,
			"draftText":         d.DraftText,
			"jobBudgetSnapshot": d.JobBudgetSnapshot,
			"jobSkillsSnapshot": d.JobSkillsSnapshot,
			"savedAt":           d.SavedAt.UTC(),
		},
		"$setOnInsert": bson.M{
			"user_id": d.UserID,
			"job_id":  d.JobID,
			"status":  models.DraftStatusSaved,
		},
	}
}

func (r *draftRepo) Save(ctx context.Context, d *models.ApplicationDraft) error {
	_, err := r.col.UpdateOne(ctx,
		draftFilter(d.UserID, d.JobID),
		saveUpdate(d),
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *draftRepo) MarkApplied(ctx context.Context, userID, jobID string) error {
	res, err := r.col.UpdateOne(ctx,
		draftFilter(userID, jobID),
		bson.M{"$set": bson.M{"status": models.DraftStatusApplied}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *draftRepo) Get(ctx context.Context, userID, jobID string) (*models.ApplicationDraft, error) {
	var d models.ApplicationDraft
	err := r.col.FindOne(ctx, draftFilter(userID, jobID)).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &d, err
}

func (r *draftRepo) ListByUser(ctx context.Context, userID string) ([]models.ApplicationDraft, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "savedAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ApplicationDraft
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *draftRepo) Delete(ctx context.Context, userID, jobID string) error {
	res, err := r.col.DeleteOne(ctx, draftFilter(userID, jobID))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}
