package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gigfeed/gigfeed/internal/models"
	"github.com/gigfeed/gigfeed/internal/prompts"
	"github.com/gigfeed/gigfeed/internal/providers/llm"
	mongorepo "github.com/gigfeed/gigfeed/internal/repositories/mongo"
	"github.com/gigfeed/gigfeed/internal/utils"
)

type DraftResult struct {
	Success  bool   `json:"success"`
	Draft    string `json:"draft"`
	UserID   string `json:"userId"`
	JobTitle string `json:"jobTitle"`
}

type SaveDraftInput struct {
	JobTitle  string                 `json:"jobTitle"`
	DraftText string                 `json:"draftText"`
	Budget    *models.BudgetSnapshot `json:"jobBudgetSnapshot"`
	Skills    []string               `json:"jobSkillsSnapshot"`
}

type DraftService interface {
	// Generate produces an application draft for the given job from the
	// user's approved profile. It persists nothing; saving is a separate
	// caller-initiated operation.
	Generate(ctx context.Context, userID string, job models.JobDetails) (*DraftResult, error)
	Save(ctx context.Context, userID, jobID string, in SaveDraftInput) (*models.ApplicationDraft, error)
	MarkApplied(ctx context.Context, userID, jobID string) error
	List(ctx context.Context, userID string) ([]models.ApplicationDraft, error)
	Delete(ctx context.Context, userID, jobID string) error
}

type draftService struct {
	userDocs mongorepo.UserDocRepository
	drafts   mongorepo.DraftRepository
	llm      llm.Provider
	log      *logrus.Logger
}

func NewDraftService(userDocs mongorepo.UserDocRepository, drafts mongorepo.DraftRepository, provider llm.Provider, log *logrus.Logger) DraftService {
	return &draftService{userDocs: userDocs, drafts: drafts, llm: provider, log: log}
}

func (s *draftService) Generate(ctx context.Context, userID string, job models.JobDetails) (*DraftResult, error) {
	const op = "DraftService.Generate"

	// fail fast: nothing external runs until input is valid
	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "userId is required", nil)
	}
	if job.Description == "" || len(job.Skills) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "jobDetails with description and skills is required", nil)
	}

	doc, err := s.userDocs.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "User profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user profile", err)
	}
	if doc.ApprovedProfileData == nil {
		return nil, utils.E(utils.CodeFailedPrecondition, op, "User profile has not been approved yet. Please complete profile verification.", nil)
	}

	s.log.WithField("user_id", userID).Info("generating application draft")

	prompt := prompts.ApplicationDraft(job, doc.ApprovedProfileData)

	completeCtx, cancel := context.WithTimeout(ctx, completeTimeout)
	defer cancel()

	draft, err := s.llm.Complete(completeCtx, prompt)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "Failed to generate application draft", err)
	}

	return &DraftResult{
		Success:  true,
		Draft:    draft,
		UserID:   userID,
		JobTitle: job.Title,
	}, nil
}

func (s *draftService) Save(ctx context.Context, userID, jobID string, in SaveDraftInput) (*models.ApplicationDraft, error) {
	const op = "DraftService.Save"

	if userID == "" || jobID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and job_id are required", nil)
	}
	if in.DraftText == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "draftText is required", nil)
	}

	d := &models.ApplicationDraft{
		UserID:            userID,
		JobID:             jobID,
		JobTitle:          in.JobTitle,
		DraftText:         in.DraftText,
		Status:            models.DraftStatusSaved,
		JobBudgetSnapshot: in.Budget,
		JobSkillsSnapshot: in.Skills,
		SavedAt:           time.Now().UTC(),
	}

	if err := s.drafts.Save(ctx, d); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save draft", err)
	}

	// re-read so the caller sees the stored status (a re-save of an
	// applied draft keeps status=applied)
	stored, err := s.drafts.Get(ctx, userID, jobID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load saved draft", err)
	}
	return stored, nil
}

func (s *draftService) MarkApplied(ctx context.Context, userID, jobID string) error {
	const op = "DraftService.MarkApplied"

	if userID == "" || jobID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "user_id and job_id are required", nil)
	}
	if err := s.drafts.MarkApplied(ctx, userID, jobID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "draft not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to mark draft applied", err)
	}
	return nil
}

func (s *draftService) List(ctx context.Context, userID string) ([]models.ApplicationDraft, error) {
	const op = "DraftService.List"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	out, err := s.drafts.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list drafts", err)
	}
	return out, nil
}

func (s *draftService) Delete(ctx context.Context, userID, jobID string) error {
	const op = "DraftService.Delete"

	if userID == "" || jobID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "user_id and job_id are required", nil)
	}
	if err := s.drafts.Delete(ctx, userID, jobID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "draft not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete draft", err)
	}
	return nil
}
