package services

import (
	"context"
	"errors"
	"time"

	"github.com/gigfeed/gigfeed/internal/models"
	mongorepo "github.com/gigfeed/gigfeed/internal/repositories/mongo"
	"github.com/gigfeed/gigfeed/internal/utils"
)

type ProfileService interface {
	GetMe(ctx context.Context, userID string) (*models.UserDocument, error)
	// Approve stores the user-confirmed profile. This is the only writer
	// of approvedProfileData; the AI pipeline never touches it.
	Approve(ctx context.Context, userID string, ap *models.ApprovedProfile) (*models.ApprovedProfile, error)
}

type profileService struct {
	userDocs mongorepo.UserDocRepository
}

func NewProfileService(userDocs mongorepo.UserDocRepository) ProfileService {
	return &profileService{userDocs: userDocs}
}

func (s *profileService) GetMe(ctx context.Context, userID string) (*models.UserDocument, error) {
	const op = "ProfileService.GetMe"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	doc, err := s.userDocs.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "user profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get user profile", err)
	}
	return doc, nil
}

func (s *profileService) Approve(ctx context.Context, userID string, ap *models.ApprovedProfile) (*models.ApprovedProfile, error) {
	const op = "ProfileService.Approve"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	if ap == nil || len(ap.Skills) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "profile with at least one skill is required", nil)
	}

	ap.VerifiedAt = time.Now().UTC()

	if err := s.userDocs.MergeApprovedProfile(ctx, userID, ap); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save approved profile", err)
	}
	return ap, nil
}
