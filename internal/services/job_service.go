package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gigfeed/gigfeed/internal/cache"
	"github.com/gigfeed/gigfeed/internal/marketplace"
	"github.com/gigfeed/gigfeed/internal/models"
	mongorepo "github.com/gigfeed/gigfeed/internal/repositories/mongo"
	pgrepo "github.com/gigfeed/gigfeed/internal/repositories/postgres"
	"github.com/gigfeed/gigfeed/internal/utils"
)

const (
	jobListCacheKey = "jobs:all"
	jobListCacheTTL = 5 * time.Minute
)

type JobService interface {
	List(ctx context.Context) ([]models.JobPosting, error)
	Get(ctx context.Context, id string) (*models.JobPosting, error)
	// MatchedForUser returns catalog jobs whose required skills overlap
	// the user's approved skills, filtered by the profile's job preferences.
	MatchedForUser(ctx context.Context, userID string) ([]models.JobPosting, error)
	// SyncFromMarketplace replaces the catalog with the marketplace's
	// current active projects. Per-project fetch failures are logged and
	// skipped, not fatal.
	SyncFromMarketplace(ctx context.Context) (int, error)
}

type jobService struct {
	jobs     pgrepo.JobRepository
	userDocs mongorepo.UserDocRepository
	market   *marketplace.Client
	cache    cache.Cache
	log      *logrus.Logger
}

func NewJobService(jobs pgrepo.JobRepository, userDocs mongorepo.UserDocRepository, market *marketplace.Client, c cache.Cache, log *logrus.Logger) JobService {
	return &jobService{jobs: jobs, userDocs: userDocs, market: market, cache: c, log: log}
}

func (s *jobService) List(ctx context.Context) ([]models.JobPosting, error) {
	const op = "JobService.List"

	if s.cache != nil {
		var cached []models.JobPosting
		if hit, err := s.cache.GetJSON(ctx, jobListCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	jobs, err := s.jobs.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, jobListCacheKey, jobs, jobListCacheTTL); err != nil {
			s.log.WithError(err).Warn("failed to cache job list")
		}
	}
	return jobs, nil
}

func (s *jobService) Get(ctx context.Context, id string) (*models.JobPosting, error) {
	const op = "JobService.Get"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "job id is required", nil)
	}
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get job", err)
	}
	return j, nil
}

func (s *jobService) MatchedForUser(ctx context.Context, userID string) ([]models.JobPosting, error) {
	const op = "JobService.MatchedForUser"

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
	if doc.ApprovedProfileData == nil {
		return nil, utils.E(utils.CodeFailedPrecondition, op, "User profile has not been approved yet. Please complete profile verification.", nil)
	}

	jobs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	return MatchJobs(jobs, doc.ApprovedProfileData), nil
}

// MatchJobs filters the catalog against an approved profile: a job
// matches when any of its required skills overlaps any profile skill
// (case-insensitive substring, both directions), then minimum-rate and
// work-location preferences narrow the result. Catalog jobs are remote;
// a non-remote location preference therefore matches nothing.
func MatchJobs(jobs []models.JobPosting, profile *models.ApprovedProfile) []models.JobPosting {
	if len(profile.Skills) == 0 {
		return []models.JobPosting{}
	}

	userSkills := make([]string, 0, len(profile.Skills))
	for _, sk := range profile.Skills {
		userSkills = append(userSkills, strings.ToLower(sk))
	}

	var minRate float64
	locationPref := ""
	if profile.JobPreferences != nil {
		if profile.JobPreferences.MinimumRate != nil {
			minRate = *profile.JobPreferences.MinimumRate
		}
		locationPref = strings.ToLower(strings.TrimSpace(profile.JobPreferences.WorkLocationPreference))
	}
	if locationPref != "" && locationPref != "remote" {
		return []models.JobPosting{}
	}

	matched := make([]models.JobPosting, 0)
	for _, job := range jobs {
		if !skillsOverlap(job.Skills, userSkills) {
			continue
		}
		if minRate > 0 && !meetsRate(job, minRate) {
			continue
		}
		matched = append(matched, job)
	}
	return matched
}

func skillsOverlap(jobSkills []string, userSkills []string) bool {
	for _, js := range jobSkills {
		js = strings.ToLower(js)
		for _, us := range userSkills {
			if strings.Contains(js, us) || strings.Contains(us, js) {
				return true
			}
		}
	}
	return false
}

func meetsRate(job models.JobPosting, minRate float64) bool {
	if job.BudgetMin != nil && *job.BudgetMin >= minRate {
		return true
	}
	if job.BudgetMax != nil && *job.BudgetMax >= minRate {
		return true
	}
	return false
}

func (s *jobService) SyncFromMarketplace(ctx context.Context) (int, error) {
	const op = "JobService.SyncFromMarketplace"

	if s.market == nil {
		return 0, utils.E(utils.CodeInternal, op, "marketplace client is not configured", nil)
	}

	refs, err := s.market.ActiveProjects(ctx)
	if err != nil {
		return 0, utils.E(utils.CodeUnavailable, op, "failed to fetch active projects", err)
	}
	if len(refs) == 0 {
		return 0, nil
	}

	if err := s.jobs.DeleteAll(ctx); err != nil {
		return 0, utils.E(utils.CodeInternal, op, "failed to clear job catalog", err)
	}

	stored := 0
	for _, ref := range refs {
		detail, err := s.market.ProjectDetail(ctx, ref.ID.String())
		if err != nil {
			s.log.WithError(err).WithField("project_id", ref.ID.String()).Warn("failed to fetch project detail")
			continue
		}
		if err := s.jobs.Upsert(ctx, detail.ToJobPosting(ref)); err != nil {
			s.log.WithError(err).WithField("project_id", ref.ID.String()).Warn("failed to store job")
			continue
		}
		stored++
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, jobListCacheKey)
	}

	s.log.WithFields(logrus.Fields{"fetched": len(refs), "stored": stored}).Info("marketplace sync complete")
	return stored, nil
}
