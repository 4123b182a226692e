package services

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gigfeed/gigfeed/internal/extract"
	"github.com/gigfeed/gigfeed/internal/models"
	"github.com/gigfeed/gigfeed/internal/prompts"
	"github.com/gigfeed/gigfeed/internal/providers/llm"
	mongorepo "github.com/gigfeed/gigfeed/internal/repositories/mongo"
	"github.com/gigfeed/gigfeed/internal/storage"
	"github.com/gigfeed/gigfeed/internal/utils"
)

// resumePathPattern is the only object path the pipeline reacts to:
// a single userId segment and the literal trailing filename.
var resumePathPattern = regexp.MustCompile(`^resumes/([^/]+)/resume\.pdf$`)

// ResumeObjectPath is the deterministic storage location of a user's resume.
func ResumeObjectPath(userID string) string {
	return "resumes/" + userID + "/resume.pdf"
}

// Extraction and generation are the unbounded-latency calls; both run
// under a deadline and a timeout surfaces as that step's failure.
const (
	extractTimeout  = 30 * time.Second
	completeTimeout = 90 * time.Second
)

type ProcessResult struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

type ResumeService interface {
	// HandleObjectFinalized reacts to a finalized storage object. Paths
	// that are not a resume upload return (nil, nil): a no-op, not an error.
	HandleObjectFinalized(ctx context.Context, objectPath string) (*ProcessResult, error)
	// ProcessForUser is the manual trigger: it verifies the resume object
	// exists at the deterministic path, then runs the same core logic.
	ProcessForUser(ctx context.Context, userID string) (*ProcessResult, error)
}

type resumeService struct {
	store     storage.ObjectStore
	extractor extract.Extractor
	llm       llm.Provider
	userDocs  mongorepo.UserDocRepository
	log       *logrus.Logger
}

func NewResumeService(store storage.ObjectStore, extractor extract.Extractor, provider llm.Provider, userDocs mongorepo.UserDocRepository, log *logrus.Logger) ResumeService {
	return &resumeService{store: store, extractor: extractor, llm: provider, userDocs: userDocs, log: log}
}

func (s *resumeService) HandleObjectFinalized(ctx context.Context, objectPath string) (*ProcessResult, error) {
	m := resumePathPattern.FindStringSubmatch(objectPath)
	if m == nil {
		s.log.WithField("path", objectPath).Debug("object is not a resume upload, skipping")
		return nil, nil
	}
	return s.process(ctx, m[1])
}

func (s *resumeService) ProcessForUser(ctx context.Context, userID string) (*ProcessResult, error) {
	const op = "ResumeService.ProcessForUser"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	exists, err := s.store.Exists(ctx, ResumeObjectPath(userID))
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to check resume object", err)
	}
	if !exists {
		return nil, utils.E(utils.CodeNotFound, op, "Resume file not found. Please upload a resume first.", nil)
	}

	return s.process(ctx, userID)
}

// process is the single pipeline core both entry points call:
// download -> extract -> prompt -> completion -> parse -> merge-write.
// Any failure is recorded on the user document (best effort) before it
// propagates.
func (s *resumeService) process(ctx context.Context, userID string) (*ProcessResult, error) {
	log := s.log.WithField("user_id", userID)
	log.Info("processing resume")

	res, err := s.run(ctx, log, userID)
	if err != nil {
		s.recordFailure(ctx, log, userID, err)
		return nil, err
	}
	log.Info("resume processed and profile data saved")
	return res, nil
}

func (s *resumeService) run(ctx context.Context, log *logrus.Entry, userID string) (*ProcessResult, error) {
	const op = "ResumeService.Process"

	data, err := s.store.Download(ctx, ResumeObjectPath(userID))
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to download resume", err)
	}

	extractCtx, cancel := context.WithTimeout(ctx, extractTimeout)
	text, err := s.extractor.Text(extractCtx, data)
	cancel()
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to extract text from the PDF", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, utils.E(utils.CodeInternal, op, "No text could be extracted from the PDF", nil)
	}
	log.WithField("text_len", len(text)).Debug("resume text extracted")

	completeCtx, cancel := context.WithTimeout(ctx, completeTimeout)
	raw, err := s.llm.Complete(completeCtx, prompts.ResumeExtraction(text))
	cancel()
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to call generative model", err)
	}

	var profile models.StructuredProfile
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &profile); err != nil {
		// raw response stays in logs only, never in the stored error record
		log.WithField("ai_response", raw).Error("failed to parse AI response as JSON")
		return nil, utils.E(utils.CodeInternal, op, "AI response was not valid JSON", err)
	}

	now := time.Now().UTC()
	profile.Source = models.ProfileSourceGemini
	profile.ProcessedAt = now

	if err := s.userDocs.MergeAIProfile(ctx, userID, &profile, now); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save profile data", err)
	}

	return &ProcessResult{Success: true, UserID: userID, Message: "Resume processed successfully"}, nil
}

// recordFailure merges a ProcessingError onto the user document. A
// secondary failure here is logged and swallowed so it never masks the
// pipeline error.
func (s *resumeService) recordFailure(ctx context.Context, log *logrus.Entry, userID string, cause error) {
	pe := &models.ProcessingError{
		Message:   errMessage(cause),
		Timestamp: time.Now().UTC(),
	}
	if err := s.userDocs.MergeProcessingError(ctx, userID, pe); err != nil {
		log.WithError(err).Error("failed to save processing error to user document")
	}
}

func errMessage(err error) string {
	var ae *utils.AppError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	if err != nil {
		return err.Error()
	}
	return "Unknown error"
}

// stripCodeFences removes markdown code-fence wrapping the model tends to
// add around JSON output.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
