package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gigfeed/gigfeed/internal/api/handlers"
	"github.com/gigfeed/gigfeed/internal/models"
	"github.com/gigfeed/gigfeed/internal/services"
	"github.com/gigfeed/gigfeed/internal/utils"
)

type stubResumeService struct {
	lastPath string
}

func (s *stubResumeService) HandleObjectFinalized(ctx context.Context, objectPath string) (*services.ProcessResult, error) {
	s.lastPath = objectPath
	if !strings.HasPrefix(objectPath, "resumes/") || !strings.HasSuffix(objectPath, "/resume.pdf") {
		return nil, nil
	}
	return &services.ProcessResult{Success: true, UserID: "user-1", Message: "Resume processed successfully"}, nil
}

func (s *stubResumeService) ProcessForUser(ctx context.Context, userID string) (*services.ProcessResult, error) {
	return &services.ProcessResult{Success: true, UserID: userID}, nil
}

type stubStore struct{}

func (stubStore) Upload(ctx context.Context, name, contentType string, r io.Reader) error {
	return nil
}
func (stubStore) Download(ctx context.Context, name string) ([]byte, error) { return nil, nil }
func (stubStore) Exists(ctx context.Context, name string) (bool, error)     { return false, nil }

type stubDraftService struct{}

func (stubDraftService) Generate(ctx context.Context, userID string, job models.JobDetails) (*services.DraftResult, error) {
	return &services.DraftResult{Success: true, Draft: "Hi there,", UserID: userID}, nil
}
func (stubDraftService) Save(ctx context.Context, userID, jobID string, in services.SaveDraftInput) (*models.ApplicationDraft, error) {
	return nil, utils.ErrNotFound
}
func (stubDraftService) MarkApplied(ctx context.Context, userID, jobID string) error {
	return utils.ErrNotFound
}
func (stubDraftService) List(ctx context.Context, userID string) ([]models.ApplicationDraft, error) {
	return nil, nil
}
func (stubDraftService) Delete(ctx context.Context, userID, jobID string) error {
	return utils.ErrNotFound
}

type stubProfileService struct{}

func (stubProfileService) GetMe(ctx context.Context, userID string) (*models.UserDocument, error) {
	return nil, utils.E(utils.CodeNotFound, "ProfileService.GetMe", "user profile not found", nil)
}
func (stubProfileService) Approve(ctx context.Context, userID string, ap *models.ApprovedProfile) (*models.ApprovedProfile, error) {
	return ap, nil
}

type stubJobService struct{}

func (stubJobService) List(ctx context.Context) ([]models.JobPosting, error) {
	return []models.JobPosting{}, nil
}
func (stubJobService) Get(ctx context.Context, id string) (*models.JobPosting, error) {
	return nil, utils.E(utils.CodeNotFound, "JobService.Get", "job not found", nil)
}
func (stubJobService) MatchedForUser(ctx context.Context, userID string) ([]models.JobPosting, error) {
	return nil, nil
}
func (stubJobService) SyncFromMarketplace(ctx context.Context) (int, error) { return 0, nil }

func testRouter(t *testing.T) (*gin.Engine, *stubResumeService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	log := logrus.New()
	log.SetOutput(io.Discard)

	resumeSvc := &stubResumeService{}
	r := gin.New()
	RegisterRoutes(r, Deps{
		Resume:  handlers.NewResumeHandler(resumeSvc, stubStore{}, log),
		Draft:   handlers.NewDraftHandler(stubDraftService{}, log),
		Profile: handlers.NewProfileHandler(stubProfileService{}),
		Job:     handlers.NewJobHandler(stubJobService{}),
	})
	return r, resumeSvc
}

func TestPreflightAllowed(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/drafts/generate", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("allow-origin = %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestWrongMethodIs405(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/drafts/generate", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", w.Code)
	}
	var env struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil || env.Error.Message != "Method not allowed" {
		t.Fatalf("unexpected 405 body: %s", w.Body.String())
	}
}

func TestStorageEvent_NonResumePathAcknowledged(t *testing.T) {
	r, resumeSvc := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/events/storage", strings.NewReader(`{"name":"avatars/user-1/photo.png"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %s", w.Body.String())
	}
	if handled, ok := body["handled"].(bool); !ok || handled {
		t.Fatalf("non-resume event must report handled=false, body: %s", w.Body.String())
	}
	if resumeSvc.lastPath != "avatars/user-1/photo.png" {
		t.Fatalf("service saw path %q", resumeSvc.lastPath)
	}
}

func TestStorageEvent_ResumePathProcessed(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/events/storage", strings.NewReader(`{"name":"resumes/user-1/resume.pdf"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var res services.ProcessResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil || !res.Success {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := testRouter(t)

	for _, route := range []struct {
		method, path string
	}{
		{http.MethodGet, "/drafts"},
		{http.MethodGet, "/profile/me"},
		{http.MethodPost, "/resumes/process"},
		{http.MethodGet, "/me/matched-jobs"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s status = %d, want 401", route.method, route.path, w.Code)
		}
	}
}

func TestPublicCatalogRoutes(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /jobs status = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/jobs/unknown-id", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /jobs/unknown-id status = %d, want 404", w.Code)
	}
}
