package handlers

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

	"github.com/gigfeed/gigfeed/internal/models"
	"github.com/gigfeed/gigfeed/internal/services"
	"github.com/gigfeed/gigfeed/internal/utils"
)

type fakeDraftService struct {
	generate func(ctx context.Context, userID string, job models.JobDetails) (*services.DraftResult, error)
}

func (f *fakeDraftService) Generate(ctx context.Context, userID string, job models.JobDetails) (*services.DraftResult, error) {
	return f.generate(ctx, userID, job)
}

func (f *fakeDraftService) Save(ctx context.Context, userID, jobID string, in services.SaveDraftInput) (*models.ApplicationDraft, error) {
	return nil, utils.ErrNotFound
}

func (f *fakeDraftService) MarkApplied(ctx context.Context, userID, jobID string) error {
	return utils.ErrNotFound
}

func (f *fakeDraftService) List(ctx context.Context, userID string) ([]models.ApplicationDraft, error) {
	return nil, nil
}

func (f *fakeDraftService) Delete(ctx context.Context, userID, jobID string) error {
	return utils.ErrNotFound
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func generateRouter(svc services.DraftService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewDraftHandler(svc, testLogger())
	r.POST("/drafts/generate", h.Generate)
	return r
}

func postGenerate(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/drafts/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) (message, details string) {
	t.Helper()
	var env struct {
		Error struct {
			Message string `json:"message"`
			Details string `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an error envelope: %s", w.Body.String())
	}
	return env.Error.Message, env.Error.Details
}

func TestGenerate_Success(t *testing.T) {
	svc := &fakeDraftService{
		generate: func(ctx context.Context, userID string, job models.JobDetails) (*services.DraftResult, error) {
			return &services.DraftResult{Success: true, Draft: "Hi there,", UserID: userID, JobTitle: job.Title}, nil
		},
	}
	r := generateRouter(svc)

	w := postGenerate(r, `{"data":{"userId":"user-1","jobDetails":{"title":"Dashboard","description":"d","skills":["React"]}}}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var env struct {
		Data services.DraftResult `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad body: %s", w.Body.String())
	}
	if !env.Data.Success || env.Data.Draft != "Hi there," || env.Data.UserID != "user-1" {
		t.Fatalf("unexpected data envelope: %+v", env.Data)
	}
}

func TestGenerate_MalformedBody(t *testing.T) {
	svc := &fakeDraftService{generate: func(context.Context, string, models.JobDetails) (*services.DraftResult, error) {
		t.Fatal("service must not run on malformed body")
		return nil, nil
	}}
	r := generateRouter(svc)

	w := postGenerate(r, `{"data": not-json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGenerate_ErrorStatuses(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			"validation",
			utils.E(utils.CodeInvalidArgument, "DraftService.Generate", "userId is required", nil),
			http.StatusBadRequest,
			"userId is required",
		},
		{
			"unknown user",
			utils.E(utils.CodeNotFound, "DraftService.Generate", "User profile not found", nil),
			http.StatusNotFound,
			"User profile not found",
		},
		{
			"unapproved profile",
			utils.E(utils.CodeFailedPrecondition, "DraftService.Generate", "User profile has not been approved yet. Please complete profile verification.", nil),
			http.StatusPreconditionFailed,
			"User profile has not been approved yet. Please complete profile verification.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := generateRouter(&fakeDraftService{
				generate: func(context.Context, string, models.JobDetails) (*services.DraftResult, error) {
					return nil, tc.err
				},
			})

			w := postGenerate(r, `{"data":{"userId":"u","jobDetails":{"description":"d","skills":["x"]}}}`)
			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
			msg, details := decodeError(t, w)
			if msg != tc.wantMsg {
				t.Fatalf("message = %q, want %q", msg, tc.wantMsg)
			}
			if details != "" {
				t.Fatalf("pass-through errors must not carry details, got %q", details)
			}
		})
	}
}

func TestGenerate_InternalErrorCollapsesTo500(t *testing.T) {
	r := generateRouter(&fakeDraftService{
		generate: func(context.Context, string, models.JobDetails) (*services.DraftResult, error) {
			return nil, utils.E(utils.CodeUnavailable, "DraftService.Generate", "Failed to generate application draft", io.ErrUnexpectedEOF)
		},
	})

	w := postGenerate(r, `{"data":{"userId":"u","jobDetails":{"description":"d","skills":["x"]}}}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	msg, details := decodeError(t, w)
	if msg != "Failed to generate application draft" {
		t.Fatalf("message = %q", msg)
	}
	if details == "" {
		t.Fatal("500 envelope must carry a details string")
	}
	if strings.Contains(details, io.ErrUnexpectedEOF.Error()) {
		t.Fatalf("details must not leak the wrapped cause: %q", details)
	}
}
