package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gigfeed/gigfeed/internal/services"
	"github.com/gigfeed/gigfeed/internal/storage"
	"github.com/gigfeed/gigfeed/internal/utils"
)

type ResumeHandler struct {
	svc   services.ResumeService
	store storage.ObjectStore
	log   *logrus.Logger
}

func NewResumeHandler(svc services.ResumeService, store storage.ObjectStore, log *logrus.Logger) *ResumeHandler {
	return &ResumeHandler{svc: svc, store: store, log: log}
}

// Upload stores the caller's resume at the deterministic path and kicks
// off processing in the background, the same way a storage-finalize
// trigger would.
func (h *ResumeHandler) Upload(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.Upload", "missing multipart field 'file'", err))
		return
	}

	// basic validation
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".pdf" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.Upload", "only .pdf is allowed", nil))
		return
	}
	if fh.Size <= 0 || fh.Size > 10<<20 {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.Upload", "file too large (max 10MB)", nil))
		return
	}

	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "ResumeHandler.Upload", "failed to open upload", err))
		return
	}
	defer file.Close()

	// sniff content type (read 512 bytes)
	head := make([]byte, 512)
	n, _ := file.Read(head)
	head = head[:n]
	if http.DetectContentType(head) != "application/pdf" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.Upload", "invalid content type (must be pdf)", nil))
		return
	}

	// re-compose stream: head + remaining file
	r := &readJoin{a: bytes.NewReader(head), b: file}

	objectName := services.ResumeObjectPath(userID)
	if err := h.store.Upload(c.Request.Context(), objectName, "application/pdf", r); err != nil {
		writeError(c, utils.E(utils.CodeUnavailable, "ResumeHandler.Upload", "failed to store resume", err))
		return
	}

	// process detached from the request, like the finalize trigger would
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()
		if _, err := h.svc.HandleObjectFinalized(ctx, objectName); err != nil {
			h.log.WithError(err).WithField("user_id", userID).Error("resume processing failed")
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"userId":  userID,
		"message": "Resume uploaded, processing started",
	})
}

// Process is the manual trigger: synchronous, caller's own resume only.
func (h *ResumeHandler) Process(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	res, err := h.svc.ProcessForUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type storageEventRequest struct {
	Name string `json:"name" binding:"required"`
}

// StorageEvent accepts an object-finalize notification. Paths that are
// not resume uploads are acknowledged without doing anything.
func (h *ResumeHandler) StorageEvent(c *gin.Context) {
	var req storageEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.StorageEvent", "invalid request body", err))
		return
	}

	res, err := h.svc.HandleObjectFinalized(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	if res == nil {
		c.JSON(http.StatusOK, gin.H{"handled": false})
		return
	}
	c.JSON(http.StatusOK, res)
}

type readJoin struct {
	a *bytes.Reader
	b io.Reader
}

func (r *readJoin) Read(p []byte) (int, error) {
	if r.a != nil && r.a.Len() > 0 {
		return r.a.Read(p)
	}
	return r.b.Read(p)
}
