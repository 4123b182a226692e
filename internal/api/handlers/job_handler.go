package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gigfeed/gigfeed/internal/services"
)

type JobHandler struct {
	svc services.JobService
}

func NewJobHandler(svc services.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) Get(c *gin.Context) {
	j, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

// Matched is the personalized feed: catalog jobs overlapping the
// caller's approved skills, narrowed by their job preferences.
func (h *JobHandler) Matched(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	jobs, err := h.svc.MatchedForUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}
