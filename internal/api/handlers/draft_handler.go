package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gigfeed/gigfeed/internal/models"
	"github.com/gigfeed/gigfeed/internal/services"
	"github.com/gigfeed/gigfeed/internal/utils"
)

type DraftHandler struct {
	svc services.DraftService
	log *logrus.Logger
}

func NewDraftHandler(svc services.DraftService, log *logrus.Logger) *DraftHandler {
	return &DraftHandler{svc: svc, log: log}
}

// The generate endpoint speaks the callable wire contract: request and
// response are wrapped in a data envelope, failures in an error envelope.
type generateRequest struct {
	Data struct {
		UserID     string            `json:"userId"`
		JobDetails models.JobDetails `json:"jobDetails"`
	} `json:"data"`
}

type errorBody struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func (h *DraftHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope{Error: errorBody{Message: "invalid request body"}})
		return
	}

	res, err := h.svc.Generate(c.Request.Context(), req.Data.UserID, req.Data.JobDetails)
	if err != nil {
		h.writeGenerateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": res})
}

// writeGenerateError keeps the endpoint's status surface to 400/404/412/500.
// Anything past validation collapses to a generic 500 with the specific
// cause logged, and only a message string leaked as detail.
func (h *DraftHandler) writeGenerateError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)

	var ae *utils.AppError
	message := "Failed to generate application draft"
	if errors.As(err, &ae) {
		message = ae.Message
	}

	switch status {
	case http.StatusBadRequest, http.StatusNotFound, http.StatusPreconditionFailed:
		c.JSON(status, errorEnvelope{Error: errorBody{Message: message}})
	default:
		h.log.WithError(err).Error("application draft generation failed")
		c.JSON(http.StatusInternalServerError, errorEnvelope{Error: errorBody{
			Message: "Failed to generate application draft",
			Details: message,
		}})
	}
}

func (h *DraftHandler) Save(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var in services.SaveDraftInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "DraftHandler.Save", "invalid request body", err))
		return
	}

	d, err := h.svc.Save(c.Request.Context(), userID, c.Param("jobId"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DraftHandler) MarkApplied(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.MarkApplied(c.Request.Context(), userID, c.Param("jobId")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": models.DraftStatusApplied})
}

func (h *DraftHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	out, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drafts": out})
}

func (h *DraftHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("jobId")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
