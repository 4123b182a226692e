package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gigfeed/gigfeed/internal/models"
	"github.com/gigfeed/gigfeed/internal/services"
	"github.com/gigfeed/gigfeed/internal/utils"
)

type ProfileHandler struct {
	svc services.ProfileService
}

func NewProfileHandler(svc services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	doc, err := h.svc.GetMe(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

type ApproveProfileRequest struct {
	PersonalInfo   *models.PersonalInfo    `json:"personalInfo"`
	Skills         []string                `json:"skills"`
	WorkExperience []models.WorkExperience `json:"workExperience"`
	Education      []models.Education      `json:"education"`
	Summary        *string                 `json:"summary"`
	JobPreferences *models.JobPreferences  `json:"jobPreferences"`
}

// Approve confirms the (possibly hand-edited) profile and stores it as
// approvedProfileData, unlocking draft generation.
func (h *ProfileHandler) Approve(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req ApproveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ProfileHandler.Approve", "invalid request body", err))
		return
	}

	ap := &models.ApprovedProfile{
		PersonalInfo:   req.PersonalInfo,
		Skills:         req.Skills,
		WorkExperience: req.WorkExperience,
		Education:      req.Education,
		Summary:        req.Summary,
		JobPreferences: req.JobPreferences,
	}

	stored, err := h.svc.Approve(c.Request.Context(), userID, ap)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stored)
}
