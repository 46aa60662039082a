package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mobilityplus-server/internal/middleware"
	"mobilityplus-server/internal/repositories"
	"mobilityplus-server/internal/report"
	"mobilityplus-server/internal/utils"
)

// CareLogHandler serves a patient's clinical log ("bitácora").
// Entries are written by the appointment state machine on completion; this
// handler only reads.
type CareLogHandler struct {
	Repos  repositories.Repositories
	Report *report.Service
}

// NewCareLogHandler creates a new CareLogHandler.
func NewCareLogHandler(repos repositories.Repositories, reportSvc *report.Service) *CareLogHandler {
	return &CareLogHandler{Repos: repos, Report: reportSvc}
}

// ListEntries returns the caller's care log entries, newest first.
func (h *CareLogHandler) ListEntries(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	entries, err := h.Repos.CareLog().ListByPatient(c.Request.Context(), userID)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch care log: "+err.Error())
		return
	}

	utils.Success(c, "Care log fetched successfully", entries)
}

// ExportPDF renders the caller's care log as a PDF download.
func (h *CareLogHandler) ExportPDF(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	user, err := h.Repos.Users().GetByID(c.Request.Context(), userID)
	if err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	entries, err := h.Repos.CareLog().ListByPatient(c.Request.Context(), userID)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch care log: "+err.Error())
		return
	}

	pdfBytes, err := h.Report.BuildCareLogPDF(user.FullName(), entries)
	if err != nil {
		utils.InternalServerError(c, "Failed to build PDF: "+err.Error())
		return
	}

	fileName := fmt.Sprintf("bitacora_%s.pdf", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
