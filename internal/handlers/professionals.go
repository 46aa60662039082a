package handlers

import (
	"github.com/gin-gonic/gin"

	"mobilityplus-server/internal/middleware"
	"mobilityplus-server/internal/services"
	"mobilityplus-server/internal/utils"
)

// ProfessionalHandler handles professional discovery and availability.
type ProfessionalHandler struct {
	Professionals services.ProfessionalServiceContract
	Ratings       services.RatingServiceContract
}

// NewProfessionalHandler creates a new ProfessionalHandler.
func NewProfessionalHandler(professionals services.ProfessionalServiceContract, ratings services.RatingServiceContract) *ProfessionalHandler {
	return &ProfessionalHandler{Professionals: professionals, Ratings: ratings}
}

// ListSpecialties returns the ordered specialty reference data.
func (h *ProfessionalHandler) ListSpecialties(c *gin.Context) {
	specialties, err := h.Professionals.ListSpecialties(c.Request.Context())
	if err != nil {
		utils.ServiceError(c, err)
		return
	}
	utils.Success(c, "Specialties fetched successfully", specialties)
}

// ListAvailable returns verified, currently-available professionals, best
// rated first, optionally filtered by ?specialty=.
func (h *ProfessionalHandler) ListAvailable(c *gin.Context) {
	profiles, err := h.Professionals.ListAvailable(c.Request.Context(), c.Query("specialty"))
	if err != nil {
		utils.ServiceError(c, err)
		return
	}
	utils.Success(c, "Professionals fetched successfully", profiles)
}

// GetProfessional returns one professional profile with its reviews.
func (h *ProfessionalHandler) GetProfessional(c *gin.Context) {
	profile, err := h.Professionals.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ServiceError(c, err)
		return
	}
	ratings, err := h.Ratings.ListForProfessional(c.Request.Context(), profile.UserID)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}
	utils.Success(c, "Professional fetched successfully", gin.H{
		"profile": profile,
		"reviews": ratings,
	})
}

// SetAvailabilityRequest represents the availability toggle body.
type SetAvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// SetAvailability toggles the authenticated professional's availability flag.
func (h *ProfessionalHandler) SetAvailability(c *gin.Context) {
	var req SetAvailabilityRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	profile, err := h.Professionals.SetAvailability(c.Request.Context(), userID, *req.Available)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Availability updated successfully", profile)
}

// GetEarnings totals the authenticated professional's finished services.
// Withdrawal itself is not implemented; the balance is informational.
func (h *ProfessionalHandler) GetEarnings(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	total, err := h.Professionals.Earnings(c.Request.Context(), userID)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Earnings fetched successfully", gin.H{"total": total})
}
