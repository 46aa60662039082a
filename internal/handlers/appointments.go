package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"mobilityplus-server/internal/middleware"
	"mobilityplus-server/internal/models"
	"mobilityplus-server/internal/services"
	"mobilityplus-server/internal/utils"
)

// AppointmentHandler handles appointment lifecycle requests.
type AppointmentHandler struct {
	Appointments services.AppointmentServiceContract
	Ratings      services.RatingServiceContract
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(appointments services.AppointmentServiceContract, ratings services.RatingServiceContract) *AppointmentHandler {
	return &AppointmentHandler{Appointments: appointments, Ratings: ratings}
}

// CreateAppointmentRequest represents the request body for booking.
type CreateAppointmentRequest struct {
	ProfessionalID string    `json:"professionalId" binding:"required"`
	ServiceType    string    `json:"serviceType" binding:"required"`
	Address        string    `json:"address" binding:"required"`
	Latitude       *float64  `json:"latitude"`
	Longitude      *float64  `json:"longitude"`
	ScheduledAt    time.Time `json:"scheduledAt" binding:"required"`
	Notes          string    `json:"notes"`
}

// appointmentView adds the derived display string to an appointment payload.
func appointmentView(a *models.Appointment) gin.H {
	return gin.H{
		"appointment":     a,
		"scheduleDisplay": a.ScheduleDisplay(),
	}
}

// CreateAppointment books a new appointment for the authenticated patient.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if req.ScheduledAt.Before(time.Now()) {
		utils.BadRequest(c, "Appointment date must be in the future.")
		return
	}

	appointment, err := h.Appointments.Create(c.Request.Context(), services.CreateAppointmentInput{
		PatientID:      patientID,
		ProfessionalID: req.ProfessionalID,
		ServiceType:    req.ServiceType,
		Address:        req.Address,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		ScheduledAt:    req.ScheduledAt,
		Notes:          req.Notes,
	})
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Created(c, "Appointment created successfully", appointmentView(appointment))
}

// GetAppointmentsForUser fetches appointments for the logged-in user.
// Professionals may narrow by status (?status=pendiente&status=aceptada).
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	var (
		appointments []models.Appointment
		err          error
	)
	switch userRole {
	case models.RoleProfessional:
		var statuses []models.AppointmentStatus
		for _, s := range c.QueryArray("status") {
			status := models.AppointmentStatus(s)
			if !status.Valid() {
				utils.BadRequest(c, "Unknown status filter: "+s)
				return
			}
			statuses = append(statuses, status)
		}
		appointments, err = h.Appointments.ListForProfessional(c.Request.Context(), userID, statuses)
	case models.RolePatient:
		appointments, err = h.Appointments.ListForPatient(c.Request.Context(), userID)
	default:
		utils.Forbidden(c, "User role not permitted to view appointments this way.")
		return
	}
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID fetches a single appointment, restricted to participants.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	appointment, err := h.Appointments.GetForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointmentView(appointment))
}

// UpdateAppointmentStatusRequest represents a state-machine step. Notes carry
// the mandatory clinical notes when the target is "completada".
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required"`
	Notes  string                   `json:"notes"`
}

// UpdateAppointmentStatus drives the appointment state machine. Ownership,
// role gating and edge legality are enforced by the service inside one
// transaction.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	appointment, err := h.Appointments.Transition(c.Request.Context(), services.TransitionInput{
		AppointmentID: c.Param("id"),
		ActorID:       userID,
		ActorRole:     userRole,
		Target:        req.Status,
		Notes:         req.Notes,
	})
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Appointment status updated successfully", appointmentView(appointment))
}

// SubmitRatingRequest represents the request body for rating a completed service.
type SubmitRatingRequest struct {
	Score   int    `json:"score" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

// SubmitRating records the patient's review and updates the professional's
// aggregate in one transaction.
func (h *AppointmentHandler) SubmitRating(c *gin.Context) {
	var req SubmitRatingRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patientID, _ := middleware.GetUserIDFromContext(c)

	rating, err := h.Ratings.Submit(c.Request.Context(), services.SubmitRatingInput{
		AppointmentID: c.Param("id"),
		PatientID:     patientID,
		Score:         req.Score,
		Comment:       req.Comment,
	})
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Created(c, "Rating submitted successfully", rating)
}
