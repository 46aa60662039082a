package services

import (
	"context"
	"time"

	"mobilityplus-server/internal/models"
)

// CreateAppointmentInput carries everything a patient supplies when booking.
// Price and display names are snapshotted server-side, never trusted from the
// client.
type CreateAppointmentInput struct {
	PatientID      string
	ProfessionalID string
	ServiceType    string
	Address        string
	Latitude       *float64
	Longitude      *float64
	ScheduledAt    time.Time
	Notes          string
}

// TransitionInput identifies one status-machine step. Notes are required
// clinical notes when the target is "completada"; for any other target they
// are an optional remark (e.g. a rejection reason) stored on the appointment.
type TransitionInput struct {
	AppointmentID string
	ActorID       string
	ActorRole     models.Role
	Target        models.AppointmentStatus
	Notes         string
}

// AppointmentServiceContract is the appointment lifecycle state machine.
type AppointmentServiceContract interface {
	Create(ctx context.Context, input CreateAppointmentInput) (*models.Appointment, error)
	Transition(ctx context.Context, input TransitionInput) (*models.Appointment, error)
	GetForUser(ctx context.Context, appointmentID, userID string) (*models.Appointment, error)
	ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListForProfessional(ctx context.Context, professionalID string, statuses []models.AppointmentStatus) ([]models.Appointment, error)
}
