package services

import (
	"context"

	"mobilityplus-server/internal/models"
)

// SubmitRatingInput carries a patient's review of a completed service.
type SubmitRatingInput struct {
	AppointmentID string
	PatientID     string
	Score         int
	Comment       string
}

// RatingServiceContract owns the rating aggregation transaction.
type RatingServiceContract interface {
	// Submit records the rating, recomputes the professional's running
	// average and review count, and flips the appointment to "calificada",
	// all inside one storage transaction.
	Submit(ctx context.Context, input SubmitRatingInput) (*models.Rating, error)
	ListForProfessional(ctx context.Context, professionalID string) ([]models.Rating, error)
}
