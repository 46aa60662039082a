package services

import (
	"context"

	"mobilityplus-server/internal/models"
)

// RegisterProfessionalInput carries the professional-only registration fields.
type RegisterProfessionalInput struct {
	SpecialtyID     string
	LicenseNumber   string
	YearsExperience int
	VisitPrice      float64
	ServicesOffered []string
}

// ProfessionalServiceContract governs professional discovery and availability.
type ProfessionalServiceContract interface {
	// RegisterAccount creates the user row and, for professionals, the profile
	// extension row in one transaction so the two can never drift. The input
	// pointer is nil for patient registrations.
	RegisterAccount(ctx context.Context, user *models.User, input *RegisterProfessionalInput) error
	GetProfile(ctx context.Context, userID string) (*models.ProfessionalProfile, error)
	SetAvailability(ctx context.Context, userID string, available bool) (*models.ProfessionalProfile, error)
	// ListAvailable returns only verified, currently-available professionals,
	// optionally filtered by specialty, best-rated first.
	ListAvailable(ctx context.Context, specialtyID string) ([]models.ProfessionalProfile, error)
	ListSpecialties(ctx context.Context) ([]models.Specialty, error)
	Earnings(ctx context.Context, userID string) (float64, error)
}
