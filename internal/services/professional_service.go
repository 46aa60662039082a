package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mobilityplus-server/internal/models"
	"mobilityplus-server/internal/repositories"
)

// Compile-time check to ensure professionalService implements the contract.
var _ ProfessionalServiceContract = (*professionalService)(nil)

type professionalService struct {
	repos repositories.Repositories
}

// NewProfessionalService creates the availability and matching service.
func NewProfessionalService(repos repositories.Repositories) ProfessionalServiceContract {
	return &professionalService{repos: repos}
}

// RegisterAccount creates the user row and, for professionals, the profile
// extension row in one transaction so the two can never drift.
func (s *professionalService) RegisterAccount(ctx context.Context, user *models.User, input *RegisterProfessionalInput) error {
	if user.Role == models.RoleProfessional && input == nil {
		return fmt.Errorf("%w: professional registration requires profile details", ErrValidation)
	}
	err := s.repos.Transact(ctx, func(tx repositories.Repositories) error {
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		if user.Role != models.RoleProfessional {
			return nil
		}
		_, err := createProfileInTx(ctx, tx, user, *input)
		return err
	})
	if err != nil {
		return translateRepoError(err, "account")
	}
	return nil
}

// createProfileInTx validates the profile fields and writes the extension
// row. New profiles start unverified and unavailable; an operator flips
// verification. repos is the registration transaction's bundle.
func createProfileInTx(ctx context.Context, repos repositories.Repositories, user *models.User, input RegisterProfessionalInput) (*models.ProfessionalProfile, error) {
	if strings.TrimSpace(input.SpecialtyID) == "" {
		return nil, fmt.Errorf("%w: specialty is required", ErrValidation)
	}
	if strings.TrimSpace(input.LicenseNumber) == "" {
		return nil, fmt.Errorf("%w: license number is required", ErrValidation)
	}
	if input.VisitPrice <= 0 {
		return nil, fmt.Errorf("%w: visit price must be positive", ErrValidation)
	}
	if user.Role != models.RoleProfessional {
		return nil, fmt.Errorf("%w: user is not a professional", ErrForbidden)
	}

	specialtyName := ""
	specialties, err := repos.Professionals().ListSpecialties(ctx)
	if err != nil {
		return nil, err
	}
	for _, sp := range specialties {
		if sp.ID == input.SpecialtyID {
			specialtyName = sp.Name
			break
		}
	}
	if specialtyName == "" {
		return nil, fmt.Errorf("%w: specialty %q", ErrNotFound, input.SpecialtyID)
	}

	profile := &models.ProfessionalProfile{
		UserID:          user.ID,
		SpecialtyID:     input.SpecialtyID,
		SpecialtyName:   specialtyName,
		LicenseNumber:   input.LicenseNumber,
		YearsExperience: input.YearsExperience,
		VisitPrice:      input.VisitPrice,
		ServicesOffered: input.ServicesOffered,
		Verification:    models.VerificationPending,
		Available:       false,
	}
	if err := repos.Professionals().Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *professionalService) GetProfile(ctx context.Context, userID string) (*models.ProfessionalProfile, error) {
	profile, err := s.repos.Professionals().GetByUserID(ctx, userID)
	if err != nil {
		return nil, translateRepoError(err, "professional profile")
	}
	return profile, nil
}

// SetAvailability persists the professional's availability flag.
func (s *professionalService) SetAvailability(ctx context.Context, userID string, available bool) (*models.ProfessionalProfile, error) {
	profile, err := s.repos.Professionals().GetByUserID(ctx, userID)
	if err != nil {
		return nil, translateRepoError(err, "professional profile")
	}
	profile.Available = available
	if err := s.repos.Professionals().Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *professionalService) ListAvailable(ctx context.Context, specialtyID string) ([]models.ProfessionalProfile, error) {
	return s.repos.Professionals().ListDiscoverable(ctx, specialtyID)
}

func (s *professionalService) ListSpecialties(ctx context.Context) ([]models.Specialty, error) {
	return s.repos.Professionals().ListSpecialties(ctx)
}

// Earnings totals the price snapshots of the professional's finished services.
func (s *professionalService) Earnings(ctx context.Context, userID string) (float64, error) {
	if _, err := s.repos.Professionals().GetByUserID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, fmt.Errorf("%w: professional profile", ErrNotFound)
		}
		return 0, err
	}
	return s.repos.Appointments().SumEarnings(ctx, userID)
}
