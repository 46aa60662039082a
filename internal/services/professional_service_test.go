package services

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"mobilityplus-server/internal/models"
	"mobilityplus-server/internal/repositories"
)

func professionalFixture() (*MockRepositories, *models.ProfessionalProfile) {
	profile := testProfile()
	profile.Available = false

	repos := &MockRepositories{}
	repos.ProfessionalRepo.GetByUserIDFunc = func(ctx context.Context, userID string) (*models.ProfessionalProfile, error) {
		if userID != profile.UserID {
			return nil, repositories.ErrNotFound
		}
		copied := *profile
		return &copied, nil
	}
	repos.ProfessionalRepo.UpdateFunc = func(ctx context.Context, p *models.ProfessionalProfile) error {
		*profile = *p
		return nil
	}
	repos.ProfessionalRepo.ListSpecialtiesFunc = func(ctx context.Context) ([]models.Specialty, error) {
		return []models.Specialty{
			{ID: "geriatria", Name: "Geriatría", SortOrder: 1},
			{ID: "enfermeria", Name: "Enfermería", SortOrder: 2},
		}, nil
	}
	return repos, profile
}

func registerInput() RegisterProfessionalInput {
	return RegisterProfessionalInput{
		SpecialtyID:     "enfermeria",
		LicenseNumber:   "CED-123456",
		YearsExperience: 5,
		VisitPrice:      400,
		ServicesOffered: []string{"Inyecciones"},
	}
}

func TestRegisterAccount_Validation(t *testing.T) {
	repos, _ := professionalFixture()
	var userCreated bool
	repos.UserRepo.CreateFunc = func(ctx context.Context, u *models.User) error {
		userCreated = true
		return nil
	}
	repos.TransactFunc = func(ctx context.Context, fn func(repositories.Repositories) error) error {
		if err := fn(repos); err != nil {
			userCreated = false
			return err
		}
		return nil
	}
	svc := NewProfessionalService(repos)

	tests := []struct {
		name   string
		mutate func(*RegisterProfessionalInput)
	}{
		{"missing specialty", func(in *RegisterProfessionalInput) { in.SpecialtyID = " " }},
		{"missing license", func(in *RegisterProfessionalInput) { in.LicenseNumber = "" }},
		{"zero price", func(in *RegisterProfessionalInput) { in.VisitPrice = 0 }},
		{"negative price", func(in *RegisterProfessionalInput) { in.VisitPrice = -10 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := registerInput()
			tt.mutate(&input)
			user := &models.User{Role: models.RoleProfessional}
			err := svc.RegisterAccount(context.Background(), user, &input)
			assert.ErrorIs(t, err, ErrValidation)
			assert.False(t, userCreated, "user row must not survive rejected profile fields")
		})
	}
}

func TestRegisterAccount_PatientCreatesUserOnly(t *testing.T) {
	repos, _ := professionalFixture()
	var createdUser *models.User
	repos.UserRepo.CreateFunc = func(ctx context.Context, u *models.User) error {
		createdUser = u
		return nil
	}
	var profileCreated bool
	repos.ProfessionalRepo.CreateFunc = func(ctx context.Context, p *models.ProfessionalProfile) error {
		profileCreated = true
		return nil
	}
	svc := NewProfessionalService(repos)

	user := &models.User{FirstName: "Viviana", LastName: "Rojas", Role: models.RolePatient}
	err := svc.RegisterAccount(context.Background(), user, nil)

	assert.NoError(t, err)
	assert.Equal(t, user, createdUser)
	assert.False(t, profileCreated)
}

func TestRegisterAccount_ProfessionalCreatesBothInOneTransaction(t *testing.T) {
	repos, _ := professionalFixture()
	var createdUser *models.User
	repos.UserRepo.CreateFunc = func(ctx context.Context, u *models.User) error {
		u.ID = testProfessionalID
		createdUser = u
		return nil
	}
	var createdProfile *models.ProfessionalProfile
	repos.ProfessionalRepo.CreateFunc = func(ctx context.Context, p *models.ProfessionalProfile) error {
		createdProfile = p
		return nil
	}
	var transactions int
	repos.TransactFunc = func(ctx context.Context, fn func(repositories.Repositories) error) error {
		transactions++
		return fn(repos)
	}
	svc := NewProfessionalService(repos)

	user := &models.User{FirstName: "Carla", LastName: "Mendez", Role: models.RoleProfessional}
	input := registerInput()
	err := svc.RegisterAccount(context.Background(), user, &input)

	assert.NoError(t, err)
	assert.Equal(t, 1, transactions, "user and profile share one transaction")
	assert.NotNil(t, createdUser)
	if assert.NotNil(t, createdProfile) {
		assert.Equal(t, testProfessionalID, createdProfile.UserID)
		assert.Equal(t, "Enfermería", createdProfile.SpecialtyName)
		assert.Equal(t, models.VerificationPending, createdProfile.Verification)
		assert.False(t, createdProfile.Available)
	}
}

func TestRegisterAccount_ProfessionalRequiresProfileInput(t *testing.T) {
	repos, _ := professionalFixture()
	svc := NewProfessionalService(repos)

	user := &models.User{Role: models.RoleProfessional}
	err := svc.RegisterAccount(context.Background(), user, nil)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegisterAccount_UnknownSpecialtyAborts(t *testing.T) {
	repos, _ := professionalFixture()
	var userCreated bool
	repos.UserRepo.CreateFunc = func(ctx context.Context, u *models.User) error {
		userCreated = true
		return nil
	}
	// Emulate the storage transaction: the user write is discarded when the
	// closure fails.
	repos.TransactFunc = func(ctx context.Context, fn func(repositories.Repositories) error) error {
		if err := fn(repos); err != nil {
			userCreated = false
			return err
		}
		return nil
	}
	svc := NewProfessionalService(repos)

	user := &models.User{Role: models.RoleProfessional}
	input := registerInput()
	input.SpecialtyID = "astrologia"
	err := svc.RegisterAccount(context.Background(), user, &input)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, userCreated, "user row must not survive a failed profile write")
}

func TestRegisterAccount_ContentionSurfacesAsConflict(t *testing.T) {
	repos, _ := professionalFixture()
	repos.TransactFunc = func(ctx context.Context, fn func(repositories.Repositories) error) error {
		return repositories.ErrConflict
	}
	svc := NewProfessionalService(repos)

	err := svc.RegisterAccount(context.Background(), &models.User{Role: models.RolePatient}, nil)

	assert.ErrorIs(t, err, ErrConflict)
}

func TestSetAvailability_PersistsFlag(t *testing.T) {
	repos, profile := professionalFixture()
	svc := NewProfessionalService(repos)

	updated, err := svc.SetAvailability(context.Background(), testProfessionalID, true)
	assert.NoError(t, err)
	assert.True(t, updated.Available)
	assert.True(t, profile.Available)

	updated, err = svc.SetAvailability(context.Background(), testProfessionalID, false)
	assert.NoError(t, err)
	assert.False(t, updated.Available)
	assert.False(t, profile.Available)

	assert.Equal(t, int32(2), atomic.LoadInt32(&repos.ProfessionalRepo.UpdateCallCount))
}

func TestSetAvailability_UnknownProfile(t *testing.T) {
	repos, _ := professionalFixture()
	svc := NewProfessionalService(repos)

	_, err := svc.SetAvailability(context.Background(), "nobody", true)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAvailable_ForwardsSpecialtyFilter(t *testing.T) {
	repos, _ := professionalFixture()
	var gotFilter string
	repos.ProfessionalRepo.ListDiscoverableFunc = func(ctx context.Context, specialtyID string) ([]models.ProfessionalProfile, error) {
		gotFilter = specialtyID
		return []models.ProfessionalProfile{*testProfile()}, nil
	}
	svc := NewProfessionalService(repos)

	results, err := svc.ListAvailable(context.Background(), "geriatria")

	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "geriatria", gotFilter)
}

func TestEarnings_SumsFinishedServices(t *testing.T) {
	repos, _ := professionalFixture()
	repos.AppointmentRepo.SumEarningsFunc = func(ctx context.Context, professionalID string) (float64, error) {
		assert.Equal(t, testProfessionalID, professionalID)
		return 1050, nil
	}
	svc := NewProfessionalService(repos)

	total, err := svc.Earnings(context.Background(), testProfessionalID)

	assert.NoError(t, err)
	assert.Equal(t, 1050.0, total)
}

func TestEarnings_RequiresProfile(t *testing.T) {
	repos, _ := professionalFixture()
	svc := NewProfessionalService(repos)

	_, err := svc.Earnings(context.Background(), "nobody")

	assert.ErrorIs(t, err, ErrNotFound)
}
