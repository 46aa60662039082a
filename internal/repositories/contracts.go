package repositories

import (
	"context"
	"errors"

	"mobilityplus-server/internal/models"
)

// ErrNotFound is returned by repositories when the requested record is absent.
// Implementations translate their driver's not-found error into this one so
// services never depend on the storage engine.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when the storage engine aborts a transaction over
// lock contention. The losing transaction is rolled back; callers may retry.
var ErrConflict = errors.New("transaction aborted by lock contention")

// UserRepositoryContract defines persistence operations for users.
type UserRepositoryContract interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// ProfessionalRepositoryContract defines persistence operations for
// professional profiles and the specialty reference data.
type ProfessionalRepositoryContract interface {
	Create(ctx context.Context, profile *models.ProfessionalProfile) error
	GetByUserID(ctx context.Context, userID string) (*models.ProfessionalProfile, error)
	Update(ctx context.Context, profile *models.ProfessionalProfile) error
	// ListDiscoverable returns verified and available profiles, optionally
	// filtered by specialty ("" for all), ordered by rating descending.
	ListDiscoverable(ctx context.Context, specialtyID string) ([]models.ProfessionalProfile, error)
	ListSpecialties(ctx context.Context) ([]models.Specialty, error)
}

// AppointmentRepositoryContract defines persistence operations for appointments.
type AppointmentRepositoryContract interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	Update(ctx context.Context, appointment *models.Appointment) error
	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	// ListByProfessional optionally filters by status set (nil for all),
	// ordered by scheduled time ascending.
	ListByProfessional(ctx context.Context, professionalID string, statuses []models.AppointmentStatus) ([]models.Appointment, error)
	// SumEarnings totals the price snapshots of the professional's finished
	// (completed or rated) appointments.
	SumEarnings(ctx context.Context, professionalID string) (float64, error)
}

// CareLogRepositoryContract defines persistence operations for care log entries.
type CareLogRepositoryContract interface {
	Create(ctx context.Context, entry *models.CareLogEntry) error
	ListByPatient(ctx context.Context, patientID string) ([]models.CareLogEntry, error)
}

// ChatRepositoryContract defines persistence operations for chat rooms and messages.
type ChatRepositoryContract interface {
	GetRoom(ctx context.Context, roomID string) (*models.ChatRoom, error)
	CreateRoom(ctx context.Context, room *models.ChatRoom) error
	UpdateRoom(ctx context.Context, room *models.ChatRoom) error
	ListRoomsForUser(ctx context.Context, userID string) ([]models.ChatRoom, error)
	CreateMessage(ctx context.Context, message *models.ChatMessage) error
	ListMessages(ctx context.Context, roomID string) ([]models.ChatMessage, error)
}

// RatingRepositoryContract defines persistence operations for rating records.
type RatingRepositoryContract interface {
	Create(ctx context.Context, rating *models.Rating) error
	ListByProfessional(ctx context.Context, professionalID string) ([]models.Rating, error)
}

// Repositories bundles every repository contract behind one handle.
// Transact runs fn against a bundle bound to a single storage transaction;
// returning an error rolls every write back.
type Repositories interface {
	Users() UserRepositoryContract
	Professionals() ProfessionalRepositoryContract
	Appointments() AppointmentRepositoryContract
	CareLog() CareLogRepositoryContract
	Chats() ChatRepositoryContract
	Ratings() RatingRepositoryContract
	Transact(ctx context.Context, fn func(Repositories) error) error
}
