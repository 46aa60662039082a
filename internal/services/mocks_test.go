package services

import (
	"context"
	"errors"
	"sync/atomic"

	"mobilityplus-server/internal/models"
	"mobilityplus-server/internal/realtime"
	"mobilityplus-server/internal/repositories"
)

// --- MockUserRepository ---
// Compile-time check to ensure MockUserRepository implements UserRepositoryContract
var _ repositories.UserRepositoryContract = (*MockUserRepository)(nil)

type MockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *models.User) error
	GetByIDFunc     func(ctx context.Context, id string) (*models.User, error)
	FindByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	UpdateFunc      func(ctx context.Context, user *models.User) error
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.New("GetByIDFunc not implemented in mock")
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, errors.New("FindByEmailFunc not implemented in mock")
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

// --- MockProfessionalRepository ---
var _ repositories.ProfessionalRepositoryContract = (*MockProfessionalRepository)(nil)

type MockProfessionalRepository struct {
	CreateFunc           func(ctx context.Context, profile *models.ProfessionalProfile) error
	GetByUserIDFunc      func(ctx context.Context, userID string) (*models.ProfessionalProfile, error)
	UpdateFunc           func(ctx context.Context, profile *models.ProfessionalProfile) error
	ListDiscoverableFunc func(ctx context.Context, specialtyID string) ([]models.ProfessionalProfile, error)
	ListSpecialtiesFunc  func(ctx context.Context) ([]models.Specialty, error)

	UpdateCallCount int32
}

func (m *MockProfessionalRepository) Create(ctx context.Context, profile *models.ProfessionalProfile) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, profile)
	}
	return nil
}

func (m *MockProfessionalRepository) GetByUserID(ctx context.Context, userID string) (*models.ProfessionalProfile, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, errors.New("GetByUserIDFunc not implemented in mock")
}

func (m *MockProfessionalRepository) Update(ctx context.Context, profile *models.ProfessionalProfile) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, profile)
	}
	return nil
}

func (m *MockProfessionalRepository) ListDiscoverable(ctx context.Context, specialtyID string) ([]models.ProfessionalProfile, error) {
	if m.ListDiscoverableFunc != nil {
		return m.ListDiscoverableFunc(ctx, specialtyID)
	}
	return nil, nil
}

func (m *MockProfessionalRepository) ListSpecialties(ctx context.Context) ([]models.Specialty, error) {
	if m.ListSpecialtiesFunc != nil {
		return m.ListSpecialtiesFunc(ctx)
	}
	return nil, nil
}

// --- MockAppointmentRepository ---
var _ repositories.AppointmentRepositoryContract = (*MockAppointmentRepository)(nil)

type MockAppointmentRepository struct {
	CreateFunc             func(ctx context.Context, appointment *models.Appointment) error
	GetByIDFunc            func(ctx context.Context, id string) (*models.Appointment, error)
	UpdateFunc             func(ctx context.Context, appointment *models.Appointment) error
	ListByPatientFunc      func(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListByProfessionalFunc func(ctx context.Context, professionalID string, statuses []models.AppointmentStatus) ([]models.Appointment, error)
	SumEarningsFunc        func(ctx context.Context, professionalID string) (float64, error)

	UpdateCallCount int32
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, appointment)
	}
	return nil
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.New("GetByIDFunc not implemented in mock")
}

func (m *MockAppointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, appointment)
	}
	return nil
}

func (m *MockAppointmentRepository) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	if m.ListByPatientFunc != nil {
		return m.ListByPatientFunc(ctx, patientID)
	}
	return nil, nil
}

func (m *MockAppointmentRepository) ListByProfessional(ctx context.Context, professionalID string, statuses []models.AppointmentStatus) ([]models.Appointment, error) {
	if m.ListByProfessionalFunc != nil {
		return m.ListByProfessionalFunc(ctx, professionalID, statuses)
	}
	return nil, nil
}

func (m *MockAppointmentRepository) SumEarnings(ctx context.Context, professionalID string) (float64, error) {
	if m.SumEarningsFunc != nil {
		return m.SumEarningsFunc(ctx, professionalID)
	}
	return 0, nil
}

// --- MockCareLogRepository ---
var _ repositories.CareLogRepositoryContract = (*MockCareLogRepository)(nil)

type MockCareLogRepository struct {
	CreateFunc        func(ctx context.Context, entry *models.CareLogEntry) error
	ListByPatientFunc func(ctx context.Context, patientID string) ([]models.CareLogEntry, error)

	CreateCallCount int32
}

func (m *MockCareLogRepository) Create(ctx context.Context, entry *models.CareLogEntry) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	return nil
}

func (m *MockCareLogRepository) ListByPatient(ctx context.Context, patientID string) ([]models.CareLogEntry, error) {
	if m.ListByPatientFunc != nil {
		return m.ListByPatientFunc(ctx, patientID)
	}
	return nil, nil
}

// --- MockChatRepository ---
var _ repositories.ChatRepositoryContract = (*MockChatRepository)(nil)

type MockChatRepository struct {
	GetRoomFunc          func(ctx context.Context, roomID string) (*models.ChatRoom, error)
	CreateRoomFunc       func(ctx context.Context, room *models.ChatRoom) error
	UpdateRoomFunc       func(ctx context.Context, room *models.ChatRoom) error
	ListRoomsForUserFunc func(ctx context.Context, userID string) ([]models.ChatRoom, error)
	CreateMessageFunc    func(ctx context.Context, message *models.ChatMessage) error
	ListMessagesFunc     func(ctx context.Context, roomID string) ([]models.ChatMessage, error)

	CreateRoomCallCount    int32
	CreateMessageCallCount int32
}

func (m *MockChatRepository) GetRoom(ctx context.Context, roomID string) (*models.ChatRoom, error) {
	if m.GetRoomFunc != nil {
		return m.GetRoomFunc(ctx, roomID)
	}
	return nil, repositories.ErrNotFound
}

func (m *MockChatRepository) CreateRoom(ctx context.Context, room *models.ChatRoom) error {
	atomic.AddInt32(&m.CreateRoomCallCount, 1)
	if m.CreateRoomFunc != nil {
		return m.CreateRoomFunc(ctx, room)
	}
	return nil
}

func (m *MockChatRepository) UpdateRoom(ctx context.Context, room *models.ChatRoom) error {
	if m.UpdateRoomFunc != nil {
		return m.UpdateRoomFunc(ctx, room)
	}
	return nil
}

func (m *MockChatRepository) ListRoomsForUser(ctx context.Context, userID string) ([]models.ChatRoom, error) {
	if m.ListRoomsForUserFunc != nil {
		return m.ListRoomsForUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockChatRepository) CreateMessage(ctx context.Context, message *models.ChatMessage) error {
	atomic.AddInt32(&m.CreateMessageCallCount, 1)
	if m.CreateMessageFunc != nil {
		return m.CreateMessageFunc(ctx, message)
	}
	return nil
}

func (m *MockChatRepository) ListMessages(ctx context.Context, roomID string) ([]models.ChatMessage, error) {
	if m.ListMessagesFunc != nil {
		return m.ListMessagesFunc(ctx, roomID)
	}
	return nil, nil
}

// --- MockRatingRepository ---
var _ repositories.RatingRepositoryContract = (*MockRatingRepository)(nil)

type MockRatingRepository struct {
	CreateFunc             func(ctx context.Context, rating *models.Rating) error
	ListByProfessionalFunc func(ctx context.Context, professionalID string) ([]models.Rating, error)

	CreateCallCount int32
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *models.Rating) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rating)
	}
	return nil
}

func (m *MockRatingRepository) ListByProfessional(ctx context.Context, professionalID string) ([]models.Rating, error) {
	if m.ListByProfessionalFunc != nil {
		return m.ListByProfessionalFunc(ctx, professionalID)
	}
	return nil, nil
}

// --- MockRepositories ---
// Compile-time check to ensure MockRepositories implements Repositories
var _ repositories.Repositories = (*MockRepositories)(nil)

// MockRepositories bundles the mock repos. Transact runs the closure against
// the same bundle by default; set TransactFunc to simulate an aborted
// transaction.
type MockRepositories struct {
	UserRepo         MockUserRepository
	ProfessionalRepo MockProfessionalRepository
	AppointmentRepo  MockAppointmentRepository
	CareLogRepo      MockCareLogRepository
	ChatRepo         MockChatRepository
	RatingRepo       MockRatingRepository

	TransactFunc func(ctx context.Context, fn func(repositories.Repositories) error) error
}

func (m *MockRepositories) Users() repositories.UserRepositoryContract { return &m.UserRepo }
func (m *MockRepositories) Professionals() repositories.ProfessionalRepositoryContract {
	return &m.ProfessionalRepo
}
func (m *MockRepositories) Appointments() repositories.AppointmentRepositoryContract {
	return &m.AppointmentRepo
}
func (m *MockRepositories) CareLog() repositories.CareLogRepositoryContract { return &m.CareLogRepo }
func (m *MockRepositories) Chats() repositories.ChatRepositoryContract      { return &m.ChatRepo }
func (m *MockRepositories) Ratings() repositories.RatingRepositoryContract  { return &m.RatingRepo }

func (m *MockRepositories) Transact(ctx context.Context, fn func(repositories.Repositories) error) error {
	if m.TransactFunc != nil {
		return m.TransactFunc(ctx, fn)
	}
	return fn(m)
}

// --- MockPublisher ---
var _ EventPublisher = (*MockPublisher)(nil)

type MockPublisher struct {
	Events []struct {
		UserID string
		Event  realtime.Event
	}
}

func (m *MockPublisher) Publish(userID string, event realtime.Event) {
	m.Events = append(m.Events, struct {
		UserID string
		Event  realtime.Event
	}{userID, event})
}
