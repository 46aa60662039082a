package repositories

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mobilityplus-server/internal/models"
)

// gormRepositories implements Repositories on a *gorm.DB. The same struct is
// reused inside Transact, bound to the transaction handle with inTx set:
// contended single-row reads then take SELECT ... FOR UPDATE locks, so
// read-modify-write sequences inside a transaction serialize on the row
// instead of racing on repeatable-read snapshots.
type gormRepositories struct {
	db   *gorm.DB
	inTx bool
}

// NewGormRepositories wraps a gorm connection in the Repositories bundle.
func NewGormRepositories(db *gorm.DB) Repositories {
	return &gormRepositories{db: db}
}

// forUpdate applies a FOR UPDATE lock when the bundle is transaction-bound.
// Outside a transaction the lock would be released immediately, so it is
// skipped there.
func forUpdate(query *gorm.DB, inTx bool) *gorm.DB {
	if inTx {
		return query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return query
}

func (r *gormRepositories) Users() UserRepositoryContract                 { return (*gormUserRepo)(r) }
func (r *gormRepositories) Professionals() ProfessionalRepositoryContract { return (*gormProfessionalRepo)(r) }
func (r *gormRepositories) Appointments() AppointmentRepositoryContract   { return (*gormAppointmentRepo)(r) }
func (r *gormRepositories) CareLog() CareLogRepositoryContract            { return (*gormCareLogRepo)(r) }
func (r *gormRepositories) Chats() ChatRepositoryContract                 { return (*gormChatRepo)(r) }
func (r *gormRepositories) Ratings() RatingRepositoryContract             { return (*gormRatingRepo)(r) }

func (r *gormRepositories) Transact(ctx context.Context, fn func(Repositories) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositories{db: tx, inTx: true})
	})
	return translateContention(err)
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// MySQL aborts one of two transactions fighting over the same rows with a
// deadlock (1213) or a lock wait timeout (1205).
func translateContention(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1213, 1205:
			return ErrConflict
		}
	}
	return err
}

// --- users ---

type gormUserRepo gormRepositories

func (r *gormUserRepo) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *gormUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

func (r *gormUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

func (r *gormUserRepo) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// --- professionals ---

type gormProfessionalRepo gormRepositories

func (r *gormProfessionalRepo) Create(ctx context.Context, profile *models.ProfessionalProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// GetByUserID locks the profile row inside a transaction; the rating
// aggregate's read-modify-write serializes on it.
func (r *gormProfessionalRepo) GetByUserID(ctx context.Context, userID string) (*models.ProfessionalProfile, error) {
	var profile models.ProfessionalProfile
	if err := forUpdate(r.db.WithContext(ctx), r.inTx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &profile, nil
}

func (r *gormProfessionalRepo) Update(ctx context.Context, profile *models.ProfessionalProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *gormProfessionalRepo) ListDiscoverable(ctx context.Context, specialtyID string) ([]models.ProfessionalProfile, error) {
	var profiles []models.ProfessionalProfile
	query := r.db.WithContext(ctx).
		Preload("User").
		Where("verification = ? AND available = ?", models.VerificationVerified, true).
		Order("rating desc")
	if specialtyID != "" {
		query = query.Where("specialty_id = ?", specialtyID)
	}
	if err := query.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *gormProfessionalRepo) ListSpecialties(ctx context.Context) ([]models.Specialty, error) {
	var specialties []models.Specialty
	if err := r.db.WithContext(ctx).Order("sort_order asc").Find(&specialties).Error; err != nil {
		return nil, err
	}
	return specialties, nil
}

// --- appointments ---

type gormAppointmentRepo gormRepositories

func (r *gormAppointmentRepo) Create(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

// GetByID locks the appointment row inside a transaction so racing status
// transitions (accept vs. cancel) decide a winner instead of both passing the
// legality check on a stale snapshot.
func (r *gormAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := forUpdate(r.db.WithContext(ctx), r.inTx).First(&appointment, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &appointment, nil
}

func (r *gormAppointmentRepo) Update(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Save(appointment).Error
}

func (r *gormAppointmentRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("scheduled_at asc").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *gormAppointmentRepo) ListByProfessional(ctx context.Context, professionalID string, statuses []models.AppointmentStatus) ([]models.Appointment, error) {
	var appointments []models.Appointment
	query := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Order("scheduled_at asc")
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if err := query.Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *gormAppointmentRepo) SumEarnings(ctx context.Context, professionalID string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("professional_id = ? AND status IN ?", professionalID,
			[]models.AppointmentStatus{models.StatusCompleted, models.StatusRated}).
		Select("COALESCE(SUM(price_snapshot), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// --- care log ---

type gormCareLogRepo gormRepositories

func (r *gormCareLogRepo) Create(ctx context.Context, entry *models.CareLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *gormCareLogRepo) ListByPatient(ctx context.Context, patientID string) ([]models.CareLogEntry, error) {
	var entries []models.CareLogEntry
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at desc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// --- chats ---

type gormChatRepo gormRepositories

// GetRoom locks the room row inside a transaction so concurrent sends cannot
// lose an unread-counter increment.
func (r *gormChatRepo) GetRoom(ctx context.Context, roomID string) (*models.ChatRoom, error) {
	var room models.ChatRoom
	if err := forUpdate(r.db.WithContext(ctx), r.inTx).First(&room, "id = ?", roomID).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &room, nil
}

func (r *gormChatRepo) CreateRoom(ctx context.Context, room *models.ChatRoom) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *gormChatRepo) UpdateRoom(ctx context.Context, room *models.ChatRoom) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *gormChatRepo) ListRoomsForUser(ctx context.Context, userID string) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	err := r.db.WithContext(ctx).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("last_updated_at desc").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *gormChatRepo) CreateMessage(ctx context.Context, message *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *gormChatRepo) ListMessages(ctx context.Context, roomID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// --- ratings ---

type gormRatingRepo gormRepositories

func (r *gormRatingRepo) Create(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *gormRatingRepo) ListByProfessional(ctx context.Context, professionalID string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Order("created_at desc").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}
