package storage

import (
	"context"
	"errors"

	"nextcut/internal/apperr"
	"nextcut/internal/geo"
	"nextcut/internal/models"

	"gorm.io/gorm"
)

type gormUsersRepository struct {
	db *gorm.DB
}

// NewUsersRepository creates a UsersRepository backed by db.
func NewUsersRepository(db *gorm.DB) UsersRepository {
	return &gormUsersRepository{db: db}
}

func (r *gormUsersRepository) CreateUser(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil && isDuplicate(err) {
		return apperr.Wrap(apperr.Conflict, "USER_EXISTS", "a user with this email or phone number already exists", err)
	}
	return translate("CreateUser", err)
}

// GetUserByID returns the user, or (nil, nil) if not found.
func (r *gormUsersRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return firstUser(r.db.WithContext(ctx).Where("id = ?", id), "GetUserByID")
}

func (r *gormUsersRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return firstUser(r.db.WithContext(ctx).Where("email = ?", email), "GetUserByEmail")
}

func (r *gormUsersRepository) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	return firstUser(r.db.WithContext(ctx).Where("phone_number = ?", phone), "GetUserByPhone")
}

func firstUser(q *gorm.DB, op string) (*models.User, error) {
	var user models.User
	err := q.First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(op, err)
	}
	return &user, nil
}

type gormBarbersRepository struct {
	db *gorm.DB
}

// NewBarbersRepository creates a BarbersRepository backed by db.
func NewBarbersRepository(db *gorm.DB) BarbersRepository {
	return &gormBarbersRepository{db: db}
}

func (r *gormBarbersRepository) CreateBarber(ctx context.Context, barber *models.Barber) error {
	err := r.db.WithContext(ctx).Omit("QueueEntries").Create(barber).Error
	if err != nil && isDuplicate(err) {
		return apperr.Wrap(apperr.Conflict, "USERNAME_EXISTS", "username already exists", err)
	}
	return translate("CreateBarber", err)
}

// GetBarberByID returns the barber, or (nil, nil) if not found.
func (r *gormBarbersRepository) GetBarberByID(ctx context.Context, id uint) (*models.Barber, error) {
	return firstBarber(r.db.WithContext(ctx).Where("id = ?", id), "GetBarberByID")
}

func (r *gormBarbersRepository) GetBarberByUsername(ctx context.Context, username string) (*models.Barber, error) {
	return firstBarber(r.db.WithContext(ctx).Where("username = ?", username), "GetBarberByUsername")
}

func firstBarber(q *gorm.DB, op string) (*models.Barber, error) {
	var barber models.Barber
	err := q.First(&barber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(op, err)
	}
	return &barber, nil
}

func (r *gormBarbersRepository) FindBarbersInBox(ctx context.Context, box geo.Box) ([]models.Barber, error) {
	q := r.db.WithContext(ctx).
		Preload("QueueEntries", func(db *gorm.DB) *gorm.DB {
			return db.Order("entered_at ASC, id ASC")
		}).
		Where("lat BETWEEN ? AND ?", box.MinLat, box.MaxLat)
	if box.FiltersLongitude() {
		q = q.Where("lon BETWEEN ? AND ?", box.MinLon, box.MaxLon)
	}

	var barbers []models.Barber
	if err := q.Find(&barbers).Error; err != nil {
		return nil, translate("FindBarbersInBox", err)
	}
	return barbers, nil
}
