package logins

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/profilespot-backend/internal/repo"
	"github.com/angelmondragon/profilespot-backend/pkg/db/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no login matches the lookup.
var ErrNotFound = errors.New("login not found")

// Repository persists login credentials.
type Repository struct {
	repo.Base
}

// NewRepository constructs a logins repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) GetByID(ctx context.Context, id int) (*models.UserLogin, error) {
	return r.first(ctx, "login_id = ?", id)
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (*models.UserLogin, error) {
	return r.first(ctx, "username = ?", username)
}

// GetByUserID returns the first login owned by the profile.
func (r *Repository) GetByUserID(ctx context.Context, userID int) (*models.UserLogin, error) {
	return r.first(ctx, "user_id = ?", userID)
}

// GetByUsernameAndPassword matches both fields exactly. A miss yields
// (nil, nil); only store failures are errors.
func (r *Repository) GetByUsernameAndPassword(ctx context.Context, username, password string) (*models.UserLogin, error) {
	login, err := r.first(ctx, "username = ? AND password = ?", username, password)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return login, err
}

func (r *Repository) GetAll(ctx context.Context) ([]models.UserLogin, error) {
	logins := []models.UserLogin{}
	if err := r.DB(ctx).Order("login_id").Find(&logins).Error; err != nil {
		return nil, err
	}
	return logins, nil
}

// Add inserts login and returns the generated id.
func (r *Repository) Add(ctx context.Context, login *models.UserLogin) (int, error) {
	login.LoginID = 0
	if err := r.DB(ctx).Create(login).Error; err != nil {
		return 0, err
	}
	return login.LoginID, nil
}

// Update overwrites every column of the stored login. Last writer wins.
func (r *Repository) Update(ctx context.Context, login *models.UserLogin) error {
	if _, err := r.GetByID(ctx, login.LoginID); err != nil {
		return err
	}
	return r.DB(ctx).
		Model(&models.UserLogin{}).
		Where("login_id = ?", login.LoginID).
		Updates(map[string]any{
			"user_id":    login.UserID,
			"username":   login.Username,
			"password":   login.Password,
			"last_login": login.LastLogin,
		}).Error
}

// UpdateLastLogin stamps a successful authentication.
func (r *Repository) UpdateLastLogin(ctx context.Context, id int, at time.Time) error {
	return r.DB(ctx).
		Model(&models.UserLogin{}).
		Where("login_id = ?", id).
		UpdateColumn("last_login", at).Error
}

// Delete removes the login and reports the number of rows deleted.
func (r *Repository) Delete(ctx context.Context, id int) (int64, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return 0, err
	}
	res := r.DB(ctx).Where("login_id = ?", id).Delete(&models.UserLogin{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *Repository) first(ctx context.Context, query string, args ...any) (*models.UserLogin, error) {
	var login models.UserLogin
	if err := r.DB(ctx).Where(query, args...).First(&login).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &login, nil
}
