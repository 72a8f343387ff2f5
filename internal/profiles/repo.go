package profiles

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/profilespot-backend/internal/repo"
	"github.com/angelmondragon/profilespot-backend/pkg/db/models"
	"github.com/angelmondragon/profilespot-backend/pkg/enums"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no profile matches the lookup.
	ErrNotFound = errors.New("profile not found")
	// ErrRowCountMismatch means a versioned write touched more than one row.
	ErrRowCountMismatch = errors.New("profile write affected an unexpected number of rows")
)

// Repository persists user profiles and enforces the row version check on updates.
type Repository struct {
	repo.Base
}

// NewRepository constructs a profiles repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// GetByID loads a profile by its primary key.
func (r *Repository) GetByID(ctx context.Context, id int) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.DB(ctx).Where("user_id = ?", id).First(&profile).Error; err != nil {
		return nil, notFound(err)
	}
	return &profile, nil
}

// GetByLastname returns the first profile whose last name matches exactly.
func (r *Repository) GetByLastname(ctx context.Context, lastName string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.DB(ctx).Where("last_name = ?", lastName).First(&profile).Error; err != nil {
		return nil, notFound(err)
	}
	return &profile, nil
}

// GetAll returns every profile in insertion order.
func (r *Repository) GetAll(ctx context.Context) ([]models.UserProfile, error) {
	profiles := []models.UserProfile{}
	if err := r.DB(ctx).Order("user_id").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// Add inserts profile and returns the generated id. The id, row version and
// creation time are always assigned here, whatever the caller supplied.
func (r *Repository) Add(ctx context.Context, profile *models.UserProfile) (int, error) {
	profile.UserID = 0
	profile.Timer = initialRowVersion()
	profile.CreatedAt = time.Time{}
	if err := r.DB(ctx).Create(profile).Error; err != nil {
		return 0, err
	}
	return profile.UserID, nil
}

// Update overwrites every mutable column of the stored row, provided the row
// version in profile.Timer still matches. On success profile carries the new
// version.
func (r *Repository) Update(ctx context.Context, profile *models.UserProfile) (enums.UpdateStatus, error) {
	current, err := r.GetByID(ctx, profile.UserID)
	if err != nil {
		return enums.UpdateStatusFailed, err
	}

	next := nextRowVersion(current.Timer)
	values := map[string]any{
		"first_name":    profile.FirstName,
		"last_name":     profile.LastName,
		"email":         profile.Email,
		"phone":         profile.Phone,
		"address_line":  profile.AddressLine,
		"city":          profile.City,
		"province":      profile.Province,
		"postal_code":   profile.PostalCode,
		"date_of_birth": profile.DateOfBirth,
		"is_admin":      profile.IsAdmin,
		"picture":       profile.Picture,
		"timer":         next,
	}
	if !profile.CreatedAt.IsZero() {
		values["created_at"] = profile.CreatedAt
	}

	res := r.DB(ctx).
		Model(&models.UserProfile{}).
		Where("user_id = ? AND timer = ?", current.UserID, profile.Timer).
		Updates(values)
	if res.Error != nil {
		return enums.UpdateStatusFailed, res.Error
	}

	status, err := classifyUpdate(res.RowsAffected)
	if err != nil {
		return status, err
	}
	if status == enums.UpdateStatusOk {
		profile.Timer = next
		if profile.CreatedAt.IsZero() {
			profile.CreatedAt = current.CreatedAt
		}
		return status, nil
	}

	// Nothing matched: either a newer version exists or the row vanished.
	exists, err := r.Exists(ctx, &models.UserProfile{}, "user_id = ?", current.UserID)
	if err != nil {
		return enums.UpdateStatusFailed, err
	}
	if !exists {
		return enums.UpdateStatusFailed, ErrNotFound
	}
	return enums.UpdateStatusStale, nil
}

// Delete removes the profile and reports the number of rows deleted. Logins
// owned by the profile go with it.
func (r *Repository) Delete(ctx context.Context, id int) (int64, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return 0, err
	}
	res := r.DB(ctx).Where("user_id = ?", id).Delete(&models.UserProfile{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// classifyUpdate maps the affected row count of a versioned write onto an
// outcome. Zero rows is reported as stale and refined by the caller.
func classifyUpdate(affected int64) (enums.UpdateStatus, error) {
	switch {
	case affected == 1:
		return enums.UpdateStatusOk, nil
	case affected == 0:
		return enums.UpdateStatusStale, nil
	default:
		return enums.UpdateStatusFailed, ErrRowCountMismatch
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
