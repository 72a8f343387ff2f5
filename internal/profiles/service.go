package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/profilespot-backend/pkg/db"
	"github.com/angelmondragon/profilespot-backend/pkg/db/models"
	"github.com/angelmondragon/profilespot-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/profilespot-backend/pkg/errors"
)

// Service exposes profile reads and versioned writes to the request layer.
type Service interface {
	FetchByLastName(ctx context.Context, lastName string) (*Profile, error)
	FetchByID(ctx context.Context, id int) (*Profile, error)
	ListAll(ctx context.Context) ([]Profile, error)
	Create(ctx context.Context, draft Profile) (int, error)
	Update(ctx context.Context, profile Profile) (*UpdateResult, error)
	Delete(ctx context.Context, id int) error
}

// UpdateResult reports the outcome of a versioned write. Timer holds the new
// row version when Status is ok.
type UpdateResult struct {
	Status enums.UpdateStatus
	Timer  string
}

type profilesRepository interface {
	GetByID(ctx context.Context, id int) (*models.UserProfile, error)
	GetByLastname(ctx context.Context, lastName string) (*models.UserProfile, error)
	GetAll(ctx context.Context) ([]models.UserProfile, error)
	Add(ctx context.Context, profile *models.UserProfile) (int, error)
	Update(ctx context.Context, profile *models.UserProfile) (enums.UpdateStatus, error)
	Delete(ctx context.Context, id int) (int64, error)
}

type updateObserver interface {
	ObserveProfileUpdate(status enums.UpdateStatus)
}

// ServiceParams bundles the dependencies required to build a profile service.
type ServiceParams struct {
	Repo     profilesRepository
	Observer updateObserver
}

type service struct {
	repo     profilesRepository
	observer updateObserver
}

// NewService constructs a profile service. Observer is optional.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("profiles repository is required")
	}
	return &service{repo: params.Repo, observer: params.Observer}, nil
}

func (s *service) FetchByLastName(ctx context.Context, lastName string) (*Profile, error) {
	m, err := s.repo.GetByLastname(ctx, lastName)
	if err != nil {
		return nil, mapReadError(err, "profile lookup by last name failed")
	}
	p := FromModel(m)
	return &p, nil
}

func (s *service) FetchByID(ctx context.Context, id int) (*Profile, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapReadError(err, "profile lookup failed")
	}
	p := FromModel(m)
	return &p, nil
}

func (s *service) ListAll(ctx context.Context) ([]Profile, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing profiles failed")
	}
	out := make([]Profile, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, draft Profile) (int, error) {
	if err := requireIdentity(draft); err != nil {
		return 0, err
	}
	m, err := draft.ToModel()
	if err != nil {
		return 0, err
	}
	id, err := s.repo.Add(ctx, m)
	if err != nil {
		return 0, mapWriteError(err, "creating profile failed")
	}
	return id, nil
}

func (s *service) Update(ctx context.Context, profile Profile) (*UpdateResult, error) {
	if profile.UserID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "userId must be positive")
	}
	if err := requireIdentity(profile); err != nil {
		return nil, err
	}
	m, err := profile.ToModel()
	if err != nil {
		return nil, err
	}

	status, err := s.repo.Update(ctx, m)
	s.observe(status)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "profile not found")
		}
		return nil, mapWriteError(err, "updating profile failed")
	}

	result := &UpdateResult{Status: status}
	if status == enums.UpdateStatusOk {
		result.Timer = encode(m.Timer)
	}
	return result, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "userId must be positive")
	}
	// Re-resolve so the delete targets the stored row, not the caller's id.
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return mapReadError(err, "profile lookup failed")
	}
	affected, err := s.repo.Delete(ctx, existing.UserID)
	if err != nil {
		return mapReadError(err, "deleting profile failed")
	}
	if affected != 1 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "profile was not deleted")
	}
	return nil
}

func (s *service) observe(status enums.UpdateStatus) {
	if s.observer != nil {
		s.observer.ObserveProfileUpdate(status)
	}
}

func requireIdentity(p Profile) error {
	missing := map[string]string{}
	if strings.TrimSpace(p.FirstName) == "" {
		missing["firstName"] = "required"
	}
	if strings.TrimSpace(p.LastName) == "" {
		missing["lastName"] = "required"
	}
	if strings.TrimSpace(p.Email) == "" {
		missing["email"] = "required"
	}
	if len(missing) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "profile is incomplete").WithDetails(missing)
}

func mapReadError(err error, message string) error {
	if errors.Is(err, ErrNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "profile not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, message)
}

func mapWriteError(err error, message string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "email already registered")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, message)
}
