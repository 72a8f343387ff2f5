package logins

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/profilespot-backend/pkg/db"
	"github.com/angelmondragon/profilespot-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/profilespot-backend/pkg/errors"
)

// Service exposes login lookups, credential checks and maintenance.
type Service interface {
	Authenticate(ctx context.Context, username, password string) (*Login, error)
	Create(ctx context.Context, input Credentials) (int, error)
	FetchByID(ctx context.Context, id int) (*Login, error)
	FetchByUsername(ctx context.Context, username string) (*Login, error)
	FetchByUserID(ctx context.Context, userID int) (*Login, error)
	ListAll(ctx context.Context) ([]Login, error)
	Update(ctx context.Context, input Credentials) error
	DeleteForUser(ctx context.Context, userID int) error
}

type loginsRepository interface {
	GetByID(ctx context.Context, id int) (*models.UserLogin, error)
	GetByUsername(ctx context.Context, username string) (*models.UserLogin, error)
	GetByUserID(ctx context.Context, userID int) (*models.UserLogin, error)
	GetByUsernameAndPassword(ctx context.Context, username, password string) (*models.UserLogin, error)
	GetAll(ctx context.Context) ([]models.UserLogin, error)
	Add(ctx context.Context, login *models.UserLogin) (int, error)
	Update(ctx context.Context, login *models.UserLogin) error
	UpdateLastLogin(ctx context.Context, id int, at time.Time) error
	Delete(ctx context.Context, id int) (int64, error)
}

type service struct {
	repo loginsRepository
	now  func() time.Time
}

// NewService constructs a login service backed by repo.
func NewService(repo loginsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("logins repository is required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// Authenticate returns (nil, nil) when the credentials do not match.
func (s *service) Authenticate(ctx context.Context, username, password string) (*Login, error) {
	m, err := s.repo.GetByUsernameAndPassword(ctx, username, password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "credential lookup failed")
	}
	if m == nil {
		return nil, nil
	}

	at := s.now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, m.LoginID, at); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "recording last login failed")
	}
	m.LastLogin = &at

	login := FromModel(m)
	return &login, nil
}

func (s *service) Create(ctx context.Context, input Credentials) (int, error) {
	if err := requireCredentials(input); err != nil {
		return 0, err
	}
	id, err := s.repo.Add(ctx, input.ToModel())
	if err != nil {
		return 0, mapWriteError(err, "creating login failed")
	}
	return id, nil
}

func (s *service) FetchByID(ctx context.Context, id int) (*Login, error) {
	return s.fetch(s.repo.GetByID(ctx, id))
}

func (s *service) FetchByUsername(ctx context.Context, username string) (*Login, error) {
	return s.fetch(s.repo.GetByUsername(ctx, username))
}

func (s *service) FetchByUserID(ctx context.Context, userID int) (*Login, error) {
	return s.fetch(s.repo.GetByUserID(ctx, userID))
}

func (s *service) ListAll(ctx context.Context) ([]Login, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing logins failed")
	}
	out := make([]Login, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out, nil
}

// Update replaces the credential fields of an existing login. The last login
// stamp is kept.
func (s *service) Update(ctx context.Context, input Credentials) error {
	if input.LoginID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "loginId must be positive")
	}
	if err := requireCredentials(input); err != nil {
		return err
	}
	current, err := s.repo.GetByID(ctx, input.LoginID)
	if err != nil {
		return mapReadError(err, "login lookup failed")
	}

	m := input.ToModel()
	m.LastLogin = current.LastLogin
	if err := s.repo.Update(ctx, m); err != nil {
		if errors.Is(err, ErrNotFound) {
			return mapReadError(err, "")
		}
		return mapWriteError(err, "updating login failed")
	}
	return nil
}

// DeleteForUser resolves the login owned by userID and deletes it by its own id.
func (s *service) DeleteForUser(ctx context.Context, userID int) error {
	if userID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "userId must be positive")
	}
	login, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return mapReadError(err, "login lookup failed")
	}
	affected, err := s.repo.Delete(ctx, login.LoginID)
	if err != nil {
		return mapReadError(err, "deleting login failed")
	}
	if affected != 1 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "login was not deleted")
	}
	return nil
}

func (s *service) fetch(m *models.UserLogin, err error) (*Login, error) {
	if err != nil {
		return nil, mapReadError(err, "login lookup failed")
	}
	login := FromModel(m)
	return &login, nil
}

func requireCredentials(c Credentials) error {
	missing := map[string]string{}
	if strings.TrimSpace(c.Username) == "" {
		missing["username"] = "required"
	}
	if c.Password == "" {
		missing["password"] = "required"
	}
	if len(missing) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "credentials are incomplete").WithDetails(missing)
}

func mapReadError(err error, message string) error {
	if errors.Is(err, ErrNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "login not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, message)
}

func mapWriteError(err error, message string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "username already taken")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, message)
}
