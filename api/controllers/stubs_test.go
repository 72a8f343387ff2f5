package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/profilespot-backend/internal/logins"
	"github.com/angelmondragon/profilespot-backend/internal/profiles"
)

type stubProfiles struct {
	profiles.Service

	profile   *profiles.Profile
	list      []profiles.Profile
	createID  int
	update    *profiles.UpdateResult
	err       error
	deleteErr error

	created profiles.Profile
	updated profiles.Profile
	deleted int
}

func (s *stubProfiles) FetchByID(ctx context.Context, id int) (*profiles.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := *s.profile
	return &out, nil
}

func (s *stubProfiles) FetchByLastName(ctx context.Context, lastName string) (*profiles.Profile, error) {
	return s.profile, s.err
}

func (s *stubProfiles) ListAll(ctx context.Context) ([]profiles.Profile, error) {
	return s.list, s.err
}

func (s *stubProfiles) Create(ctx context.Context, draft profiles.Profile) (int, error) {
	s.created = draft
	return s.createID, s.err
}

func (s *stubProfiles) Update(ctx context.Context, p profiles.Profile) (*profiles.UpdateResult, error) {
	s.updated = p
	return s.update, s.err
}

func (s *stubProfiles) Delete(ctx context.Context, id int) error {
	s.deleted = id
	return s.deleteErr
}

type stubLogins struct {
	logins.Service

	login     *logins.Login
	err       error
	createErr error
	deleteErr error

	created     logins.Credentials
	deletedUser int
}

func (s *stubLogins) Authenticate(ctx context.Context, username, password string) (*logins.Login, error) {
	return s.login, s.err
}

func (s *stubLogins) FetchByUserID(ctx context.Context, userID int) (*logins.Login, error) {
	return s.login, s.err
}

func (s *stubLogins) Create(ctx context.Context, input logins.Credentials) (int, error) {
	s.created = input
	return 1, s.createErr
}

func (s *stubLogins) DeleteForUser(ctx context.Context, userID int) error {
	s.deletedUser = userID
	return s.deleteErr
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

// routed mounts h under pattern so chi URL params resolve.
func routed(method, pattern string, h http.HandlerFunc) http.Handler {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)
	return r
}

func jsonBody(s string) *strings.Reader {
	return strings.NewReader(s)
}
