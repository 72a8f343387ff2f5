package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/profilespot-backend/api/responses"
	"github.com/angelmondragon/profilespot-backend/api/validators"
	"github.com/angelmondragon/profilespot-backend/internal/logins"
	"github.com/angelmondragon/profilespot-backend/internal/profiles"
	"github.com/angelmondragon/profilespot-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/profilespot-backend/pkg/errors"
	"github.com/angelmondragon/profilespot-backend/pkg/logger"
	"github.com/angelmondragon/profilespot-backend/pkg/types"
)

const (
	msgAdded   = "added"
	msgUpdated = "updated"
	msgDeleted = "deleted"
)

// profileRequest carries the writable profile fields. userId and loginId are
// accepted so clients can echo a fetched profile back, but the path decides
// which row is written.
type profileRequest struct {
	UserID      int         `json:"userId"`
	FirstName   string      `json:"firstName" validate:"required,max=50"`
	LastName    string      `json:"lastName" validate:"required,max=50"`
	Email       string      `json:"email" validate:"required,email,max=100"`
	Phone       *string     `json:"phone" validate:"omitempty,max=15"`
	AddressLine *string     `json:"addressLine" validate:"omitempty,max=255"`
	City        *string     `json:"city" validate:"omitempty,max=100"`
	Province    *string     `json:"province" validate:"omitempty,max=100"`
	PostalCode  *string     `json:"postalCode" validate:"omitempty,max=10"`
	DateOfBirth *types.Date `json:"dateOfBirth"`
	IsAdmin     *bool       `json:"isAdmin"`
	Picture64   string      `json:"picture64" validate:"omitempty,picture64"`
	Timer       string      `json:"timer" validate:"omitempty,base64"`
	CreatedAt   *time.Time  `json:"createdAt"`
	LoginID     *int        `json:"loginId"`
}

type createUserRequest struct {
	profileRequest
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=255"`
}

func (p profileRequest) toProfile(userID int) profiles.Profile {
	return profiles.Profile{
		UserID:      userID,
		FirstName:   validators.SanitizeString(p.FirstName, 50),
		LastName:    validators.SanitizeString(p.LastName, 50),
		Email:       validators.SanitizeString(p.Email, 100),
		Phone:       validators.SanitizeOptional(p.Phone, 15),
		AddressLine: validators.SanitizeOptional(p.AddressLine, 255),
		City:        validators.SanitizeOptional(p.City, 100),
		Province:    validators.SanitizeOptional(p.Province, 100),
		PostalCode:  validators.SanitizeOptional(p.PostalCode, 10),
		DateOfBirth: p.DateOfBirth,
		IsAdmin:     p.IsAdmin,
		Picture64:   p.Picture64,
		Timer:       p.Timer,
		CreatedAt:   p.CreatedAt,
	}
}

// ListUsers returns every stored profile.
func ListUsers(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}
		out, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// GetUser returns one profile with the id of its login, when one exists.
func GetUser(svc profiles.Service, loginSvc logins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := withUser(r.Context(), logg, id)

		profile, err := svc.FetchByID(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if loginSvc != nil {
			login, err := loginSvc.FetchByUserID(ctx, id)
			switch {
			case err == nil:
				profile.LoginID = &login.LoginID
			case pkgerrors.CodeOf(err) != pkgerrors.CodeNotFound:
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}
		responses.WriteSuccess(w, profile)
	}
}

// GetUserByLastName returns the first profile whose last name matches exactly.
func GetUserByLastName(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}
		name := validators.PathString(r, "name")
		if name == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "last name is required"))
			return
		}
		profile, err := svc.FetchByLastName(r.Context(), name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// CreateUser stores a profile and then its login. The two writes are
// independent: a rejected login leaves the profile in place.
func CreateUser(svc profiles.Service, loginSvc logins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || loginSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user services unavailable"))
			return
		}

		var body createUserRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := svc.Create(r.Context(), body.toProfile(0))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := withUser(r.Context(), logg, userID)

		_, err = loginSvc.Create(ctx, logins.Credentials{
			UserID:   &userID,
			Username: validators.SanitizeString(body.Username, 50),
			Password: body.Password,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(ctx, "user.created")
		}
		responses.WriteMessage(w, http.StatusCreated, msgAdded)
	}
}

// UpdateUser replaces a profile when the submitted timer still matches the
// stored row version.
func UpdateUser(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := withUser(r.Context(), logg, id)

		var body profileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Update(ctx, body.toProfile(id))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if result.Status != enums.UpdateStatusOk {
			err := pkgerrors.New(pkgerrors.CodeStale, "profile was modified by another request").
				WithDetails(map[string]any{"userId": id, "status": result.Status.String()})
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, msgUpdated)
	}
}

// DeleteUser removes the user's login, if any, and then the profile.
func DeleteUser(svc profiles.Service, loginSvc logins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || loginSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user services unavailable"))
			return
		}
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := withUser(r.Context(), logg, id)

		if err := loginSvc.DeleteForUser(ctx, id); err != nil && pkgerrors.CodeOf(err) != pkgerrors.CodeNotFound {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, msgDeleted)
	}
}

func withUser(ctx context.Context, logg *logger.Logger, userID int) context.Context {
	if logg == nil {
		return ctx
	}
	return logg.WithUserID(ctx, userID)
}
