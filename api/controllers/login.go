package controllers

import (
	"net/http"

	"github.com/angelmondragon/profilespot-backend/api/responses"
	"github.com/angelmondragon/profilespot-backend/api/validators"
	"github.com/angelmondragon/profilespot-backend/internal/logins"
	pkgerrors "github.com/angelmondragon/profilespot-backend/pkg/errors"
	"github.com/angelmondragon/profilespot-backend/pkg/logger"
)

type loginRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=255"`
}

type loginResponse struct {
	LoginID int `json:"loginId"`
}

// Login checks a username and password pair and returns the matching login id.
func Login(svc logins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "login service unavailable"))
			return
		}

		var body loginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		login, err := svc.Authenticate(r.Context(), validators.SanitizeString(body.Username, 50), body.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if login == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInvalidCredentials, "invalid username or password"))
			return
		}

		if logg != nil {
			logg.Info(logg.WithLoginID(r.Context(), login.LoginID), "login.succeeded")
		}
		responses.WriteSuccess(w, loginResponse{LoginID: login.LoginID})
	}
}
