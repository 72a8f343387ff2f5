package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/profilespot-backend/internal/logins"
	pkgerrors "github.com/angelmondragon/profilespot-backend/pkg/errors"
)

func TestLoginReturnsLoginID(t *testing.T) {
	svc := &stubLogins{login: &logins.Login{LoginID: 42}}
	rec := httptest.NewRecorder()

	Login(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/login", jsonBody(`{"username":"alice","password":"pw"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var out map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, map[string]int{"loginId": 42}, out)
}

func TestLoginWrongPassword(t *testing.T) {
	rec := httptest.NewRecorder()

	Login(&stubLogins{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/login", jsonBody(`{"username":"alice","password":"nope"}`)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(pkgerrors.CodeInvalidCredentials), decodeError(t, rec).Code)
}

func TestLoginRequiresBothFields(t *testing.T) {
	rec := httptest.NewRecorder()

	Login(&stubLogins{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/login", jsonBody(`{"username":"alice"}`)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(pkgerrors.CodeValidation), decodeError(t, rec).Code)
}

func TestLoginInfrastructureFailure(t *testing.T) {
	svc := &stubLogins{err: pkgerrors.Wrap(pkgerrors.CodeInternal, errors.New("conn reset"), "credential lookup failed")}
	rec := httptest.NewRecorder()

	Login(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/login", jsonBody(`{"username":"alice","password":"pw"}`)))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "conn reset")
}
