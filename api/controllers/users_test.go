package controllers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/profilespot-backend/internal/logins"
	"github.com/angelmondragon/profilespot-backend/internal/profiles"
	"github.com/angelmondragon/profilespot-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/profilespot-backend/pkg/errors"
	"github.com/angelmondragon/profilespot-backend/pkg/types"
)

const aliceBody = `{"firstName":" Alice ","lastName":"Smith","email":"a@x.com","phone":"  ","username":"alice","password":"pw"}`

// Smallest valid PNG header plus IHDR chunk, enough for content sniffing.
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) types.APIError {
	t.Helper()
	var env types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Error
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var msg types.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	return msg.Message
}

func TestListUsersReturnsBareArray(t *testing.T) {
	svc := &stubProfiles{list: []profiles.Profile{{UserID: 1, LastName: "Smith"}, {UserID: 2, LastName: "Jones"}}}
	rec := httptest.NewRecorder()

	ListUsers(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var out []profiles.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out, 2)
	assert.Equal(t, "Jones", out[1].LastName)
}

func TestGetUserAttachesLoginID(t *testing.T) {
	svc := &stubProfiles{profile: &profiles.Profile{UserID: 3, LastName: "Smith"}}
	loginSvc := &stubLogins{login: &logins.Login{LoginID: 9}}
	rec := httptest.NewRecorder()

	routed(http.MethodGet, "/api/user/{id}", GetUser(svc, loginSvc, nil)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/3", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var out profiles.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotNil(t, out.LoginID)
	assert.Equal(t, 9, *out.LoginID)
}

func TestGetUserWithoutLogin(t *testing.T) {
	svc := &stubProfiles{profile: &profiles.Profile{UserID: 3}}
	loginSvc := &stubLogins{err: pkgerrors.New(pkgerrors.CodeNotFound, "login not found")}
	rec := httptest.NewRecorder()

	routed(http.MethodGet, "/api/user/{id}", GetUser(svc, loginSvc, nil)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/3", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "loginId")
}

func TestGetUserNotFound(t *testing.T) {
	svc := &stubProfiles{err: pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")}
	rec := httptest.NewRecorder()

	routed(http.MethodGet, "/api/user/{id}", GetUser(svc, &stubLogins{}, nil)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/99", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, string(pkgerrors.CodeNotFound), decodeError(t, rec).Code)
}

func TestGetUserRejectsNonNumericID(t *testing.T) {
	rec := httptest.NewRecorder()

	routed(http.MethodGet, "/api/user/{id}", GetUser(&stubProfiles{}, &stubLogins{}, nil)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/abc", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUserByLastName(t *testing.T) {
	svc := &stubProfiles{profile: &profiles.Profile{UserID: 4, LastName: "Smith"}}
	rec := httptest.NewRecorder()

	routed(http.MethodGet, "/api/user/lastname/{name}", GetUserByLastName(svc, nil)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/lastname/Smith", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"userId":4`)
}

func TestCreateUserStoresProfileThenLogin(t *testing.T) {
	svc := &stubProfiles{createID: 12}
	loginSvc := &stubLogins{}
	rec := httptest.NewRecorder()

	CreateUser(svc, loginSvc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/user", jsonBody(aliceBody)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "added", decodeMessage(t, rec))
	assert.Equal(t, "Alice", svc.created.FirstName)
	assert.Nil(t, svc.created.Phone)
	require.NotNil(t, loginSvc.created.UserID)
	assert.Equal(t, 12, *loginSvc.created.UserID)
	assert.Equal(t, "alice", loginSvc.created.Username)
}

func TestCreateUserValidation(t *testing.T) {
	cases := map[string]string{
		"missing email":   `{"firstName":"A","lastName":"B","username":"u","password":"p"}`,
		"bad email":       `{"firstName":"A","lastName":"B","email":"nope","username":"u","password":"p"}`,
		"long postal":     `{"firstName":"A","lastName":"B","email":"a@x.com","postalCode":"12345678901","username":"u","password":"p"}`,
		"missing login":   `{"firstName":"A","lastName":"B","email":"a@x.com"}`,
		"unknown field":   `{"firstName":"A","lastName":"B","email":"a@x.com","username":"u","password":"p","extra":1}`,
		"picture not b64": `{"firstName":"A","lastName":"B","email":"a@x.com","username":"u","password":"p","picture64":"***"}`,
		"picture not img": `{"firstName":"A","lastName":"B","email":"a@x.com","username":"u","password":"p","picture64":"aGVsbG8="}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &stubProfiles{createID: 1}
			rec := httptest.NewRecorder()

			CreateUser(svc, &stubLogins{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/user", jsonBody(body)))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, svc.created.Email)
		})
	}
}

func TestCreateUserAcceptsImagePicture(t *testing.T) {
	svc := &stubProfiles{createID: 1}
	body := `{"firstName":"A","lastName":"B","email":"a@x.com","username":"u","password":"p","picture64":"` +
		base64.StdEncoding.EncodeToString(pngBytes) + `"}`
	rec := httptest.NewRecorder()

	CreateUser(svc, &stubLogins{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/user", jsonBody(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, svc.created.Picture64)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc := &stubProfiles{err: pkgerrors.New(pkgerrors.CodeConflict, "email already registered")}
	loginSvc := &stubLogins{}
	rec := httptest.NewRecorder()

	CreateUser(svc, loginSvc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/user", jsonBody(aliceBody)))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "email already registered", decodeError(t, rec).Message)
	assert.Empty(t, loginSvc.created.Username)
}

func TestCreateUserLoginFailureIsReported(t *testing.T) {
	svc := &stubProfiles{createID: 5}
	loginSvc := &stubLogins{createErr: pkgerrors.New(pkgerrors.CodeConflict, "username already taken")}
	rec := httptest.NewRecorder()

	CreateUser(svc, loginSvc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/user", jsonBody(aliceBody)))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "username already taken", decodeError(t, rec).Message)
}

func TestUpdateUserUsesPathID(t *testing.T) {
	svc := &stubProfiles{update: &profiles.UpdateResult{Status: enums.UpdateStatusOk, Timer: "AAAAAAAAAAI="}}
	body := `{"userId":77,"firstName":"A","lastName":"B","email":"a@x.com","timer":"AAAAAAAAAAE="}`
	rec := httptest.NewRecorder()

	routed(http.MethodPut, "/api/user/{id}", UpdateUser(svc, nil)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/user/3", jsonBody(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "updated", decodeMessage(t, rec))
	assert.Equal(t, 3, svc.updated.UserID)
	assert.Equal(t, "AAAAAAAAAAE=", svc.updated.Timer)
}

func TestUpdateUserStale(t *testing.T) {
	svc := &stubProfiles{update: &profiles.UpdateResult{Status: enums.UpdateStatusStale}}
	body := `{"firstName":"A","lastName":"B","email":"a@x.com","timer":"AAAAAAAAAAE="}`
	rec := httptest.NewRecorder()

	routed(http.MethodPut, "/api/user/{id}", UpdateUser(svc, nil)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/user/3", jsonBody(body)))

	require.Equal(t, http.StatusConflict, rec.Code)
	apiErr := decodeError(t, rec)
	assert.Equal(t, string(pkgerrors.CodeStale), apiErr.Code)
	assert.NotNil(t, apiErr.Details)
}

func TestUpdateUserMissingRow(t *testing.T) {
	svc := &stubProfiles{err: pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")}
	body := `{"firstName":"A","lastName":"B","email":"a@x.com","timer":"AAAAAAAAAAE="}`
	rec := httptest.NewRecorder()

	routed(http.MethodPut, "/api/user/{id}", UpdateUser(svc, nil)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/user/3", jsonBody(body)))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateUserRejectsMalformedTimer(t *testing.T) {
	svc := &stubProfiles{}
	body := `{"firstName":"A","lastName":"B","email":"a@x.com","timer":"!!"}`
	rec := httptest.NewRecorder()

	routed(http.MethodPut, "/api/user/{id}", UpdateUser(svc, nil)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/user/3", jsonBody(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, svc.updated.UserID)
}

func TestDeleteUserRemovesLoginThenProfile(t *testing.T) {
	svc := &stubProfiles{}
	loginSvc := &stubLogins{}
	rec := httptest.NewRecorder()

	routed(http.MethodDelete, "/api/user/{id}", DeleteUser(svc, loginSvc, nil)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/user/8", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "deleted", decodeMessage(t, rec))
	assert.Equal(t, 8, loginSvc.deletedUser)
	assert.Equal(t, 8, svc.deleted)
}

func TestDeleteUserToleratesMissingLogin(t *testing.T) {
	svc := &stubProfiles{}
	loginSvc := &stubLogins{deleteErr: pkgerrors.New(pkgerrors.CodeNotFound, "login not found")}
	rec := httptest.NewRecorder()

	routed(http.MethodDelete, "/api/user/{id}", DeleteUser(svc, loginSvc, nil)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/user/8", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 8, svc.deleted)
}

func TestDeleteUserStopsOnLoginFailure(t *testing.T) {
	svc := &stubProfiles{}
	loginSvc := &stubLogins{deleteErr: pkgerrors.New(pkgerrors.CodeInternal, "db down")}
	rec := httptest.NewRecorder()

	routed(http.MethodDelete, "/api/user/{id}", DeleteUser(svc, loginSvc, nil)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/user/8", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Zero(t, svc.deleted)
	assert.Equal(t, "internal server error", decodeError(t, rec).Message)
}

func TestDeleteUserMissingProfile(t *testing.T) {
	svc := &stubProfiles{deleteErr: pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")}
	rec := httptest.NewRecorder()

	routed(http.MethodDelete, "/api/user/{id}", DeleteUser(svc, &stubLogins{}, nil)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/user/8", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNilServicesReportInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	ListUsers(nil, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
