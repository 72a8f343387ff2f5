package profiles

import (
	"testing"
	"time"

	"github.com/angelmondragon/profilespot-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/profilespot-backend/pkg/errors"
	"github.com/angelmondragon/profilespot-backend/pkg/types"
	"github.com/stretchr/testify/require"
)

func TestFromModelEncodesBinaryFields(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m := &models.UserProfile{
		UserID:      7,
		FirstName:   "Alice",
		LastName:    "Smith",
		Email:       "a@x.io",
		DateOfBirth: types.NewDate(1990, time.May, 4).Ptr(),
		Picture:     []byte{0xff, 0x00, 0x10},
		Timer:       []byte{0, 0, 0, 0, 0, 0, 0, 1},
		CreatedAt:   created,
	}

	p := FromModel(m)
	require.Equal(t, "/wAQ", p.Picture64)
	require.Equal(t, "AAAAAAAAAAE=", p.Timer)
	require.Equal(t, created, *p.CreatedAt)
	require.Equal(t, "1990-05-04", p.DateOfBirth.String())
}

func TestFromModelLeavesEmptyFieldsBlank(t *testing.T) {
	p := FromModel(&models.UserProfile{UserID: 1})
	require.Empty(t, p.Picture64)
	require.Empty(t, p.Timer)
	require.Nil(t, p.CreatedAt)
}

func TestProfileBase64RoundTrip(t *testing.T) {
	picture := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	timer := []byte{0, 0, 0, 0, 0, 0, 0, 42}
	original := &models.UserProfile{UserID: 3, FirstName: "A", LastName: "B", Email: "c@d.io", Picture: picture, Timer: timer}

	back, err := FromModel(original).ToModel()
	require.NoError(t, err)
	require.Equal(t, picture, back.Picture)
	require.Equal(t, timer, back.Timer)
	require.Equal(t, 3, back.UserID)

	for _, empty := range [][]byte{nil, {}} {
		out := FromModel(&models.UserProfile{UserID: 4, Picture: empty})
		require.Equal(t, "", out.Picture64)

		restored, err := out.ToModel()
		require.NoError(t, err)
		require.Nil(t, restored.Picture)
	}
}

func TestToModelRejectsMalformedBase64(t *testing.T) {
	_, err := Profile{Picture64: "not base64!"}.ToModel()
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	_, err = Profile{Timer: "%%%"}.ToModel()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, map[string]string{"timer": "invalid base64"}, typed.Details())
}
