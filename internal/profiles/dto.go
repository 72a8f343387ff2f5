package profiles

import (
	"encoding/base64"
	"time"

	"github.com/angelmondragon/profilespot-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/profilespot-backend/pkg/errors"
	"github.com/angelmondragon/profilespot-backend/pkg/types"
)

// Profile is the boundary shape of a user profile. Picture and row version
// travel as standard base64 text.
type Profile struct {
	UserID      int         `json:"userId"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	Email       string      `json:"email"`
	Phone       *string     `json:"phone"`
	AddressLine *string     `json:"addressLine"`
	City        *string     `json:"city"`
	Province    *string     `json:"province"`
	PostalCode  *string     `json:"postalCode"`
	DateOfBirth *types.Date `json:"dateOfBirth"`
	IsAdmin     *bool       `json:"isAdmin"`
	Picture64   string      `json:"picture64"`
	Timer       string      `json:"timer"`
	CreatedAt   *time.Time  `json:"createdAt"`
	LoginID     *int        `json:"loginId,omitempty"`
}

// FromModel encodes a stored profile for callers.
func FromModel(m *models.UserProfile) Profile {
	p := Profile{
		UserID:      m.UserID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.Email,
		Phone:       m.Phone,
		AddressLine: m.AddressLine,
		City:        m.City,
		Province:    m.Province,
		PostalCode:  m.PostalCode,
		DateOfBirth: m.DateOfBirth,
		IsAdmin:     m.IsAdmin,
		Picture64:   encode(m.Picture),
		Timer:       encode(m.Timer),
	}
	if !m.CreatedAt.IsZero() {
		created := m.CreatedAt
		p.CreatedAt = &created
	}
	return p
}

// ToModel decodes the base64 fields. Malformed input is a validation error
// naming the offending field.
func (p Profile) ToModel() (*models.UserProfile, error) {
	picture, err := decode(p.Picture64)
	if err != nil {
		return nil, invalidBase64("picture64", err)
	}
	timer, err := decode(p.Timer)
	if err != nil {
		return nil, invalidBase64("timer", err)
	}

	m := &models.UserProfile{
		UserID:      p.UserID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Email:       p.Email,
		Phone:       p.Phone,
		AddressLine: p.AddressLine,
		City:        p.City,
		Province:    p.Province,
		PostalCode:  p.PostalCode,
		DateOfBirth: p.DateOfBirth,
		IsAdmin:     p.IsAdmin,
		Picture:     picture,
		Timer:       timer,
	}
	if p.CreatedAt != nil {
		m.CreatedAt = *p.CreatedAt
	}
	return m, nil
}

// An empty payload and a missing one both travel as "" and are stored as NULL.
func encode(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(b)
}

func decode(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(s)
}

func invalidBase64(field string, err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, field+" must be base64 encoded").
		WithDetails(map[string]string{field: "invalid base64"})
}
