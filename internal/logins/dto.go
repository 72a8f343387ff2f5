package logins

import (
	"time"

	"github.com/angelmondragon/profilespot-backend/pkg/db/models"
)

// Login is the caller-facing view of a credential. The password never leaves
// the service.
type Login struct {
	LoginID   int        `json:"loginId"`
	UserID    *int       `json:"userId"`
	Username  *string    `json:"username"`
	LastLogin *time.Time `json:"lastLogin"`
}

// Credentials is the input for creating or replacing a login.
type Credentials struct {
	LoginID  int
	UserID   *int
	Username string
	Password string
}

func FromModel(m *models.UserLogin) Login {
	return Login{
		LoginID:   m.LoginID,
		UserID:    m.UserID,
		Username:  m.Username,
		LastLogin: m.LastLogin,
	}
}

// ToModel stores passwords as given.
// TODO: hash with a salted KDF and compare in constant time once existing rows are migrated.
func (c Credentials) ToModel() *models.UserLogin {
	username := c.Username
	password := c.Password
	return &models.UserLogin{
		LoginID:  c.LoginID,
		UserID:   c.UserID,
		Username: &username,
		Password: &password,
	}
}
