package models

import (
	"time"

	"github.com/angelmondragon/profilespot-backend/pkg/types"
)

// UserProfile is the person record owned by a registered user. Removing the
// profile removes its logins.
type UserProfile struct {
	UserID      int         `gorm:"column:user_id;primaryKey;autoIncrement"`
	FirstName   string      `gorm:"column:first_name;size:50;not null"`
	LastName    string      `gorm:"column:last_name;size:50;not null;index:idx_user_profile_last_name"`
	Email       string      `gorm:"column:email;size:100;not null;uniqueIndex:uq_user_profile_email"`
	Phone       *string     `gorm:"column:phone;size:15"`
	AddressLine *string     `gorm:"column:address_line;size:255"`
	City        *string     `gorm:"column:city;size:100"`
	Province    *string     `gorm:"column:province;size:100"`
	PostalCode  *string     `gorm:"column:postal_code;size:10"`
	DateOfBirth *types.Date `gorm:"column:date_of_birth;type:date"`
	IsAdmin     *bool       `gorm:"column:is_admin"`
	Picture     []byte      `gorm:"column:picture"`
	Timer       []byte      `gorm:"column:timer;not null"`
	CreatedAt   time.Time   `gorm:"column:created_at;autoCreateTime"`

	Logins []UserLogin `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE"`
}

func (UserProfile) TableName() string { return "user_profile" }
