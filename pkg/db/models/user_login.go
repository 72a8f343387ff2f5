package models

import "time"

// UserLogin is a credential pair attached to a profile through UserID.
type UserLogin struct {
	LoginID   int        `gorm:"column:login_id;primaryKey;autoIncrement"`
	UserID    *int       `gorm:"column:user_id;index:idx_user_login_user_id"`
	Username  *string    `gorm:"column:username;size:50;uniqueIndex:uq_user_login_username"`
	Password  *string    `gorm:"column:password;size:255"`
	LastLogin *time.Time `gorm:"column:last_login"`
}

func (UserLogin) TableName() string { return "user_login" }
