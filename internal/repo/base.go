package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base carries the connection every repository embeds.
type Base struct {
	db *gorm.DB
}

func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the connection bound to ctx. Each call checks a session out of
// the pool for the duration of a single statement.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Exists reports whether at least one row of model matches the condition.
func (b Base) Exists(ctx context.Context, model any, query string, args ...any) (bool, error) {
	var count int64
	if err := b.DB(ctx).Model(model).Where(query, args...).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
