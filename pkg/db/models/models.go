package models

// All lists the persisted models in dependency order.
func All() []any {
	return []any{
		&UserProfile{},
		&UserLogin{},
	}
}
