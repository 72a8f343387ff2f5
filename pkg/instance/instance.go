package instance

import "github.com/angelmondragon/profilespot-backend/pkg/env"

// GetID returns the identifier of this process for log correlation. The dyno
// name is used on Heroku-style platforms.
func GetID() string {
	if id := env.Get("PROFILESPOT_INSTANCE_ID", ""); id != "" {
		return id
	}
	return env.Get("DYNO", "local")
}
