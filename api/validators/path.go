package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/angelmondragon/profilespot-backend/pkg/errors"
)

// ParsePathID reads a positive integer route parameter.
func ParsePathID(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(chi.URLParam(r, key))
	if raw == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "path parameter is required").WithDetails(map[string]any{"field": key})
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be positive").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// PathString returns a route parameter with surrounding whitespace removed.
func PathString(r *http.Request, key string) string {
	return strings.TrimSpace(chi.URLParam(r, key))
}
