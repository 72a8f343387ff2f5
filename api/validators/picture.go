package validators

import (
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/angelmondragon/profilespot-backend/pkg/errors"
)

// ValidatePicture checks that encoded is standard base64 whose content sniffs
// as an image. An empty picture is valid.
func ValidatePicture(encoded string) error {
	if encoded == "" {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "picture64 must be base64 encoded").
			WithDetails(map[string]string{"picture64": "must be base64 encoded"})
	}
	detected := mimetype.Detect(data)
	if !strings.HasPrefix(detected.String(), "image/") {
		return pkgerrors.New(pkgerrors.CodeValidation, "picture64 must be an image").
			WithDetails(map[string]string{"picture64": "unsupported content type " + detected.String()})
	}
	return nil
}

func validatePictureField(fl validator.FieldLevel) bool {
	return ValidatePicture(fl.Field().String()) == nil
}
