package gallery

import (
	"strings"

	"github.com/google/uuid"

	"github.com/damacus/iron-gallery/internal/services"
)

// ImageExtension is appended to every generated image id.
const ImageExtension = ".jpeg"

// ImageContentType is stored for every upload regardless of the payload.
const ImageContentType = "image/jpeg"

// NewImageID returns a random 128-bit identifier.
func NewImageID() string {
	return uuid.NewString()
}

// BuildKey returns "<folderName>/<generatedID>.jpeg".
func BuildKey(folderName, generatedID string) (string, error) {
	if folderName == "" {
		return "", invalidInput("folder name is empty")
	}
	if generatedID == "" {
		return "", invalidInput("image id is empty")
	}
	return folderName + services.Delimiter + generatedID + ImageExtension, nil
}

// ObjectKey joins an image id, as returned by DecodeKey, back to its key.
func ObjectKey(folderName, imageID string) (string, error) {
	if folderName == "" {
		return "", invalidInput("folder name is empty")
	}
	if imageID == "" {
		return "", invalidInput("image id is empty")
	}
	return folderName + services.Delimiter + imageID, nil
}

// DecodeKey splits a key into its folder (the first segment) and its id
// (the final segment).
func DecodeKey(key string) (folderName, id string, err error) {
	folderName, rest, ok := strings.Cut(key, services.Delimiter)
	if !ok || folderName == "" {
		return "", "", ErrMalformedKey
	}
	if i := strings.LastIndex(rest, services.Delimiter); i >= 0 {
		rest = rest[i+1:]
	}
	if rest == "" {
		return "", "", ErrMalformedKey
	}
	return folderName, rest, nil
}
