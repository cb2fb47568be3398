package gallery

import (
	"encoding/base64"
	"strings"
	"time"
)

// uploadDateLayout matches JavaScript's Date.toISOString, the format clients
// of this API have always received.
const uploadDateLayout = "2006-01-02T15:04:05.000Z07:00"

// Image is one stored image as projected from a listing entry.
type Image struct {
	ID         string `json:"id"`
	FolderName string `json:"folderName"`
	UploadDate string `json:"uploadDate"`

	modified time.Time
}

func newImage(folderName, id string, modified time.Time) Image {
	return Image{
		ID:         id,
		FolderName: folderName,
		UploadDate: modified.UTC().Format(uploadDateLayout),
		modified:   modified,
	}
}

// DecodeImage accepts raw base64 or a data URL. For a data URL everything up
// to the first comma is discarded without inspection.
func DecodeImage(encoded string) ([]byte, error) {
	if _, payload, ok := strings.Cut(encoded, ","); ok {
		encoded = payload
	}
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, invalidInput("image is empty")
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		// unpadded input
		data, err = base64.RawStdEncoding.DecodeString(encoded)
	}
	if err != nil {
		return nil, invalidInput("image is not valid base64")
	}
	return data, nil
}
