package meta

import (
	"bytes"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// validateImage confirms the fetched bytes decode as a supported image
// (png, jpeg, gif or webp) before they are uploaded to the ad platform.
func validateImage(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("image is empty")
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("image does not decode: %w", err)
	}
	if format == "" {
		return fmt.Errorf("unrecognized image format")
	}
	return nil
}
