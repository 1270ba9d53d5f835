// Package imaging validates uploaded photos before they reach the model.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	// Decoders registered for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/timmy/calsnap/internal/domain"
)

// Info describes a sniffed image.
type Info struct {
	Format string // jpeg, png, gif, webp
	Width  int
	Height int
}

// MIMEType returns the content type for the sniffed format.
func (i Info) MIMEType() string {
	return MIMEType(i.Format)
}

// Extension returns the file extension used for storage keys.
func (i Info) Extension() string {
	if i.Format == "jpeg" {
		return "jpg"
	}
	return i.Format
}

// Sniff reads only the image header and reports format and size.
// Parameters:
//   - data: raw image bytes.
// Returns:
//   - Info: detected format and dimensions.
//   - error: domain.ErrEmptyInput or domain.ErrUnsupportedImage.
func Sniff(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, domain.ErrEmptyInput
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", domain.ErrUnsupportedImage, err)
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// DecodeDataURL accepts "data:image/png;base64,...." or bare base64 and returns the bytes.
// Parameters:
//   - s: encoded image as sent by the client.
// Returns:
//   - []byte: decoded image bytes.
//   - error: domain.ErrEmptyInput when s is blank, domain.ErrUnsupportedImage when it is not base64.
func DecodeDataURL(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, domain.ErrEmptyInput
	}
	if strings.HasPrefix(s, "data:") {
		idx := strings.Index(s, ",")
		if idx == -1 || !strings.Contains(s[:idx], ";base64") {
			return nil, fmt.Errorf("%w: malformed data URL", domain.ErrUnsupportedImage)
		}
		s = s[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedImage, err)
	}
	if len(data) == 0 {
		return nil, domain.ErrEmptyInput
	}
	return data, nil
}

// EncodeDataURL renders bytes as a base64 data URL for the model request.
func EncodeDataURL(data []byte, format string) string {
	return fmt.Sprintf("data:%s;base64,%s", MIMEType(format), base64.StdEncoding.EncodeToString(data))
}

// MIMEType maps a format name or extension to its content type.
func MIMEType(format string) string {
	switch strings.ToLower(format) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
