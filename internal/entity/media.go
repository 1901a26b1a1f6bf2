package entity

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

type MediaType string

const (
	MediaTypePNG  MediaType = "image/png"
	MediaTypeJPEG MediaType = "image/jpeg"
	MediaTypeWebP MediaType = "image/webp"
	MediaTypeSVG  MediaType = "image/svg+xml"
)

var (
	pngSignature  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	jpegSignature = []byte{0xFF, 0xD8, 0xFF}
	riffSignature = []byte("RIFF")
	webpSignature = []byte("WEBP")

	employeeKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)
)

// Uploadable - можно ли сохранить картинку такого типа
func (m MediaType) Uploadable() bool {
	switch m {
	case MediaTypePNG, MediaTypeJPEG, MediaTypeWebP:
		return true
	}
	return false
}

func (m MediaType) String() string {
	return string(m)
}

// NormalizeContentType приводит заявленный Content-Type к каноничному виду:
// нижний регистр, без параметров, image/jpg -> image/jpeg
func NormalizeContentType(contentType string) MediaType {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct == "image/jpg" {
		ct = string(MediaTypeJPEG)
	}
	return MediaType(ct)
}

// DetectMediaType определяет тип картинки по сигнатуре (magic bytes)
func DetectMediaType(data []byte) (MediaType, bool) {
	switch {
	case bytes.HasPrefix(data, pngSignature):
		return MediaTypePNG, true
	case bytes.HasPrefix(data, jpegSignature):
		return MediaTypeJPEG, true
	case len(data) >= 12 && bytes.Equal(data[0:4], riffSignature) && bytes.Equal(data[8:12], webpSignature):
		return MediaTypeWebP, true
	}
	return "", false
}

// ValidateAvatar проверяет загружаемую аватарку: тип, размер и сигнатуру.
// Сигнатура проверяется даже если заявленный тип допустим.
func ValidateAvatar(data []byte, declaredContentType string) (MediaType, error) {
	mediaType := NormalizeContentType(declaredContentType)
	if !mediaType.Uploadable() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMediaType, declaredContentType)
	}

	if len(data) > MaxAvatarSize {
		return "", fmt.Errorf("%w: %d bytes exceeds %d", ErrPayloadTooLarge, len(data), MaxAvatarSize)
	}

	detected, ok := DetectMediaType(data)
	if !ok {
		return "", fmt.Errorf("%w: unknown signature, declared %s", ErrInvalidImageContent, mediaType)
	}
	if detected != mediaType {
		return "", fmt.Errorf("%w: declared %s but content is %s", ErrInvalidImageContent, mediaType, detected)
	}

	return mediaType, nil
}

// CheckStoredAvatar проверяет байты, прочитанные из хранилища
func CheckStoredAvatar(data []byte, declared MediaType) (MediaType, error) {
	detected, ok := DetectMediaType(data)
	if !ok {
		return "", fmt.Errorf("%w: stored avatar has unknown signature", ErrInvalidImageContent)
	}
	if declared != "" && detected != declared {
		return "", fmt.Errorf("%w: stored as %s but content is %s", ErrInvalidImageContent, declared, detected)
	}
	return detected, nil
}

// ValidateEmployeeKey - id сотрудника используется как ключ хранилища (и как имя файла)
func ValidateEmployeeKey(employeeID string) error {
	if !employeeKeyPattern.MatchString(employeeID) {
		return fmt.Errorf("%w: employee id %q", ErrInvalidInput, employeeID)
	}
	return nil
}

// Checksum - sha256 содержимого в hex
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
