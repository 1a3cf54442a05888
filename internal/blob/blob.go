package blob

import (
	_ "embed"
	"path/filepath"
	"strings"

	"balance_game/internal/domain"

	"github.com/google/uuid" // Opaque references
	"gorm.io/gorm"
)

// defaultImage is served whenever a profile image cannot be resolved
//
//go:embed default_profile.png
var defaultImage []byte

// allowedExtensions is the fixed allow-list of accepted image uploads
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// AllowedFile reports whether the filename carries an accepted image extension
func AllowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Store saves image bytes and returns an opaque reference.
// Files outside the extension allow-list are silently skipped: the returned
// reference is empty and the caller proceeds without one.
func Store(db *gorm.DB, data []byte, filename string) (string, error) {
	if len(data) == 0 || !AllowedFile(filename) {
		return "", nil
	}
	image := domain.ProfileImage{
		Ref:      uuid.NewString(),
		Filename: filepath.Base(filename),
		Data:     data,
	}
	if err := db.Create(&image).Error; err != nil {
		return "", err
	}
	return image.Ref, nil
}

// Retrieve returns the image bytes for a reference.
// An empty or unresolvable reference, or any read failure, falls back to the
// default asset. This never fails.
func Retrieve(db *gorm.DB, ref string) []byte {
	if ref == "" {
		return defaultImage
	}
	var image domain.ProfileImage
	if err := db.Where("ref = ?", ref).First(&image).Error; err != nil {
		return defaultImage
	}
	if len(image.Data) == 0 {
		return defaultImage
	}
	return image.Data
}

// DefaultImage exposes the fallback asset bytes
func DefaultImage() []byte {
	return defaultImage
}
