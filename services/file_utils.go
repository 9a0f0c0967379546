package services

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Esaius2058/drive-x/config"
	"github.com/Esaius2058/drive-x/models"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// sanitizeFilename strips path separators and control characters so a
// declared filename can never traverse out of its owner's key prefix.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
	replacer := strings.NewReplacer("..", "_", "/", "_", "\\", "_")
	name = replacer.Replace(name)
	if name == "" || name == "." {
		return "unnamed"
	}
	return name
}

// buildStorageKey derives an owner-scoped key that is unique per upload
// by construction: timestamp plus a random suffix, so concurrent
// uploads of the same name never collide and keys are not guessable
// across users.
func buildStorageKey(userID uint, filename string) string {
	suffix := uuid.New().String()[:8]
	return fmt.Sprintf("user-%d/%d-%s-%s", userID, time.Now().Unix(), suffix, sanitizeFilename(filename))
}

// TotalUsedStorage is the single storage-accounting function: the sum
// of sizes over a user's current file rows, trashed included. It is
// recomputed from rows on every call, never maintained as a counter.
func TotalUsedStorage(files []models.File) int64 {
	var total int64
	for _, f := range files {
		total += f.Size
	}
	return total
}

func isMimeTypeAllowed(mimeType string) bool {
	allowed := config.AppConfig.Storage.AllowedMimeTypes
	if len(allowed) == 0 {
		return true
	}
	for _, m := range allowed {
		m = strings.TrimSpace(m)
		if m == "*" || strings.EqualFold(m, mimeType) {
			return true
		}
	}
	return false
}

func isImageMimeType(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

// imageDimensions probes width and height from the upload buffer.
// Failures are not errors; the file simply carries no dimensions.
func imageDimensions(data []byte) (int, int, bool) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, 0, false
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), true
}
