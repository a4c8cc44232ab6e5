package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OutputDirName is the directory images are saved under when
// GEMINI_IMAGE_OUTPUT_DIR is not set.
const OutputDirName = "gemini-images"

// MimeTypeForPath maps an image file extension to a MIME type. The
// extension check is case-insensitive and unknown extensions fall back
// to image/jpeg.
func MimeTypeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "image/jpeg"
	}
}

// SaveImage writes raw image bytes into dir under a collision-resistant
// generated filename and returns the full path. The directory is created
// if needed.
func SaveImage(dir, operation string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	filename := fmt.Sprintf("%s-%s-%s.png", operation, filenameTimestamp(time.Now()), uuid.NewString()[:6])
	fullPath := filepath.Join(dir, filename)
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write image file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// filenameTimestamp renders a UTC timestamp with the characters that are
// unsafe in filenames replaced by hyphens.
func filenameTimestamp(t time.Time) string {
	iso := t.UTC().Format("2006-01-02T15:04:05.000Z")
	return strings.NewReplacer(":", "-", ".", "-").Replace(iso)
}

// DefaultOutputDir picks a sensible image directory for the host OS.
// Windows gets Documents; elsewhere the working directory is used unless
// it looks like a system or temp location, in which case the home
// directory is used instead.
func DefaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(home, "Documents", OutputDirName)
	}
	cwd, err := os.Getwd()
	if err != nil || isSystemPath(cwd) {
		return filepath.Join(home, OutputDirName)
	}
	return filepath.Join(cwd, OutputDirName)
}

func isSystemPath(dir string) bool {
	prefixes := []string{os.TempDir(), "/tmp", "/var", "/usr", "/etc", "/opt"}
	for _, prefix := range prefixes {
		if prefix != "" && strings.HasPrefix(dir, prefix) {
			return true
		}
	}
	return strings.Contains(dir, "/Library/Caches")
}
