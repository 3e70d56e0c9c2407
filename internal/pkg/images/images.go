package images

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var ErrInvalidImage = errors.New("invalid image payload")

var extByMIME = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Store saves inline base64 image payloads under a media directory and
// resolves stored paths to absolute URLs.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, "recipes"), 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// SaveDataURI decodes a "data:image/...;base64,..." payload and writes it to
// disk. Returns the path relative to the media root.
func (s *Store) SaveDataURI(payload string) (string, error) {
	mime, data, ok := splitDataURI(payload)
	if !ok {
		return "", ErrInvalidImage
	}

	ext, ok := extByMIME[mime]
	if !ok {
		return "", ErrInvalidImage
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil || len(raw) == 0 {
		return "", ErrInvalidImage
	}

	rel := filepath.Join("recipes", uuid.NewString()+ext)
	if err := os.WriteFile(filepath.Join(s.dir, rel), raw, 0o644); err != nil {
		return "", err
	}
	return rel, nil
}

func (s *Store) Remove(rel string) {
	if rel == "" {
		return
	}
	_ = os.Remove(filepath.Join(s.dir, rel))
}

// AbsoluteURL builds the public URL for a stored image from the incoming
// request's scheme and host.
func AbsoluteURL(c *gin.Context, rel string) string {
	if rel == "" {
		return ""
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/media/%s", scheme, c.Request.Host, filepath.ToSlash(rel))
}

func splitDataURI(payload string) (mime, data string, ok bool) {
	if !strings.HasPrefix(payload, "data:") {
		return "", "", false
	}
	rest := strings.TrimPrefix(payload, "data:")
	head, data, found := strings.Cut(rest, ",")
	if !found {
		return "", "", false
	}
	mime = strings.TrimSuffix(head, ";base64")
	if mime == head {
		// only base64 payloads are accepted
		return "", "", false
	}
	return mime, data, true
}
