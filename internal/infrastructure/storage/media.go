package storage

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// ErrNotAnImage is returned when an upload cannot be decoded as an image.
var ErrNotAnImage = errors.New("payload is not a decodable image")

const (
	recipeUploadDir = "uploads/recipe"
	maxImageDim     = 300
)

// MediaStore keeps uploaded files on the local filesystem under Root and
// serves them read-only under the URL prefix.
type MediaStore struct {
	Root string
	URL  string
}

func NewMediaStore(root, url string) *MediaStore {
	return &MediaStore{Root: root, URL: strings.TrimRight(url, "/")}
}

// SaveRecipeImage validates that data decodes as an image, stores it under a
// freshly generated name (extension taken from the uploaded filename) and
// downsizes it in place to fit 300x300 when either dimension exceeds 300.
// Returns the media-relative path of the stored file.
func (s *MediaStore) SaveRecipeImage(data []byte, originalName string) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", ErrNotAnImage
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if _, err := imaging.FormatFromExtension(ext); err != nil {
		// Unknown or missing extension; re-encode as JPEG.
		ext = ".jpg"
	}

	rel := path.Join(recipeUploadDir, uuid.NewString()+ext)
	abs := s.AbsPath(rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", err
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxImageDim || bounds.Dy() > maxImageDim {
		thumb := imaging.Fit(img, maxImageDim, maxImageDim, imaging.Lanczos)
		if err := imaging.Save(thumb, abs); err != nil {
			return "", err
		}
		return rel, nil
	}

	// Small enough: keep the original bytes untouched.
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return "", err
	}
	return rel, nil
}

// Remove deletes a previously stored file. A missing file is not an error.
func (s *MediaStore) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	err := os.Remove(s.AbsPath(rel))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// AbsPath resolves a media-relative path to the filesystem.
func (s *MediaStore) AbsPath(rel string) string {
	return filepath.Join(s.Root, filepath.FromSlash(rel))
}

// URLFor renders the public URL for a media-relative path.
func (s *MediaStore) URLFor(rel string) string {
	if rel == "" {
		return ""
	}
	return s.URL + "/" + rel
}
