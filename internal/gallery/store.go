// ABOUTME: Gallery store for generated images
// ABOUTME: Saves image bytes under content-hashed names in the output directory
package gallery

import (
	"crypto/sha256"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Store manages saved images
type Store struct {
	dir         string
	mu          sync.Mutex
	currentPath string
}

// NewStore creates a store rooted at dir
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "mindspark-gallery")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create gallery directory: %w", err)
	}

	return &Store{dir: dir}, nil
}

// Dir returns the gallery directory
func (s *Store) Dir() string {
	return s.dir
}

// Save writes image data and returns its path. Identical images share a file.
func (s *Store) Save(data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("no image data to save")
	}

	hash := sha256.Sum256(data)
	filename := fmt.Sprintf("mindspark-art-%x%s", hash[:8], extensionFor(mimeType))
	path := filepath.Join(s.dir, filename)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(path); err == nil {
		log.Printf("Gallery hit: %s", path)
		s.currentPath = path
		return path, nil
	}

	tmp, err := os.CreateTemp(s.dir, ".partial-*")
	if err != nil {
		return "", fmt.Errorf("failed to create gallery file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	log.Printf("Image saved: %s (%d bytes)", path, len(data))
	s.currentPath = path
	return path, nil
}

// CurrentPath returns the path of the most recently saved image
func (s *Store) CurrentPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentPath
}

// List returns saved image paths in name order
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read gallery: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), "mindspark-art-") {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Cleanup removes the gallery directory
func (s *Store) Cleanup() error {
	return os.RemoveAll(s.dir)
}

// extensionFor maps an image MIME type to a file extension
func extensionFor(mimeType string) string {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	switch strings.TrimSpace(strings.ToLower(mimeType)) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png" // Default to PNG
	}
}
