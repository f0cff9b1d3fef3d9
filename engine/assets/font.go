package assets

import (
	"fmt"
	"os"
)

// LoadFont reads a TTF or OTF file. An empty path returns nil, which
// selects the built-in face.
func LoadFont(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load font %q: %w", path, err)
	}
	return b, nil
}
