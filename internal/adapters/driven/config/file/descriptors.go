package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/patternpath/pagepatch/internal/core/domain"
)

// descriptorFile is the on-disk shape of a descriptor table. TOML has no
// top-level arrays, so both formats nest the list under "pages".
type descriptorFile struct {
	Pages []domain.PageDescriptor `yaml:"pages" toml:"pages"`
}

// LoadDescriptors reads a page descriptor table. The format follows the
// extension: .yaml/.yml for YAML, .toml for TOML. An empty path returns
// the built-in table.
func LoadDescriptors(path string) ([]domain.PageDescriptor, error) {
	if path == "" {
		return domain.DefaultDescriptors(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("descriptors %s: %w", path, domain.ErrNotFound)
		}
		return nil, err
	}

	var file descriptorFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	case ".toml":
		err = toml.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("%w: unsupported descriptor format %q", domain.ErrInvalidInput, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := validateDescriptors(file.Pages); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return file.Pages, nil
}

func validateDescriptors(pages []domain.PageDescriptor) error {
	if len(pages) == 0 {
		return fmt.Errorf("%w: no pages", domain.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(pages))
	for i, p := range pages {
		if p.ID == "" || p.DisplayName == "" {
			return fmt.Errorf("%w: page %d needs id and name", domain.ErrInvalidInput, i)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate page id %q", domain.ErrInvalidInput, p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}
