package taxonomy

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ecoyoung/packform/internal/domain"
)

// LoadExtensions reads an extension file in the Source schema.
func LoadExtensions(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("read taxonomy file: %w", err)
	}
	return ParseExtensions(data)
}

// ParseExtensions decodes an extension document. Unknown fields are rejected and
// category names are matched case-insensitively.
func ParseExtensions(data []byte) (Source, error) {
	var src Source
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&src); err != nil && err != io.EOF {
		return Source{}, fmt.Errorf("%w: parse: %v", domain.ErrInvalidTaxonomy, err)
	}

	for i := range src.Patterns {
		c, err := parseCategory(src.Patterns[i].Category)
		if err != nil {
			return Source{}, err
		}
		src.Patterns[i].Category = c
	}
	for i := range src.Aliases {
		c, err := parseCategory(src.Aliases[i].Category)
		if err != nil {
			return Source{}, err
		}
		src.Aliases[i].Category = c
	}
	return src, nil
}

func parseCategory(name domain.Category) (domain.Category, error) {
	c, ok := domain.ParseCategory(string(name))
	if !ok {
		return "", fmt.Errorf("%w: unknown category %q", domain.ErrInvalidTaxonomy, name)
	}
	return c, nil
}

// Load returns the built-in taxonomy, extended by the file at path when path is set.
func Load(path string) (*Taxonomy, error) {
	if path == "" {
		return Default(), nil
	}
	ext, err := LoadExtensions(path)
	if err != nil {
		return nil, err
	}
	return Build(Merge(DefaultSource(), ext))
}

// Export writes the authored tables of t as YAML.
func Export(w io.Writer, t *Taxonomy) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t.Source()); err != nil {
		return fmt.Errorf("encode taxonomy: %w", err)
	}
	return enc.Close()
}
