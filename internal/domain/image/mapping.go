package image

import (
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"limban-server-go/internal/platform/errors"
)

// Mapping records, per source URL, the public path of each derived variant.
// A value equal to the source URL itself marks a variant that fell back to
// the original after processing failed.
type Mapping map[string]map[string]string

// LoadMapping reads a mapping file. A missing file is an empty mapping so
// first runs need no setup.
func LoadMapping(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Mapping{}, nil
		}
		return nil, errors.Wrap(errors.KindPipeline, "mapping.load", "failed to read mapping file", err)
	}
	m := Mapping{}
	if err := sonic.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.KindPipeline, "mapping.load", "failed to parse mapping file", err)
	}
	return m, nil
}

// Save writes the mapping pretty-printed via a temp file and rename, so a
// crashed run never leaves a truncated file behind.
func (m Mapping) Save(path string) error {
	data, err := sonic.ConfigDefault.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(errors.KindPipeline, "mapping.save", "failed to encode mapping", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.KindPipeline, "mapping.save", "failed to create mapping directory", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(errors.KindPipeline, "mapping.save", "failed to write mapping file", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(errors.KindPipeline, "mapping.save", "failed to replace mapping file", err)
	}
	return nil
}

// Lookup returns the public path of a variant, falling back to the source
// URL when the pair was never processed.
func (m Mapping) Lookup(url, variant string) string {
	if variants, ok := m[url]; ok {
		if path, ok := variants[variant]; ok {
			return path
		}
	}
	return url
}

// Set records one variant path for a source URL.
func (m Mapping) Set(url, variant, path string) {
	variants, ok := m[url]
	if !ok {
		variants = map[string]string{}
		m[url] = variants
	}
	variants[variant] = path
}
