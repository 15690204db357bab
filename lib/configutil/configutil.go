package configutil

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// Layers lists the files ReadConfig merges for `name`, lowest priority first.
// "conf/config.json5" gives "conf/config.json5" and "conf/config.local.json5".
func Layers(name string) []string {
	ext := filepath.Ext(name)
	return []string{
		name,
		strings.TrimSuffix(name, ext) + ".local" + ext,
	}
}

// ReadConfig decodes every existing layer of `name` as json5 and merges them,
// non-zero fields of later layers win. Pointer fields are not dereferenced, so
// a later layer's pointer to a zero value still replaces an earlier one. If no
// layer exists it returns os.ErrNotExist.
func ReadConfig[T any](name string) (T, error) {
	var out T
	found := false

	for _, path := range Layers(name) {
		contents, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return out, err
		}

		var layer T
		err = json5.Unmarshal(contents, &layer)
		if err != nil {
			return out, fmt.Errorf("parse %s: %w", path, err)
		}
		err = mergo.Merge(&out, layer, mergo.WithOverride, mergo.WithoutDereference)
		if err != nil {
			return out, fmt.Errorf("merge %s: %w", path, err)
		}

		slog.Debug("read config layer", "path", path)
		found = true
	}

	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}

// ReadConfigOr is ReadConfig with `defaults` filling every field the files leave
// at its zero value, or nil for pointers. When no file exists the defaults are
// returned as is.
func ReadConfigOr[T any](name string, defaults T) (T, error) {
	out, err := ReadConfig[T](name)
	if errors.Is(err, os.ErrNotExist) {
		slog.Info("no config file found, using defaults", "name", name)
		return defaults, nil
	}
	if err != nil {
		return out, err
	}

	err = mergo.Merge(&out, defaults, mergo.WithoutDereference)
	if err != nil {
		return out, err
	}
	return out, nil
}
