// Package config loads the optional goglob.json file consumed by goglobd,
// mirroring the teacher's swerver.json loader: a best-effort JSON read with
// sensible defaults, validated with struct tags rather than hand-written
// checks.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	validator "gopkg.in/go-playground/validator.v9"
)

// Root is one published directory the daemon will serve glob queries
// against, named so a single config file can expose several trees.
type Root struct {
	Name string `json:"name" validate:"min=1"`
	Path string `json:"path" validate:"min=1"`
}

// Configuration is the goglob.json shape.
type Configuration struct {
	Listen    string `json:"listen"`
	Debug     bool   `json:"debug"`
	Gitignore bool   `json:"gitignore"`
	Roots     []Root `json:"roots" validate:"dive"`

	// DefaultFlags holds flag names read from goglob.json. The webglob
	// handler does not read it: each query uses only the flags named in its
	// own query string.
	DefaultFlags []string `json:"defaultFlags"`
}

// Load reads path, falling back to a single root named "default" at the
// current working directory when the file does not exist or lists no roots
// (consistent with the teacher's "no config is fine" contract).
func Load(path string) (Configuration, error) {
	config := Configuration{Listen: "5000"}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfiguration()
		}
		return config, err
	}

	if err := json.Unmarshal(data, &config); err != nil {
		return config, err
	}

	if len(config.Roots) == 0 {
		def, err := defaultConfiguration()
		if err != nil {
			return config, err
		}
		config.Roots = def.Roots
	}

	if err := validator.New().Struct(config); err != nil {
		return config, err
	}

	return config, nil
}

func defaultConfiguration() (Configuration, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return Configuration{}, err
	}
	return Configuration{
		Listen: "5000",
		Roots:  []Root{{Name: "default", Path: filepath.Clean(cwd)}},
	}, nil
}
