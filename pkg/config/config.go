// Package config reads the configuration file.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation error of a configuration.
var ErrInvalid = errors.New("invalid configuration")

const schemaVersion = 1

type Config struct {
	Version       int          `json:"version" jsonschema:"enum=1"`
	SHALength     int          `json:"sha_length,omitempty" yaml:"sha_length" jsonschema:"description=Accepted length of a hexadecimal commit hash. The default is 40"`
	Files         []*File      `json:"files,omitempty" jsonschema:"description=Target files. If files are passed via positional command line arguments, this is ignored"`
	Exemptions    []*Exemption `json:"exemptions,omitempty" jsonschema:"description=Actions and reusable workflows that don't have to be pinned"`
	EnforceLocal  bool         `json:"enforce_local,omitempty" yaml:"enforce_local" jsonschema:"description=If true, local actions such as ./.github/actions/foo must also be pinned"`
	EnforceDocker bool         `json:"enforce_docker,omitempty" yaml:"enforce_docker" jsonschema:"description=If true, docker:// actions must also be pinned"`
	// Dir is the directory of the configuration file. files[].pattern is relative to it.
	Dir string `json:"-" yaml:"-"`
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalid, msg)
}

func validateSchemaVersion(v int) error {
	switch v {
	case schemaVersion:
		return nil
	case 0:
		return invalid("version is required")
	default:
		return invalid(fmt.Sprintf("unsupported version: %d", v))
	}
}

// Init validates the configuration and compiles its patterns.
func (c *Config) Init() error {
	if err := validateSchemaVersion(c.Version); err != nil {
		return err
	}
	if c.SHALength < 0 {
		return invalid("sha_length must be positive")
	}
	for _, file := range c.Files {
		if err := file.Init(); err != nil {
			return fmt.Errorf("initialize file: %w", err)
		}
	}
	for _, e := range c.Exemptions {
		if err := e.Init(); err != nil {
			return fmt.Errorf("initialize exemption: %w", err)
		}
	}
	return nil
}

func getConfigPath(fs afero.Fs) (string, error) {
	for _, path := range []string{".gha-enforce-sha.yaml", ".github/gha-enforce-sha.yaml", ".gha-enforce-sha.yml", ".github/gha-enforce-sha.yml"} {
		f, err := afero.Exists(fs, path)
		if err != nil {
			return "", fmt.Errorf("check if %s exists: %w", path, err)
		}
		if f {
			return path, nil
		}
	}
	return "", nil
}

type Finder struct {
	fs afero.Fs
}

func NewFinder(fs afero.Fs) *Finder {
	return &Finder{fs: fs}
}

// Find returns configFilePath if it isn't empty.
// Otherwise it looks for a configuration file in the current directory.
// It returns "" if no file is found.
func (f *Finder) Find(configFilePath string) (string, error) {
	if configFilePath != "" {
		return configFilePath, nil
	}
	return getConfigPath(f.fs)
}

type Reader struct {
	fs afero.Fs
}

func NewReader(fs afero.Fs) *Reader {
	return &Reader{fs: fs}
}

// Read decodes configFilePath into cfg and validates it.
// If configFilePath is empty, cfg isn't changed.
func (r *Reader) Read(cfg *Config, configFilePath string) error {
	if configFilePath == "" {
		return nil
	}
	f, err := r.fs.Open(configFilePath)
	if err != nil {
		return fmt.Errorf("open a configuration file: %w", err)
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode a configuration file as YAML: %w", errors.Join(ErrInvalid, err))
	}
	cfg.Dir = filepath.Dir(configFilePath)
	if err := cfg.Init(); err != nil {
		return err
	}
	return nil
}
