package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	SQLiteBackendType     = "sqlite3"
	PureSQLiteBackendType = "sqlite"
)

const (
	DefaultArchivePath    = "chat.db"
	DefaultLibraryDir     = "."
	DefaultAttachmentsDir = "Attachments"
	DefaultLibraryPrefix  = "~/Library/Messages/"
	DefaultLinksDir       = "links"
)

type Config struct {
	BackendType string        `toml:"backend_type"`
	Archive     ArchiveConfig `toml:"archive"`
}

type ArchiveConfig struct {
	// Path is the chat.db file. The display-name book sits next to it as
	// <base>_handles.json.
	Path           string `toml:"path"`
	LibraryDir     string `toml:"library_dir"`
	AttachmentsDir string `toml:"attachments_dir"`
	LibraryPrefix  string `toml:"library_prefix"`
	OutputDir      string `toml:"output_dir"`
	LinksDir       string `toml:"links_dir"`
	IndexExclude   string `toml:"index_exclude"`
}

// Default returns the configuration used when no config file is given: the
// archive and its attachments live in the working directory, as they do when
// run from inside ~/Library/Messages.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

func ParseConfig(path string) (Config, error) {
	cfg := Config{}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the fields whose values must stay inside the library.
// Adopted attachments are stored as library_prefix + attachments_dir/...,
// so attachments_dir has to be a relative path below library_dir.
func (c Config) Validate() error {
	if !filepath.IsLocal(c.Archive.AttachmentsDir) {
		return fmt.Errorf("attachments_dir %q must be a relative path inside library_dir", c.Archive.AttachmentsDir)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.BackendType == "" {
		c.BackendType = SQLiteBackendType
	}
	a := &c.Archive
	if a.Path == "" {
		a.Path = DefaultArchivePath
	}
	if a.LibraryDir == "" {
		a.LibraryDir = DefaultLibraryDir
	}
	if a.AttachmentsDir == "" {
		a.AttachmentsDir = DefaultAttachmentsDir
	}
	if a.LibraryPrefix == "" {
		a.LibraryPrefix = DefaultLibraryPrefix
	}
	if a.OutputDir == "" {
		a.OutputDir = a.LibraryDir
	}
	if a.LinksDir == "" {
		a.LinksDir = DefaultLinksDir
	}
}
