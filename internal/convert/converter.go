package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/forbes3100/macbak/internal/attachments"
	"github.com/forbes3100/macbak/internal/backend"
	"github.com/forbes3100/macbak/internal/backend/sqlite"
	"github.com/forbes3100/macbak/internal/config"
	"github.com/forbes3100/macbak/internal/contacts"
	"github.com/forbes3100/macbak/internal/media"
	"github.com/forbes3100/macbak/internal/render"
	"github.com/forbes3100/macbak/internal/utils"
)

type Options struct {
	Debug int
	// ExternalDir is the secondary archive searched for attachments whose
	// stored path is empty.
	ExternalDir string
	// Links turns on symlinking of received images into the links directory.
	Links     bool
	Converter media.Converter
	Logger    *log.Logger
}

type Converter struct {
	cfg       config.Config
	debug     int
	outputDir string
	log       *log.Logger

	backend      backend.ArchiveBackend
	conversation *render.Conversation
}

func New(cfg config.Config, opts Options) (*Converter, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(cfg.Archive.LibraryDir)
	if err != nil {
		return nil, err
	}
	outputDir, err := filepath.Abs(cfg.Archive.OutputDir)
	if err != nil {
		return nil, err
	}
	archivePath := cfg.Archive.Path
	if !filepath.IsAbs(archivePath) {
		archivePath = filepath.Join(root, archivePath)
	}
	cfg.Archive.Path = archivePath

	book, err := contacts.LoadBook(contacts.BookPath(archivePath))
	if err != nil {
		return nil, err
	}

	exclude, err := utils.ParseWildmat(cfg.Archive.IndexExclude)
	if err != nil {
		return nil, fmt.Errorf("invalid index_exclude: %w", err)
	}
	index, err := attachments.BuildIndex(opts.ExternalDir, exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to index %s: %w", opts.ExternalDir, err)
	}
	if opts.ExternalDir != "" {
		logger.Info("indexed secondary archive", "dir", opts.ExternalDir, "files", len(index))
	}

	var linker *media.Linker
	if opts.Links {
		linksDir := cfg.Archive.LinksDir
		if !filepath.IsAbs(linksDir) {
			linksDir = filepath.Join(outputDir, linksDir)
		}
		if linker, err = media.NewLinker(linksDir, logger); err != nil {
			return nil, err
		}
	}

	b, err := initBackend(cfg)
	if err != nil {
		return nil, err
	}
	handles, err := b.ListHandles()
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to list handles: %w", err)
	}

	resolver := attachments.NewResolver(attachments.Options{
		Root:           root,
		AttachmentsDir: cfg.Archive.AttachmentsDir,
		Prefix:         cfg.Archive.LibraryPrefix,
		Index:          index,
		Relocator:      b,
		Logger:         logger,
	})
	renderer := media.NewRenderer(media.Options{
		Root:      root,
		OutputDir: outputDir,
		Converter: opts.Converter,
		Linker:    linker,
		Debug:     opts.Debug,
		Logger:    logger,
	})

	return &Converter{
		cfg:       cfg,
		debug:     opts.Debug,
		outputDir: outputDir,
		log:       logger,
		backend:   b,
		conversation: render.NewConversation(render.Options{
			Archive:  b,
			Handles:  book.Resolve(handles),
			Resolver: resolver,
			Media:    renderer,
			Debug:    opts.Debug,
			Logger:   logger,
		}),
	}, nil
}

func initBackend(cfg config.Config) (backend.ArchiveBackend, error) {
	var ab backend.ArchiveBackend

	switch cfg.BackendType {
	case config.SQLiteBackendType, config.PureSQLiteBackendType:
		{
			if _, err := os.Stat(cfg.Archive.Path); err != nil {
				return nil, fmt.Errorf("archive %s: %w", cfg.Archive.Path, err)
			}
			sqliteBackend, err := sqlite.NewSQLiteBackend(cfg.BackendType, cfg.Archive.Path)
			if err != nil {
				return nil, err
			}
			ab = sqliteBackend
		}
	default:
		{
			return nil, fmt.Errorf("invalid backend type, supported backends: %s", backend.SupportedBackendList)
		}
	}
	return ab, nil
}

// Convert writes the document for one year and returns its path.
func (c *Converter) Convert(year int) (string, error) {
	c.log.Info("converting", "year", year)

	var stats render.Stats
	path, err := render.WriteDocument(c.outputDir, render.DocumentName(year, c.debug), func(w io.Writer) error {
		var err error
		stats, err = c.conversation.Render(w, year)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("year %d: %w", year, err)
	}

	c.log.Info("wrote document", "path", path, "messages", stats.Messages, "attachments", stats.Attachments)
	return path, nil
}

// ConvertRange converts start through end inclusive, stopping at the first
// failure.
func (c *Converter) ConvertRange(start, end int) ([]string, error) {
	var paths []string
	for year := start; year <= end; year++ {
		path, err := c.Convert(year)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (c *Converter) Close() error {
	return c.backend.Close()
}
