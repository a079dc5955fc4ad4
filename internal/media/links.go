package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Linker collects symlinks to rendered images in one directory.
type Linker struct {
	dir string
	log *log.Logger
}

func NewLinker(dir string, logger *log.Logger) (*Linker, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create links directory: %w", err)
	}
	return &Linker{dir: dir, log: logger}, nil
}

func (l *Linker) Dir() string {
	return l.dir
}

// Link symlinks target into the links directory under its own name, adding
// _1, _2, ... before the extension when the name is taken. A target that
// does not exist is skipped and returns "".
func (l *Linker) Link(target string) (string, error) {
	real, err := filepath.EvalSymlinks(target)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	real, err = filepath.Abs(real)
	if err != nil {
		return "", err
	}

	name := filepath.Base(target)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	link := filepath.Join(l.dir, name)
	for seq := 1; taken(link); seq++ {
		link = filepath.Join(l.dir, fmt.Sprintf("%s_%d%s", stem, seq, ext))
	}

	if err := os.Symlink(real, link); err != nil {
		return "", fmt.Errorf("failed to link %s: %w", target, err)
	}
	l.log.Debug("linked image", "target", real, "link", link)
	return link, nil
}

func taken(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
