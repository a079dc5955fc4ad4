package attachments

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/forbes3100/macbak/internal/utils"
)

// Index maps a transfer filename to the secondary-archive directory holding it.
type Index map[string]string

// BuildIndex walks the secondary archive at root. Only leaf directories, those
// without subdirectories, contribute their files. Names matched by exclude
// are skipped. An empty or missing root gives an empty index.
func BuildIndex(root string, exclude *utils.Wildmat) (Index, error) {
	ix := Index{}
	if root == "" {
		return ix, nil
	}
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return ix, nil
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if e.IsDir() {
				return nil
			}
		}
		for _, e := range entries {
			if exclude.Match(e.Name()) {
				continue
			}
			ix[e.Name()] = path
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ix, nil
}

// Lookup returns the full secondary-archive path of name.
func (ix Index) Lookup(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	dir, ok := ix[name]
	if !ok {
		return "", false
	}
	return filepath.Join(dir, name), true
}

func (ix Index) Names() []string {
	names := make([]string, 0, len(ix))
	for n := range ix {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
