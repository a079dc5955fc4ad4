package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
)

// DocumentName is the base name of a year's document; debug runs get a
// separate file so they never replace a clean one.
func DocumentName(year, debug int) string {
	name := strconv.Itoa(year)
	if debug > 0 {
		name += "_dbg"
	}
	return name
}

// WriteDocument renders into dir/name.html through a temporary file that
// replaces the target only after render and all writes succeed.
func WriteDocument(dir, name string, render func(w io.Writer) error) (string, error) {
	final := filepath.Join(dir, name+".html")
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", name, uuid.NewString()))

	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", tmp, err)
	}
	bw := bufio.NewWriter(f)

	fail := func(err error) (string, error) {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := render(bw); err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(fmt.Errorf("failed to write %s: %w", final, err))
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to write %s: %w", final, err)
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to replace %s: %w", final, err)
	}
	return final, nil
}
