package media

import (
	"fmt"
	"os"

	"github.com/disintegration/imaging"
	"github.com/jdeng/goheif"
)

func init() {
	// decoded planes must be copied out of decoder memory, which is freed
	// before Decode returns
	goheif.SafeEncoding = true
}

// Converter re-encodes an image file into the format implied by dst's
// extension.
type Converter interface {
	Convert(src, dst string) error
}

// HEICConverter decodes HEIC images and writes them as JPEG.
type HEICConverter struct {
	Quality int
}

func (c HEICConverter) Convert(src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	img, err := goheif.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", src, err)
	}

	q := c.Quality
	if q == 0 {
		q = 90
	}
	if err := imaging.Save(img, dst, imaging.JPEGQuality(q)); err != nil {
		os.Remove(dst)
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}
