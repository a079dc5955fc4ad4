package media

import (
	"fmt"
	"html"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/forbes3100/macbak/internal/markup"
	"github.com/forbes3100/macbak/internal/models"
)

type Kind int

const (
	KindImage Kind = iota
	KindAudio
	KindPayload
)

// Ref is what a rendered attachment ended up pointing at.
type Ref struct {
	Path     string // library-relative
	MimeType string
	Width    int
	Kind     Kind
}

// Item is a resolved attachment ready for rendering.
type Item struct {
	Path        string // library-relative, slash separated
	MimeType    string
	FromMe      bool
	CreatedDate int64
}

type Options struct {
	Root string
	// OutputDir is where the document is written; src attributes are made
	// relative to it.
	OutputDir string
	Converter Converter
	// Linker is nil unless link generation is on.
	Linker *Linker
	Debug  int
	Logger *log.Logger
}

type Renderer struct {
	root      string
	outputDir string
	converter Converter
	linker    *Linker
	debug     int
	log       *log.Logger
}

func NewRenderer(opts Options) *Renderer {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	conv := opts.Converter
	if conv == nil {
		conv = HEICConverter{}
	}
	return &Renderer{
		root:      opts.Root,
		outputDir: opts.OutputDir,
		converter: conv,
		linker:    opts.Linker,
		debug:     opts.Debug,
		log:       logger,
	}
}

var urlEscaper = strings.NewReplacer("%", "%25", "#", "%23", "?", "%3F")

func (r *Renderer) abs(rel string) string {
	return filepath.Join(r.root, filepath.FromSlash(rel))
}

// Href is the attribute-safe reference to a library-relative path.
func (r *Renderer) Href(rel string) string {
	p := filepath.FromSlash(rel)
	if r.outputDir != "" {
		if q, err := filepath.Rel(r.outputDir, r.abs(rel)); err == nil {
			p = q
		}
	}
	return html.EscapeString(urlEscaper.Replace(filepath.ToSlash(p)))
}

// Render writes the note and element for one attachment.
func (r *Renderer) Render(w io.Writer, st markup.Style, it Item) (Ref, error) {
	ref := Ref{Path: it.Path, MimeType: it.MimeType, Width: markup.DefaultWidth, Kind: KindImage}

	if r.debug > 1 {
		fmt.Fprint(w, st.Note(fmt.Sprintf("a_path=%s, %s, %d", r.Href(it.Path), html.EscapeString(it.MimeType), it.CreatedDate)))
	} else {
		fmt.Fprint(w, st.Note(r.Href(it.Path)))
	}

	if models.IsAudio(it.MimeType) {
		ref.Kind = KindAudio
		ref.Width = 0
		fmt.Fprintf(w, "<audio controls>\n"+
			"<source src=\"%s\" type=\"%s\">\n"+
			"Your browser does not support the audio tag.\n"+
			"</audio>\n", r.Href(it.Path), markup.AudioSourceType)
		return ref, nil
	}

	if path.Ext(it.Path) == models.PayloadExtension {
		ref.Kind = KindPayload
		ref.Width = markup.PayloadWidth
		return ref, nil
	}

	if it.MimeType == models.MimeHEIC {
		jpeg := strings.TrimSuffix(it.Path, path.Ext(it.Path)) + ".jpeg"
		if err := r.ensureConverted(it.Path, jpeg); err != nil {
			r.log.Warn("image conversion failed", "path", it.Path, "err", err)
			fmt.Fprint(w, st.Note("Conversion failed! "+r.Href(it.Path)))
			return ref, nil
		}
		ref.Path = jpeg
		ref.MimeType = models.MimeJPEG
		if r.debug > 1 {
			fmt.Fprint(w, st.Note(fmt.Sprintf("%s, %s, %d", r.Href(ref.Path), ref.MimeType, it.CreatedDate)))
		}
	}

	// Safari wants both images and movies in an img tag
	fmt.Fprintf(w, "<img%s src=\"%s\" width=\"%d\">\n", st.Image, r.Href(ref.Path), ref.Width)

	if r.linker != nil && !it.FromMe && models.IsImage(ref.MimeType) {
		if _, err := r.linker.Link(r.abs(ref.Path)); err != nil {
			return ref, err
		}
	}
	return ref, nil
}

// ensureConverted produces dst from src once; an existing dst is reused.
func (r *Renderer) ensureConverted(src, dst string) error {
	if _, err := os.Stat(r.abs(dst)); err == nil {
		return nil
	}
	if err := r.converter.Convert(r.abs(src), r.abs(dst)); err != nil {
		return err
	}
	r.log.Debug("converted image", "src", src, "dst", dst)
	return nil
}
