package attachments

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/forbes3100/macbak/internal/models"
)

type Outcome int

const (
	Resolved Outcome = iota
	NotInLibrary
	NoSourceFile
	MissingFile
)

func (o Outcome) String() string {
	switch o {
	case Resolved:
		return "resolved"
	case NotInLibrary:
		return "not in library"
	case NoSourceFile:
		return "no source file"
	case MissingFile:
		return "missing file"
	default:
		return ""
	}
}

// Adoption records a file copied in from the secondary archive.
type Adoption struct {
	Source     string
	Dest       string // library-relative
	StoredPath string // new attachment.filename
}

type Resolution struct {
	Outcome Outcome
	// Path is library-relative and slash separated; set when Resolved.
	Path       string
	StoredPath string
	Adopted    *Adoption
}

type Relocator interface {
	RelocateAttachment(messageID int64, ordinal int, storedPath string) error
}

type Options struct {
	// Root is the primary archive directory that stored paths are relative
	// to once Prefix is removed.
	Root           string
	AttachmentsDir string
	Prefix         string
	Index          Index
	Relocator      Relocator
	Logger         *log.Logger
}

type adoptionKey struct {
	messageID int64
	ordinal   int
}

type Resolver struct {
	root           string
	attachmentsDir string
	prefix         string
	index          Index
	relocator      Relocator
	log            *log.Logger

	adopted map[adoptionKey]Adoption
}

func NewResolver(opts Options) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	index := opts.Index
	if index == nil {
		index = Index{}
	}
	return &Resolver{
		root:           opts.Root,
		attachmentsDir: filepath.ToSlash(opts.AttachmentsDir),
		prefix:         opts.Prefix,
		index:          index,
		relocator:      opts.Relocator,
		log:            logger,
		adopted:        map[adoptionKey]Adoption{},
	}
}

func (r *Resolver) Index() Index {
	return r.index
}

// Abs maps a library-relative path onto the filesystem.
func (r *Resolver) Abs(rel string) string {
	return filepath.Join(r.root, filepath.FromSlash(rel))
}

// Resolve finds the file behind an attachment row. A row without a stored
// path is adopted from the secondary archive: the file is copied into the
// attachments tree and the row rewritten, so later runs take the stored path.
// Only copy and relocation failures are returned as errors.
func (r *Resolver) Resolve(a models.Attachment) (Resolution, error) {
	stored := a.Filename.String
	var adopted *Adoption
	if stored == "" {
		ad, ok, err := r.adopt(a)
		if err != nil {
			return Resolution{}, err
		}
		if !ok {
			return Resolution{Outcome: NoSourceFile}, nil
		}
		adopted = &ad
		stored = ad.StoredPath
	}

	res := r.fromStoredPath(stored)
	res.Adopted = adopted
	return res, nil
}

func (r *Resolver) fromStoredPath(stored string) Resolution {
	res := Resolution{StoredPath: stored}
	if !strings.HasPrefix(stored, r.prefix) {
		res.Outcome = NotInLibrary
		return res
	}
	rel := strings.TrimPrefix(stored, r.prefix)
	if _, err := os.Stat(r.Abs(rel)); err != nil {
		res.Outcome = MissingFile
		res.Path = rel
		return res
	}
	res.Outcome = Resolved
	res.Path = rel
	return res
}

func (r *Resolver) adopt(a models.Attachment) (Adoption, bool, error) {
	key := adoptionKey{a.MessageID, a.Ordinal}
	if ad, ok := r.adopted[key]; ok {
		return ad, true, nil
	}
	src, ok := r.index.Lookup(a.TransferName.String)
	if !ok {
		return Adoption{}, false, nil
	}

	// keep the last directory levels of the source so same-named files
	// from different messages stay apart
	segs := strings.Split(filepath.ToSlash(src), "/")
	if len(segs) > 4 {
		segs = segs[len(segs)-4:]
	}
	dest := path.Join(append([]string{r.attachmentsDir}, segs...)...)
	ad := Adoption{
		Source:     src,
		Dest:       dest,
		StoredPath: r.prefix + dest,
	}

	if err := copyFile(src, r.Abs(dest)); err != nil {
		return Adoption{}, false, fmt.Errorf("adopt %s: %w", src, err)
	}
	if r.relocator == nil {
		return Adoption{}, false, fmt.Errorf("adopt %s: no relocator", src)
	}
	if err := r.relocator.RelocateAttachment(a.MessageID, a.Ordinal, ad.StoredPath); err != nil {
		return Adoption{}, false, fmt.Errorf("relocate attachment %d: %w", a.ID, err)
	}
	r.adopted[key] = ad
	r.log.Info("adopted attachment", "message", a.MessageID, "ordinal", a.Ordinal, "source", src, "stored", ad.StoredPath)
	return ad, true, nil
}
