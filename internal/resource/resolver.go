package resource

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/indigo-web/solo/config"
	"github.com/indigo-web/solo/http/mime"
	"github.com/indigo-web/solo/http/status"
	"github.com/indigo-web/utils/strcomp"
	"golang.org/x/sys/unix"
)

type Kind uint8

const (
	// Static resources are served verbatim from the disk.
	Static Kind = iota + 1
	// Dynamic resources are executed by the interpreter and its output is served.
	Dynamic
)

func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

type Resource struct {
	// Path is the filesystem path of the file.
	Path string
	Ext  string
	Kind Kind
	// MIME is set for static resources only.
	MIME  mime.MIME
	Query string
}

// Resolver maps request paths onto files under the document root.
type Resolver struct {
	root       string
	dynamicExt string
	confine    bool
}

// NewResolver expects root to be an absolute path, canonicalized by the caller.
func NewResolver(root string, cfg *config.Config) *Resolver {
	return &Resolver{
		root:       filepath.Clean(root),
		dynamicExt: cfg.Dynamic.Extension,
		confine:    cfg.Resolve.Confine,
	}
}

func (r *Resolver) Root() string {
	return r.root
}

// Resolve classifies the file the path points at. Errors are always status.HTTPError.
func (r *Resolver) Resolve(absPath, query string) (Resource, error) {
	// only the confinement check sees the cleaned path, the file itself is looked up
	// exactly as requested
	path := r.root + absPath
	if r.confine && !within(r.root, filepath.Clean(path)) {
		return Resource{}, status.ErrOutsideRoot
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return Resource{}, status.ErrForbidden
		}

		return Resource{}, status.ErrNotFound
	}

	if unix.Access(path, unix.R_OK) != nil {
		return Resource{}, status.ErrForbidden
	}

	ext, ok := extension(path)
	if !ok {
		return Resource{}, status.ErrNoExtension
	}

	res := Resource{
		Path:  path,
		Ext:   ext,
		Query: query,
	}

	if strcomp.EqualFold(ext, r.dynamicExt) {
		res.Kind = Dynamic
		return res, nil
	}

	res.MIME, ok = mime.Lookup(ext)
	if !ok {
		return Resource{}, status.ErrUnsupportedExtension
	}

	res.Kind = Static
	return res, nil
}

// extension returns everything after the last dot of the last path segment.
func extension(path string) (string, bool) {
	base := path[strings.LastIndexByte(path, '/')+1:]
	dot := strings.LastIndexByte(base, '.')
	if dot == -1 {
		return "", false
	}

	return base[dot+1:], true
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
