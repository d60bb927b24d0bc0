package mime

import (
	"strings"

	"github.com/indigo-web/utils/strcomp"
)

type entry struct {
	ext  string
	mime MIME
}

var extensions = []entry{
	{"css", CSS},
	{"html", HTML},
	{"gif", GIF},
	{"ico", ICO},
	{"jpg", JPEG},
	{"js", JS},
	{"png", PNG},
}

// Lookup returns the MIME type for an extension, given without the leading dot. Extensions
// are compared case-insensitively. The second value is false for unsupported extensions.
func Lookup(ext string) (MIME, bool) {
	ext = strings.TrimPrefix(ext, ".")

	for _, e := range extensions {
		if strcomp.EqualFold(ext, e.ext) {
			return e.mime, true
		}
	}

	return "", false
}
