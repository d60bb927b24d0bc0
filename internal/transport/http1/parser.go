package http1

import (
	"bytes"

	"github.com/indigo-web/solo/config"
	"github.com/indigo-web/solo/http"
	"github.com/indigo-web/solo/http/status"
	"github.com/indigo-web/utils/uf"
)

const (
	methodGET = "GET"
	protoHTTP = "HTTP/1.1"
)

// Parse extracts and validates the Request-Line of the raw request, as returned by the Reader.
// Every step is a hard boundary: the first violated one defines the error (and therefore the
// status code) returned.
func Parse(raw []byte, limits config.Limits) (req http.Request, err error) {
	lineEnd := bytes.Index(raw, crlf)
	if lineEnd == -1 {
		return req, status.ErrNoRequestLine
	}

	if lineEnd+len(crlf) > limits.RequestLine {
		return req, status.ErrURITooLong
	}

	line := raw[:lineEnd+len(crlf)]
	req.Line = uf.B2S(line[:lineEnd])

	sp := bytes.IndexByte(line, ' ')
	if sp == -1 {
		return req, status.ErrBadRequest
	}

	method := line[:sp]
	line = line[sp+1:]

	sp = bytes.IndexByte(line, ' ')
	if sp == -1 {
		return req, status.ErrBadRequest
	}

	target := line[:sp]
	line = line[sp+1:]

	versionEnd := bytes.Index(line, crlf)
	if versionEnd == -1 {
		return req, status.ErrURITooLong
	}

	version := line[:versionEnd]

	req.Method = uf.B2S(method)
	req.Target = uf.B2S(target)
	req.Proto = uf.B2S(version)

	if req.Method != methodGET {
		return req, status.ErrMethodNotAllowed
	}

	if len(target) == 0 || target[0] != '/' {
		return req, status.ErrNotAbsolutePath
	}

	if bytes.IndexByte(target, '"') != -1 {
		return req, status.ErrForbiddenChar
	}

	if req.Proto != protoHTTP {
		return req, status.ErrHTTPVersionNotSupported
	}

	req.Path = req.Target
	if q := bytes.IndexByte(target, '?'); q != -1 {
		req.Path, req.Query = uf.B2S(target[:q]), uf.B2S(target[q+1:])
	}

	return req, nil
}
