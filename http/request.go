package http

// Request holds the fields extracted from the Request-Line. Headers are consumed off the wire,
// but not interpreted.
//
// All the strings reference the connection's read buffer, so they are valid only until the
// next request is read.
type Request struct {
	// Line is the whole Request-Line without the terminating CRLF.
	Line   string
	Method string
	// Target is the request-target exactly as it came.
	Target string
	// Path is the absolute path, that is the part of the target before the first '?'. It
	// isn't percent-decoded.
	Path string
	// Query is the raw string after the first '?', empty if absent.
	Query string
	Proto string
}
