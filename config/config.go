package config

import "time"

type (
	Limits struct {
		// RequestLine is the maximal length of the Request-Line, including the terminating CRLF.
		// Longer lines are answered with 414.
		RequestLine int
		// HeaderFields is the maximal number of header fields a request may carry. Together
		// with HeaderFieldSize it only contributes to the overall request ceiling, as fields
		// aren't parsed individually.
		HeaderFields int
		// HeaderFieldSize is the maximal length of a single header field.
		HeaderFieldSize int
	}

	NET struct {
		// ReadChunkSize is how many bytes at most are read from the socket per call.
		ReadChunkSize int
		// ReadTimeout limits every single read from the client. Zero disables it, which means
		// a silent client stalls the server until it disconnects.
		ReadTimeout time.Duration `test:"nullable"`
	}

	Dynamic struct {
		// Extension marks files which are executed rather than served verbatim. It is given
		// without the leading dot.
		Extension string
		// Interpreter is the program executed for dynamic files. It receives the file path
		// and the raw query string as its arguments.
		Interpreter string
		// CGIEnv additionally exposes QUERY_STRING, SCRIPT_FILENAME and REDIRECT_STATUS
		// environment variables, as CGI interpreters expect.
		CGIEnv bool
	}

	Resolve struct {
		// Confine rejects with 403 any path which, after cleaning, escapes the document root.
		// Disabling it makes the resolver concatenate the root and the request path verbatim.
		Confine bool
	}

	Log struct {
		// Format is either "text" or "json".
		Format string
		// Color enables colored status codes in the text format.
		Color bool
	}
)

// Config holds settings used across the server, mainly limits and collaborators of the
// request processing.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	Limits  Limits
	NET     NET
	Dynamic Dynamic
	Resolve Resolve
	Log     Log
}

// Default returns default config. Limits mirror Apache's LimitRequestLine,
// LimitRequestFields and LimitRequestFieldSize defaults.
func Default() *Config {
	return &Config{
		Limits: Limits{
			RequestLine:     8190,
			HeaderFields:    50,
			HeaderFieldSize: 4094,
		},
		NET: NET{
			ReadChunkSize: 512,
			ReadTimeout:   0,
		},
		Dynamic: Dynamic{
			Extension:   "php",
			Interpreter: "php-cgi",
			CGIEnv:      true,
		},
		Resolve: Resolve{
			Confine: true,
		},
		Log: Log{
			Format: "text",
			Color:  true,
		},
	}
}

// MaxRequestSize is the ceiling of bytes buffered while waiting for the end of headers.
func (l Limits) MaxRequestSize() int {
	return l.RequestLine + l.HeaderFields*l.HeaderFieldSize
}
