package status

import "errors"

type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrBadRequest              = NewError(BadRequest, "bad request")
	ErrNoRequestLine           = NewError(BadRequest, "no CRLF terminating the request line")
	ErrForbiddenChar           = NewError(BadRequest, "request target contains a double quote")
	ErrForbidden               = NewError(Forbidden, "forbidden")
	ErrOutsideRoot             = NewError(Forbidden, "resolved path escapes the document root")
	ErrNotFound                = NewError(NotFound, "not found")
	ErrMethodNotAllowed        = NewError(MethodNotAllowed, "method not allowed")
	ErrRequestEntityTooLarge   = NewError(RequestEntityTooLarge, "request entity too large")
	ErrURITooLong              = NewError(RequestURITooLong, "request URI too long")
	ErrNotAbsolutePath         = NewError(NotImplemented, "request target is not an absolute path")
	ErrNoExtension             = NewError(NotImplemented, "requested file has no extension")
	ErrUnsupportedExtension    = NewError(NotImplemented, "file extension is not supported")
	ErrHTTPVersionNotSupported = NewError(HTTPVersionNotSupported, "HTTP version not supported")
)

// CodeOf extracts the status code carried by err. Any error which isn't an HTTPError
// results in InternalServerError, as it can only originate from the system.
func CodeOf(err error) Code {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return InternalServerError
}
