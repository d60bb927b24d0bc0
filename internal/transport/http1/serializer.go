package http1

import (
	"fmt"
	"strconv"

	"github.com/indigo-web/solo/http/mime"
	"github.com/indigo-web/solo/http/status"
)

const (
	connectionClose = "Connection: close\r\n"
	contentLength   = "Content-Length: "
	contentType     = "Content-Type: "
)

// Writer is implemented by tcp.Client.
type Writer interface {
	Write([]byte) error
}

// Serializer renders responses. It isn't safe for concurrent use, as the buffer for the head
// of the response is reused.
type Serializer struct {
	buff []byte
}

func NewSerializer(buff []byte) *Serializer {
	return &Serializer{
		buff: buff[:0],
	}
}

// Write sends the response with the body. An empty mimeType omits the Content-Type
// header. Errors are the writer's ones, in which case the response must be considered
// aborted.
func (s *Serializer) Write(w Writer, code status.Code, mimeType mime.MIME, body []byte) error {
	defer s.clear()

	s.renderResponseLine(code)
	s.buff = append(s.buff, connectionClose...)
	s.renderContentLength(len(body))
	if len(mimeType) > 0 {
		s.renderKnownHeader(contentType, mimeType)
	}
	s.crlf()

	if err := w.Write(s.buff); err != nil {
		return err
	}

	if len(body) == 0 {
		return nil
	}

	return w.Write(body)
}

// WriteError sends the canned HTML page for the code.
func (s *Serializer) WriteError(w Writer, code status.Code) error {
	return s.Write(w, code, mime.HTML, ErrorPage(code))
}

// ErrorPage renders the HTML body used for error responses.
func ErrorPage(code status.Code) []byte {
	text := mustText(code)
	page := make([]byte, 0, 96+2*len(text))
	page = append(page, "<html><head><title>"...)
	page = appendCodeText(page, code, text)
	page = append(page, "</title></head><body><h1>"...)
	page = appendCodeText(page, code, text)
	return append(page, "</h1></body></html>"...)
}

func (s *Serializer) renderResponseLine(code status.Code) {
	text := mustText(code)
	s.buff = append(s.buff, protoHTTP...)
	s.sp()
	s.buff = appendCodeText(s.buff, code, text)
	s.crlf()
}

func (s *Serializer) renderContentLength(value int) {
	s.buff = append(s.buff, contentLength...)
	s.buff = strconv.AppendInt(s.buff, int64(value), 10)
	s.crlf()
}

func (s *Serializer) renderKnownHeader(key, value string) {
	s.buff = append(s.buff, key...)
	s.buff = append(s.buff, value...)
	s.crlf()
}

func (s *Serializer) sp() {
	s.buff = append(s.buff, ' ')
}

func (s *Serializer) crlf() {
	s.buff = append(s.buff, crlf...)
}

func (s *Serializer) clear() {
	s.buff = s.buff[:0]
}

func appendCodeText(b []byte, code status.Code, text status.Status) []byte {
	b = strconv.AppendUint(b, uint64(code), 10)
	b = append(b, ' ')
	return append(b, text...)
}

func mustText(code status.Code) status.Status {
	text := status.Text(code)
	if text == "" {
		panic(fmt.Sprintf("BUG: no reason phrase for status code %d", code))
	}

	return text
}
