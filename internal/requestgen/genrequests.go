package requestgen

import (
	"strconv"
	"strings"

	"github.com/dchest/uniuri"
)

// Headers returns n header lines, the last of them being Host. Values are random, so
// sequential requests never share a header block byte-for-byte.
func Headers(n int) []string {
	hdrs := make([]string, 0, n)

	for i := 0; i < n-1; i++ {
		hdrs = append(hdrs, "some-random-header-name-nobody-cares-about"+strconv.Itoa(i)+": "+uniuri.NewLen(100))
	}

	return append(hdrs, "Host: localhost")
}

// Generate renders a complete request head, terminated by CRLF CRLF.
func Generate(method, target string, hdrs []string) (request []byte) {
	request = append(request, method+" "+target+" HTTP/1.1\r\n"...)
	for _, h := range hdrs {
		request = append(request, h+"\r\n"...)
	}

	return append(request, '\r', '\n')
}

// Chunks splits the request into pieces of at most n bytes, mimicking a client writing it
// in portions.
func Chunks(request []byte, n int) []string {
	var chunks []string
	for len(request) > 0 {
		size := min(n, len(request))
		chunks = append(chunks, string(request[:size]))
		request = request[size:]
	}

	return chunks
}

// Line returns a Request-Line of exactly length bytes, including the trailing CRLF.
func Line(length int) string {
	const head, tail = "GET /", " HTTP/1.1\r\n"
	return head + strings.Repeat("a", length-len(head)-len(tail)) + tail
}
