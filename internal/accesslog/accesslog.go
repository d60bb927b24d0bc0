package accesslog

import (
	"fmt"
	"io"
	"log"
	"net"
	"time"

	"github.com/dchest/uniuri"
	"github.com/fatih/color"
	"github.com/indigo-web/solo/config"
	"github.com/indigo-web/solo/http/status"
	json "github.com/json-iterator/go"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Record describes a single served connection.
type Record struct {
	ID     string        `json:"id"`
	Remote string        `json:"remote"`
	Line   string        `json:"line,omitempty"`
	Status status.Code   `json:"status,omitempty"`
	Bytes  int           `json:"bytes"`
	Took   time.Duration `json:"took_ns"`
	Error  string        `json:"error,omitempty"`
}

type event struct {
	Event string `json:"event"`
	Root  string `json:"root,omitempty"`
	Addr  string `json:"addr,omitempty"`
	Error string `json:"error,omitempty"`
}

type Logger struct {
	out    *log.Logger
	json   bool
	green  *color.Color
	red    *color.Color
	yellow *color.Color
}

func New(w io.Writer, cfg config.Log) (*Logger, error) {
	l := &Logger{
		out:    log.New(w, "", log.LstdFlags),
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
	}

	switch cfg.Format {
	case FormatText:
	case FormatJSON:
		l.json = true
		l.out.SetFlags(0)
	default:
		return nil, fmt.Errorf("unknown log format: %q", cfg.Format)
	}

	if !cfg.Color || l.json {
		for _, c := range []*color.Color{l.green, l.red, l.yellow} {
			c.DisableColor()
		}
	}

	return l, nil
}

// NewID returns a short random identifier for a connection.
func NewID() string {
	return uniuri.NewLen(8)
}

func (l *Logger) Startup(root string, addr net.Addr) {
	if l.json {
		l.emit(event{Event: "startup", Root: root, Addr: addr.String()})
		return
	}

	l.out.Printf("Using %s for server's root", root)
	if tcpAddr, ok := addr.(*net.TCPAddr); ok {
		l.out.Printf("Listening on port %d", tcpAddr.Port)
		return
	}

	l.out.Printf("Listening on %s", addr)
}

func (l *Logger) Shutdown(err error) {
	if l.json {
		e := event{Event: "shutdown"}
		if err != nil {
			e.Error = err.Error()
		}

		l.emit(e)
		return
	}

	if err != nil {
		l.out.Print(l.red.Sprintf("Stopping server: %s", err))
		return
	}

	l.out.Print("Stopping server")
}

// Error reports a failure which isn't bound to any request, e.g. a failed accept.
func (l *Logger) Error(err error) {
	if l.json {
		l.emit(event{Event: "error", Error: err.Error()})
		return
	}

	l.out.Print(l.red.Sprint(err))
}

func (l *Logger) Request(r Record) {
	if l.json {
		l.emit(r)
		return
	}

	line := r.Line
	if line == "" {
		line = "-"
	}

	code := "-"
	if r.Status != 0 {
		code = l.colorize(r.Status).Sprint(r.Status)
	}

	msg := fmt.Sprintf("[%s] %s %q %s %d %s", r.ID, r.Remote, line, code, r.Bytes, r.Took)
	if r.Error != "" {
		msg += " " + l.red.Sprint(r.Error)
	}

	l.out.Print(msg)
}

func (l *Logger) colorize(code status.Code) *color.Color {
	switch {
	case code < 400:
		return l.green
	case code < 500:
		return l.red
	default:
		return l.yellow
	}
}

func (l *Logger) emit(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		l.out.Printf("accesslog: %s", err)
		return
	}

	l.out.Print(string(data))
}
