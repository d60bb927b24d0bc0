package resource

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/indigo-web/solo/config"
)

// Load materializes the whole body of the resource, so its length is known before anything
// is sent.
func Load(ctx context.Context, res Resource, invoker Invoker) ([]byte, error) {
	switch res.Kind {
	case Static:
		return ReadFile(res.Path)
	case Dynamic:
		return invoker.Run(ctx, res.Path, res.Query)
	default:
		panic(fmt.Sprintf("BUG: unexpected resource kind: %d", res.Kind))
	}
}

// ReadFile reads the file entirely. Partially read data is dropped on error.
func ReadFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = file.Close()
	}()

	body, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return body, nil
}

// Invoker runs dynamic resources through the interpreter.
type Invoker struct {
	Interpreter string
	// CGIEnv exposes QUERY_STRING, SCRIPT_FILENAME and REDIRECT_STATUS to the interpreter.
	CGIEnv bool
}

func NewInvoker(cfg config.Dynamic) Invoker {
	return Invoker{
		Interpreter: cfg.Interpreter,
		CGIEnv:      cfg.CGIEnv,
	}
}

// Run executes the interpreter with the script path and the raw query as its arguments and
// returns everything it wrote into the standard output. The query is passed as a single
// argument, no shell is involved. Failing to start or a non-zero exit status are errors.
func (i Invoker) Run(ctx context.Context, path, query string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, i.Interpreter, path, query)
	if i.CGIEnv {
		cmd.Env = append(os.Environ(),
			"QUERY_STRING="+query,
			"SCRIPT_FILENAME="+path,
			"REDIRECT_STATUS=200",
		)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err = cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn %s: %w", i.Interpreter, err)
	}

	body, readErr := io.ReadAll(stdout)
	if err = cmd.Wait(); err != nil {
		return nil, fmt.Errorf("%s %s: %w: %s", i.Interpreter, path, err, bytes.TrimSpace(stderr.Bytes()))
	}

	if readErr != nil {
		return nil, fmt.Errorf("read output of %s: %w", i.Interpreter, readErr)
	}

	return body, nil
}
