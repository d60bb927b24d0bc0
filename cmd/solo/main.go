package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/indigo-web/solo"
	"github.com/indigo-web/solo/config"
	"github.com/indigo-web/solo/internal/accesslog"
)

const usage = "Usage: solo [-p port] [-h] /path/to/root"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg := config.Default()

	flags := flag.NewFlagSet("solo", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintln(stderr, usage)
		flags.PrintDefaults()
	}

	port := flags.Uint("p", 0, "port to listen on, random if 0")
	help := flags.Bool("h", false, "print usage and exit")
	flags.StringVar(&cfg.Log.Format, "log", cfg.Log.Format, "access log format: "+accesslog.FormatText+" or "+accesslog.FormatJSON)
	noColor := flags.Bool("no-color", false, "disable colored output")
	flags.StringVar(&cfg.Dynamic.Interpreter, "interpreter", cfg.Dynamic.Interpreter,
		"program executing ."+cfg.Dynamic.Extension+" files")
	unconfined := flags.Bool("unconfined", false, "allow request paths escaping the root")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *help {
		fmt.Fprintln(stdout, usage)
		return 0
	}

	if flags.NArg() != 1 || flags.Arg(0) == "" {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	if *port > 65535 {
		fmt.Fprintf(stderr, "bad port: %d\n", *port)
		return 2
	}

	if *noColor {
		cfg.Log.Color = false
	}

	cfg.Resolve.Confine = !*unconfined

	app, err := solo.New(flags.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := net.JoinHostPort("0.0.0.0", strconv.FormatUint(uint64(*port), 10))
	err = app.Tune(cfg).Logger(stdout).Serve(ctx, addr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	return 0
}
