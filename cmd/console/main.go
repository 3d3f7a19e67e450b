package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"goprelude/pkg/config"
	"goprelude/pkg/host"
	"goprelude/pkg/programs"
)

func main() {
	ctx, stop := interruptContext(context.Background())
	defer stop()

	code, err := run(ctx, os.Args[1:], os.Stdin, os.Stdout)
	var usage usageError
	if errors.As(err, &usage) {
		fmt.Fprintln(os.Stderr, usage.msg)
		os.Exit(2)
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "interrupted")
		os.Exit(130)
	}
	if err != nil {
		log.Fatalf("console: %v", err)
	}
	stop()
	os.Exit(code)
}

// interruptContext is cancelled by the first SIGINT. The handler is released
// as soon as that happens, so a second SIGINT kills the process even while
// the guest is stuck in a read.
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	go func() {
		<-ctx.Done()
		stop()
	}()
	return ctx, stop
}

type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

// run executes one guest program on the given streams and returns its exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) (int, error) {
	fs := flag.NewFlagSet("console", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	programName := fs.String("program", "", "guest program to run")
	configPath := fs.String("config", "", "YAML run config")
	inPath := fs.String("in", "", "read guest stdin from this file instead of the terminal")
	memSize := fs.Int("memory", 0, "guest memory size in bytes")
	list := fs.Bool("list", false, "list guest programs and exit")
	if err := fs.Parse(args); err != nil {
		return 2, usageError{err.Error()}
	}

	if *list {
		for _, p := range programs.All() {
			fmt.Fprintf(stdout, "%-14s %s\n", p.Name, p.Description)
		}
		return 0, nil
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return 1, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "program":
			cfg.Program = *programName
		case "in":
			cfg.Input = *inPath
		case "memory":
			cfg.MemorySize = *memSize
		}
	})
	if err := cfg.Validate(); err != nil {
		return 1, err
	}
	if cfg.Program == "" {
		return 2, usageError{"no program given: use -program <name> or -list"}
	}

	p, ok := programs.Lookup(cfg.Program)
	if !ok {
		return 2, usageError{fmt.Sprintf("unknown program %q (see -list)", cfg.Program)}
	}

	in := stdin
	if cfg.Input != "" {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return 1, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	s := host.NewSession(in, stdout, host.WithMemorySize(cfg.MemorySize))
	code, err := s.Run(ctx, p)
	if err != nil {
		return 1, err
	}
	if n := s.Memory.Faults(); n > 0 {
		log.Printf("%s: %d out-of-range memory accesses", p.Name, n)
	}
	return int(code), nil
}
