package main

import (
	"context"
	"fmt"
	"sync"

	"goprelude/pkg/config"
	"goprelude/pkg/console"
	"goprelude/pkg/host"
	"goprelude/pkg/programs"
)

// app runs one guest program against an on-screen terminal. Keys typed into
// the window feed the program's stdin, its stdout lands on the screen.
type app struct {
	cfg     config.Config
	program programs.Program
	screen  *console.Screen
	keys    *console.KeyBuffer
	session *host.Session

	mu       sync.Mutex
	finished bool
	code     int32
	err      error
	done     chan struct{}
}

func newApp(cfg config.Config) (*app, error) {
	p, ok := programs.Lookup(cfg.Program)
	if !ok {
		return nil, fmt.Errorf("unknown program %q", cfg.Program)
	}
	screen := console.NewScreen(cfg.Window.Cols, cfg.Window.Rows)
	keys := console.NewKeyBuffer(screen)
	return &app{
		cfg:     cfg,
		program: p,
		screen:  screen,
		keys:    keys,
		session: host.NewSession(keys, screen, host.WithMemorySize(cfg.MemorySize)),
		done:    make(chan struct{}),
	}, nil
}

// start runs the program on its own goroutine.
func (a *app) start(ctx context.Context) {
	go func() {
		defer close(a.done)
		code, err := a.session.Run(ctx, a.program)
		a.mu.Lock()
		a.finished, a.code, a.err = true, code, err
		a.mu.Unlock()
	}()
}

// wait blocks until the program has returned.
func (a *app) wait() (int32, error) {
	<-a.done
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.code, a.err
}

// status is the line shown once the program is over, empty while it runs.
func (a *app) status() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch {
	case !a.finished:
		return ""
	case a.err != nil:
		return fmt.Sprintf("[%s failed: %v]", a.program.Name, a.err)
	}
	return fmt.Sprintf("[%s exited with code %d]", a.program.Name, a.code)
}

func (a *app) pushKey(r rune) {
	a.keys.PushKey(r)
}
