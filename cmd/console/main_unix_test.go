//go:build unix

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"
)

func TestInterruptCancelsBlockedRead(t *testing.T) {
	var fds [2]int
	if err := syscall.Pipe(fds[:]); err != nil {
		t.Fatalf("pipe: %v", err)
	}
	stdin := os.NewFile(uintptr(fds[0]), "blocking-stdin")
	defer syscall.Close(fds[1])

	ctx, stop := interruptContext(context.Background())
	defer stop()

	type result struct {
		code int
		err  error
	}
	done := make(chan result, 1)
	go func() {
		code, err := run(ctx, []string{"-program", "gcd_chain"}, stdin, &bytes.Buffer{})
		done <- result{code, err}
	}()

	time.Sleep(100 * time.Millisecond)
	if err := syscall.Kill(os.Getpid(), syscall.SIGINT); err != nil {
		t.Fatalf("kill: %v", err)
	}

	select {
	case r := <-done:
		if !errors.Is(r.err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", r.err)
		}
		if r.code != 1 {
			t.Errorf("Expected exit code 1, got %d", r.code)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("run still blocked 2s after SIGINT")
	}
}
