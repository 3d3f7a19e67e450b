package main

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"goprelude/pkg/abi"
	"goprelude/pkg/config"
	"goprelude/pkg/console"
	"goprelude/pkg/host"
	"goprelude/pkg/memory"
	"goprelude/pkg/programs"
)

func TestConfiguredRunOnConsole(t *testing.T) {
	// 1. Write a run config with an input fixture next to it
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tokens.txt"), []byte("3\nred green\r\nblue\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "run.yaml")
	yaml := "program: echo_tokens\ninput: tokens.txt\nmemory_size: 131072\nwindow: {cols: 20, rows: 6}\nscreenshot: shot.png\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	// 2. Load it
	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// 3. Run the program with its output on a console screen
	in, err := os.Open(cfg.Input)
	if err != nil {
		t.Fatalf("open input: %v", err)
	}
	defer in.Close()

	p, ok := programs.Lookup(cfg.Program)
	if !ok {
		t.Fatalf("program %q not registered", cfg.Program)
	}
	screen := console.NewScreen(cfg.Window.Cols, cfg.Window.Rows)
	s := host.NewSession(in, screen, host.WithMemorySize(cfg.MemorySize))
	code, err := s.Run(context.Background(), p)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// 4. Assertions
	if code != 0 {
		t.Errorf("Expected exit code 0, got %d", code)
	}
	want := "red 3\ngreen 5\nblue 4"
	if screen.Text() != want {
		t.Errorf("Expected screen %q, got %q", want, screen.Text())
	}
	if s.Arena.Used() != 0 {
		t.Errorf("Expected the guest stack fully unwound, %d bytes still used", s.Arena.Used())
	}

	// 5. Screenshot lands where the config says
	if err := console.SaveScreenshot(screen, cfg.Screenshot); err != nil {
		t.Fatalf("SaveScreenshot failed: %v", err)
	}
	f, err := os.Open(filepath.Join(dir, "shot.png"))
	if err != nil {
		t.Fatalf("screenshot missing: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w, _ := console.PixelSize(screen); img.Bounds().Dx() != w {
		t.Errorf("Expected width %d, got %d", w, img.Bounds().Dx())
	}
}

func TestGeneratedCallSequence(t *testing.T) {
	// Drive the primitives by symbol, the way linked generated code would:
	// let s = get_str(); let n = strlen(s); print(s); println(n)
	var out strings.Builder
	s := host.NewSession(strings.NewReader("  prelude  rest"), &out, host.WithMemorySize(64*1024))

	buf, err := s.Arena.Alloc(1024)
	if err != nil {
		t.Fatal(err)
	}
	call := func(symbol string, args ...abi.Word) abi.Word {
		t.Helper()
		r, err := abi.Invoke(s.Runtime, symbol, args...)
		if err != nil {
			t.Fatalf("%s: %v", symbol, err)
		}
		return r
	}

	call("__c_get_str", abi.FromPtr(buf))
	n := call("__c_strlen", abi.FromPtr(buf))
	call("__c_print_str", abi.FromPtr(buf))
	call("__c_println_int", n)

	if out.String() != "prelude7\n" {
		t.Errorf("Expected %q, got %q", "prelude7\n", out.String())
	}
	if string(s.Memory.CString(buf)) != "prelude" {
		t.Errorf("Expected the token in guest memory, got %q", s.Memory.CString(buf))
	}
	if s.Memory.Faults() != 0 {
		t.Errorf("Expected no faults, got %d", s.Memory.Faults())
	}

	// The null page stays out of the arena.
	if buf == memory.Null {
		t.Errorf("Expected a non-null buffer")
	}
}
