package console

import (
	"bytes"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestScreenWrite(t *testing.T) {
	s := NewScreen(10, 3)
	s.Write([]byte("hi\nthere"))

	if s.Line(0) != "hi" {
		t.Errorf("Expected line 0 %q, got %q", "hi", s.Line(0))
	}
	if s.Line(1) != "there" {
		t.Errorf("Expected line 1 %q, got %q", "there", s.Line(1))
	}
	if x, y := s.Cursor(); x != 5 || y != 1 {
		t.Errorf("Expected cursor (5, 1), got (%d, %d)", x, y)
	}
}

func TestScreenControlBytes(t *testing.T) {
	s := NewScreen(20, 2)
	s.Write([]byte("abc\bX\r>\tY\x01"))

	want := ">bX     Y?"
	if s.Line(0) != want {
		t.Errorf("Expected %q, got %q", want, s.Line(0))
	}
}

func TestScreenWrapsAndScrolls(t *testing.T) {
	s := NewScreen(4, 2)
	s.Write([]byte("abcdef"))
	if s.Text() != "abcd\nef" {
		t.Errorf("Expected wrap, got %q", s.Text())
	}

	s.Write([]byte("\nxyz"))
	if s.Text() != "ef\nxyz" {
		t.Errorf("Expected scroll, got %q", s.Text())
	}
	if x, y := s.Cursor(); x != 3 || y != 1 {
		t.Errorf("Expected cursor (3, 1), got (%d, %d)", x, y)
	}

	s.Clear()
	if s.Text() != "" {
		t.Errorf("Expected a blank screen, got %q", s.Text())
	}
}

func TestScreenDefaults(t *testing.T) {
	s := NewScreen(0, -1)
	cols, rows := s.Size()
	if cols != DefaultCols || rows != DefaultRows {
		t.Errorf("Expected %dx%d, got %dx%d", DefaultCols, DefaultRows, cols, rows)
	}
	if len(s.Cells()) != cols*rows {
		t.Errorf("Expected %d cells, got %d", cols*rows, len(s.Cells()))
	}
}

func TestKeyBufferLineEditing(t *testing.T) {
	var echo bytes.Buffer
	k := NewKeyBuffer(&echo)
	for _, r := range "12x" {
		k.PushKey(r)
	}
	k.PushKey('\b')
	if k.Pending() != "12" {
		t.Errorf("Expected pending %q, got %q", "12", k.Pending())
	}
	k.PushKey('\r')
	if k.Pending() != "" {
		t.Errorf("Expected no pending input after Enter, got %q", k.Pending())
	}

	buf := make([]byte, 16)
	n, err := k.Read(buf)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(buf[:n]) != "12\n" {
		t.Errorf("Expected %q, got %q", "12\n", buf[:n])
	}
	if echo.String() != "12x\b\n" {
		t.Errorf("Expected echo %q, got %q", "12x\b\n", echo.String())
	}
}

func TestKeyBufferBackspaceOnEmptyLine(t *testing.T) {
	var echo bytes.Buffer
	k := NewKeyBuffer(&echo)
	k.PushKey('\b')
	if echo.Len() != 0 {
		t.Errorf("Expected no echo, got %q", echo.String())
	}
}

func TestKeyBufferReadBlocksUntilEnter(t *testing.T) {
	k := NewKeyBuffer(nil)
	got := make(chan string, 1)
	go func() {
		b, _ := io.ReadAll(k)
		got <- string(b)
	}()

	k.PushKey('4')
	k.PushKey('2')
	select {
	case s := <-got:
		t.Fatalf("Read returned %q before the buffer was closed", s)
	case <-time.After(20 * time.Millisecond):
	}

	k.PushKey('\n')
	k.PushKey('7')
	k.Close()
	k.PushKey('9')

	select {
	case s := <-got:
		if s != "42\n7" {
			t.Errorf("Expected %q, got %q", "42\n7", s)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Read did not return after Close")
	}
}

func TestRenderDrawsGlyphs(t *testing.T) {
	s := NewScreen(4, 2)
	img := Image(s)
	cw, ch := CellSize()
	if img.Bounds().Dx() != 4*cw || img.Bounds().Dy() != 2*ch {
		t.Fatalf("Expected %dx%d image, got %v", 4*cw, 2*ch, img.Bounds())
	}
	if countLit(img.Pix) != 0 {
		t.Errorf("Expected a blank screen to render no glyph pixels")
	}

	s.Write([]byte("#"))
	img = Image(s)
	if countLit(img.Pix) == 0 {
		t.Errorf("Expected '#' to light some pixels")
	}
	if img.RGBAAt(3*cw+3, ch+5) != Background {
		t.Errorf("Expected an empty cell to stay background")
	}
}

func countLit(pix []byte) int {
	n := 0
	for i := 0; i < len(pix); i += 4 {
		if pix[i] != Background.R || pix[i+1] != Background.G || pix[i+2] != Background.B {
			n++
		}
	}
	return n
}

func TestSaveScreenshot(t *testing.T) {
	s := NewScreen(8, 2)
	s.Write([]byte("ok"))
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := SaveScreenshot(s, path); err != nil {
		t.Fatalf("SaveScreenshot failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	w, h := PixelSize(s)
	if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		t.Errorf("Expected %dx%d, got %v", w, h, img.Bounds())
	}
	if c := color.RGBAModel.Convert(img.At(w-1, h-1)); c != Background {
		t.Errorf("Expected background in the corner, got %v", c)
	}

	if err := SaveScreenshot(s, filepath.Join(t.TempDir(), "missing", "x.png")); err == nil {
		t.Errorf("Expected an error for a missing directory")
	}
}

func TestScreenAsRuntimeOutput(t *testing.T) {
	s := NewScreen(16, 4)
	io.Copy(s, strings.NewReader("42\nabc\n"))
	if s.Text() != "42\nabc" {
		t.Errorf("Expected %q, got %q", "42\nabc", s.Text())
	}
}
