package main

import (
	"context"
	"errors"
	"flag"
	"image"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"goprelude/pkg/config"
	"goprelude/pkg/console"
)

type Game struct {
	app      *app
	frame    *image.RGBA
	textImg  *ebiten.Image // reused terminal canvas
	statusAt int
}

func newGame(a *app) *Game {
	w, h := console.PixelSize(a.screen)
	_, ch := console.CellSize()
	return &Game{
		app:      a,
		frame:    image.NewRGBA(image.Rect(0, 0, w, h)),
		statusAt: h - ch,
	}
}

func (g *Game) Update() error {
	for _, r := range ebiten.AppendInputChars(nil) {
		g.app.pushKey(r)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.app.pushKey('\n')
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.app.pushKey('\b')
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.textImg == nil {
		b := g.frame.Bounds()
		g.textImg = ebiten.NewImage(b.Dx(), b.Dy())
	}

	console.Render(g.app.screen, g.frame)
	g.textImg.WritePixels(g.frame.Pix)
	screen.DrawImage(g.textImg, &ebiten.DrawImageOptions{})

	if s := g.app.status(); s != "" {
		ebitenutil.DebugPrintAt(screen, s, 0, g.statusAt)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.frame.Bounds()
	return b.Dx(), b.Dy()
}

func main() {
	programName := flag.String("program", "", "guest program to run")
	configPath := flag.String("config", "", "YAML run config")
	screenshot := flag.String("screenshot", "", "save a PNG of the terminal on exit")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *programName != "" {
		cfg.Program = *programName
	}
	if *screenshot != "" {
		cfg.Screenshot = *screenshot
	}
	if cfg.Program == "" {
		flag.Usage()
		os.Exit(2)
	}

	a, err := newApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.start(ctx)

	game := newGame(a)
	w, h := game.Layout(0, 0)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(w*cfg.Window.Scale, h*cfg.Window.Scale)
	ebiten.SetWindowTitle(cfg.Window.Title + " - " + cfg.Program)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}

	// Window closed: unblock a pending read and let the program wind down.
	cancel()
	if _, err := a.wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("%s: %v", cfg.Program, err)
	}

	if cfg.Screenshot != "" {
		if err := console.SaveScreenshot(a.screen, cfg.Screenshot); err != nil {
			log.Fatalf("Failed to save screenshot: %v", err)
		}
	}
}
