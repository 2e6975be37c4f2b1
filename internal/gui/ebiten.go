package gui

import (
	"context"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/san-kum/harmograph/internal/control"
	"github.com/san-kum/harmograph/internal/engine"
)

var ebitenBindings = []control.Binding[ebiten.Key]{
	{Code: ebiten.KeyArrowLeft, Keys: control.PanLeft},
	{Code: ebiten.KeyArrowRight, Keys: control.PanRight},
	{Code: ebiten.KeyArrowUp, Keys: control.PanUp},
	{Code: ebiten.KeyArrowDown, Keys: control.PanDown},
	{Code: ebiten.KeyA, Keys: control.PanLeft},
	{Code: ebiten.KeyD, Keys: control.PanRight},
	{Code: ebiten.KeyW, Keys: control.PanUp},
	{Code: ebiten.KeyS, Keys: control.PanDown},
	{Code: ebiten.KeyEqual, Keys: control.ZoomIn},
	{Code: ebiten.KeyNumpadAdd, Keys: control.ZoomIn},
	{Code: ebiten.KeyMinus, Keys: control.ZoomOut},
	{Code: ebiten.KeyNumpadSubtract, Keys: control.ZoomOut},
	{Code: ebiten.KeyBracketRight, Keys: control.SpeedUp},
	{Code: ebiten.KeyBracketLeft, Keys: control.SpeedDown},
	{Code: ebiten.KeySpace, Keys: control.Pause},
	{Code: ebiten.KeyT, Keys: control.Trails},
	{Code: ebiten.KeyR, Keys: control.Reset},
	{Code: ebiten.KeyDigit0, Keys: control.Reset},
	{Code: ebiten.KeyShiftLeft, Keys: control.Fast},
	{Code: ebiten.KeyShiftRight, Keys: control.Fast},
}

// ebitenGame implements ebiten.Game. Layout is the buffer size; ebiten
// scales it to the window.
type ebitenGame struct {
	session
	ctx    context.Context
	width  int
	height int
	frame  *ebiten.Image
	pix    []byte
	prev   control.Keys
	err    error
}

func runEbiten(ctx context.Context, e *engine.Engine, opts Options) error {
	w, h := e.Size()
	g := &ebitenGame{
		session: session{engine: e, opts: opts},
		ctx:     ctx,
		width:   w,
		height:  h,
		pix:     make([]byte, w*h*4),
	}

	ebiten.SetWindowSize(w*opts.Zoom, h*opts.Zoom)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(opts.FPS)

	if err := ebiten.RunGame(g); err != nil {
		return &BackendError{Backend: Ebiten, Operation: "run", Details: "game loop ended", Err: err}
	}
	g.finishRecording()
	return g.err
}

func (g *ebitenGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.screenshot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.toggleMono()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.toggleRecording()
	}

	held := control.Poll(ebitenBindings, ebiten.IsKeyPressed)
	if _, err := g.engine.Step(g.ctx, control.Edge(g.prev, held)); err != nil {
		g.err = err
		return ebiten.Termination
	}
	g.prev = held
	g.afterStep()
	return nil
}

func (g *ebitenGame) Draw(screen *ebiten.Image) {
	if g.frame == nil {
		g.frame = ebiten.NewImage(g.width, g.height)
	}
	g.engine.Front().WriteRGBA(g.pix)
	g.frame.WritePixels(g.pix)
	screen.DrawImage(g.frame, nil)

	face := basicfont.Face7x13
	overlay := color.RGBA{190, 190, 190, 255}
	for i, line := range g.overlay() {
		text.Draw(screen, line, face, 4, 13+i*14, overlay)
	}
}

func (g *ebitenGame) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
