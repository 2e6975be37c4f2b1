package gui

import (
	"context"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/harmograph/internal/control"
	"github.com/san-kum/harmograph/internal/engine"
	"github.com/san-kum/harmograph/internal/palette"
)

var (
	colOverlay = rl.NewColor(180, 180, 180, 255)
	colNote    = rl.NewColor(255, 255, 255, 255)
)

var rayBindings = []control.Binding[int32]{
	{Code: rl.KeyLeft, Keys: control.PanLeft},
	{Code: rl.KeyRight, Keys: control.PanRight},
	{Code: rl.KeyUp, Keys: control.PanUp},
	{Code: rl.KeyDown, Keys: control.PanDown},
	{Code: rl.KeyA, Keys: control.PanLeft},
	{Code: rl.KeyD, Keys: control.PanRight},
	{Code: rl.KeyW, Keys: control.PanUp},
	{Code: rl.KeyS, Keys: control.PanDown},
	{Code: rl.KeyEqual, Keys: control.ZoomIn},
	{Code: rl.KeyKpAdd, Keys: control.ZoomIn},
	{Code: rl.KeyMinus, Keys: control.ZoomOut},
	{Code: rl.KeyKpSubtract, Keys: control.ZoomOut},
	{Code: rl.KeyRightBracket, Keys: control.SpeedUp},
	{Code: rl.KeyLeftBracket, Keys: control.SpeedDown},
	{Code: rl.KeySpace, Keys: control.Pause},
	{Code: rl.KeyT, Keys: control.Trails},
	{Code: rl.KeyR, Keys: control.Reset},
	{Code: rl.KeyZero, Keys: control.Reset},
	{Code: rl.KeyLeftShift, Keys: control.Fast},
	{Code: rl.KeyRightShift, Keys: control.Fast},
}

type rayApp struct {
	session
	ctx    context.Context
	tex    rl.Texture2D
	pixels []color.RGBA
	prev   control.Keys
	err    error
}

func runRaylib(ctx context.Context, e *engine.Engine, opts Options) error {
	w, h := e.Size()
	rl.InitWindow(int32(w*opts.Zoom), int32(h*opts.Zoom), opts.Title)
	if !rl.IsWindowReady() {
		return &BackendError{Backend: Raylib, Operation: "window creation", Details: "window not ready"}
	}
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)

	img := rl.GenImageColor(w, h, rl.Black)
	app := &rayApp{
		session: session{engine: e, opts: opts},
		ctx:     ctx,
		tex:     rl.LoadTextureFromImage(img),
		pixels:  make([]color.RGBA, w*h),
	}
	rl.UnloadImage(img)
	defer rl.UnloadTexture(app.tex)

	app.RunLoop()
	app.finishRecording()
	return app.err
}

func (a *rayApp) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Update polls input and steps one frame. It reports false when the
// window should close.
func (a *rayApp) Update() bool {
	if a.ctx.Err() != nil {
		return false
	}
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.screenshot()
	}
	if rl.IsKeyPressed(rl.KeyM) {
		a.toggleMono()
	}
	if rl.IsKeyPressed(rl.KeyG) {
		a.toggleRecording()
	}

	held := control.Poll(rayBindings, rl.IsKeyDown)
	if _, err := a.engine.Step(a.ctx, control.Edge(a.prev, held)); err != nil {
		a.err = err
		return false
	}
	a.prev = held
	a.afterStep()
	return true
}

func (a *rayApp) Draw() {
	front := a.engine.Front()
	for i := range a.pixels {
		a.pixels[i] = palette.RGBA(front.Pix[i])
	}
	rl.UpdateTexture(a.tex, a.pixels)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	rl.DrawTextureEx(a.tex, rl.NewVector2(0, 0), 0, float32(a.opts.Zoom), rl.White)

	lines := a.overlay()
	for i, line := range lines {
		col := colOverlay
		if i == 2 {
			col = colNote
		}
		rl.DrawText(line, 8, int32(8+i*14), 12, col)
	}
	rl.EndDrawing()
}
