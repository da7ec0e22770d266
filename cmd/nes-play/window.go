package main

import (
	"fmt"

	"github.com/flga/nesgo/nes"

	"github.com/veandco/go-sdl2/sdl"
)

const (
	screenW = 256
	screenH = 240
)

// window owns the SDL window, renderer and streaming texture the
// console's framebuffer is blitted into every frame.
type window struct {
	win      *sdl.Window
	renderer *sdl.Renderer
	tex      *sdl.Texture
	pixels   []byte // scratch RGBA buffer reused across frames

	controllers []*sdl.GameController
}

func newWindow(zoom int) (*window, error) {
	win, err := sdl.CreateWindow(
		"nes-play",
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(screenW*zoom), int32(screenH*zoom),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		return nil, fmt.Errorf("newWindow: unable to create window: %s", err)
	}

	renderer, err := sdl.CreateRenderer(win, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		win.Destroy()
		return nil, fmt.Errorf("newWindow: unable to create renderer: %s", err)
	}
	if err := renderer.SetLogicalSize(screenW, screenH); err != nil {
		renderer.Destroy()
		win.Destroy()
		return nil, fmt.Errorf("newWindow: unable to set logical size: %s", err)
	}

	tex, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGBA32, sdl.TEXTUREACCESS_STREAMING, screenW, screenH)
	if err != nil {
		renderer.Destroy()
		win.Destroy()
		return nil, fmt.Errorf("newWindow: unable to create texture: %s", err)
	}

	return &window{
		win:      win,
		renderer: renderer,
		tex:      tex,
		pixels:   make([]byte, screenW*screenH*4),
	}, nil
}

func (w *window) close() error {
	for _, c := range w.controllers {
		c.Close()
	}
	if err := w.tex.Destroy(); err != nil {
		return err
	}
	if err := w.renderer.Destroy(); err != nil {
		return err
	}
	return w.win.Destroy()
}

// poll drains the SDL event queue, routing keyboard and controller
// input to console and reporting whether the user asked to quit.
func (w *window) poll(console *nes.Console) (quit bool, err error) {
	for evt := sdl.PollEvent(); evt != nil; evt = sdl.PollEvent() {
		switch evt := evt.(type) {
		case *sdl.QuitEvent:
			return true, nil

		case *sdl.KeyboardEvent:
			button, ok := keyboardMapping[evt.Keysym.Sym]
			if !ok {
				continue
			}
			if evt.Type == sdl.KEYDOWN {
				console.Press(button)
			} else {
				console.Release(button)
			}

		case *sdl.ControllerDeviceEvent:
			for _, c := range w.controllers {
				c.Close()
			}
			w.controllers = w.controllers[:0]
			for i := 0; i < sdl.NumJoysticks(); i++ {
				if c := sdl.GameControllerOpen(i); c != nil {
					w.controllers = append(w.controllers, c)
				}
			}

		case *sdl.ControllerButtonEvent:
			button, ok := controllerMapping[evt.Button]
			if !ok {
				continue
			}
			if evt.State == sdl.PRESSED {
				console.Press(button)
			} else {
				console.Release(button)
			}
		}
	}

	return false, nil
}

// paint uploads the console's framebuffer to the streaming texture and
// presents it. fps is purely informational and is reflected in the
// window title.
func (w *window) paint(console *nes.Console, fps int) error {
	buf := console.Buffer()
	for i, px := range buf {
		o := i * 4
		w.pixels[o+0] = px.R
		w.pixels[o+1] = px.G
		w.pixels[o+2] = px.B
		w.pixels[o+3] = px.A
	}

	if err := w.tex.Update(nil, w.pixels, screenW*4); err != nil {
		return fmt.Errorf("paint: unable to update texture: %s", err)
	}

	if err := w.renderer.Clear(); err != nil {
		return fmt.Errorf("paint: unable to clear renderer: %s", err)
	}
	if err := w.renderer.Copy(w.tex, nil, nil); err != nil {
		return fmt.Errorf("paint: unable to copy texture: %s", err)
	}
	w.renderer.Present()

	w.win.SetTitle(fmt.Sprintf("nes-play - %d fps", fps))

	return nil
}

var controllerMapping = map[uint8]nes.Button{
	sdl.CONTROLLER_BUTTON_A:          nes.A,
	sdl.CONTROLLER_BUTTON_B:          nes.B,
	sdl.CONTROLLER_BUTTON_START:      nes.Start,
	sdl.CONTROLLER_BUTTON_BACK:       nes.Select,
	sdl.CONTROLLER_BUTTON_DPAD_UP:    nes.Up,
	sdl.CONTROLLER_BUTTON_DPAD_DOWN:  nes.Down,
	sdl.CONTROLLER_BUTTON_DPAD_LEFT:  nes.Left,
	sdl.CONTROLLER_BUTTON_DPAD_RIGHT: nes.Right,
}
