// Command nes-play is a minimal SDL2 front end for the nes package: one
// window, one controller, one audio stream. It replaces the teacher's
// split nes/vnes debug-viewer duo with a single player-focused host.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"syscall"
	"time"

	cmderrors "github.com/flga/nesgo/cmd/internal/errors"
	"github.com/flga/nesgo/cmd/internal/meter"
	"github.com/flga/nesgo/nes"

	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	// SDL requires all window/render/event calls to happen on the thread
	// that initialized video.
	runtime.LockOSThread()
}

var keyboardMapping = map[sdl.Keycode]nes.Button{
	sdl.K_a:      nes.A,
	sdl.K_z:      nes.B,
	sdl.K_RETURN: nes.Start,
	sdl.K_RSHIFT: nes.Select,
	sdl.K_UP:     nes.Up,
	sdl.K_DOWN:   nes.Down,
	sdl.K_LEFT:   nes.Left,
	sdl.K_RIGHT:  nes.Right,
}

func main() {
	var (
		zoom       = flag.Int("zoom", 3, "window scale factor")
		trace      = flag.Bool("trace", false, "write a nestest-style CPU trace to stderr")
		cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
		memprofile = flag.String("memprofile", "", "write memory profile to file")
		sampleRate = flag.Int("samplerate", 44100, "audio sample rate in Hz")
	)
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: nes-play [flags] rom.nes")
		os.Exit(2)
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal(err)
		}
		defer pprof.StopCPUProfile()
	}

	var debug io.Writer = io.Discard
	if *trace {
		debug = os.Stderr
	}

	console := nes.NewConsole(debug)
	if err := console.LoadPath(flag.Arg(0)); err != nil {
		log.Fatalf("nes-play: unable to load %s: %s", flag.Arg(0), err)
	}

	if err := run(console, *zoom, *sampleRate); err != nil && err != errQuit {
		log.Fatal(err)
	}

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal(err)
		}
	}
}

var errQuit = fmt.Errorf("quit requested")

func run(console *nes.Console, zoom, sampleRate int) error {
	if err := sdl.Init(sdl.INIT_GAMECONTROLLER | sdl.INIT_JOYSTICK | sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("run: unable to init sdl: %s", err)
	}
	defer sdl.Quit()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	win, err := newWindow(zoom)
	if err != nil {
		return fmt.Errorf("run: %s", err)
	}
	defer func() {
		var ee cmderrors.List
		ee = ee.Add(win.close())
		if len(ee) > 0 {
			fmt.Fprintln(os.Stderr, ee.Error())
		}
	}()

	audio, err := newAudioOut(console, sampleRate)
	if err != nil {
		return fmt.Errorf("run: unable to open audio device: %s", err)
	}
	defer audio.close()
	audio.resume()

	fps := meter.New(meter.DefaultBufferLen)
	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		quit, err := win.poll(console)
		if err != nil {
			return fmt.Errorf("run: %s", err)
		}
		if quit {
			return errQuit
		}

		if err := console.StepFrame(); err != nil {
			return fmt.Errorf("run: console fault: %s", err)
		}

		if err := audio.queueFrame(); err != nil {
			return fmt.Errorf("run: %s", err)
		}

		if err := win.paint(console, fps.Tps()); err != nil {
			return fmt.Errorf("run: %s", err)
		}

		fps.Record(time.Since(start))
		start = time.Now()
	}
}
