package main

import (
	"fmt"
	"unsafe"

	"github.com/flga/nesgo/nes"

	"github.com/veandco/go-sdl2/sdl"
)

// audioOut drives an SDL audio device from the console's APU. Unlike
// the teacher's portaudio engine, which pulled samples off a channel
// fed by a free-running goroutine, MixChannels is a plain function of
// sample rate: each frame we mix exactly the samples one video frame
// is worth and hand them to SDL's queue, so the APU is only ever
// touched from the main loop.
type audioOut struct {
	console    *nes.Console
	sampleRate int
	deviceID   sdl.AudioDeviceID
	scratch    []float32
}

func newAudioOut(console *nes.Console, sampleRate int) (*audioOut, error) {
	spec := sdl.AudioSpec{
		Freq:     int32(sampleRate),
		Format:   sdl.AUDIO_F32SYS,
		Channels: 1,
		Samples:  1024,
	}

	deviceID, err := sdl.OpenAudioDevice("", false, &spec, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("newAudioOut: %s", err)
	}

	return &audioOut{
		console:    console,
		sampleRate: sampleRate,
		deviceID:   deviceID,
		scratch:    make([]float32, sampleRate/60+1),
	}, nil
}

// queueFrame mixes one video frame's worth of samples and queues them
// for playback. Called once per iteration of the step loop, right
// after StepFrame.
func (a *audioOut) queueFrame() error {
	n := a.sampleRate / 60
	for i := 0; i < n; i++ {
		a.scratch[i] = a.console.APU.MixChannels(float32(a.sampleRate))
	}
	return sdl.QueueAudio(a.deviceID, float32SliceToBytes(a.scratch[:n]))
}

func (a *audioOut) resume() {
	sdl.PauseAudioDevice(a.deviceID, false)
}

func (a *audioOut) pause() {
	sdl.PauseAudioDevice(a.deviceID, true)
}

func (a *audioOut) close() {
	sdl.CloseAudioDevice(a.deviceID)
}

// float32SliceToBytes reinterprets a []float32 as the host-byte-order
// byte slice sdl.QueueAudio wants, matching the AUDIO_F32SYS format
// the device was opened with.
func float32SliceToBytes(samples []float32) []byte {
	if len(samples) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&samples[0])), len(samples)*4)
}
