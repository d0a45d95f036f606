// This file is part of m88sound.
//
// m88sound is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// m88sound is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with m88sound.  If not, see <https://www.gnu.org/licenses/>.

package sdlaudio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pc88go/m88sound/logger"
	"github.com/pc88go/m88sound/sound"

	"github.com/veandco/go-sdl2/sdl"
)

const logTag = "sdlaudio"

// bytes in one stereo 16bit frame
const frameSize = 4

// Audio outputs sound using SDL.
type Audio struct {
	crit sync.Mutex

	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	cb  *sound.Callback
	buf []byte

	// the pump goroutine tries to keep this many bytes queued
	target uint32

	cancel context.CancelFunc
	done   chan bool
}

// NewAudio is the preferred method of initialisation for the Audio type. The
// bufferSize is in frames at rate. The device is paused until Start() is
// called.
func NewAudio(p sound.Provider, rate int, bufferSize int) (*Audio, error) {
	if rate <= 0 || bufferSize <= 0 {
		return nil, fmt.Errorf("sdlaudio: invalid rate or buffer size (%d, %d)", rate, bufferSize)
	}

	err := sdl.InitSubSystem(sdl.INIT_AUDIO)
	if err != nil {
		return nil, fmt.Errorf("sdlaudio: %w", err)
	}

	// the callback always produces little-endian data
	spec := &sdl.AudioSpec{
		Freq:     int32(rate),
		Format:   sdl.AUDIO_S16LSB,
		Channels: 2,
		Samples:  uint16(min(bufferSize, 0xffff)),
	}

	aud := &Audio{
		cb: sound.NewCallback(p),
	}

	aud.id, err = sdl.OpenAudioDevice("", false, spec, &aud.spec, 0)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
		return nil, fmt.Errorf("sdlaudio: %w", err)
	}

	// the pump tops up a quarter of the buffer at a time
	chunk := max(int(aud.spec.Samples)/4, 16)
	aud.buf = make([]byte, chunk*frameSize)
	aud.target = uint32(aud.spec.Samples) * frameSize

	logger.Logf(logger.Allow, logTag, "device opened at %dHz (%d frame buffer)", aud.spec.Freq, aud.spec.Samples)

	return aud, nil
}

// SetProvider changes the source of the audio data. Safe to call while the
// pump is running.
func (aud *Audio) SetProvider(p sound.Provider) {
	aud.cb.SetProvider(p)
}

// Start the pump goroutine and unpause the device. The pump stops when the
// context is cancelled or when Stop() is called.
func (aud *Audio) Start(ctx context.Context) error {
	aud.crit.Lock()
	defer aud.crit.Unlock()

	if aud.cancel != nil {
		return nil
	}

	ctx, aud.cancel = context.WithCancel(ctx)
	aud.done = make(chan bool)

	// period of the pump is the time it takes to play one chunk
	period := time.Duration(len(aud.buf)/frameSize) * time.Second / time.Duration(aud.spec.Freq)

	go func() {
		defer close(aud.done)

		tck := time.NewTicker(period)
		defer tck.Stop()

		for {
			for sdl.GetQueuedAudioSize(aud.id) < aud.target {
				aud.cb.Fill(aud.buf)
				err := sdl.QueueAudio(aud.id, aud.buf)
				if err != nil {
					logger.Log(logger.Allow, logTag, err)
					break // for loop
				}
			}

			select {
			case <-ctx.Done():
				return
			case <-tck.C:
			}
		}
	}()

	sdl.PauseAudioDevice(aud.id, false)

	return nil
}

// Stop the pump goroutine and pause the device. Queued audio is discarded.
func (aud *Audio) Stop() {
	aud.crit.Lock()
	defer aud.crit.Unlock()

	if aud.cancel == nil {
		return
	}

	aud.cancel()
	<-aud.done
	aud.cancel = nil

	sdl.PauseAudioDevice(aud.id, true)
	sdl.ClearQueuedAudio(aud.id)
}

// IsPlaying returns true if the pump goroutine is running.
func (aud *Audio) IsPlaying() bool {
	aud.crit.Lock()
	defer aud.crit.Unlock()
	return aud.cancel != nil
}

// Close stops the pump and closes the device. The Audio instance can not be
// used again.
func (aud *Audio) Close() error {
	aud.Stop()
	sdl.CloseAudioDevice(aud.id)
	sdl.QuitSubSystem(sdl.INIT_AUDIO)
	return nil
}
