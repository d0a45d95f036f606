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

// Package sound is the audio core of the emulator. It converts the passage of
// virtual machine time into PCM samples, mixes the output of the connected
// sound sources, and makes the result available to an audio device running
// on its own goroutine.
//
// The main type is Sound. It owns a Bus, to which any number of Source
// implementations can be connected, and an output buffer which adapts the
// fixed internal mixing rate (MixRate) to the rate negotiated with the audio
// device.
//
// The emulation goroutine drives the package:
//
//	snd := sound.NewSound(sound.DefaultTiming())
//	err := snd.Init(machine, machine, 44100, sound.BufferSize(44100, 100))
//	snd.Connect(psg)
//	...
//	snd.Update() // whenever virtual time should be reconciled
//
// The audio goroutine pulls samples from the Provider returned by
// snd.Provider(). The Callback type implements the byte oriented pull
// contract used by audio backends, zero filling any shortfall.
//
// Only the connected source list and the output buffer are shared between
// the two goroutines. The clock bookkeeping performed by Update() is not
// protected and must only be performed by the emulation goroutine. The audio
// backend must be stopped before Cleanup() is called.
package sound
