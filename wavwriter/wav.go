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

// Package wavwriter allows writing of audio data to disk as a WAV file. Note
// that audio data is buffered in memory in its entirity, and written to disk
// when EndMixing() is called. It is therefore only suitable for short
// renders.
package wavwriter

import (
	"os"

	"github.com/pc88go/m88sound/curated"
	"github.com/pc88go/m88sound/logger"
	"github.com/pc88go/m88sound/sound"
	"github.com/youpy/go-wav"
)

// WavWriter collects stereo 16bit frames and writes them as a WAV file.
type WavWriter struct {
	filename string
	rate     int
	buffer   []wav.Sample
	scratch  []int16
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string, rate int) (*WavWriter, error) {
	if rate <= 0 {
		return nil, curated.Errorf("wavwriter: invalid rate (%d)", rate)
	}

	aw := &WavWriter{
		filename: filename,
		rate:     rate,
		buffer:   make([]wav.Sample, 0),
	}

	return aw, nil
}

// Add interleaved stereo frames to the recording.
func (aw *WavWriter) Add(frames []int16) {
	for i := 0; i+1 < len(frames); i += 2 {
		w := wav.Sample{}
		w.Values[0] = int(frames[i])
		w.Values[1] = int(frames[i+1])
		aw.buffer = append(aw.buffer, w)
	}
}

// Pull up to samples frames from the Provider into the recording. Returns
// the number of frames added.
func (aw *WavWriter) Pull(p sound.Provider, samples int) int {
	if len(aw.scratch) < samples*2 {
		aw.scratch = make([]int16, samples*2)
	}

	n := p.Get(aw.scratch, samples)
	n = max(0, min(n, samples))
	aw.Add(aw.scratch[:n*2])

	return n
}

// Len returns the number of frames in the recording.
func (aw *WavWriter) Len() int {
	return len(aw.buffer)
}

// EndMixing writes the recording to disk.
func (aw *WavWriter) EndMixing() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewWriter(f, uint32(len(aw.buffer)), 2, uint32(aw.rate), 16)
	if enc == nil {
		return curated.Errorf("wavwriter: %v", "bad parameters for wav encoding")
	}

	logger.Logf(logger.Allow, "wavwriter", "writing %d frames of audio to %s", len(aw.buffer), aw.filename)

	err = enc.WriteSamples(aw.buffer)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}

// Reset discards the recording.
func (aw *WavWriter) Reset() {
	aw.buffer = aw.buffer[:0]
}
