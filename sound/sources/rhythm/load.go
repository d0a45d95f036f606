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

package rhythm

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/pc88go/m88sound/logger"
)

// filename of the sample data for an instrument, without the extension
func basename(inst Instrument) string {
	return fmt.Sprintf("2608_%s", inst)
}

// the file extensions looked for, in order of preference
var extensions = []string{".WAV", ".wav", ".mp3", ".MP3"}

// Load sample data for every instrument from the files in dir. Returns the
// number of instruments loaded. Missing files are not an error but a file
// that cannot be decoded is.
func (r *Rhythm) Load(dir string) (int, error) {
	var loaded int

	for i := Instrument(0); i < NumInstruments; i++ {
		found := false

		for _, ext := range extensions {
			fn := filepath.Join(dir, basename(i)+ext)

			pcm, rate, err := decodeFile(fn)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue // for loop
				}
				return loaded, fmt.Errorf("rhythm: %s: %w", filepath.Base(fn), err)
			}

			err = r.LoadPCM(i, pcm, rate)
			if err != nil {
				return loaded, err
			}

			logger.Logf(logger.Allow, logTag, "%s: %d samples at %dHz", filepath.Base(fn), len(pcm), rate)
			loaded++
			found = true
			break // for loop
		}

		if !found {
			logger.Logf(logger.Allow, logTag, "no sample data for %s in %s", i, dir)
		}
	}

	return loaded, nil
}

// decodeFile returns mono 16bit data and the sample rate of the file.
func decodeFile(filename string) ([]int16, int, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return decodeWAV(f)
	case ".mp3":
		return decodeMP3(f)
	}

	return nil, 0, fmt.Errorf("unsupported file type")
}

// decodeWAV mixes all channels of the file down to mono.
func decodeWAV(r io.ReadSeeker) ([]int16, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("wav: not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("wav: %w", err)
	}

	chans := int(dec.NumChans)
	if chans <= 0 {
		return nil, 0, fmt.Errorf("wav: no channels")
	}

	// normalise to signed 16bit. 8bit wav data is unsigned
	norm := func(v int) int {
		switch dec.BitDepth {
		case 8:
			return (v - 128) << 8
		case 24:
			return v >> 8
		case 32:
			return v >> 16
		}
		return v
	}

	pcm := make([]int16, 0, len(buf.Data)/chans)
	for i := 0; i+chans <= len(buf.Data); i += chans {
		var sum int
		for c := 0; c < chans; c++ {
			sum += norm(buf.Data[i+c])
		}
		pcm = append(pcm, int16(sum/chans))
	}

	return pcm, int(dec.SampleRate), nil
}

// decodeMP3 takes the left channel of the decoded stream. the decoder always
// produces 16bit little-endian stereo data regardless of the source file.
func decodeMP3(r io.Reader) ([]int16, int, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, 0, fmt.Errorf("mp3: %w", err)
	}

	var pcm []int16
	chunk := make([]byte, 4096)
	for {
		n, err := dec.Read(chunk)
		for i := 0; i+1 < n; i += 4 {
			pcm = append(pcm, int16(uint16(chunk[i])|uint16(chunk[i+1])<<8))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("mp3: %w", err)
		}
	}

	return pcm, dec.SampleRate(), nil
}
