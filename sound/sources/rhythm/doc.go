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

// Package rhythm is a sample based rhythm unit with six instruments: bass
// drum, snare drum, top cymbal, hi-hat, tom and rim shot.
//
// Samples are loaded from a directory with Load(). For each instrument the
// files 2608_<NAME>.WAV and 2608_<NAME>.mp3 are looked for, in that order,
// where <NAME> is one of BD, SD, TOP, HH, TOM and RIM. Instruments can also
// be given PCM data directly with LoadPCM(), or a crude synthesised kit with
// Synthesise().
//
// Samples are stored at their original rate and resampled to the rate of the
// sound.Bus whenever SetRate() is called.
package rhythm
