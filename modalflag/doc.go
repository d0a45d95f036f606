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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It handles program modes, and sub-modes, with a different set of
// flags for each mode.
//
// Arguments are given with NewArgs() and then parsed with Parse(). Flags are
// added before each call to Parse() in the same way as the flag package:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("PLAY", "RECORD", "RENDER")
//	p, err := md.Parse()
//
// After a successful Parse() the selected mode is returned by Mode(). The
// first sub-mode is the default and is selected if the first argument is not
// a sub-mode. Sub-mode comparisons are case insensitive.
//
// Each mode can then be given its own flags with NewMode() and another call
// to Parse():
//
//	switch md.Mode() {
//	case "PLAY":
//		md.NewMode()
//		rate := md.AddInt("rate", 44100, "output rate")
//		p, err := md.Parse()
//	}
//
// Parse() prints help messages to the Output writer when the -help flag is
// given, and returns ParseHelp. The sequence of modes is available with
// Path().
package modalflag
