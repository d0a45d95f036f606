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

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pc88go/m88sound/test"
)

// run the test in a temporary directory so that the resource directory is not
// created in the source tree
func inTempDir(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	dir := t.TempDir()
	test.DemandSuccess(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestVersionMode(t *testing.T) {
	var out strings.Builder
	test.ExpectEquality(t, launch([]string{"VERSION"}, &out), exitOK)
	test.ExpectSuccess(t, strings.HasPrefix(out.String(), "m88sound "))
}

func TestBadArguments(t *testing.T) {
	inTempDir(t)

	var out strings.Builder
	test.ExpectEquality(t, launch([]string{"RENDER", "-nosuchflag"}, &out), exitModeError)

	out.Reset()
	test.ExpectEquality(t, launch([]string{"RENDER", "extra"}, &out), exitModeError)
	test.ExpectSuccess(t, strings.Contains(out.String(), "too many arguments"))

	out.Reset()
	test.ExpectEquality(t, launch([]string{"RENDER", "-duration", "0s"}, &out), exitModeError)
}

func TestRenderMode(t *testing.T) {
	dir := inTempDir(t)
	fn := filepath.Join(dir, "render.wav")
	viz := filepath.Join(dir, "render.dot")

	var out strings.Builder
	ok := launch([]string{"RENDER", "-out", fn, "-duration", "1s", "-memviz", viz}, &out)
	test.DemandEquality(t, ok, exitOK)
	test.ExpectSuccess(t, strings.Contains(out.String(), fn))

	// one second of 16bit stereo at the default rate plus the header
	st, err := os.Stat(fn)
	test.DemandSuccess(t, err)
	test.ExpectApproximate(t, st.Size(), 44+44100*4, 44100*4*0.02)

	st, err = os.Stat(viz)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, st.Size() > 0)
}

func TestPerformanceMode(t *testing.T) {
	inTempDir(t)

	var out strings.Builder
	ok := launch([]string{"PERFORMANCE", "-duration", "100ms"}, &out)
	test.DemandEquality(t, ok, exitOK)
	test.ExpectSuccess(t, strings.Contains(out.String(), "realtime"))
}

func TestSoundFlags(t *testing.T) {
	dir := inTempDir(t)
	fn := filepath.Join(dir, "render.wav")

	var out strings.Builder
	ok := launch([]string{"RENDER", "-log", "-rate", "22050", "-buflen", "50", "-precise=false",
		"-out", fn, "-duration", "1s"}, &out)
	test.DemandEquality(t, ok, exitOK)
	test.ExpectSuccess(t, strings.Contains(out.String(), "sound.rate::22050"))
	test.ExpectSuccess(t, strings.Contains(out.String(), "sound.bufferLength::50"))
	test.ExpectSuccess(t, strings.Contains(out.String(), "sound.precise::false"))

	st, err := os.Stat(fn)
	test.DemandSuccess(t, err)
	test.ExpectApproximate(t, st.Size(), 44+22050*4, 22050*4*0.02)

	// flags take priority over -prefs
	out.Reset()
	ok = launch([]string{"RENDER", "-log", "-prefs", "sound.rate::48000; sound.precise::false",
		"-rate", "32000", "-out", fn, "-duration", "100ms"}, &out)
	test.DemandEquality(t, ok, exitOK)
	test.ExpectSuccess(t, strings.Contains(out.String(), "sound.rate::32000"))
	test.ExpectSuccess(t, strings.Contains(out.String(), "sound.precise::false"))

	// the defaults are used when no flags are given
	out.Reset()
	ok = launch([]string{"RENDER", "-log", "-out", fn, "-duration", "100ms"}, &out)
	test.DemandEquality(t, ok, exitOK)
	test.ExpectSuccess(t, strings.Contains(out.String(), "sound.rate::44100"))
	test.ExpectSuccess(t, strings.Contains(out.String(), "sound.precise::true"))

	// invalid values are rejected by the preferences
	out.Reset()
	test.ExpectEquality(t, launch([]string{"RENDER", "-rate", "0", "-out", fn}, &out), exitModeError)
	out.Reset()
	test.ExpectEquality(t, launch([]string{"RENDER", "-buflen", "-1", "-out", fn}, &out), exitModeError)
}
