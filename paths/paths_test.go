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

//go:build !release

package paths

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pc88go/m88sound/test"
)

func TestPaths(t *testing.T) {
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	defer os.Chdir(wd)
	test.DemandSuccess(t, os.Chdir(t.TempDir()))

	pth, err := ResourcePath("rhythm", "2608_BD.WAV")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".m88sound", "rhythm", "2608_BD.WAV"))

	// sub-directory has been created
	_, err = os.Stat(filepath.Join(".m88sound", "rhythm"))
	test.ExpectSuccess(t, err)

	pth, err = ResourcePath("", "foo")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".m88sound", "foo"))

	pth, err = ResourcePath("", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".m88sound")
}

func TestUniqueFilename(t *testing.T) {
	n := time.Date(2024, time.March, 9, 7, 5, 3, 0, time.Local)
	test.ExpectEquality(t, uniqueFilename(n, "dump", "", "wav"), "dump_20240309_070503.wav")
	test.ExpectEquality(t, uniqueFilename(n, "dump", " demo ", ".wav"), "dump_demo_20240309_070503.wav")
	test.ExpectEquality(t, uniqueFilename(n, "render", "", ""), "render_20240309_070503")
}
