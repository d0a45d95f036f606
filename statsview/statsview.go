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

//go:build statsview

package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/pc88go/m88sound/logger"
)

// Address of the stats server.
const Address = "localhost:12880"

const url = "/debug/statsview"

// sampling interval of the charts in milliseconds. short enough to catch
// garbage collector pauses long enough to starve the audio goroutine
const sampleInterval = 500

// Launch a new goroutine running the statsview. Returns a function that will
// stop the server.
func Launch(output io.Writer) func() {
	viewer.SetConfiguration(viewer.WithAddr(Address), viewer.WithInterval(sampleInterval))
	mgr := statsview.New()
	go mgr.Start()

	logger.Logf(logger.Allow, "statsview", "stats server available at %s%s", Address, url)
	if output != nil {
		fmt.Fprintf(output, "stats server available at %s%s\n", Address, url)
	}

	return mgr.Stop
}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return true
}
