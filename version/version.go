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

// Package version reports the version of the program. The version number is
// set at link time with:
//
//	-ldflags "-X github.com/pc88go/m88sound/version.number=v0.1.0"
//
// Without a version number the information embedded by the Go toolchain is
// used to describe the build.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "m88sound"

// set by the linker
var number string

// Info describes the build.
type Info struct {
	// Version is the version number, "unreleased" if the program was built
	// from a repository without a version number, or "local" if there is no
	// version information at all
	Version string

	// Revision is the vcs revision, suffixed with "+dirty" if the source
	// had uncommitted changes
	Revision string

	// GoVersion is the version of the Go toolchain used to build the program
	GoVersion string

	// Release is true if Version is a version number
	Release bool
}

func (i Info) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s %s", ApplicationName, i.Version))
	if !i.Release {
		s.WriteString(fmt.Sprintf(" (%s)", i.Revision))
	}
	if i.GoVersion != "" {
		s.WriteString(fmt.Sprintf(" %s", i.GoVersion))
	}
	return s.String()
}

// Version returns the build information for the running program.
func Version() Info {
	info, ok := debug.ReadBuildInfo()
	return fromBuildInfo(number, info, ok)
}

func fromBuildInfo(number string, info *debug.BuildInfo, ok bool) Info {
	var v Info

	var vcs bool
	var modified bool

	if ok {
		v.GoVersion = info.GoVersion
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				v.Revision = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
	}

	if v.Revision == "" {
		v.Revision = "no revision information"
	} else if modified {
		v.Revision = fmt.Sprintf("%s+dirty", v.Revision)
	}

	switch {
	case number != "":
		v.Version = number
		v.Release = true
	case vcs:
		v.Version = "unreleased"
	default:
		v.Version = "local"
	}

	return v
}
