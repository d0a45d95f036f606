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

// Package paths contains functions to prepare paths to m88sound resources.
//
// The ResourcePath() function prepends the supplied resource with the
// appropriate base directory, creating any intermediate directories as
// required. For example, the following returns the path to the directory
// holding the rhythm samples:
//
//	d, _ := paths.ResourcePath("rhythm", "")
//
// For builds with the "release" build tag the base directory is in the user's
// configuration directory. On modern Linux systems this would be:
//
//	/home/user/.config/m88sound/
//
// For non-"release" builds the base directory is in the current working
// directory:
//
//	.m88sound
//
// UniqueFilename() creates names for sound recordings.
package paths
