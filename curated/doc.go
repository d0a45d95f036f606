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

// Package curated is a helper package for the plain Go language error type.
// Curated errors are created with the Errorf() function. The pattern given to
// Errorf() is preserved so that the error can later be identified with Is()
// and Has(), without the need for a dedicated error type per failure.
//
// Patterns should be declared as constants by the package that returns them:
//
//	const InitError = "sound: init: %v"
//
//	...
//
//	return curated.Errorf(InitError, err)
//
// Error messages are normalised by Error() such that a message part repeated
// immediately is removed. For example "sound: sound: rate" becomes
// "sound: rate". This means that error wrapping can be done without worrying
// about the context being duplicated.
package curated
