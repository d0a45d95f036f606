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

package hotkeys_test

import (
	"testing"

	"github.com/pc88go/m88sound/hotkeys"
	"github.com/pc88go/m88sound/test"
)

func TestDecode(t *testing.T) {
	test.ExpectEquality(t, hotkeys.Decode('r').Action, hotkeys.ActionRecord)
	test.ExpectEquality(t, hotkeys.Decode('P').Action, hotkeys.ActionPrecise)
	test.ExpectEquality(t, hotkeys.Decode('+').Action, hotkeys.ActionFaster)
	test.ExpectEquality(t, hotkeys.Decode('-').Action, hotkeys.ActionSlower)
	test.ExpectEquality(t, hotkeys.Decode('q').Action, hotkeys.ActionQuit)
	test.ExpectEquality(t, hotkeys.Decode(27).Action, hotkeys.ActionQuit)
	test.ExpectEquality(t, hotkeys.Decode(3).Action, hotkeys.ActionQuit)
	test.ExpectEquality(t, hotkeys.Decode('x').Action, hotkeys.ActionNone)

	// notes
	test.ExpectEquality(t, hotkeys.Decode('1'), hotkeys.Event{Action: hotkeys.ActionNote, Note: 0})
	test.ExpectEquality(t, hotkeys.Decode('7'), hotkeys.Event{Action: hotkeys.ActionNote, Note: 6})
	test.ExpectEquality(t, hotkeys.Decode('8').Action, hotkeys.ActionNone)
	test.ExpectEquality(t, hotkeys.Decode('0').Action, hotkeys.ActionNone)

	test.ExpectEquality(t, hotkeys.Decode('6').String(), "note 5")
	test.ExpectEquality(t, hotkeys.NoteFrequencies[hotkeys.Decode('6').Note], 440.0)
}
