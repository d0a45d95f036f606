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

package hotkeys

import "fmt"

// Action is the type of event generated by a key press.
type Action int

// List of valid Action values.
const (
	ActionNone Action = iota
	ActionRecord
	ActionPrecise
	ActionFaster
	ActionSlower
	ActionNote
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionRecord:
		return "record"
	case ActionPrecise:
		return "precise"
	case ActionFaster:
		return "faster"
	case ActionSlower:
		return "slower"
	case ActionNote:
		return "note"
	case ActionQuit:
		return "quit"
	}
	return "unknown"
}

// Event is sent by the Reader for every recognised key press.
type Event struct {
	Action Action

	// Note is the index of the note to play when Action is ActionNote. Notes
	// are numbered from zero
	Note int
}

func (ev Event) String() string {
	if ev.Action == ActionNote {
		return fmt.Sprintf("%s %d", ev.Action, ev.Note)
	}
	return ev.Action.String()
}

// NumNotes is the number of notes that can be played with the number keys.
const NumNotes = 7

// NoteFrequencies are the frequencies of the notes played by the number keys.
// The frequencies are for the C major scale starting at C4.
var NoteFrequencies = [NumNotes]float64{261.63, 293.66, 329.63, 349.23, 392.00, 440.00, 493.88}

// ASCII codes for non-alphanumeric keys
const (
	keyInterrupt = 3
	keyEsc       = 27
)

// Decode converts a key code into an Event. Unrecognised keys are returned as
// ActionNone.
func Decode(b byte) Event {
	switch b {
	case 'r', 'R':
		return Event{Action: ActionRecord}
	case 'p', 'P':
		return Event{Action: ActionPrecise}
	case '+', '=':
		return Event{Action: ActionFaster}
	case '-', '_':
		return Event{Action: ActionSlower}
	case 'q', 'Q', keyEsc, keyInterrupt:
		return Event{Action: ActionQuit}
	}

	if b >= '1' && b < '1'+NumNotes {
		return Event{Action: ActionNote, Note: int(b - '1')}
	}

	return Event{Action: ActionNone}
}
