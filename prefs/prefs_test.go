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

package prefs_test

import (
	"fmt"
	"testing"

	"github.com/pc88go/m88sound/prefs"
	"github.com/pc88go/m88sound/test"
)

func TestCommandLineStackValues(t *testing.T) {
	// empty on start
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// single value
	prefs.PushCommandLineStack("foo::bar")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "foo::bar")

	// single value but with additional space
	prefs.PushCommandLineStack("   foo:: bar ")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "foo::bar")

	// more than one key/value in the prefs string. remaining string will
	// will be sorted
	prefs.PushCommandLineStack("foo::bar; baz::qux")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "baz::qux; foo::bar")

	// check invalid prefs string
	prefs.PushCommandLineStack("foo_bar")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// get prefs value that doesn't exist after pushing a parially invalid prefs string
	prefs.PushCommandLineStack("foo::bar;baz_qux")
	ok, _ := prefs.GetCommandLinePref("baz")
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "foo::bar")
}

func TestBool(t *testing.T) {
	var b prefs.Bool
	test.ExpectEquality(t, b.String(), "false")
	test.ExpectSuccess(t, b.Set(true))
	test.ExpectSuccess(t, b.Bool())
	test.ExpectSuccess(t, b.Set("TRUE"))
	test.ExpectSuccess(t, b.Bool())
	test.ExpectSuccess(t, b.Set("foo"))
	test.ExpectFailure(t, b.Bool())
	test.ExpectFailure(t, b.Set(10))
}

func TestInt(t *testing.T) {
	var i prefs.Int
	test.ExpectSuccess(t, i.Set(100))
	test.ExpectEquality(t, i.Int(), 100)
	test.ExpectSuccess(t, i.Set(" 44100"))
	test.ExpectEquality(t, i.String(), "44100")
	test.ExpectFailure(t, i.Set("fast"))
	test.ExpectEquality(t, i.Int(), 44100)
}

func TestHooks(t *testing.T) {
	var i prefs.Int
	var post int

	i.SetHookPre(func(v prefs.Value) error {
		if v.(int) <= 0 {
			return fmt.Errorf("must be positive")
		}
		return nil
	})
	i.SetHookPost(func(v prefs.Value) error {
		post = v.(int)
		return nil
	})

	test.ExpectSuccess(t, i.Set(10))
	test.ExpectEquality(t, post, 10)

	// pre hook rejects value. value and post value are unchanged
	test.ExpectFailure(t, i.Set(-1))
	test.ExpectEquality(t, i.Int(), 10)
	test.ExpectEquality(t, post, 10)
}

func TestGroup(t *testing.T) {
	var rate prefs.Int
	var precise prefs.Bool

	g := prefs.NewGroup()
	test.ExpectSuccess(t, g.Add("sound.rate", &rate))
	test.ExpectSuccess(t, g.Add("sound.precise", &precise))
	test.ExpectFailure(t, g.Add("sound.rate", &rate))
	test.ExpectFailure(t, g.Add("bad::key", &rate))

	prefs.PushCommandLineStack("sound.rate::48000; sound.precise::true; other::1")
	test.ExpectSuccess(t, g.ApplyCommandLine())
	test.ExpectEquality(t, rate.Int(), 48000)
	test.ExpectSuccess(t, precise.Bool())
	test.ExpectEquality(t, g.String(), "sound.precise::true; sound.rate::48000")

	// unused value remains on the stack
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "other::1")
}
