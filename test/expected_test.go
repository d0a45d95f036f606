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

package test_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/pc88go/m88sound/test"
)

func TestExpectFailure(t *testing.T) {
	test.ExpectFailure(t, false)
	test.ExpectFailure(t, errors.New("test"))
}

func TestExpectSuccess(t *testing.T) {
	test.ExpectSuccess(t, true)
	var err error
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, nil)
}

func TestExpectEquality(t *testing.T) {
	test.ExpectEquality(t, 10, 5+5)
	test.ExpectEquality(t, true, true)
	test.ExpectEquality(t, true, !false)
}

func TestExpectInequality(t *testing.T) {
	test.ExpectInequality(t, 11, 5+5)
	test.ExpectInequality(t, true, false)
}

func TestExpectApproximate(t *testing.T) {
	test.ExpectApproximate(t, 10, 11, 1.0)
	test.ExpectApproximate(t, 10.0, 10.05, 0.1)
}

func TestCappedWriter(t *testing.T) {
	_, err := test.NewCappedWriter(-1)
	test.ExpectFailure(t, err)

	w, err := test.NewCappedWriter(4)
	test.DemandSuccess(t, err)

	n, err := w.Write([]byte("ab"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 2)

	n, err = w.Write([]byte("cdef"))
	test.ExpectSuccess(t, errors.Is(err, io.ErrShortWrite))
	test.ExpectEquality(t, n, 2)
	test.ExpectEquality(t, w.String(), "abcd")

	n, err = w.Write([]byte("g"))
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, n, 0)

	rejected, failures := w.Rejected()
	test.ExpectEquality(t, rejected, 3)
	test.ExpectEquality(t, failures, 2)

	w.Reset()
	test.ExpectEquality(t, w.Len(), 0)
	rejected, _ = w.Rejected()
	test.ExpectEquality(t, rejected, 0)
}

func TestCompareWriter(t *testing.T) {
	w := &test.CompareWriter{}
	test.ExpectEquality(t, len(w.Lines()), 0)

	fmt.Fprint(w, "hello ")
	fmt.Fprintln(w, "world")
	fmt.Fprintln(w, "goodbye")
	test.ExpectSuccess(t, w.Compare("hello world\ngoodbye\n"))
	test.ExpectSuccess(t, w.Contains("world"))
	test.ExpectEquality(t, len(w.Lines()), 2)
	test.ExpectEquality(t, w.Lines()[1], "goodbye")

	w.Clear()
	test.ExpectSuccess(t, w.Compare(""))
}
