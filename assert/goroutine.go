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

// Package assert contains functions for checking assumptions about how the
// program is running. They are not intended to be called in tight loops.
package assert

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
)

// GetGoRoutineID returns the ID of the goroutine calling the function. The ID
// is taken from the header line of the stack trace.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// Owner records the goroutine that owns a resource. The zero value owns
// nothing and every goroutine is considered the owner.
type Owner struct {
	id atomic.Uint64
}

// Claim the resource for the calling goroutine.
func (o *Owner) Claim() {
	o.id.Store(GetGoRoutineID())
}

// Release the resource. After release, every goroutine is the owner.
func (o *Owner) Release() {
	o.id.Store(0)
}

// IsOwner returns true if the calling goroutine is the owner of the resource
// or if the resource is unclaimed.
func (o *Owner) IsOwner() bool {
	id := o.id.Load()
	return id == 0 || id == GetGoRoutineID()
}
