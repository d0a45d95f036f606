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

package test

import (
	"fmt"
	"io"
)

// CappedWriter is an io.Writer that accepts a fixed number of bytes and then
// fails. It can be used to simulate a device or disk that has run out of
// space part way through a stream of audio data.
type CappedWriter struct {
	buffer []byte
	size   int

	// number of bytes rejected and the number of failed calls to Write()
	rejected int
	failures int
}

// NewCappedWriter is the preferred method of initialisation for the
// CappedWriter type.
func NewCappedWriter(size int) (*CappedWriter, error) {
	if size < 0 {
		return nil, fmt.Errorf("capped writer: invalid size (%d)", size)
	}
	return &CappedWriter{
		size:   size,
		buffer: make([]byte, 0, size),
	}, nil
}

func (r *CappedWriter) String() string {
	return string(r.buffer)
}

// Bytes returns the data accepted so far.
func (r *CappedWriter) Bytes() []byte {
	return r.buffer
}

// Len returns the number of bytes accepted so far.
func (r *CappedWriter) Len() int {
	return len(r.buffer)
}

// Rejected returns the number of bytes that could not be written and the
// number of calls to Write() that returned an error.
func (r *CappedWriter) Rejected() (int, int) {
	return r.rejected, r.failures
}

// Reset empties the writer.
func (r *CappedWriter) Reset() {
	r.buffer = r.buffer[:0]
	r.rejected = 0
	r.failures = 0
}

// Write implements the io.Writer interface. A write that does not fit is
// accepted up to the capacity and io.ErrShortWrite is returned.
func (r *CappedWriter) Write(p []byte) (int, error) {
	n := min(len(p), r.size-len(r.buffer))
	r.buffer = append(r.buffer, p[:n]...)

	if n < len(p) {
		r.rejected += len(p) - n
		r.failures++
		return n, io.ErrShortWrite
	}

	return n, nil
}
