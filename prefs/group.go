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

package prefs

import (
	"fmt"
	"sort"
	"strings"
)

// Group is a collection of preferences, each identified by a key.
type Group struct {
	entries map[string]Pref
}

// NewGroup is the preferred method of initialisation for the Group type.
func NewGroup() *Group {
	return &Group{
		entries: make(map[string]Pref),
	}
}

// Add preference value to group. The key must be unique and must not contain
// the "::" or ";" sequences.
func (g *Group) Add(key string, p Pref) error {
	if strings.Contains(key, "::") || strings.Contains(key, ";") {
		return fmt.Errorf("prefs: illegal key (%s)", key)
	}
	if _, ok := g.entries[key]; ok {
		return fmt.Errorf("prefs: duplicate key (%s)", key)
	}
	g.entries[key] = p
	return nil
}

// Get the preference for key.
func (g *Group) Get(key string) (Pref, bool) {
	p, ok := g.entries[key]
	return p, ok
}

// String returns the group as a prefs string, sorted by key.
func (g *Group) String() string {
	keys := make([]string, 0, len(g.entries))
	for k := range g.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s::%s; ", k, g.entries[k].String()))
	}
	return strings.TrimSuffix(s.String(), "; ")
}

// ApplyCommandLine sets any value in the group that has an entry at the top of
// the command line stack. Entries are removed from the stack as they are used.
func (g *Group) ApplyCommandLine() error {
	for k, p := range g.entries {
		if ok, v := GetCommandLinePref(k); ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", k, err)
			}
		}
	}
	return nil
}
