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

package modalflag

import (
	"errors"
	"flag"
	"io"
	"slices"
	"strings"
	"time"
)

const modeSeparator = "/"

// Modes handles command line arguments with modes. The Output field should
// be specified before calling Parse() or help messages will not be seen.
type Modes struct {
	// where to print help messages
	Output io.Writer

	// the flagset for the current mode. a new flagset is created by
	// NewArgs() and NewMode()
	flags *flag.FlagSet

	args    []string
	argsIdx int

	// sub-modes for the next call to Parse(). the first entry is the default
	subModes []string

	// every mode selected by Parse() since the most recent NewArgs()
	path []string

	additionalHelp string
	parsed         bool

	// a sub-mode was named in the arguments by the most recent Parse()
	selected bool
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the most recent mode selected by Parse().
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns every mode selected by Parse(), separated by a slash.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// NewArgs starts parsing a new list of arguments.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0
	md.path = md.path[:0]
	md.NewMode()
}

// NewMode indicates that further arguments belong to a new mode, with its
// own flags and sub-modes.
func (md *Modes) NewMode() {
	md.subModes = md.subModes[:0]
	md.additionalHelp = ""
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.parsed = false
	md.selected = false
}

// AdditionalHelp is printed after the flags and sub-modes when help is
// requested.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// Parsed returns true if Parse() has been called since the most recent
// NewArgs() or NewMode(), even if Parse() returned an error.
func (md *Modes) Parsed() bool {
	return md.parsed
}

// ParseResult is returned from the Parse() function.
type ParseResult int

// List of valid ParseResult values.
const (
	// continue with command line processing. if sub-modes were added then
	// Mode() returns the selected mode
	ParseContinue ParseResult = iota

	// help was requested and has been printed
	ParseHelp

	// the arguments could not be parsed. the error is returned alongside
	ParseError
)

// Parse the arguments for the current mode.
func (md *Modes) Parse() (ParseResult, error) {
	md.parsed = true

	var usage strings.Builder
	md.flags.SetOutput(&usage)

	err := md.flags.Parse(md.args[md.argsIdx:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			md.help(usage.String())
			return ParseHelp, nil
		}

		// unrecognised flags select the default mode, if there is one
		if len(md.subModes) == 0 {
			return ParseError, err
		}
		md.path = append(md.path, md.subModes[0])
		return ParseContinue, nil
	}

	if len(md.subModes) > 0 {
		mode := md.subModes[0]
		if i := slices.Index(md.subModes, strings.ToUpper(md.flags.Arg(0))); i >= 0 {
			mode = md.subModes[i]

			// the next mode is parsed from the argument after the sub-mode
			md.argsIdx = len(md.args) - md.flags.NArg() + 1
			md.selected = true
		}
		md.path = append(md.path, mode)
	}

	return ParseContinue, nil
}

// help writes the help message for the current mode to Output. usage is the
// output of the flag package.
func (md *Modes) help(usage string) {
	if md.Output == nil {
		return
	}

	lines := strings.SplitN(usage, "\n", 2)
	flags := ""
	if len(lines) > 1 {
		flags = lines[1]
	}

	var b strings.Builder

	if flags == "" && len(md.subModes) == 0 {
		b.WriteString("No help available")
		if p := md.Path(); p != "" {
			b.WriteString(" for ")
			b.WriteString(p)
		}
		b.WriteString("\n")
		io.WriteString(md.Output, b.String())
		return
	}

	b.WriteString(lines[0])
	if p := md.Path(); p != "" {
		b.WriteString(" for ")
		b.WriteString(p)
		b.WriteString(" mode")
	}
	b.WriteString("\n")
	b.WriteString(flags)

	if len(md.subModes) > 0 {
		if flags != "" {
			b.WriteString("\n")
		}
		b.WriteString("  available sub-modes: ")
		b.WriteString(strings.Join(md.subModes, ", "))
		b.WriteString("\n    default: ")
		b.WriteString(md.subModes[0])
		b.WriteString("\n")
	}

	if md.additionalHelp != "" {
		b.WriteString("\n")
		b.WriteString(md.additionalHelp)
		b.WriteString("\n")
	}

	io.WriteString(md.Output, b.String())
}

// RemainingArgs returns the arguments that are not flags or a sub-mode.
func (md *Modes) RemainingArgs() []string {
	args := md.flags.Args()
	if md.selected {
		return args[1:]
	}
	return args
}

// GetArg returns the numbered argument that is not a flag or a sub-mode.
func (md *Modes) GetArg(i int) string {
	args := md.RemainingArgs()
	if i < 0 || i >= len(args) {
		return ""
	}
	return args[i]
}

// AddSubModes adds to the list of sub-modes for the next call to Parse(). The
// first sub-mode added is the default.
func (md *Modes) AddSubModes(submodes ...string) {
	for _, s := range submodes {
		md.subModes = append(md.subModes, strings.ToUpper(s))
	}
}

// IsSet returns true if the named flag was given in the arguments to the
// most recent call to Parse().
func (md *Modes) IsSet(name string) bool {
	var set bool
	md.flags.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// AddBool flag for next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddDuration flag for next call to Parse().
func (md *Modes) AddDuration(name string, value time.Duration, usage string) *time.Duration {
	return md.flags.Duration(name, value, usage)
}

// AddInt flag for next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddString flag for next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}
