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

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/pc88go/m88sound/ensemble"
	"github.com/pc88go/m88sound/logger"
	"github.com/pc88go/m88sound/machine"
	"github.com/pc88go/m88sound/modalflag"
	"github.com/pc88go/m88sound/paths"
	"github.com/pc88go/m88sound/performance"
	"github.com/pc88go/m88sound/playmode"
	"github.com/pc88go/m88sound/prefs"
	"github.com/pc88go/m88sound/sound"
	"github.com/pc88go/m88sound/statsview"
	"github.com/pc88go/m88sound/version"
	"github.com/pc88go/m88sound/wavwriter"
)

const logTag = "m88sound"

// default machine settings. the clock is a 4MHz CPU
const (
	defaultClock = 40
	defaultTempo = 120
)

// exit values
const (
	exitOK         = 0
	exitParseError = 10
	exitModeError  = 20
)

func main() {
	os.Exit(launch(os.Args[1:], os.Stdout))
}

// launch parses the arguments and runs the selected mode. returns the exit
// value for the process.
func launch(args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("PLAY", "RECORD", "RENDER", "PERFORMANCE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParseError
	}

	switch md.Mode() {
	case "PLAY":
		err = play(md, false)

	case "RECORD":
		err = play(md, true)

	case "RENDER":
		err = render(md)

	case "PERFORMANCE":
		err = perform(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md, err)
		return exitModeError
	}

	return exitOK
}

// flags common to all modes that use the sound system
type common struct {
	log       *bool
	prefs     *string
	clock     *int
	tempo     *int
	samples   *string
	statsview *bool

	// sound preferences that can also be set with -prefs
	rate    *int
	buflen  *int
	precise *bool
}

func addCommon(md *modalflag.Modes) common {
	defSamples, _ := paths.ResourcePath("rhythm", "")

	c := common{
		log:     md.AddBool("log", false, "echo debugging log to stdout"),
		prefs:   md.AddString("prefs", "", "preferences to apply (eg. 'sound.precise::false; sound.rate::48000')"),
		clock:   md.AddInt("clock", defaultClock, "machine clock in ticks per 10µs (40 is a 4MHz CPU)"),
		tempo:   md.AddInt("tempo", defaultTempo, "tempo of the pattern in beats per minute"),
		samples: md.AddString("samples", defSamples, "directory containing rhythm samples (2608_BD.WAV etc.)"),
		rate:    md.AddInt("rate", sound.DefaultRate, "output sample rate in Hz"),
		buflen:  md.AddInt("buflen", sound.DefaultBufferLength, "length of the output buffer in milliseconds"),
		precise: md.AddBool("precise", true, "mix sources more often for accurate timing of register changes"),
	}
	if statsview.Available() {
		c.statsview = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}

	return c
}

// apply the common flags that must take effect before the sound system is
// created. the returned function should be called when the mode ends
func (c common) apply(md *modalflag.Modes) func() {
	if *c.log {
		logger.SetEcho(md.Output)
	} else {
		logger.SetEcho(nil)
	}

	pushed := false
	if s := c.soundPrefs(md); s != "" {
		prefs.PushCommandLineStack(s)
		pushed = true
	}

	stop := func() {}
	if c.statsview != nil && *c.statsview {
		stop = statsview.Launch(md.Output)
	}

	return func() {
		stop()
		if pushed {
			_ = prefs.PopCommandLineStack()
		}
	}
}

// soundPrefs returns the -prefs string with any sound flags given on the
// command line added. the flags take priority over the same entries in
// -prefs
func (c common) soundPrefs(md *modalflag.Modes) string {
	s := []string{}
	if *c.prefs != "" {
		s = append(s, *c.prefs)
	}
	if md.IsSet("rate") {
		s = append(s, fmt.Sprintf("sound.rate::%d", *c.rate))
	}
	if md.IsSet("buflen") {
		s = append(s, fmt.Sprintf("sound.bufferLength::%d", *c.buflen))
	}
	if md.IsSet("precise") {
		s = append(s, fmt.Sprintf("sound.precise::%v", *c.precise))
	}
	return strings.Join(s, "; ")
}

// samples directory with missing directories treated as empty
func (c common) samplesDir() string {
	if _, err := os.Stat(*c.samples); err != nil {
		logger.Logf(logger.Allow, logTag, "no samples directory: %s", *c.samples)
		return ""
	}
	return *c.samples
}

func play(md *modalflag.Modes, record bool) error {
	md.NewMode()

	c := addCommon(md)
	backend := md.AddString("backend", "OTO", fmt.Sprintf("audio backend: %s", strings.Join(playmode.Backends, ", ")))
	hotkeys := md.AddBool("hotkeys", true, "read hotkeys from the terminal")

	var out *string
	var duration *time.Duration
	if record {
		out = md.AddString("out", "", "file to record to (default is a new file in the recordings directory)")
		duration = md.AddDuration("duration", 0, "length of recording (zero means until quit)")
	} else {
		duration = md.AddDuration("duration", 0, "length of play (zero means until quit)")
	}

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	defer c.apply(md)()

	opts := playmode.Options{
		Output:   md.Output,
		Backend:  *backend,
		Clock:    *c.clock,
		Tempo:    *c.tempo,
		Samples:  c.samplesDir(),
		Duration: *duration,
		Hotkeys:  *hotkeys,
	}

	if record {
		opts.Record = *out
		if opts.Record == "" {
			opts.Record, err = paths.ResourcePath("recordings", paths.UniqueFilename("record", "", "wav"))
			if err != nil {
				return err
			}
		}
	}

	return playmode.Play(opts)
}

// the length of time emulated between pulls from the sound system when
// rendering
const renderFrame = time.Second / 60

func render(md *modalflag.Modes) error {
	md.NewMode()

	c := addCommon(md)
	out := md.AddString("out", "", "file to render to (default is a new file in the recordings directory)")
	duration := md.AddDuration("duration", 10*time.Second, "length of emulated time to render")
	viz := md.AddString("memviz", "", "write a graphviz description of the sound system to file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	defer c.apply(md)()

	if *duration <= 0 {
		return fmt.Errorf("render duration must be positive")
	}

	m, snd, ens, err := newSoundMachine(c)
	if err != nil {
		return err
	}
	defer snd.Cleanup()

	fn := *out
	if fn == "" {
		fn, err = paths.ResourcePath("recordings", paths.UniqueFilename("render", "", "wav"))
		if err != nil {
			return err
		}
	}

	ww, err := wavwriter.New(fn, snd.Rate())
	if err != nil {
		return err
	}

	err = ens.Start(m, m.TicksPerSecond(), *c.tempo)
	if err != nil {
		return err
	}

	provider := snd.Provider()
	for emulated := time.Duration(0); emulated < *duration; emulated += renderFrame {
		m.RunFor(renderFrame)
		snd.Update()
		ww.Pull(provider, snd.BufferSize())
	}
	ens.Stop()

	err = ww.EndMixing()
	if err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "rendered %.2fs to %s\n", float64(ww.Len())/float64(snd.Rate()), fn)

	if *viz != "" {
		err = writeMemviz(*viz, snd)
		if err != nil {
			return err
		}
	}

	return nil
}

// writeMemviz writes a graphviz description of the sound system and its
// sources to the file
func writeMemviz(fn string, snd *sound.Sound) (rerr error) {
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer func() {
		rerr = errors.Join(rerr, f.Close())
	}()
	memviz.Map(f, snd)
	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	c := addCommon(md)
	duration := md.AddDuration("duration", 5*time.Second, "length of real time to run for")
	profile := md.AddString("profile", "none", "profiles to generate: CPU, MEM, TRACE (comma separated)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	defer c.apply(md)()

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	m, snd, ens, err := newSoundMachine(c)
	if err != nil {
		return err
	}
	defer snd.Cleanup()

	err = ens.Start(m, m.TicksPerSecond(), *c.tempo)
	if err != nil {
		return err
	}
	defer ens.Stop()

	_, err = performance.Check(md.Output, prf, m, snd, *duration)
	return err
}

// newSoundMachine creates the machine and sound system with the ensemble
// connected. the sound system is configured by the preferences
func newSoundMachine(c common) (*machine.Machine, *sound.Sound, *ensemble.Ensemble, error) {
	m, err := machine.NewMachine(*c.clock)
	if err != nil {
		return nil, nil, nil, err
	}

	p, err := sound.NewPreferences()
	if err != nil {
		return nil, nil, nil, err
	}

	snd := sound.NewSound(sound.NewTiming(m.TicksPerSecond()))
	rate := p.Rate.Int()
	err = snd.Init(m, m, rate, sound.BufferSize(rate, p.BufferLength.Int()))
	if err != nil {
		return nil, nil, nil, err
	}
	snd.AttachPreferences(p)
	logger.Logf(logger.Allow, logTag, "sound preferences: %s", p)

	ens := ensemble.NewEnsemble()
	_, err = ens.LoadSamples(c.samplesDir())
	if err == nil {
		err = ens.Connect(snd)
	}
	if err != nil {
		snd.Cleanup()
		return nil, nil, nil, err
	}

	return m, snd, ens, nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()
	revision := md.AddBool("v", false, "display revision information (if available)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	v := version.Version()
	if *revision {
		fmt.Fprintln(md.Output, v)
	} else {
		fmt.Fprintf(md.Output, "%s %s\n", version.ApplicationName, v.Version)
	}

	return nil
}
