// Package midifile adapts the gomidi SMF writer into the SaveMidi graph
// node: note events in, a single-track Standard MIDI File on disk out.
package midifile

import (
	"math"
	"os"
	"path/filepath"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	apperrors "github.com/noteflow/pitch2midi/internal/errors"
	"github.com/noteflow/pitch2midi/internal/note"
)

const (
	DefaultFileName = "output.mid"
	DefaultTempo    = 120
	MinTempo        = 20
	MaxTempo        = 300

	trackName    = "Track 1"
	ticksPerBeat = 960
	noteChannel  = 0
)

// timedMsg is a track message at an absolute tick, used to interleave
// note-on/note-off pairs before converting to deltas.
type timedMsg struct {
	tick int64
	msg  []byte
}

// Write assembles a single-track MIDI file from the wire-form note rows
// and persists it to outputDir/fileName, overwriting any existing file.
// Note start and duration are interpreted in beats, exactly as upstream
// emits them. Rows without exactly four fields are skipped silently;
// pitch and velocity are clamped into [0,127].
func Write(rows []note.Tuple, fileName, outputDir string, tempo int) error {
	if len(rows) == 0 {
		return apperrors.NewValidation("no MIDI data provided")
	}
	if outputDir == "" {
		return apperrors.NewValidation("output directory is required")
	}
	if tempo < MinTempo || tempo > MaxTempo {
		return apperrors.NewValidation("tempo must be between %d and %d, got %d", MinTempo, MaxTempo, tempo)
	}
	if fileName == "" {
		fileName = DefaultFileName
	}

	var msgs []timedMsg
	for _, row := range rows {
		ev, ok := note.FromTuple(row)
		if !ok {
			continue
		}
		pitch := uint8(clamp(ev.Pitch, 0, 127))
		velocity := uint8(clamp(ev.Velocity, 0, 127))
		msgs = append(msgs,
			timedMsg{tick: beatTicks(ev.Start), msg: midi.NoteOn(noteChannel, pitch, velocity)},
			timedMsg{tick: beatTicks(ev.End), msg: midi.NoteOff(noteChannel, pitch)},
		)
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].tick < msgs[j].tick
	})

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(trackName))
	tr.Add(0, smf.MetaTempo(float64(tempo)))
	last := int64(0)
	for _, m := range msgs {
		tr.Add(uint32(m.tick-last), m.msg)
		last = m.tick
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerBeat)
	s.Add(tr)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return apperrors.NewExternal("create output directory", err)
	}
	path := filepath.Join(outputDir, fileName)
	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewExternal("error saving MIDI file", err)
	}
	if _, err := s.WriteTo(f); err != nil {
		f.Close()
		return apperrors.NewExternal("error saving MIDI file", err)
	}
	if err := f.Close(); err != nil {
		return apperrors.NewExternal("error saving MIDI file", err)
	}
	return nil
}

// beatTicks converts a beat position to absolute ticks. Times before the
// track start clamp to tick 0.
func beatTicks(beats float64) int64 {
	t := int64(math.Round(beats * ticksPerBeat))
	if t < 0 {
		return 0
	}
	return t
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
