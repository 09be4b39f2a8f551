// Package convert adapts the Basic Pitch pretrained model into the
// AudioToMidi graph node: audio file in, ordered note events out.
package convert

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	apperrors "github.com/noteflow/pitch2midi/internal/errors"
	"github.com/noteflow/pitch2midi/internal/exec"
	"github.com/noteflow/pitch2midi/internal/note"
	"github.com/noteflow/pitch2midi/internal/workspace"
)

// Default confidence thresholds passed to the model
const (
	DefaultOnsetThreshold = 0.5
	DefaultFrameThreshold = 0.3
)

// Converter runs pitch detection over an audio file
type Converter struct {
	runner *exec.Runner
}

// New creates a new converter backed by the given script runner
func New(runner *exec.Runner) *Converter {
	return &Converter{runner: runner}
}

// Convert transcribes the audio file at audioPath into a note list
// sorted ascending by start time. The path and thresholds are validated
// before the model is invoked; everything that fails past that point
// surfaces as a single undifferentiated external failure.
func (c *Converter) Convert(ctx context.Context, audioPath string, onsetThreshold, frameThreshold float64) (note.List, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return nil, apperrors.NewValidation("audio file not found: %s", audioPath)
	}
	if onsetThreshold < 0 || onsetThreshold > 1 {
		return nil, apperrors.NewValidation("onset threshold must be between 0 and 1, got %g", onsetThreshold)
	}
	if frameThreshold < 0 || frameThreshold > 1 {
		return nil, apperrors.NewValidation("frame threshold must be between 0 and 1, got %g", frameThreshold)
	}

	ws, err := workspace.Create()
	if err != nil {
		return nil, apperrors.NewExternal("audio-to-MIDI conversion failed", err)
	}
	defer ws.Cleanup()

	result, err := c.runner.RunScript(ctx, "predict.py",
		audioPath,
		ws.NotesJSON(),
		fmt.Sprintf("--onset-threshold=%g", onsetThreshold),
		fmt.Sprintf("--frame-threshold=%g", frameThreshold),
	)
	if err != nil {
		if result != nil && result.Stderr != "" {
			return nil, apperrors.NewExternal("audio-to-MIDI conversion failed", fmt.Errorf("%w (stderr: %s)", err, result.Stderr))
		}
		return nil, apperrors.NewExternal("audio-to-MIDI conversion failed", err)
	}

	data, err := os.ReadFile(ws.NotesJSON())
	if err != nil {
		return nil, apperrors.NewExternal("read model output", err)
	}
	return decodeNotes(data)
}

// decodeNotes parses the inference script's JSON and flattens it
func decodeNotes(data []byte) (note.List, error) {
	var out note.ModelOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, apperrors.NewExternal("parse model output", err)
	}
	return note.Flatten(&out), nil
}
