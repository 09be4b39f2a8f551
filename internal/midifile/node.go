package midifile

import (
	"context"

	apperrors "github.com/noteflow/pitch2midi/internal/errors"
	"github.com/noteflow/pitch2midi/internal/node"
	"github.com/noteflow/pitch2midi/internal/note"
)

// Writer is the SaveMidi graph node
type Writer struct{}

// NewWriter creates the SaveMidi node
func NewWriter() *Writer {
	return &Writer{}
}

// Describe returns the SaveMidi registration schema. output_path has no
// default: the host must supply a destination.
func (w *Writer) Describe() node.Schema {
	return node.Schema{
		Name:        "SaveMidi",
		DisplayName: "Save MIDI File",
		Category:    "basic-pitch",
		OutputNode:  true,
		Params: []node.Param{
			{
				Name:     "midi_data",
				Type:     node.TypeMIDI,
				Required: true,
			},
			{
				Name:        "file_name",
				Type:        node.TypeString,
				Default:     DefaultFileName,
				Placeholder: "Output file name",
			},
			{
				Name:        "output_path",
				Type:        node.TypeString,
				Required:    true,
				Placeholder: "Output directory path",
			},
			{
				Name:    "tempo",
				Type:    node.TypeInt,
				Default: DefaultTempo,
				Min:     MinTempo,
				Max:     MaxTempo,
				Step:    1,
			},
		},
	}
}

// Run executes the node with host-supplied parameters. Output nodes
// return no value.
func (w *Writer) Run(ctx context.Context, params map[string]any) (any, error) {
	if err := w.Describe().Validate(params); err != nil {
		return nil, err
	}
	p := node.Params(params)
	rows, ok := note.TuplesFromAny(p["midi_data"])
	if !ok {
		return nil, apperrors.NewValidation("midi_data is not a note list")
	}
	err := Write(rows,
		p.String("file_name", DefaultFileName),
		p.String("output_path", ""),
		p.Int("tempo", DefaultTempo),
	)
	return nil, err
}
