package convert

import (
	"context"

	"github.com/noteflow/pitch2midi/internal/node"
)

// Describe returns the AudioToMidi registration schema
func (c *Converter) Describe() node.Schema {
	return node.Schema{
		Name:        "AudioToMidi",
		DisplayName: "Audio to MIDI Converter",
		Category:    "basic-pitch",
		Returns:     node.TypeMIDI,
		Params: []node.Param{
			{
				Name:        "audio_path",
				Type:        node.TypeString,
				Required:    true,
				Placeholder: "Path to audio file",
			},
			{
				Name:    "onset_threshold",
				Type:    node.TypeFloat,
				Default: DefaultOnsetThreshold,
				Min:     0,
				Max:     1,
				Step:    0.01,
			},
			{
				Name:    "frame_threshold",
				Type:    node.TypeFloat,
				Default: DefaultFrameThreshold,
				Min:     0,
				Max:     1,
				Step:    0.01,
			},
		},
	}
}

// Run executes the node with host-supplied parameters. The MIDI_DATA
// output is the wire tuple form so downstream nodes see the same shape
// regardless of transport.
func (c *Converter) Run(ctx context.Context, params map[string]any) (any, error) {
	if err := c.Describe().Validate(params); err != nil {
		return nil, err
	}
	p := node.Params(params)
	notes, err := c.Convert(ctx,
		p.String("audio_path", ""),
		p.Float("onset_threshold", DefaultOnsetThreshold),
		p.Float("frame_threshold", DefaultFrameThreshold),
	)
	if err != nil {
		return nil, err
	}
	return notes.Tuples(), nil
}
