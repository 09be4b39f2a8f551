package note

import "sort"

// Event is a single detected note
type Event struct {
	Pitch    int     `json:"pitch"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Velocity int     `json:"velocity"`
}

// List is an ordered sequence of note events
type List []Event

// Tuple is the wire form of an Event as it travels between nodes:
// [pitch, start, end, velocity]. Consumers tolerate rows of the wrong
// length by skipping them.
type Tuple []any

// ModelNote is a raw note as emitted by the inference script. Fields are
// decoded as floats and coerced, matching the model's own output types.
type ModelNote struct {
	Pitch    float64 `json:"pitch"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Velocity float64 `json:"velocity"`
}

// Instrument groups the model's notes per detected instrument
type Instrument struct {
	Name  string      `json:"name"`
	Notes []ModelNote `json:"notes"`
}

// ModelOutput is the inference script's JSON result
type ModelOutput struct {
	Instruments []Instrument `json:"instruments"`
}

// Flatten collapses the model's per-instrument notes into a single list,
// instruments and notes visited in model order, then stable-sorted
// ascending by start time. Ties keep model order.
func Flatten(out *ModelOutput) List {
	var notes List
	for _, inst := range out.Instruments {
		for _, n := range inst.Notes {
			notes = append(notes, Event{
				Pitch:    int(n.Pitch),
				Start:    n.Start,
				End:      n.End,
				Velocity: int(n.Velocity),
			})
		}
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Start < notes[j].Start
	})
	return notes
}

// Tuples converts the list to its wire form
func (l List) Tuples() []Tuple {
	rows := make([]Tuple, len(l))
	for i, e := range l {
		rows[i] = Tuple{e.Pitch, e.Start, e.End, e.Velocity}
	}
	return rows
}

// FromTuple decodes a wire row back into an Event. Rows that do not
// carry exactly four fields are rejected with ok=false; numeric fields
// are coerced the same way regardless of how the row was transported.
func FromTuple(t Tuple) (Event, bool) {
	if len(t) != 4 {
		return Event{}, false
	}
	return Event{
		Pitch:    int(toFloat(t[0])),
		Start:    toFloat(t[1]),
		End:      toFloat(t[2]),
		Velocity: int(toFloat(t[3])),
	}, true
}

// TuplesFromAny normalizes a MIDI_DATA value into wire rows. Accepts the
// typed List (in-process wiring) and the generic slices produced by JSON
// decoding.
func TuplesFromAny(v any) ([]Tuple, bool) {
	switch rows := v.(type) {
	case List:
		return rows.Tuples(), true
	case []Tuple:
		return rows, true
	case []any:
		out := make([]Tuple, 0, len(rows))
		for _, row := range rows {
			switch r := row.(type) {
			case Tuple:
				out = append(out, r)
			case []any:
				out = append(out, Tuple(r))
			default:
				return nil, false
			}
		}
		return out, true
	}
	return nil, false
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint8:
		return float64(n)
	}
	return 0
}
