package note

import "testing"

func TestFlatten(t *testing.T) {
	t.Run("SortsByStartAcrossInstruments", func(t *testing.T) {
		out := &ModelOutput{
			Instruments: []Instrument{
				{Name: "piano", Notes: []ModelNote{
					{Pitch: 60, Start: 2.0, End: 2.5, Velocity: 90},
					{Pitch: 64, Start: 0.5, End: 1.0, Velocity: 80},
				}},
				{Name: "bass", Notes: []ModelNote{
					{Pitch: 36, Start: 1.0, End: 1.5, Velocity: 100},
				}},
			},
		}

		notes := Flatten(out)
		if len(notes) != 3 {
			t.Fatalf("expected 3 notes, got %d", len(notes))
		}
		for i := 0; i < len(notes)-1; i++ {
			if notes[i].Start > notes[i+1].Start {
				t.Errorf("notes not sorted: notes[%d].Start=%g > notes[%d].Start=%g",
					i, notes[i].Start, i+1, notes[i+1].Start)
			}
		}
		if notes[0].Pitch != 64 || notes[1].Pitch != 36 || notes[2].Pitch != 60 {
			t.Errorf("unexpected order: %v", notes)
		}
	})

	t.Run("TiesKeepModelOrder", func(t *testing.T) {
		out := &ModelOutput{
			Instruments: []Instrument{
				{Notes: []ModelNote{
					{Pitch: 60, Start: 1.0, End: 2.0, Velocity: 10},
					{Pitch: 62, Start: 1.0, End: 2.0, Velocity: 20},
					{Pitch: 64, Start: 1.0, End: 2.0, Velocity: 30},
				}},
			},
		}

		notes := Flatten(out)
		if notes[0].Pitch != 60 || notes[1].Pitch != 62 || notes[2].Pitch != 64 {
			t.Errorf("tie order not stable: %v", notes)
		}
	})

	t.Run("CoercesPitchAndVelocity", func(t *testing.T) {
		out := &ModelOutput{
			Instruments: []Instrument{
				{Notes: []ModelNote{{Pitch: 60.7, Start: 0, End: 1, Velocity: 99.9}}},
			},
		}

		notes := Flatten(out)
		if notes[0].Pitch != 60 {
			t.Errorf("pitch = %d, want 60", notes[0].Pitch)
		}
		if notes[0].Velocity != 99 {
			t.Errorf("velocity = %d, want 99", notes[0].Velocity)
		}
	})

	t.Run("EmptyOutput", func(t *testing.T) {
		if notes := Flatten(&ModelOutput{}); len(notes) != 0 {
			t.Errorf("expected no notes, got %v", notes)
		}
	})
}

func TestFromTuple(t *testing.T) {
	t.Run("FourFields", func(t *testing.T) {
		ev, ok := FromTuple(Tuple{60, 0.0, 1.0, 100})
		if !ok {
			t.Fatal("expected ok for a 4-field tuple")
		}
		want := Event{Pitch: 60, Start: 0, End: 1, Velocity: 100}
		if ev != want {
			t.Errorf("got %+v, want %+v", ev, want)
		}
	})

	t.Run("WrongArityRejected", func(t *testing.T) {
		if _, ok := FromTuple(Tuple{60, 0.0, 1.0}); ok {
			t.Error("3-field tuple should be rejected")
		}
		if _, ok := FromTuple(Tuple{60, 0.0, 1.0, 100, 0}); ok {
			t.Error("5-field tuple should be rejected")
		}
	})

	t.Run("JSONNumbers", func(t *testing.T) {
		// JSON decoding yields float64 for every number
		ev, ok := FromTuple(Tuple{float64(72), 0.25, 0.75, float64(64)})
		if !ok {
			t.Fatal("expected ok")
		}
		if ev.Pitch != 72 || ev.Velocity != 64 {
			t.Errorf("got %+v", ev)
		}
	})
}

func TestTuplesRoundTrip(t *testing.T) {
	l := List{
		{Pitch: 60, Start: 0, End: 1, Velocity: 100},
		{Pitch: 62, Start: 1, End: 2, Velocity: 90},
	}

	rows, ok := TuplesFromAny(l)
	if !ok {
		t.Fatal("List should normalize")
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	ev, ok := FromTuple(rows[0])
	if !ok || ev != l[0] {
		t.Errorf("round trip lost data: %+v", ev)
	}
}

func TestTuplesFromAny(t *testing.T) {
	t.Run("GenericSlices", func(t *testing.T) {
		v := []any{[]any{60.0, 0.0, 1.0, 100.0}}
		rows, ok := TuplesFromAny(v)
		if !ok || len(rows) != 1 {
			t.Fatalf("ok=%v rows=%v", ok, rows)
		}
	})

	t.Run("NonListRejected", func(t *testing.T) {
		if _, ok := TuplesFromAny("not a list"); ok {
			t.Error("string should not normalize")
		}
		if _, ok := TuplesFromAny([]any{"row"}); ok {
			t.Error("non-slice row should not normalize")
		}
	})
}
