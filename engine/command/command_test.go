package command

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"
)

func TestQueueSchedulesWithDelay(t *testing.T) {
	q := NewQueue(2)
	c := q.Schedule(10, Command{Type: Construct, Template: "mine_tier1"})
	if c.Tick != 12 {
		t.Errorf("Expected command stamped for tick 12, got %d", c.Tick)
	}
	q.Schedule(10, Command{Type: Demolish})
	q.Push(Command{Tick: 11, Type: Select})

	if got := q.Take(11); len(got) != 1 || got[0].Type != Select {
		t.Errorf("Expected the select on tick 11, got %v", got)
	}
	got := q.Take(12)
	if len(got) != 2 || got[0].Type != Construct || got[1].Type != Demolish {
		t.Errorf("Expected submission order, got %v", got)
	}
	if q.Len() != 0 || len(q.Take(12)) != 0 {
		t.Error("Expected Take to drain the tick")
	}
}

func TestJournalRecordsOnlyMutations(t *testing.T) {
	j := NewJournal(uuid.New(), 7, 60, [32]byte{})
	j.Record(Command{Tick: 1, Type: Construct, Template: "laser_speeder"})
	j.Record(Command{Tick: 1, Type: Select})
	j.Record(Command{Tick: 2, Type: SetMode, Mode: ModeDestroying})
	j.Record(Command{Tick: 5, Type: Demolish})

	if len(j.Commands) != 2 {
		t.Fatalf("Expected 2 journaled commands, got %d", len(j.Commands))
	}
	if got := j.Commands[1]; got.Tick != 5 || got.Type != Demolish {
		t.Errorf("Expected demolish at tick 5, got %v", got)
	}

	q := NewQueue(0)
	j.Schedule(q)
	if q.Len() != 2 || len(q.Take(1)) != 1 {
		t.Error("Expected journal to schedule at recorded ticks")
	}
}

func TestJournalRoundTrip(t *testing.T) {
	match := uuid.New()
	fp := [32]byte{1, 2, 3}
	j := NewJournal(match, -42, 60, fp)
	j.Record(Command{Tick: 3, Type: Construct, Template: "machine_gun_mk1", X: 4.5, Z: -1.5})
	j.Record(Command{Tick: 90, Type: Demolish, X: 4.5, Z: -1.5})
	j.Ticks = 1000

	path := filepath.Join(t.TempDir(), "match.journal")
	if err := j.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	h := got.Header
	if h.ID != j.Header.ID || h.MatchID != match.String() || h.Seed != -42 || h.TickRate != 60 || h.Catalog != fp {
		t.Errorf("Header mismatch: %+v", h)
	}
	if !h.Created.Equal(j.Header.Created) {
		t.Errorf("Expected created %v, got %v", j.Header.Created, h.Created)
	}
	if got.Ticks != 1000 || len(got.Commands) != 2 {
		t.Fatalf("Expected 2 commands over 1000 ticks, got %d over %d", len(got.Commands), got.Ticks)
	}
	if got.Commands[0] != j.Commands[0] || got.Commands[1] != j.Commands[1] {
		t.Errorf("Commands mismatch: %v vs %v", got.Commands, j.Commands)
	}
}

func TestDecodeRejectsForeignData(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("PK\x03\x04 zip"))); !errors.Is(err, ErrNotJournal) {
		t.Errorf("Expected ErrNotJournal, got %v", err)
	}
	if _, err := Decode(bytes.NewReader(nil)); !errors.Is(err, ErrNotJournal) {
		t.Errorf("Expected ErrNotJournal for empty input, got %v", err)
	}
}

func TestDecodeDetectsTampering(t *testing.T) {
	j := NewJournal(uuid.New(), 1, 60, [32]byte{})
	j.Record(Command{Tick: 3, Type: Construct, Template: "mine_tier1"})
	payload, err := msgpack.Marshal(j)
	if err != nil {
		t.Fatal(err)
	}
	// A valid container whose digest does not match the payload.
	body, err := msgpack.Marshal(&envelope{Digest: make([]byte, 32), Payload: payload})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	buf.Write(journalMagic)
	zw := lz4.NewWriter(&buf)
	zw.Write(body)
	zw.Close()

	if _, err := Decode(&buf); !errors.Is(err, ErrCorruptJournal) {
		t.Errorf("Expected ErrCorruptJournal, got %v", err)
	}
}

func TestModeBuilding(t *testing.T) {
	tests := []struct {
		mode Mode
		want bool
	}{
		{ModePanning, false},
		{ModeDestroying, false},
		{ModeBuildingDefensive, true},
		{ModeBuildingResources, true},
	}
	for _, tt := range tests {
		if got := tt.mode.Building(); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.mode, tt.want, got)
		}
	}
}
