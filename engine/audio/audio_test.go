package audio

import (
	"math"
	"testing"
	"time"

	"github.com/1siamBot/outpost/engine/core"
)

type played struct {
	id  SoundID
	vol float64
}

type fakeSink struct {
	calls []played
}

func (f *fakeSink) Play(id SoundID, vol float64) {
	f.calls = append(f.calls, played{id, vol})
}

func TestCalcVolume(t *testing.T) {
	tests := []struct {
		name string
		dist float64
		want float64
	}{
		{"out of earshot", 45.1, 0},
		{"edge of earshot", 45, 1/math.Log2(225) + 0.05},
		{"camera height", 15, 1/math.Log2(75) + 0.05},
		{"close enough to clip", 0.3, 1},
		{"inside the log pole", 0.1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcVolume(tt.dist)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDeathPlaysExplosionAtEntity(t *testing.T) {
	sink := &fakeSink{}
	m := NewManager(sink, 1)
	w := core.NewWorld()
	near := w.Spawn(&core.Transform{Translation: core.Vec3{X: 3}})
	far := w.Spawn(&core.Transform{Translation: core.Vec3{X: 100}})

	m.OnDeath(w, core.Died{Entity: near})
	m.OnDeath(w, core.Died{Entity: far})
	m.OnDeath(w, core.Died{Entity: 123456789})

	if len(sink.calls) != 1 {
		t.Fatalf("Expected one audible explosion, got %d", len(sink.calls))
	}
	if sink.calls[0].id != SndExplosion {
		t.Errorf("Expected explosion, got %s", sink.calls[0].id)
	}
	want := CalcVolume(DefaultListener.Distance(core.Vec3{X: 3}))
	if math.Abs(sink.calls[0].vol-want) > 1e-12 {
		t.Errorf("Expected volume %v, got %v", want, sink.calls[0].vol)
	}
}

func TestGunFiredPicksWeaponSound(t *testing.T) {
	sink := &fakeSink{}
	m := NewManager(sink, 0.5)
	m.SetListener(core.Vec3{})

	for _, wt := range []core.WeaponType{core.WeaponLaser, core.WeaponMachineGunMk2, core.WeaponClaws} {
		m.OnGunFired(core.Event{
			Type:    core.EvtGunFired,
			Payload: core.GunFired{Transform: core.Transform{Translation: core.Vec3{Z: 0.3}}, Weapon: wt},
		})
	}
	want := []SoundID{SndLaser, SndMachineGun, SndClaws}
	if len(sink.calls) != len(want) {
		t.Fatalf("Expected %d sounds, got %d", len(want), len(sink.calls))
	}
	for i, id := range want {
		if sink.calls[i].id != id {
			t.Errorf("Expected %s, got %s", id, sink.calls[i].id)
		}
		if sink.calls[i].vol != 0.5 {
			t.Errorf("Expected master volume to scale a clipped sound to 0.5, got %v", sink.calls[i].vol)
		}
	}
}

func TestMutedManagerIsSilent(t *testing.T) {
	sink := &fakeSink{}
	m := NewManager(sink, -3)
	m.Play(SndError)
	m.PlayAt(SndExplosion, DefaultListener)
	if len(sink.calls) != 0 {
		t.Errorf("Expected no sound at zero volume, got %d", len(sink.calls))
	}
}

func TestSynthEndsAfterDuration(t *testing.T) {
	s := synth(voices[SndClaws], 1)
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 100; i++ {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	want := sampleRate.N(60 * time.Millisecond)
	if total != want {
		t.Errorf("Expected %d samples, got %d", want, total)
	}
}
