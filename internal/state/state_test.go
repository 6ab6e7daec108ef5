package state

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/pkg/errors"
)

type fakeSource struct {
	uri      string
	releases int
}

func (s *fakeSource) URI() string { return s.uri }

func (s *fakeSource) Release() error {
	s.releases++
	return nil
}

type fakeHandle struct {
	volume  float64
	muted   bool
	playing bool

	plays  int
	pauses int

	fail bool
}

var errFakeHandle = errors.New("handle write failed")

func (h *fakeHandle) SetVolume(v float64) error {
	if h.fail {
		return errFakeHandle
	}
	h.volume = v
	return nil
}

func (h *fakeHandle) SetMute(muted bool) error {
	if h.fail {
		return errFakeHandle
	}
	h.muted = muted
	return nil
}

func (h *fakeHandle) SetPlay(playing bool) error {
	if h.fail {
		return errFakeHandle
	}
	if playing {
		h.plays++
	} else {
		h.pauses++
	}
	h.playing = playing
	return nil
}

func appendEntries(s *State, names ...string) []*Entry {
	entries := make([]*Entry, len(names))
	for i, name := range names {
		entries[i] = s.Append(name, &fakeSource{uri: name})
	}
	return entries
}

func assertOrder(t *testing.T, s *State, names ...string) {
	t.Helper()

	var got []string
	for _, entry := range s.Entries() {
		got = append(got, entry.Name)
	}

	var expect []string
	expect = append(expect, names...)

	if ineqs := deep.Equal(got, expect); ineqs != nil {
		t.Errorf("unexpected registry order: %v", ineqs)
	}
}

func TestAppendOrder(t *testing.T) {
	s := NewState()
	entries := appendEntries(s, "a", "b", "c")

	assertOrder(t, s, "a", "b", "c")

	seen := map[string]bool{}
	for _, entry := range entries {
		if entry.ID == "" {
			t.Error("entry has empty id")
		}
		if seen[entry.ID] {
			t.Errorf("duplicate id %q", entry.ID)
		}
		seen[entry.ID] = true
	}
}

func TestInitialControls(t *testing.T) {
	s := NewState()

	if s.Volume() != DefaultVolume {
		t.Errorf("initial volume = %g, want %g", s.Volume(), DefaultVolume)
	}
	if s.IsMuted() {
		t.Error("initially muted")
	}
	if !s.IsPlaying() {
		t.Error("initially not playing")
	}
}

func TestRemove(t *testing.T) {
	s := NewState()
	entries := appendEntries(s, "a", "b", "c")

	h := &fakeHandle{}
	s.Bind(entries[1].ID, h)

	if !s.Remove(entries[1].ID) {
		t.Fatal("Remove returned false for a known id")
	}

	assertOrder(t, s, "a", "c")

	src := entries[1].Source.(*fakeSource)
	if src.releases != 1 {
		t.Errorf("source released %d times, want 1", src.releases)
	}

	if _, ok := s.Bound(entries[1].ID); ok {
		t.Error("binding survived Remove")
	}

	// Removing again is a no-op.
	if s.Remove(entries[1].ID) {
		t.Error("Remove returned true for a removed id")
	}
	if src.releases != 1 {
		t.Errorf("source released %d times after double remove, want 1", src.releases)
	}
}

func TestRemoveUnknown(t *testing.T) {
	s := NewState()
	appendEntries(s, "a")

	if s.Remove("nonexistent") {
		t.Error("Remove returned true for an unknown id")
	}

	assertOrder(t, s, "a")
}

func TestClear(t *testing.T) {
	s := NewState()
	entries := appendEntries(s, "a", "b", "c")
	s.Bind(entries[0].ID, &fakeHandle{})

	// One entry goes through Remove first; Clear must not release it again.
	s.Remove(entries[0].ID)

	s.Clear()

	if s.Len() != 0 {
		t.Errorf("registry has %d entries after Clear", s.Len())
	}

	for _, entry := range entries {
		src := entry.Source.(*fakeSource)
		if src.releases != 1 {
			t.Errorf("source %q released %d times, want 1", entry.Name, src.releases)
		}
	}
}

func TestVolumeFanout(t *testing.T) {
	s := NewState()
	entries := appendEntries(s, "a", "b")

	h1 := &fakeHandle{}
	h2 := &fakeHandle{}
	s.Bind(entries[0].ID, h1)
	s.Bind(entries[1].ID, h2)

	s.SetVolume(0.3)

	for i, h := range []*fakeHandle{h1, h2} {
		if h.volume != 0.3 {
			t.Errorf("handle %d volume = %g, want 0.3", i, h.volume)
		}
	}

	// A handle bound afterward picks the volume up at bind time, without
	// another broadcast.
	late := appendEntries(s, "c")[0]
	h3 := &fakeHandle{}
	s.Bind(late.ID, h3)

	if h3.volume != 0.3 {
		t.Errorf("late-bound handle volume = %g, want 0.3", h3.volume)
	}
}

func TestVolumeClamp(t *testing.T) {
	s := NewState()

	s.SetVolume(1.8)
	if s.Volume() != 1 {
		t.Errorf("volume = %g, want clamped 1", s.Volume())
	}

	s.SetVolume(-0.2)
	if s.Volume() != 0 {
		t.Errorf("volume = %g, want clamped 0", s.Volume())
	}
}

func TestMuteFanout(t *testing.T) {
	s := NewState()
	entries := appendEntries(s, "a")

	h := &fakeHandle{}
	s.Bind(entries[0].ID, h)

	s.SetMute(true)
	if !h.muted {
		t.Error("handle not muted after SetMute(true)")
	}

	late := appendEntries(s, "b")[0]
	h2 := &fakeHandle{}
	s.Bind(late.ID, h2)

	if !h2.muted {
		t.Error("late-bound handle not initialized muted")
	}
}

func TestUnbind(t *testing.T) {
	s := NewState()
	entry := appendEntries(s, "a")[0]

	h := &fakeHandle{}
	s.Bind(entry.ID, h)
	s.Unbind(entry.ID)

	if _, ok := s.Bound(entry.ID); ok {
		t.Error("handle still bound after Unbind")
	}

	// Unbind leaves the registry alone.
	assertOrder(t, s, "a")

	s.SetVolume(0.9)
	if h.volume == 0.9 {
		t.Error("unbound handle still receives fan-out")
	}
}

func TestTogglePlay(t *testing.T) {
	s := NewState()
	entries := appendEntries(s, "a", "b")

	h1 := &fakeHandle{playing: true}
	h2 := &fakeHandle{playing: true}
	s.Bind(entries[0].ID, h1)
	s.Bind(entries[1].ID, h2)

	if playing := s.TogglePlay(); playing {
		t.Error("first toggle did not flip to paused")
	}

	for i, h := range []*fakeHandle{h1, h2} {
		if h.pauses != 1 {
			t.Errorf("handle %d got %d pauses, want 1", i, h.pauses)
		}
	}

	if playing := s.TogglePlay(); !playing {
		t.Error("second toggle did not flip back to playing")
	}

	for i, h := range []*fakeHandle{h1, h2} {
		if h.plays != 1 {
			t.Errorf("handle %d got %d plays, want 1", i, h.plays)
		}
	}
}

func TestTogglePlaySurvivesFailingHandle(t *testing.T) {
	s := NewState()
	entries := appendEntries(s, "a", "b", "c")

	bad := &fakeHandle{fail: true}
	good1 := &fakeHandle{}
	good2 := &fakeHandle{}

	var reported []string
	s.OnHandleError = func(id string, err error) {
		reported = append(reported, id)
	}

	s.Bind(entries[0].ID, good1)
	s.Bind(entries[1].ID, bad)
	s.Bind(entries[2].ID, good2)

	if playing := s.TogglePlay(); playing {
		t.Error("toggle did not flip despite a failing handle")
	}

	if good1.pauses != 1 || good2.pauses != 1 {
		t.Error("fan-out did not reach sibling handles of the failing one")
	}

	if len(reported) == 0 {
		t.Error("failing handle was not reported")
	}
}

func TestDropRemoveScenario(t *testing.T) {
	s := NewState()
	entries := appendEntries(s, "one.mp4", "two.mp4", "three.mp4")

	assertOrder(t, s, "one.mp4", "two.mp4", "three.mp4")

	handles := make([]*fakeHandle, len(entries))
	for i, entry := range entries {
		handles[i] = &fakeHandle{}
		s.Bind(entry.ID, handles[i])
	}

	s.SetVolume(0.8)
	for i, h := range handles {
		if h.volume != 0.8 {
			t.Errorf("handle %d volume = %g, want 0.8", i, h.volume)
		}
	}

	s.Remove(entries[1].ID)

	assertOrder(t, s, "one.mp4", "three.mp4")

	if _, ok := s.Bound(entries[1].ID); ok {
		t.Error("residual binding for the removed entry")
	}
}
