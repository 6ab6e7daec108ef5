// Package state holds the session state of the video wall: the ordered
// registry of dropped videos, the shared control state, and the binding
// table that fans control changes out to every live playback handle.
//
// Everything here runs on the GTK main loop; there is no locking.
package state

import (
	"log"

	"github.com/google/uuid"
)

// Source is a playable source reference owned by exactly one entry. It is
// released exactly once, when the entry is removed or the registry cleared.
type Source interface {
	URI() string
	Release() error
}

// Handle is a live playback handle bound to an entry. Writes may fail; the
// caller reports failures without aborting fan-out to sibling handles.
type Handle interface {
	SetVolume(v float64) error
	SetMute(muted bool) error
	SetPlay(playing bool) error
}

// Entry is one registered video.
type Entry struct {
	ID     string
	Name   string
	Source Source
}

// DefaultVolume is the initial shared volume.
const DefaultVolume = 0.5

// State is the session state. The zero value is not usable; use NewState.
type State struct {
	order   []string
	entries map[string]*Entry
	bound   map[string]Handle

	volume  float64
	muted   bool
	playing bool

	// OnHandleError is the diagnostic sink for per-handle write failures
	// during fan-out. It never aborts the fan-out.
	OnHandleError func(id string, err error)
}

func NewState() *State {
	return &State{
		entries: map[string]*Entry{},
		bound:   map[string]Handle{},
		volume:  DefaultVolume,
		playing: true,

		OnHandleError: func(id string, err error) {
			log.Printf("handle %s: %v\n", id, err)
		},
	}
}

// Append registers a new entry at the end of the registry and returns it.
// The id is assigned here and is unique for the session.
func (s *State) Append(name string, src Source) *Entry {
	entry := &Entry{
		ID:     uuid.NewString(),
		Name:   name,
		Source: src,
	}

	s.order = append(s.order, entry.ID)
	s.entries[entry.ID] = entry

	return entry
}

// Entry looks up an entry by id.
func (s *State) Entry(id string) (*Entry, bool) {
	e, ok := s.entries[id]
	return e, ok
}

// Entries returns all entries in insertion order.
func (s *State) Entries() []*Entry {
	entries := make([]*Entry, len(s.order))
	for i, id := range s.order {
		entries[i] = s.entries[id]
	}
	return entries
}

// Len returns the number of registered entries.
func (s *State) Len() int {
	return len(s.order)
}

// Remove releases the entry's source, then drops it from the registry and
// the binding table. Unknown ids are a no-op and return false.
func (s *State) Remove(id string) bool {
	entry, ok := s.entries[id]
	if !ok {
		return false
	}

	if err := entry.Source.Release(); err != nil {
		log.Println("failed to release source:", err)
	}

	delete(s.entries, id)
	delete(s.bound, id)

	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return true
}

// Clear releases every entry's source and empties the registry and the
// binding table. Sources already gone through Remove are not touched again.
func (s *State) Clear() {
	for _, id := range s.order {
		if err := s.entries[id].Source.Release(); err != nil {
			log.Println("failed to release source:", err)
		}
	}

	s.order = nil
	s.entries = map[string]*Entry{}
	s.bound = map[string]Handle{}
}

// Bind registers a live handle for the entry. The current volume and mute
// are applied before the handle enters the table, so a freshly mounted
// player never runs at stale settings.
func (s *State) Bind(id string, h Handle) {
	if err := h.SetVolume(s.volume); err != nil {
		s.OnHandleError(id, err)
	}
	if err := h.SetMute(s.muted); err != nil {
		s.OnHandleError(id, err)
	}

	s.bound[id] = h
}

// Unbind drops the handle binding. The registry entry is untouched.
func (s *State) Unbind(id string) {
	delete(s.bound, id)
}

// Bound looks up the bound handle for an entry, if any.
func (s *State) Bound(id string) (Handle, bool) {
	h, ok := s.bound[id]
	return h, ok
}

// Volume returns the shared volume in [0, 1].
func (s *State) Volume() float64 { return s.volume }

// IsMuted returns the shared mute flag.
func (s *State) IsMuted() bool { return s.muted }

// IsPlaying returns the commanded aggregate transport state. It is not
// polled back from handles; a video paused through its own controls does
// not change it.
func (s *State) IsPlaying() bool { return s.playing }

// SetVolume clamps and stores the shared volume, then writes it to every
// bound handle.
func (s *State) SetVolume(v float64) {
	s.volume = clampVolume(v)

	for id, h := range s.bound {
		if err := h.SetVolume(s.volume); err != nil {
			s.OnHandleError(id, err)
		}
	}
}

// SetMute stores the shared mute flag and writes it to every bound handle.
func (s *State) SetMute(muted bool) {
	s.muted = muted

	for id, h := range s.bound {
		if err := h.SetMute(muted); err != nil {
			s.OnHandleError(id, err)
		}
	}
}

// TogglePlay flips the commanded transport state and issues play or pause
// to every bound handle. Per-handle failures are reported and skipped; they
// never abort the fan-out or the flip. The new state is returned.
func (s *State) TogglePlay() bool {
	s.playing = !s.playing

	for id, h := range s.bound {
		if err := h.SetPlay(s.playing); err != nil {
			s.OnHandleError(id, err)
		}
	}

	return s.playing
}

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
