// Package ui owns the main window: the header, the wall grid, the bottom
// control bar, and the wiring between drops, the registry, and the playback
// handles.
package ui

import (
	"log"
	"os"
	"path/filepath"

	"github.com/gotk3/gotk3/gtk"
	"github.com/pkg/errors"
	"github.com/vidwall/vidwall/internal/dropfile"
	"github.com/vidwall/vidwall/internal/player"
	"github.com/vidwall/vidwall/internal/source"
	"github.com/vidwall/vidwall/internal/state"
	"github.com/vidwall/vidwall/internal/ui/bar"
	"github.com/vidwall/vidwall/internal/ui/css"
	"github.com/vidwall/vidwall/internal/ui/grid"
	"github.com/vidwall/vidwall/internal/ui/header"
)

func init() {
	css.LoadGlobal("main", `
		flowbox {
			padding: 8px;
		}
	`)
}

// TransportListener is notified of aggregate control changes; the MPRIS
// layer hangs off of it.
type TransportListener interface {
	TransportChanged(playing bool)
	VolumeChanged(volume float64)
}

type MainWindow struct {
	gtk.ApplicationWindow

	Header *header.Container
	Grid   *grid.Grid
	Bar    *bar.Container

	state *state.State
	alloc *source.Allocator

	listeners []TransportListener
	torndown  bool
}

var stagingDir = filepath.Join(os.TempDir(), "vidwall", "media")

func NewMainWindow(a *gtk.Application) (*MainWindow, error) {
	alloc, err := source.NewAllocator(stagingDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create source allocator")
	}

	w, err := gtk.ApplicationWindowNew(a)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create window")
	}
	w.SetTitle("Vidwall")
	w.SetDefaultSize(1000, 600)

	css.ApplyGlobals()

	mw := &MainWindow{
		ApplicationWindow: *w,
		state:             state.NewState(),
		alloc:             alloc,
	}

	mw.Header = header.NewContainer(mw)
	mw.Header.Show()
	w.SetTitlebar(mw.Header)

	mw.Grid = grid.NewGrid(mw)
	mw.Bar = bar.NewContainer(mw, mw.state.Volume(), mw.state.IsMuted())

	sep, _ := gtk.SeparatorNew(gtk.ORIENTATION_HORIZONTAL)
	sep.Show()

	box, _ := gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 0)
	box.PackStart(mw.Grid, true, true, 0)
	box.PackStart(sep, false, false, 0)
	box.PackStart(mw.Bar, false, false, 4)
	box.Show()

	w.Add(box)

	w.Connect("destroy", mw.Teardown)

	return mw, nil
}

// AddTransportListener subscribes a listener to aggregate control changes.
func (w *MainWindow) AddTransportListener(l TransportListener) {
	w.listeners = append(w.listeners, l)
}

// DroppedURIList runs the drop pipeline: decode the payload, expand
// playlists, keep the videos, and mount a cell per file. A drop with no
// usable video is a no-op.
func (w *MainWindow) DroppedURIList(data []byte) {
	paths := dropfile.ParseURIList(data)
	paths = dropfile.Expand(paths)
	w.AddFiles(dropfile.FilterVideos(paths))
}

// AddFiles registers the given video files in order and mounts their cells.
// Files that cannot be staged are logged and skipped.
func (w *MainWindow) AddFiles(paths []string) {
	for _, path := range paths {
		ref, err := w.alloc.Alloc(path)
		if err != nil {
			log.Printf("failed to stage %q: %v\n", path, err)
			continue
		}

		entry := w.state.Append(filepath.Base(path), ref)
		w.Grid.Add(entry)
	}

	w.Header.SetEntries(w.state.Entries())
}

// RemoveEntry unmounts the entry's cell, stops its handle, and removes it
// from the registry, releasing its source. Unknown ids are a no-op.
func (w *MainWindow) RemoveEntry(id string) {
	w.Grid.Remove(id)
	w.state.Remove(id)
	w.Header.SetEntries(w.state.Entries())
}

// Clear removes every video from the wall.
func (w *MainWindow) Clear() {
	w.Grid.Clear()
	w.state.Clear()
	w.Header.SetEntries(nil)
}

// BindHandle enters a live handle into the binding table; the current
// shared volume and mute are applied to it first.
func (w *MainWindow) BindHandle(id string, h *player.Handle) {
	w.state.Bind(id, h)
}

// TogglePlay flips the aggregate transport state and fans the command out
// to every bound handle.
func (w *MainWindow) TogglePlay() {
	playing := w.state.TogglePlay()
	w.Bar.Play.SetPlaying(playing)

	for _, l := range w.listeners {
		l.TransportChanged(playing)
	}
}

// IsPlaying returns the commanded aggregate transport state.
func (w *MainWindow) IsPlaying() bool {
	return w.state.IsPlaying()
}

// SetVolume stores the shared volume and pushes it to every bound handle.
func (w *MainWindow) SetVolume(v float64) {
	w.state.SetVolume(v)

	for _, l := range w.listeners {
		l.VolumeChanged(w.state.Volume())
	}
}

// SetVolumeExternal moves the volume slider, which in turn runs SetVolume.
// MPRIS and other outside writers go through here so the UI stays in sync.
func (w *MainWindow) SetVolumeExternal(v float64) {
	w.Bar.Volume.SetVolume(v)
}

// SetMute stores the shared mute flag and pushes it to every bound handle.
func (w *MainWindow) SetMute(muted bool) {
	w.state.SetMute(muted)
}

// Teardown is the end-of-session sweep: every handle is stopped and every
// still-held source reference is released exactly once.
func (w *MainWindow) Teardown() {
	if w.torndown {
		return
	}
	w.torndown = true

	w.Grid.Clear()
	w.state.Clear()
	w.alloc.Sweep()
}
