// Package bar is the bottom control bar: the aggregate play/pause toggle
// and the shared volume controls.
package bar

import (
	"github.com/gotk3/gotk3/gtk"
)

type ParentController interface {
	TogglePlay()
	SetVolume(v float64)
	SetMute(muted bool)
}

type Container struct {
	gtk.Box

	Play   *PlayPause
	Volume *Volume
}

func NewContainer(parent ParentController, volume float64, muted bool) *Container {
	pp := NewPlayPause(parent)
	pp.Show()

	vol := NewVolume(parent, volume, muted)
	vol.Show()

	box, _ := gtk.BoxNew(gtk.ORIENTATION_HORIZONTAL, 0)
	box.PackStart(pp, false, false, 0)
	box.PackStart(vol, true, true, 8)
	box.Show()

	return &Container{
		Box:    *box,
		Play:   pp,
		Volume: vol,
	}
}
