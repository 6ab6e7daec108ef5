package grid

import (
	"fmt"
	"log"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/gotk3/gotk3/pango"
	"github.com/vidwall/vidwall/internal/durafmt"
	"github.com/vidwall/vidwall/internal/player"
	"github.com/vidwall/vidwall/internal/state"
	"github.com/vidwall/vidwall/internal/ui/css"
)

var cellCSS = css.PrepareClass("cell", `
	box.cell {
		padding: 8px;
		border: 1px solid alpha(@theme_fg_color, 0.15);
		border-radius: 4px;
	}
`)

var cellButtonCSS = css.PrepareClass("cell-button", `
	button {
		margin: 0;
		color:   @theme_fg_color;
		opacity: 0.5;
		box-shadow: none;
		background: none;
	}

	button:hover {
		opacity: 1;
	}
`)

// Cell is one video on the wall. It owns the playback handle for its entry;
// the handle spawns off the main loop and is bound through the parent once
// it is up.
type Cell struct {
	gtk.Box

	Title  *gtk.Label
	Time   *gtk.Label
	Seek   *gtk.Scale
	Mute   *gtk.ToggleButton
	Remove *gtk.Button

	parent ParentController
	child  *gtk.FlowBoxChild

	id   string
	name string

	handle   *player.Handle
	seekID   glib.SignalHandle
	duration float64
	removed  bool
}

func NewCell(parent ParentController, entry *state.Entry) *Cell {
	title, _ := gtk.LabelNew(entry.Name)
	title.SetEllipsize(pango.ELLIPSIZE_END)
	title.SetMaxWidthChars(24)
	title.SetXAlign(0)
	title.Show()

	seek, _ := gtk.ScaleNewWithRange(gtk.ORIENTATION_HORIZONTAL, 0, 1, 0.01)
	seek.SetDrawValue(false)
	seek.SetSizeRequest(180, -1)
	seek.Show()

	time, _ := gtk.LabelNew("00:00 / 00:00")
	time.SetSingleLineMode(true)
	time.SetXAlign(0)
	time.Show()

	mute, _ := gtk.ToggleButtonNew()
	mute.SetRelief(gtk.RELIEF_NONE)
	mute.SetImage(newIconImage("audio-volume-muted-symbolic"))
	mute.SetTooltipText("Mute this video")
	mute.Show()
	cellButtonCSS(mute)

	remove, _ := gtk.ButtonNew()
	remove.SetRelief(gtk.RELIEF_NONE)
	remove.SetImage(newIconImage("window-close-symbolic"))
	remove.SetTooltipText("Remove")
	remove.Show()
	cellButtonCSS(remove)

	bottom, _ := gtk.BoxNew(gtk.ORIENTATION_HORIZONTAL, 4)
	bottom.PackStart(time, true, true, 0)
	bottom.PackStart(mute, false, false, 0)
	bottom.PackStart(remove, false, false, 0)
	bottom.Show()

	box, _ := gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 4)
	box.PackStart(title, false, false, 0)
	box.PackStart(seek, false, false, 0)
	box.PackStart(bottom, false, false, 0)
	box.Show()
	cellCSS(box)

	cell := &Cell{
		Box:    *box,
		Title:  title,
		Time:   time,
		Seek:   seek,
		Mute:   mute,
		Remove: remove,

		parent: parent,
		id:     entry.ID,
		name:   entry.Name,
	}

	remove.Connect("clicked", func() { parent.RemoveEntry(cell.id) })

	// Local mute writes the handle directly; it is a per-video override and
	// is not reflected back into the shared control state.
	mute.Connect("toggled", func() {
		if cell.handle == nil {
			return
		}
		if err := cell.handle.SetMute(mute.GetActive()); err != nil {
			log.Println("local mute failed:", err)
		}
	})

	// The seek scale works in fractions of the duration.
	cell.seekID, _ = seek.Connect("value-changed", func() {
		if cell.handle == nil || cell.duration <= 0 {
			return
		}
		if err := cell.handle.Seek(seek.GetValue() * cell.duration); err != nil {
			log.Println("seek failed:", err)
		}
	})

	cell.spawn(entry.Source.URI())

	return cell
}

// spawn starts the playback handle off the main loop and hands it to the
// parent for binding once it is connected. If the cell was removed while
// the handle was coming up, the handle is stopped instead of bound.
func (c *Cell) spawn(uri string) {
	go func() {
		h, err := player.New(c.name, uri)

		glib.IdleAdd(func() {
			if err != nil {
				log.Printf("failed to start player for %q: %v\n", c.name, err)
				c.parent.RemoveEntry(c.id)
				return
			}

			if c.removed {
				h.Stop()
				return
			}

			c.handle = h
			h.Start(c)
			c.parent.BindHandle(c.id, h)
		})
	}()
}

// OnPositionChange implements player.HandleEvents.
func (c *Cell) OnPositionChange(pos, duration float64) {
	c.duration = duration

	c.Time.SetText(fmt.Sprintf("%s / %s", durafmt.Seconds(pos), durafmt.Seconds(duration)))

	if duration <= 0 {
		return
	}

	// Follow playback without feeding the move back into a seek.
	c.Seek.HandlerBlock(c.seekID)
	c.Seek.SetValue(pos / duration)
	c.Seek.HandlerUnblock(c.seekID)
}

// OnPauseUpdate implements player.HandleEvents. The cell dims while its
// video is paused, whether that came from the aggregate toggle or the
// video's own window.
func (c *Cell) OnPauseUpdate(pause bool) {
	if pause {
		c.SetOpacity(0.55)
	} else {
		c.SetOpacity(1)
	}
}

// stop tears the cell's handle down. Safe to call more than once.
func (c *Cell) stop() {
	c.removed = true

	if c.handle != nil {
		c.handle.Stop()
		c.handle = nil
	}
}

func newIconImage(symbolicName string) *gtk.Image {
	image, _ := gtk.ImageNewFromIconName(symbolicName, gtk.ICON_SIZE_BUTTON)
	image.Show()
	return image
}
