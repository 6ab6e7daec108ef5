// Package header is the title bar: app title, entry count, the entries
// popover, and the clear-all button.
package header

import (
	"fmt"

	"github.com/diamondburned/handy"
	"github.com/gotk3/gotk3/gtk"
	"github.com/vidwall/vidwall/internal/state"
)

type ParentController interface {
	Clear()
	RemoveEntry(id string)
}

type Container struct {
	gtk.HeaderBar
	parent ParentController

	Entries *gtk.MenuButton
	ClearAl *gtk.Button

	popover *gtk.Popover
	list    *gtk.ListBox
}

func NewContainer(parent ParentController) *Container {
	c := &Container{parent: parent}

	entries, _ := gtk.MenuButtonNew()
	entries.SetImage(newIconImage("view-list-symbolic"))
	entries.SetTooltipText("Videos")
	entries.Show()

	popover, _ := gtk.PopoverNew(entries)
	popover.SetSizeRequest(260, -1)
	entries.SetPopover(popover)

	clear, _ := gtk.ButtonNew()
	clear.SetImage(newIconImage("edit-clear-all-symbolic"))
	clear.SetTooltipText("Remove all videos")
	clear.Connect("clicked", parent.Clear)
	clear.Show()

	h, _ := gtk.HeaderBarNew()
	h.SetTitle("Vidwall")
	h.SetShowCloseButton(true)
	h.PackStart(entries)
	h.PackEnd(clear)

	c.HeaderBar = *h
	c.Entries = entries
	c.ClearAl = clear
	c.popover = popover

	c.SetEntries(nil)

	return c
}

// SetEntries rebuilds the popover list and the subtitle count. It is called
// after every registry change; the rebuild is idempotent.
func (c *Container) SetEntries(entries []*state.Entry) {
	switch len(entries) {
	case 0:
		c.SetSubtitle("drop videos to play")
	case 1:
		c.SetSubtitle("1 video")
	default:
		c.SetSubtitle(fmt.Sprintf("%d videos", len(entries)))
	}

	if c.list != nil {
		c.list.Destroy()
		c.list = nil
	}

	list, _ := gtk.ListBoxNew()
	list.SetSelectionMode(gtk.SELECTION_NONE)

	for _, entry := range entries {
		list.Add(newEntryRow(c.parent, entry))
	}

	list.Show()
	c.popover.Add(list)
	c.list = list
}

func newEntryRow(parent ParentController, entry *state.Entry) *handy.ActionRow {
	id := entry.ID

	remove, _ := gtk.ButtonNew()
	remove.SetRelief(gtk.RELIEF_NONE)
	remove.SetImage(newIconImage("window-close-symbolic"))
	remove.SetTooltipText("Remove")
	remove.SetVAlign(gtk.ALIGN_CENTER)
	remove.Connect("clicked", func() { parent.RemoveEntry(id) })
	remove.Show()

	arow := handy.ActionRowNew()
	arow.SetTitle(entry.Name)
	arow.SetActivatable(false)
	arow.Add(remove)
	arow.Show()

	return arow
}

func newIconImage(symbolicName string) *gtk.Image {
	image, _ := gtk.ImageNewFromIconName(symbolicName, gtk.ICON_SIZE_BUTTON)
	image.Show()
	return image
}
