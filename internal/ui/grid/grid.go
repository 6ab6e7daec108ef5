// Package grid is the wall itself: a flow box of cells, one per registered
// video, and the drop surface that feeds it.
package grid

import (
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
	"github.com/vidwall/vidwall/internal/player"
	"github.com/vidwall/vidwall/internal/state"
	"github.com/vidwall/vidwall/internal/ui/css"
)

type ParentController interface {
	// DroppedURIList handles a raw text/uri-list drag payload.
	DroppedURIList(data []byte)
	// RemoveEntry removes the entry everywhere: grid, registry, binding.
	RemoveEntry(id string)
	// BindHandle enters a freshly spawned handle into the binding table.
	BindHandle(id string, h *player.Handle)
}

var wallCSS = css.PrepareClass("wall", `
	flowbox.drop-hover {
		background-color: alpha(@theme_selected_bg_color, 0.15);
	}
`)

var dropTargets = []gtk.TargetEntry{
	targetEntry("text/uri-list", gtk.TARGET_OTHER_APP, 0),
}

func targetEntry(target string, f gtk.TargetFlags, info uint) gtk.TargetEntry {
	e, _ := gtk.TargetEntryNew(target, f, info)
	return *e
}

type Grid struct {
	gtk.ScrolledWindow

	Flow *gtk.FlowBox

	parent ParentController
	cells  map[string]*Cell
}

func NewGrid(parent ParentController) *Grid {
	flow, _ := gtk.FlowBoxNew()
	flow.SetSelectionMode(gtk.SELECTION_NONE)
	flow.SetColumnSpacing(8)
	flow.SetRowSpacing(8)
	flow.SetMaxChildrenPerLine(6)
	flow.SetVAlign(gtk.ALIGN_START)
	flow.Show()

	wallCSS(flow)
	styleCtx, _ := flow.GetStyleContext()

	flow.DragDestSet(gtk.DEST_DEFAULT_ALL, dropTargets, gdk.ACTION_COPY)
	flow.Connect("drag-motion", func() {
		styleCtx.AddClass("drop-hover")
	})
	flow.Connect("drag-leave", func() {
		styleCtx.RemoveClass("drop-hover")
	})
	flow.Connect("drag-data-received",
		func(_ *gtk.FlowBox, ctx *gdk.DragContext, x, y int, data *gtk.SelectionData) {
			styleCtx.RemoveClass("drop-hover")
			parent.DroppedURIList(data.GetData())
		},
	)

	scroll, _ := gtk.ScrolledWindowNew(nil, nil)
	scroll.SetPolicy(gtk.POLICY_NEVER, gtk.POLICY_AUTOMATIC)
	scroll.SetVExpand(true)
	scroll.Add(flow)
	scroll.Show()

	return &Grid{
		ScrolledWindow: *scroll,
		Flow:           flow,
		parent:         parent,
		cells:          map[string]*Cell{},
	}
}

// Add mounts a cell for the entry at the end of the wall.
func (g *Grid) Add(entry *state.Entry) *Cell {
	cell := NewCell(g.parent, entry)

	child, _ := gtk.FlowBoxChildNew()
	child.Add(cell)
	child.Show()
	cell.child = child

	g.Flow.Add(child)
	g.cells[entry.ID] = cell

	return cell
}

// Remove unmounts the entry's cell and stops its handle. Unknown ids are a
// no-op.
func (g *Grid) Remove(id string) {
	cell, ok := g.cells[id]
	if !ok {
		return
	}

	cell.stop()
	cell.child.Destroy()
	delete(g.cells, id)
}

// Clear unmounts every cell.
func (g *Grid) Clear() {
	for id := range g.cells {
		g.Remove(id)
	}
}

// Len returns the number of mounted cells.
func (g *Grid) Len() int {
	return len(g.cells)
}
