// Package css carries the small CSS helpers used across the UI packages.
package css

import (
	"log"
	"runtime/debug"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
)

type StyleContexter interface {
	GetStyleContext() (*gtk.StyleContext, error)
}

// PrepareClass prepares a provider for the given CSS and returns a function
// that attaches it, along with the class, to a widget.
func PrepareClass(class, css string) (attach func(StyleContexter)) {
	prov := Prepare(css)

	return func(ctx StyleContexter) {
		s, _ := ctx.GetStyleContext()
		s.AddProvider(prov, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
		s.AddClass(class)
	}
}

func Prepare(css string) *gtk.CssProvider {
	p, _ := gtk.CssProviderNew()
	if err := p.LoadFromData(css); err != nil {
		log.Fatalf("CSS fail (%v) at %s\n", err, debug.Stack())
	}
	return p
}

var globals = map[string]*gtk.CssProvider{}

// LoadGlobal registers a screen-wide stylesheet under the given name. It
// takes effect once ApplyGlobals is called.
func LoadGlobal(name, css string) {
	prov, _ := gtk.CssProviderNew()
	if err := prov.LoadFromData(css); err != nil {
		log.Fatalf("failed to parse CSS in %s: %v\n", name, err)
		return
	}

	globals[name] = prov
}

// ApplyGlobals attaches every registered global stylesheet to the default
// screen. Call it once the display is up.
func ApplyGlobals() {
	d, _ := gdk.DisplayGetDefault()
	s, _ := d.GetDefaultScreen()

	for name, prov := range globals {
		gtk.AddProviderForScreen(s, prov, uint(gtk.STYLE_PROVIDER_PRIORITY_APPLICATION))
		// mark as done
		delete(globals, name)
	}
}
