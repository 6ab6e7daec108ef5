package main

import (
	"log"
	"os"

	"github.com/diamondburned/handy"
	"github.com/gotk3/gotk3/gtk"
	"github.com/vidwall/vidwall/internal/mpris"
	"github.com/vidwall/vidwall/internal/ui"
)

func main() {
	a, err := gtk.ApplicationNew("com.github.vidwall", 0)
	if err != nil {
		log.Fatalln("Failed to create a GtkApplication:", err)
	}

	a.Connect("activate", func() {
		handy.Init()

		w, err := ui.NewMainWindow(a)
		if err != nil {
			log.Fatalln("Failed to create main window:", err)
		}

		// Media keys are a nicety; the wall works without a session bus.
		m, err := mpris.New(w)
		if err != nil {
			log.Println("MPRIS unavailable:", err)
		}

		w.Show()
		a.AddWindow(w)

		w.Connect("destroy", func() {
			w.Teardown()

			if err := m.Close(); err != nil {
				log.Println("Failed to close MPRIS:", err)
			}
		})
	})

	if exitCode := a.Run(os.Args); exitCode > 0 {
		os.Exit(exitCode)
	}
}
