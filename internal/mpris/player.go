package mpris

import (
	"log"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/prop"
	"github.com/gotk3/gotk3/glib"
	"github.com/pkg/errors"
	"github.com/vidwall/vidwall/internal/state"
	"github.com/vidwall/vidwall/internal/ui"
)

type player struct {
	win *ui.MainWindow

	propQ chan propChange
	stop  chan struct{}
}

var _ ui.TransportListener = (*player)(nil)

type propChange struct {
	n string
	v interface{}
}

func newPlayer(w *ui.MainWindow) *player {
	return &player{
		win:   w,
		propQ: make(chan propChange, 10),
		stop:  make(chan struct{}),
	}
}

// props builds the exported Player property table. Volume writes from the
// bus land on the main loop through the window's external setter.
func (p *player) props() map[string]*prop.Prop {
	return map[string]*prop.Prop{
		"PlaybackStatus": {Value: "Playing", Emit: prop.EmitTrue},
		"Rate":           {Value: 1.0, Writable: true, Emit: prop.EmitTrue},
		"MinimumRate":    {Value: 1.0, Emit: prop.EmitTrue},
		"MaximumRate":    {Value: 1.0, Emit: prop.EmitTrue},
		"CanGoNext":      {Value: false, Emit: prop.EmitTrue},
		"CanGoPrevious":  {Value: false, Emit: prop.EmitTrue},
		"CanPlay":        {Value: true, Emit: prop.EmitTrue},
		"CanPause":       {Value: true, Emit: prop.EmitTrue},
		"CanSeek":        {Value: false, Emit: prop.EmitTrue},
		"CanControl":     {Value: true, Emit: prop.EmitTrue},

		"Volume": {
			Value:    state.DefaultVolume,
			Writable: true,
			Emit:     prop.EmitTrue,
			Callback: func(c *prop.Change) *dbus.Error {
				v, ok := c.Value.(float64)
				if !ok {
					return dbus.MakeFailedError(errInvalidVolume)
				}

				glib.IdleAdd(func() { p.win.SetVolumeExternal(v) })
				return nil
			},
		},
	}
}

// start spins the background worker that pushes queued property updates
// onto the bus.
func (p *player) start(props *prop.Properties) {
	go func() {
		for {
			select {
			case <-p.stop:
				return
			case send := <-p.propQ:
				if err := props.Set(playerID, send.n, dbus.MakeVariant(send.v)); err != nil {
					log.Println("MPRIS set prop failed:", err)
				}
			}
		}
	}()
}

// Destroy stops background workers.
func (p *player) Destroy() {
	close(p.stop)
}

// sendProp queues the prop to be sent through DBus. It pops off the first
// item of the queue if it's full.
func (p *player) sendProp(n string, v interface{}) {
	prop := propChange{n, v}

	for {
		select {
		case <-p.stop:
			return
		case p.propQ <- prop:
			return
		default:
			log.Println("Warning: prop send buffer overflow.")

			// Try and pop the earliest prop out.
			select {
			case <-p.propQ:
			default:
			}
		}
	}
}

// Transport listener methods, called from the UI.

func (p *player) TransportChanged(playing bool) {
	if playing {
		p.sendProp("PlaybackStatus", "Playing")
	} else {
		p.sendProp("PlaybackStatus", "Paused")
	}
}

func (p *player) VolumeChanged(volume float64) {
	p.sendProp("Volume", volume)
}

// DBus methods.

var errInvalidVolume = errors.New("volume must be a double")

func (p *player) PlayPause() *dbus.Error {
	glib.IdleAdd(p.win.TogglePlay)
	return nil
}

func (p *player) Play() *dbus.Error {
	glib.IdleAdd(func() {
		if !p.win.IsPlaying() {
			p.win.TogglePlay()
		}
	})
	return nil
}

func (p *player) Pause() *dbus.Error {
	glib.IdleAdd(func() {
		if p.win.IsPlaying() {
			p.win.TogglePlay()
		}
	})
	return nil
}

// Stop maps to pausing the wall; there is no stopped state.
func (p *player) Stop() *dbus.Error {
	return p.Pause()
}
