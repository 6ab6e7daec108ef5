// Package player drives mpv processes over their JSON IPC sockets. Each
// grid cell owns one Handle: its own mpv process, window and socket, so
// every video on the wall decodes and plays independently.
package player

import (
	"context"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/DexterLB/mpvipc"
	"github.com/google/uuid"
	"github.com/gotk3/gotk3/glib"
	"github.com/pkg/errors"
)

type mpvEvent uint

const (
	allEvent mpvEvent = iota
	pauseEvent
	timePositionEvent
	durationEvent
)

var propertyMap = map[mpvEvent]string{
	pauseEvent:        "pause",
	timePositionEvent: "time-pos",
	durationEvent:     "duration",
}

// HandleEvents methods are all called in the glib main thread.
type HandleEvents interface {
	OnPositionChange(pos, duration float64)
	OnPauseUpdate(pause bool)
}

var sockDir = filepath.Join(os.TempDir(), "vidwall", "sockets")

// Handle is a live playback handle for one video. Its methods write mpv
// properties; failures are returned for the caller's diagnostics and never
// stop sibling handles.
type Handle struct {
	Playback *mpvipc.Connection
	Command  *exec.Cmd

	// OnAsyncError is called for errors surfacing from the event stream.
	OnAsyncError func(err error)

	events HandleEvents

	socketPath string
	stopped    bool

	// last observed values, touched only in the event goroutine
	pos float64
	dur float64
}

// New spawns an mpv process for the given URI and connects to its IPC
// socket. The video starts playing as soon as mpv loads it.
func New(title, uri string) (*Handle, error) {
	if err := os.MkdirAll(sockDir, os.ModePerm); err != nil {
		return nil, errors.Wrap(err, "failed to make socket directory")
	}

	sockPath := filepath.Join(sockDir, uuid.NewString()+".sock")

	args := []string{
		"--quiet",
		"--no-input-terminal",
		"--force-window=yes",
		"--loop-file=inf",
		"--keep-open=no",
		"--volume-max=100",
		"--title=" + title,
		"--input-ipc-server=" + sockPath,
		uri,
	}

	cmd := exec.Command("mpv", args...)
	cmd.Env = os.Environ()
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrap(err, "failed to start mpv")
	}

	conn := mpvipc.NewConnection(sockPath)

	// Spin until the socket comes up, bounded to 5 seconds.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var err error
RetryOpen:
	for {
		err = conn.Open()
		if err == nil {
			break RetryOpen
		}
		select {
		case <-ctx.Done():
			break RetryOpen
		default:
			runtime.Gosched()
			continue RetryOpen
		}
	}

	if err != nil {
		cmd.Process.Kill()
		return nil, errors.Wrap(err, "failed to open mpv connection")
	}

	for id, property := range propertyMap {
		if _, err := conn.Call("observe_property", id, property); err != nil {
			conn.Close()
			cmd.Process.Kill()
			return nil, errors.Wrapf(err, "failed to observe property %q", property)
		}
	}

	return &Handle{
		Playback:   conn,
		Command:    cmd,
		socketPath: sockPath,
		OnAsyncError: func(err error) {
			if err != nil {
				log.Println("mpv async error:", err)
			}
		},
	}, nil
}

// Start starts the event listener in a background goroutine; events are
// delivered to h in the glib main thread. It is non-blocking.
func (h *Handle) Start(events HandleEvents) {
	h.events = events

	h.Playback.ListenForEvents(func(event *mpvipc.Event) {
		if event.Error != "" {
			h.OnAsyncError(errors.New(event.Error))
		}

		if event.Data == nil {
			return
		}

		switch mpvEvent(event.ID) {
		case pauseEvent:
			b := event.Data.(bool)
			glib.IdleAdd(func() { h.events.OnPauseUpdate(b) })

		case timePositionEvent:
			h.pos = event.Data.(float64)
			h.sendPosition()

		case durationEvent:
			h.dur = event.Data.(float64)
			h.sendPosition()
		}
	})
}

func (h *Handle) sendPosition() {
	pos, dur := h.pos, h.dur
	glib.IdleAdd(func() { h.events.OnPositionChange(pos, dur) })
}

// SetVolume sets the handle's volume; v is in [0, 1].
func (h *Handle) SetVolume(v float64) error {
	return h.Playback.Set("volume", v*100)
}

// SetMute sets the handle's mute flag.
func (h *Handle) SetMute(muted bool) error {
	return h.Playback.Set("mute", muted)
}

// SetPlay plays or pauses the handle.
func (h *Handle) SetPlay(playing bool) error {
	return h.Playback.Set("pause", !playing)
}

// Seek jumps to the absolute position in seconds.
func (h *Handle) Seek(pos float64) error {
	return h.Playback.Set("time-pos", pos)
}

// Stop tears the handle down: close the connection, interrupt mpv, wait for
// it, and remove the socket. Calling it again does nothing.
func (h *Handle) Stop() {
	if h.stopped {
		return
	}
	h.stopped = true

	h.Playback.Close()

	if err := h.Command.Process.Signal(os.Interrupt); err != nil {
		log.Println("attempted SIGINT failed, killing mpv:", err)

		if err := h.Command.Process.Kill(); err != nil {
			log.Println("failed to kill mpv:", err)
		}
	} else {
		h.Command.Wait()
	}

	if err := os.Remove(h.socketPath); err != nil && !os.IsNotExist(err) {
		log.Println("failed to clean up socket:", err)
	}
}
