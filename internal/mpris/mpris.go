// Package mpris exposes the aggregate transport state over DBus as an
// org.mpris.MediaPlayer2 player, so desktop media keys drive the whole
// wall at once.
package mpris

import (
	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/godbus/dbus/v5/prop"
	"github.com/pkg/errors"
	"github.com/vidwall/vidwall/internal/ui"
)

const (
	mprisPath = "/org/mpris/MediaPlayer2"

	introspectID = "org.freedesktop.DBus.Introspectable"
	mprisID      = "org.mpris.MediaPlayer2"
	playerID     = mprisID + ".Player"
	vidwallID    = mprisID + ".vidwall"
)

// Conn is a single MPRIS DBus connection.
type Conn struct {
	conn   *dbus.Conn
	player *player
}

// New creates a new MPRIS connection driving the given window and
// subscribes it to the window's transport changes.
func New(w *ui.MainWindow) (*Conn, error) {
	c, err := newConn(w)
	if err == nil {
		w.AddTransportListener(c.player)
		return c, nil
	}

	c.Close()
	return nil, err
}

func newConn(w *ui.MainWindow) (*Conn, error) {
	s, err := dbus.SessionBus()
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to session bus")
	}

	pl := newPlayer(w)

	props := map[string]map[string]*prop.Prop{
		playerID: pl.props(),
	}

	p, err := prop.Export(s, mprisPath, props)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create DBus properties")
	}
	pl.start(p)

	conn := Conn{
		conn:   s,
		player: pl,
	}

	if err := s.Export(conn.player, mprisPath, playerID); err != nil {
		return &conn, errors.Wrap(err, "failed to export the MPRIS Player")
	}

	if err := s.Export(introspectionXML, mprisPath, introspectID); err != nil {
		return &conn, errors.Wrap(err, "failed to export introspection.xml")
	}

	reply, err := s.RequestName(vidwallID, dbus.NameFlagDoNotQueue)
	if err != nil {
		return &conn, errors.Wrap(err, "failed to request name")
	}

	if reply != dbus.RequestNameReplyPrimaryOwner {
		return &conn, errors.New("requested name is not primary, name already taken")
	}

	return &conn, nil
}

// Close closes the current DBus connection and destroys background workers.
// If c is nil, then Close returns nil.
func (c *Conn) Close() error {
	if c == nil {
		return nil
	}

	c.player.Destroy()
	return c.conn.Close()
}

const introspectionXML introspect.Introspectable = `
<node>
	<interface name="org.mpris.MediaPlayer2.Player">
		<method name="Pause">
		</method>
		<method name="PlayPause">
		</method>
		<method name="Stop">
		</method>
		<method name="Play">
		</method>
		<property name="PlaybackStatus" type="s" access="read"/>
		<property name="Rate" type="d" access="readwrite"/>
		<property name="Volume" type="d" access="readwrite"/>
		<property name="MinimumRate" type="d" access="read"/>
		<property name="MaximumRate" type="d" access="read"/>
		<property name="CanGoNext" type="b" access="read"/>
		<property name="CanGoPrevious" type="b" access="read"/>
		<property name="CanPlay" type="b" access="read"/>
		<property name="CanPause" type="b" access="read"/>
		<property name="CanSeek" type="b" access="read"/>
		<property name="CanControl" type="b" access="read"/>
	</interface>
</node>
`
