package bar

import (
	"github.com/gotk3/gotk3/gtk"
	"github.com/vidwall/vidwall/internal/ui/css"
)

var playPauseCSS = css.PrepareClass("playpause", `
	button {
		margin: 2px 8px;
		color:   @theme_fg_color;
		opacity: 0.75;
		box-shadow: none;
		background: none;
		border: 1px solid alpha(@theme_fg_color, 0.45);
	}
	button:hover {
		opacity: 1;
		border: 1px solid alpha(@theme_fg_color, 0.85);
	}
`)

// PlayPause is the aggregate transport toggle. It tracks the commanded
// state only; a video paused through its own window does not move it.
type PlayPause struct {
	gtk.Button
	playing bool

	playIcon  *gtk.Image
	pauseIcon *gtk.Image
}

func newIconImage(symbolicName string) *gtk.Image {
	image, _ := gtk.ImageNewFromIconName(symbolicName, gtk.ICON_SIZE_BUTTON)
	image.Show()
	return image
}

func NewPlayPause(parent ParentController) *PlayPause {
	play := newIconImage("media-playback-start-symbolic")
	pause := newIconImage("media-playback-pause-symbolic")

	pp := &PlayPause{
		playIcon:  play,
		pauseIcon: pause,
	}

	btn, _ := gtk.ButtonNew()
	btn.SetRelief(gtk.RELIEF_NONE)
	btn.SetVAlign(gtk.ALIGN_CENTER)
	btn.Show()
	playPauseCSS(btn)

	pp.Button = *btn
	pp.SetPlaying(true)

	btn.Connect("clicked", func() { parent.TogglePlay() })

	return pp
}

func (pp *PlayPause) IsPlaying() bool {
	return pp.playing
}

// SetPlaying updates the button to reflect the commanded state. It does not
// trigger a callback to the parent.
func (pp *PlayPause) SetPlaying(playing bool) {
	pp.playing = playing

	if pp.playing {
		pp.SetImage(pp.pauseIcon)
		pp.SetTooltipText("Pause all")
	} else {
		pp.SetImage(pp.playIcon)
		pp.SetTooltipText("Play all")
	}
}
