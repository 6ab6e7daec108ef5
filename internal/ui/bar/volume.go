package bar

import (
	"github.com/gotk3/gotk3/gtk"
	"github.com/vidwall/vidwall/internal/ui/css"
)

// Volume is the shared volume control: a mute toggle and a 0..100 slider.
// The slider displays percent; the parent speaks [0, 1].
type Volume struct {
	gtk.Box

	Icon   *gtk.Image
	Mute   *gtk.ToggleButton
	Slider *gtk.Scale

	volume float64 // percent
	muted  bool
}

var volumeSliderCSS = css.PrepareClass("volume-slider", `
	scale {
		margin: 0;
		padding-left: 2px;
	}
`)

var muteButtonCSS = css.PrepareClass("mute-button", `
	button {
		margin:  0;
		color:   @theme_fg_color;
		opacity: 0.5;
		box-shadow: none;
		background: none;
	}

	button:hover {
		opacity: 1;
	}
`)

func NewVolume(parent ParentController, initial float64, muted bool) *Volume {
	icon, _ := gtk.ImageNew()
	icon.Show()

	mute, _ := gtk.ToggleButtonNew()
	mute.SetRelief(gtk.RELIEF_NONE)
	mute.SetImage(icon)
	mute.Show()
	muteButtonCSS(mute)

	slider, _ := gtk.ScaleNewWithRange(gtk.ORIENTATION_HORIZONTAL, 0, 100, 1)
	slider.SetSizeRequest(100, -1)
	slider.SetDrawValue(false)
	slider.Show()
	volumeSliderCSS(slider)

	box, _ := gtk.BoxNew(gtk.ORIENTATION_HORIZONTAL, 0)
	box.PackStart(mute, false, false, 0)
	box.PackStart(slider, true, true, 0)
	box.SetVAlign(gtk.ALIGN_CENTER)
	box.SetHAlign(gtk.ALIGN_END)
	box.SetHExpand(true)

	volume := &Volume{
		Box:    *box,
		Icon:   icon,
		Mute:   mute,
		Slider: slider,
		volume: initial * 100,
		muted:  muted,
	}

	mute.SetActive(volume.muted)
	slider.SetValue(volume.volume)
	volume.updateIcon()

	mute.Connect("toggled", func() {
		volume.muted = mute.GetActive()
		volume.updateIcon()
		slider.SetSensitive(!volume.muted) // no sense to change volume while muted
		parent.SetMute(volume.muted)
	})

	slider.Connect("value-changed", func() {
		volume.volume = clampPercent(slider.GetValue())
		volume.updateIcon()
		parent.SetVolume(volume.volume / 100)
	})

	return volume
}

// SetVolume moves the slider to the given fraction in [0, 1] and triggers
// the callback to parent.
func (v *Volume) SetVolume(frac float64) {
	v.Slider.SetValue(frac * 100)
}

// IsMuted returns true if the shared volume is muted.
func (v *Volume) IsMuted() bool {
	return v.muted
}

func (v *Volume) updateIcon() {
	var icon string

	switch {
	case v.volume < 1 || v.muted:
		icon = "audio-volume-muted-symbolic"
	case v.volume < 30:
		icon = "audio-volume-low-symbolic"
	case v.volume < 80:
		icon = "audio-volume-medium-symbolic"
	default:
		icon = "audio-volume-high-symbolic"
	}

	v.Icon.SetFromIconName(icon, gtk.ICON_SIZE_BUTTON)
}

func clampPercent(perc float64) float64 {
	switch {
	case perc < 0:
		return 0
	case perc > 100:
		return 100
	default:
		return perc
	}
}
