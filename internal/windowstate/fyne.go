package windowstate

import (
	"fyne.io/fyne/v2"
)

// CapturedFlags are the attributes filled in by [Capture].
// Saves of captured states should be limited to these flags,
// so attributes Fyne can not read keep their stored values.
const CapturedFlags = Size | Fullscreen

// Capture returns the current state of a Fyne window.
// Fyne does not expose the position or decorations of a window,
// so only size and fullscreen are captured.
func Capture(w fyne.Window) WindowState {
	sz := w.Canvas().Size()
	return WindowState{
		Width:      sz.Width,
		Height:     sz.Height,
		Fullscreen: w.FullScreen(),
		Visible:    true,
		Decorated:  true,
	}
}

// Restore applies the attributes of s selected by flags to a Fyne window.
func Restore(w fyne.Window, s WindowState, flags StateFlags) {
	if flags.Has(Size) && s.Width > 0 && s.Height > 0 {
		w.Resize(fyne.NewSize(s.Width, s.Height))
	}
	if flags.Has(Fullscreen) {
		w.SetFullScreen(s.Fullscreen)
	}
}
