package windowstate

// WindowState is the persisted state of a window.
type WindowState struct {
	Width      float32 `yaml:"width,omitempty"`
	Height     float32 `yaml:"height,omitempty"`
	X          int     `yaml:"x,omitempty"`
	Y          int     `yaml:"y,omitempty"`
	Maximized  bool    `yaml:"maximized,omitempty"`
	Visible    bool    `yaml:"visible,omitempty"`
	Decorated  bool    `yaml:"decorated,omitempty"`
	Fullscreen bool    `yaml:"fullscreen,omitempty"`
}

// Filter returns a copy of s which only contains the attributes selected by flags.
func Filter(s WindowState, flags StateFlags) WindowState {
	return merge(WindowState{}, s, flags)
}

// merge returns base with the attributes selected by flags taken from s.
func merge(base, s WindowState, flags StateFlags) WindowState {
	if flags.Has(Size) {
		base.Width, base.Height = s.Width, s.Height
	}
	if flags.Has(Position) {
		base.X, base.Y = s.X, s.Y
	}
	if flags.Has(Maximized) {
		base.Maximized = s.Maximized
	}
	if flags.Has(Visible) {
		base.Visible = s.Visible
	}
	if flags.Has(Decorations) {
		base.Decorated = s.Decorated
	}
	if flags.Has(Fullscreen) {
		base.Fullscreen = s.Fullscreen
	}
	return base
}
