package ov

// RenderOptions configures one rainbow disk render. The same struct backs
// CLI flags, JSON config files and HTTP request bodies.
type RenderOptions struct {
	// Columns is the number of frames sampled into the strip.
	Columns int `json:"columns"`
	// Pad is the number of fill columns added at the disk center.
	Pad int `json:"pad"`
	// Rotate runs time around the circle instead of outward.
	Rotate bool `json:"rotate"`
	// Size is the side of the square disk image; 0 derives it from the strip.
	Size int `json:"size"`
	// MaxRadius defaults to half of Size.
	MaxRadius float64  `json:"maxRadius"`
	CenterX   *float64 `json:"centerX,omitempty"`
	CenterY   *float64 `json:"centerY,omitempty"`

	Scaling       string `json:"scaling"`
	Interpolation string `json:"interpolation"`
	Border        string `json:"border"`
	Fill          string `json:"fill"`

	// Strict fails the render when the video ends before Columns frames.
	Strict  bool `json:"strict"`
	Quality int  `json:"quality"`
}

type Project struct {
	Name    string        `json:"name" binding:"required"`
	Info    string        `json:"info"`
	Source  string        `json:"source" binding:"required"`
	Options RenderOptions `json:"options"`
}
