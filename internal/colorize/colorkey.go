// Package colorize implements the 2-D coordinate classifier demo: a network
// that learns which of eight colors a point should have, where the ground
// truth is a boolean red/green/blue labeling of the plane.
package colorize

import "fmt"

// ColorFunc labels a coordinate with its red, green, and blue membership.
type ColorFunc func(x, y float64) [3]bool

// RGBVennDiagram is the classic ground truth: three overlapping circles,
// one per channel, centered around the origin.
func RGBVennDiagram(x, y float64) [3]bool {
	return [3]bool{
		(x-0.2165)*(x-0.2165)+(y+0.125)*(y+0.125) < 0.25,
		(x+0.2165)*(x+0.2165)+(y+0.125)*(y+0.125) < 0.25,
		x*x+(y-0.25)*(y-0.25) < 0.25,
	}
}

// Color is one of the eight channel combinations. The index packs the
// channels as bits: red is bit 0, green bit 1, blue bit 2, so Black is 0
// and White is 7.
type Color int

const (
	Black Color = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White

	NumColors = 8
)

// ColorFromChannels packs a channel triple into a Color.
func ColorFromChannels(c [3]bool) Color {
	v := Color(0)
	if c[0] {
		v |= 1
	}
	if c[1] {
		v |= 2
	}
	if c[2] {
		v |= 4
	}
	return v
}

// Channels unpacks the color into its red, green, and blue components.
func (c Color) Channels() [3]bool {
	return [3]bool{c&1 != 0, c&2 != 0, c&4 != 0}
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case Red:
		return "red"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case Blue:
		return "blue"
	case Magenta:
		return "magenta"
	case Cyan:
		return "cyan"
	case White:
		return "white"
	}
	return fmt.Sprintf("Color(%d)", int(c))
}
