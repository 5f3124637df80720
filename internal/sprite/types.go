// Package sprite provides data structures and a YAML codec for sprite sheet
// documents. A document describes the rectangles sliced out of a sheet
// ("frames"), named orderings of those frames ("animations") and per-animation
// playback metadata. It is the on-disk boundary of the authoring tool; the
// playback engine itself only ever sees the runtime dataset built from it.
package sprite

// Document is the root structure of a sprite sheet document file.
type Document struct {
	// Name is an optional display name for the sprite
	Name string `yaml:"name,omitempty"`

	// Image is the path to the sprite sheet image, relative to the document
	Image string `yaml:"image,omitempty"`

	// Frames is the flat list of sheet rectangles. Frame indices used by
	// animations refer to positions in this list.
	Frames []Frame `yaml:"frames"`

	// Animations is the ordered list of named frame sequences.
	// A YAML sequence is used instead of a mapping so that declaration
	// order survives the round trip.
	Animations []Animation `yaml:"animations,omitempty"`

	// Autoplay names the animation that starts playing when the document
	// is opened. Empty means none.
	Autoplay string `yaml:"autoplay,omitempty"`
}

// Frame is a single sheet rectangle with a stable identity.
type Frame struct {
	// ID is a stable identifier, distinct from the frame's position in the
	// list. Generated by the editor when the frame is sliced.
	ID string `yaml:"id,omitempty"`

	// X, Y, W, H describe the rectangle in sheet pixels
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`

	// Duration is an optional explicit display duration in milliseconds.
	// 0 means unset; the animation's fps and multipliers apply instead.
	Duration float64 `yaml:"duration,omitempty"`
}

// Animation is a named ordered sequence of frame indices plus its playback
// metadata. Duplicate indices are permitted and indices need not be
// contiguous or monotonic. The sequence may be empty.
type Animation struct {
	// Name is unique within the document
	Name string `yaml:"name"`

	// Frames is the playback order, as indices into Document.Frames
	Frames []int `yaml:"frames"`

	// FPS is the base frame rate. 0 means unset (engine default applies).
	FPS float64 `yaml:"fps,omitempty"`

	// Loop controls end-of-sequence behavior:
	// nil = default true, &false = play once and stop
	Loop *bool `yaml:"loop,omitempty"`

	// Multipliers scale the base frame duration per timeline position.
	// Shorter arrays pad with 1.0, longer arrays truncate (normalized by
	// the engine on every read).
	Multipliers []float64 `yaml:"multipliers,omitempty"`
}
