package tilebatch

import "image"

// Vec2 is a 2D vector used for positions, offsets, sizes, and velocities
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s on both axes.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dimensions is a width/height pair in pixels. Used for both atlas images and
// individual tile cells.
type Dimensions struct {
	Width, Height int
}

// IsZero reports whether both sides are zero, which the loaders treat as
// "not declared".
func (d Dimensions) IsZero() bool {
	return d.Width == 0 && d.Height == 0
}

// dimensionsOf returns the pixel size of an image's bounds.
func dimensionsOf(img Image) Dimensions {
	b := img.Bounds()
	return Dimensions{Width: b.Dx(), Height: b.Dy()}
}

// SourceRect is a normalized rectangle inside an atlas. X and Y are the
// top-left corner, all four values are fractions of the atlas size.
type SourceRect struct {
	X, Y, Width, Height float64
}

// Area returns Width*Height.
func (r SourceRect) Area() float64 {
	return r.Width * r.Height
}

// Pixels converts the normalized rectangle back into pixel space for an atlas
// of the given size.
func (r SourceRect) Pixels(atlas Dimensions) (x, y, w, h float64) {
	aw := float64(atlas.Width)
	ah := float64(atlas.Height)
	return r.X * aw, r.Y * ah, r.Width * aw, r.Height * ah
}

// Image is the opaque atlas handle stored by a TilesetBatch. The core only
// reads its bounds; backends type-assert it to their own image type.
// *ebiten.Image satisfies it, as does any image.Image.
type Image interface {
	Bounds() image.Rectangle
}

// TileSpec describes one placed tile: an atlas cell id, a top-left world
// position, and the name of the tileset it is drawn from.
type TileSpec struct {
	ID      int
	Pos     Vec2
	Tileset string
}

// DrawRequest is one queued tile draw: where it lands and what it samples.
type DrawRequest struct {
	Dst Vec2
	Src SourceRect
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}
