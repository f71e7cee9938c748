package tilebatch

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
	// follow resumes following once both tweens finish.
	follow bool
}

// Camera is the view into the level. X and Y are the world-space point shown
// at the center of the viewport.
type Camera struct {
	X, Y float64
	// Viewport is the screen size in pixels.
	Viewport Vec2
	// Speed is the keyboard pan speed in pixels per second.
	Speed float64
	// FollowLerp is the fraction of the remaining distance to the focus point
	// covered each frame while following. 1.0 snaps.
	FollowLerp float64

	following bool

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the camera is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	scrollTween *scrollAnim
}

// NewCamera creates a camera for a viewport of the given size, centered on
// the world origin.
func NewCamera(viewW, viewH float64) *Camera {
	return &Camera{
		Viewport:   Vec2{X: viewW, Y: viewH},
		Speed:      300,
		FollowLerp: 0.15,
	}
}

// Offset returns the translation from world to screen space. Adding it to a
// tile position gives the tile's on-screen position.
func (c *Camera) Offset() Vec2 {
	return Vec2{X: c.Viewport.X/2 - c.X, Y: c.Viewport.Y/2 - c.Y}
}

// WorldToScreen converts a world position to screen coordinates.
func (c *Camera) WorldToScreen(p Vec2) Vec2 {
	return p.Add(c.Offset())
}

// ScreenToWorld converts a screen position to world coordinates.
func (c *Camera) ScreenToWorld(p Vec2) Vec2 {
	return p.Sub(c.Offset())
}

// VisibleBounds returns the world-space rectangle covered by the viewport.
func (c *Camera) VisibleBounds() Rect {
	return Rect{
		X:      c.X - c.Viewport.X/2,
		Y:      c.Y - c.Viewport.Y/2,
		Width:  c.Viewport.X,
		Height: c.Viewport.Y,
	}
}

// Follow makes the camera track the focus point passed to Update.
func (c *Camera) Follow() {
	c.following = true
}

// Unfollow stops tracking the focus point.
func (c *Camera) Unfollow() {
	c.following = false
}

// Following reports whether the camera tracks the focus point.
func (c *Camera) Following() bool {
	return c.following
}

// Pan moves the camera by Speed*dt in the held directions. Manual panning
// stops following and cancels any scroll in progress.
func (c *Camera) Pan(held Direction, dt float64) {
	if held == DirNone {
		return
	}
	c.following = false
	c.scrollTween = nil
	d := held.Vector().Scale(c.Speed * dt)
	c.X += d.X
	c.Y += d.Y
	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// ScrollTo animates the camera to the given world position over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// Recenter scrolls to target and resumes following once it arrives.
func (c *Camera) Recenter(target Vec2, duration float32) {
	c.following = false
	c.ScrollTo(target.X, target.Y, duration, ease.OutQuad)
	c.scrollTween.follow = true
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// Update advances scrolling and following by dt seconds. focus is the
// world-space point tracked while following.
func (c *Camera) Update(dt float32, focus Vec2) {
	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			c.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			c.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			if c.scrollTween.follow {
				c.following = true
			}
			c.scrollTween = nil
		}
	} else if c.following {
		c.X += (focus.X - c.X) * c.FollowLerp
		c.Y += (focus.Y - c.Y) * c.FollowLerp
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// clampToBounds restricts camera position so the visible area stays within Bounds.
func (c *Camera) clampToBounds() {
	halfW := c.Viewport.X / 2
	halfH := c.Viewport.Y / 2

	minX := c.Bounds.X + halfW
	maxX := c.Bounds.X + c.Bounds.Width - halfW
	minY := c.Bounds.Y + halfH
	maxY := c.Bounds.Y + c.Bounds.Height - halfH

	// If bounds are smaller than visible area, center the camera.
	if minX > maxX {
		c.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
}
