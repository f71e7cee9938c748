package tilebatch

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
)

// Submission is everything a Backend needs to draw one flushed batch.
// Requests is only valid for the duration of the DrawBatch call.
type Submission struct {
	Tileset   string
	Atlas     Image
	AtlasSize Dimensions
	TileSize  Dimensions
	Requests  []DrawRequest
}

// Backend receives one Submission per non-empty flush and must draw all of
// its requests as a single operation.
type Backend interface {
	DrawBatch(sub Submission) error
}

// BackendFunc adapts a function to the Backend interface.
type BackendFunc func(sub Submission) error

// DrawBatch calls f(sub).
func (f BackendFunc) DrawBatch(sub Submission) error { return f(sub) }

// EbitenBackend draws submissions onto an Ebitengine image with one
// DrawTriangles32 call per submission. Vertex and index buffers are reused
// across calls.
type EbitenBackend struct {
	target *ebiten.Image
	verts  []ebiten.Vertex
	inds   []uint32

	// Filter selects the sampling filter. Nearest keeps pixel art crisp.
	Filter ebiten.Filter
	// Blend is the compositing operation. Defaults to source-over.
	Blend ebiten.Blend

	drawCalls int
}

// NewEbitenBackend returns a backend with no target. Call SetTarget with the
// screen at the start of every Draw.
func NewEbitenBackend() *EbitenBackend {
	return &EbitenBackend{
		Filter: ebiten.FilterNearest,
		Blend:  ebiten.BlendSourceOver,
		verts:  make([]ebiten.Vertex, 0, defaultPendingCap*4),
		inds:   make([]uint32, 0, defaultPendingCap*6),
	}
}

// SetTarget sets the image subsequent submissions are drawn onto.
func (e *EbitenBackend) SetTarget(target *ebiten.Image) {
	e.target = target
}

// DrawCalls returns the number of DrawTriangles32 calls issued so far.
func (e *EbitenBackend) DrawCalls() int { return e.drawCalls }

// DrawBatch implements Backend.
func (e *EbitenBackend) DrawBatch(sub Submission) error {
	if e.target == nil {
		return errors.New("no render target set")
	}
	src, ok := sub.Atlas.(*ebiten.Image)
	if !ok || src == nil {
		return errors.Errorf("atlas is %T, want *ebiten.Image", sub.Atlas)
	}
	if src == e.target {
		return errors.New("atlas and render target are the same image")
	}
	if len(sub.Requests) == 0 {
		return nil
	}

	e.verts, e.inds = appendQuads(e.verts[:0], e.inds[:0], sub)

	var op ebiten.DrawTrianglesOptions
	op.Filter = e.Filter
	op.Blend = e.Blend
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	e.target.DrawTriangles32(e.verts, e.inds, src, &op)
	e.drawCalls++
	return nil
}

// appendQuads appends 4 vertices and 6 indices per request. Destination
// quads are TileSize pixels, source coordinates are atlas pixels offset by
// the atlas bounds so sub-images work as atlases.
func appendQuads(verts []ebiten.Vertex, inds []uint32, sub Submission) ([]ebiten.Vertex, []uint32) {
	origin := sub.Atlas.Bounds().Min
	ox := float32(origin.X)
	oy := float32(origin.Y)
	w := float32(sub.TileSize.Width)
	h := float32(sub.TileSize.Height)

	for i := range sub.Requests {
		req := &sub.Requests[i]
		px, py, pw, ph := req.Src.Pixels(sub.AtlasSize)
		sx := ox + float32(px)
		sy := oy + float32(py)
		sw := float32(pw)
		sh := float32(ph)
		dx := float32(req.Dst.X)
		dy := float32(req.Dst.Y)

		base := uint32(len(verts))

		// TL, TR, BL, BR with opaque white premultiplied color.
		verts = append(verts,
			ebiten.Vertex{DstX: dx, DstY: dy, SrcX: sx, SrcY: sy, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
			ebiten.Vertex{DstX: dx + w, DstY: dy, SrcX: sx + sw, SrcY: sy, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
			ebiten.Vertex{DstX: dx, DstY: dy + h, SrcX: sx, SrcY: sy + sh, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
			ebiten.Vertex{DstX: dx + w, DstY: dy + h, SrcX: sx + sw, SrcY: sy + sh, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		)

		// Two triangles: TL-TR-BL, TR-BR-BL
		inds = append(inds,
			base+0, base+1, base+2,
			base+1, base+3, base+2,
		)
	}
	return verts, inds
}
