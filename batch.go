package tilebatch

import "github.com/pkg/errors"

const defaultPendingCap = 256

// TilesetBatch owns one atlas image and the draw requests queued against it
// for the current frame. It is not safe for concurrent use; the frame loop
// must finish every Enqueue for a frame before calling Flush.
type TilesetBatch struct {
	name   string
	atlas  Image
	grid   Grid
	strict bool

	// rects memoizes SourceRects by tile id; known marks the filled slots.
	rects []SourceRect
	known []bool

	pending []DrawRequest
}

// NewTilesetBatch creates a batch for the given atlas. The atlas dimensions
// are read once here. A tile size that leaves no whole cell in the atlas is
// reported as a *ConfigError.
func NewTilesetBatch(name string, atlas Image, tileSize Dimensions) (*TilesetBatch, error) {
	if atlas == nil {
		return nil, configErrorf("tileset %q: nil atlas image", name)
	}
	grid, err := NewGrid(tileSize, dimensionsOf(atlas))
	if err != nil {
		return nil, errors.Wrapf(err, "tileset %q", name)
	}
	if !grid.Even() && globalDebug {
		debugWarnf("tileset %q: tile %dx%d does not divide atlas %dx%d evenly",
			name, tileSize.Width, tileSize.Height, grid.AtlasSize.Width, grid.AtlasSize.Height)
	}
	return &TilesetBatch{
		name:    name,
		atlas:   atlas,
		grid:    grid,
		pending: make([]DrawRequest, 0, defaultPendingCap),
	}, nil
}

// Name returns the tileset name the batch was created with.
func (b *TilesetBatch) Name() string { return b.name }

// Atlas returns the atlas image handle.
func (b *TilesetBatch) Atlas() Image { return b.atlas }

// Grid returns the validated atlas grid.
func (b *TilesetBatch) Grid() Grid { return b.grid }

// Pending returns the number of queued draw requests.
func (b *TilesetBatch) Pending() int { return len(b.pending) }

// SetStrict enables range checking in Enqueue. Off by default so ids past the
// atlas keep the unguarded addressing behavior.
func (b *TilesetBatch) SetStrict(strict bool) { b.strict = strict }

// Enqueue queues tile id for drawing at dst. Nothing is drawn until Flush.
// Negative ids, and in strict mode ids outside the grid, return a
// *TileOutOfRangeError and queue nothing.
func (b *TilesetBatch) Enqueue(id int, dst Vec2) error {
	if id < 0 || (b.strict && !b.grid.Contains(id)) {
		return &TileOutOfRangeError{Tileset: b.name, ID: id, Count: b.grid.TileCount()}
	}
	b.pending = append(b.pending, DrawRequest{Dst: dst, Src: b.rect(id)})
	return nil
}

// rect returns the memoized SourceRect for id, computing it on first use.
// Ids outside the grid are computed each time and never cached.
func (b *TilesetBatch) rect(id int) SourceRect {
	if !b.grid.Contains(id) {
		return b.grid.Rect(id)
	}
	if b.known == nil {
		n := b.grid.TileCount()
		b.rects = make([]SourceRect, n)
		b.known = make([]bool, n)
	}
	if b.known[id] {
		return b.rects[id]
	}
	r := b.grid.Rect(id)
	b.rects[id] = r
	b.known[id] = true
	return r
}

// Flush submits every pending request to backend as a single batched draw,
// in enqueue order, then clears the queue. An empty queue returns nil without
// touching the backend. The queue is cleared even when the backend fails;
// the failure is returned as a *BackendDrawError.
func (b *TilesetBatch) Flush(backend Backend) error {
	if len(b.pending) == 0 {
		return nil
	}
	err := backend.DrawBatch(Submission{
		Tileset:   b.name,
		Atlas:     b.atlas,
		AtlasSize: b.grid.AtlasSize,
		TileSize:  b.grid.TileSize,
		Requests:  b.pending,
	})
	b.pending = b.pending[:0]
	if err != nil {
		return &BackendDrawError{Tileset: b.name, Err: err}
	}
	return nil
}

// Discard drops every pending request without drawing.
func (b *TilesetBatch) Discard() {
	b.pending = b.pending[:0]
}
