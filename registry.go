package tilebatch

import (
	"sort"
	"time"

	"github.com/pkg/errors"
)

// ImageLoader resolves a tileset's image reference to a decoded image.
type ImageLoader interface {
	LoadImage(name string) (Image, error)
}

// ImageLoaderFunc adapts a function to the ImageLoader interface.
type ImageLoaderFunc func(name string) (Image, error)

// LoadImage calls f(name).
func (f ImageLoaderFunc) LoadImage(name string) (Image, error) { return f(name) }

// Registry maps tileset names to their batches and renders a level's tiles
// through them once per frame.
type Registry struct {
	batches map[string]*TilesetBatch
	names   []string // sorted; flush order
	debug   bool
	stats   FrameStats
}

// LoadRegistry builds one TilesetBatch per definition. A definition without
// an image reference or tile size fails with a *MissingFieldError; image
// loading errors are returned wrapped with the file name.
func LoadRegistry(defs []TilesetDef, loader ImageLoader) (*Registry, error) {
	r := &Registry{
		batches: make(map[string]*TilesetBatch, len(defs)),
		names:   make([]string, 0, len(defs)),
		debug:   globalDebug,
	}
	for _, def := range defs {
		if _, dup := r.batches[def.Name]; dup {
			return nil, configErrorf("duplicate tileset %q", def.Name)
		}
		if def.ImageFilename == "" {
			return nil, &MissingFieldError{Key: "tilesets." + def.Name + ".image_filename"}
		}
		if def.TileSize.IsZero() {
			return nil, &MissingFieldError{Key: "tilesets." + def.Name + ".tile_size"}
		}
		img, err := loader.LoadImage(def.ImageFilename)
		if err != nil {
			return nil, errors.Wrapf(err, "load tileset %q image %q", def.Name, def.ImageFilename)
		}
		b, err := NewTilesetBatch(def.Name, img, def.TileSize)
		if err != nil {
			return nil, err
		}
		r.batches[def.Name] = b
		r.names = append(r.names, def.Name)
	}
	sort.Strings(r.names)
	return r, nil
}

// Batch returns the batch registered under name.
func (r *Registry) Batch(name string) (*TilesetBatch, bool) {
	b, ok := r.batches[name]
	return b, ok
}

// Names returns the registered tileset names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Stats returns the counters from the most recent Render call.
func (r *Registry) Stats() FrameStats { return r.stats }

// SetDebug enables per-frame stats on stderr for this registry and mirrors
// the flag package-wide.
func (r *Registry) SetDebug(enabled bool) {
	r.debug = enabled
	SetDebug(enabled)
}

// SetStrict toggles range checking on every batch.
func (r *Registry) SetStrict(strict bool) {
	for _, b := range r.batches {
		b.SetStrict(strict)
	}
}

// Render enqueues every tile at its position plus offset, then flushes every
// batch exactly once.
//
// A tile naming an unregistered tileset, or an id the batch rejects, aborts
// the frame: everything queued so far is discarded, nothing is drawn, and the
// error is returned. A failing flush does not stop the remaining batches from
// flushing; the first failure is returned.
func (r *Registry) Render(backend Backend, tiles []TileSpec, offset Vec2) error {
	start := time.Now()
	stats := FrameStats{}

	for i := range tiles {
		t := &tiles[i]
		b, ok := r.batches[t.Tileset]
		if !ok {
			return r.abort(stats, start, &UnknownTilesetError{Name: t.Tileset})
		}
		if err := b.Enqueue(t.ID, t.Pos.Add(offset)); err != nil {
			return r.abort(stats, start, err)
		}
		stats.Tiles++
	}

	var firstErr error
	for _, name := range r.names {
		b := r.batches[name]
		if b.Pending() == 0 {
			continue
		}
		stats.Batches++
		if err := b.Flush(backend); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		stats.DrawCalls++
	}

	stats.RenderTime = time.Since(start)
	r.finish(stats)
	return firstErr
}

// abort discards every pending request and records the dropped count.
func (r *Registry) abort(stats FrameStats, start time.Time, err error) error {
	for _, name := range r.names {
		b := r.batches[name]
		stats.Discarded += b.Pending()
		b.Discard()
	}
	stats.RenderTime = time.Since(start)
	r.finish(stats)
	return err
}

func (r *Registry) finish(stats FrameStats) {
	r.stats = stats
	if r.debug {
		debugLog(stats)
	}
}

// Bounds returns the world-space rectangle covered by tiles, sizing each tile
// by its tileset's cell size. Tiles naming unknown tilesets are skipped.
func (r *Registry) Bounds(tiles []TileSpec) Rect {
	first := true
	var minX, minY, maxX, maxY float64
	for i := range tiles {
		t := &tiles[i]
		b, ok := r.batches[t.Tileset]
		if !ok {
			continue
		}
		ts := b.grid.TileSize
		x0, y0 := t.Pos.X, t.Pos.Y
		x1, y1 := x0+float64(ts.Width), y0+float64(ts.Height)
		if first {
			minX, minY, maxX, maxY = x0, y0, x1, y1
			first = false
			continue
		}
		minX = min(minX, x0)
		minY = min(minY, y0)
		maxX = max(maxX, x1)
		maxY = max(maxY, y1)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
