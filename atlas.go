package tilebatch

import "fmt"

// RectFor returns the normalized atlas rectangle for a tile id. Ids are
// row-major and zero-based: with cols = atlas.Width / tile.Width cells per
// row, id lives at row id/cols, column id - row*cols.
//
// There is no upper bound check. An id past the last cell yields a rectangle
// at or beyond Y = 1; existing level data numbers tiles with this exact
// formula, so it must not change. Use Grid.CheckedRect for a guarded lookup.
//
// RectFor panics if the tile size is not positive, is larger than the atlas,
// or if id is negative. Atlas and tile sizes are configuration constants, so
// these are programming errors.
func RectFor(id int, tileSize, atlasSize Dimensions) SourceRect {
	if tileSize.Width <= 0 || tileSize.Height <= 0 {
		panic(fmt.Sprintf("tilebatch: RectFor: tile size %dx%d must be positive", tileSize.Width, tileSize.Height))
	}
	if atlasSize.Width < tileSize.Width || atlasSize.Height < tileSize.Height {
		panic(fmt.Sprintf("tilebatch: RectFor: atlas %dx%d smaller than tile %dx%d",
			atlasSize.Width, atlasSize.Height, tileSize.Width, tileSize.Height))
	}
	if id < 0 {
		panic(fmt.Sprintf("tilebatch: RectFor: negative tile id %d", id))
	}

	cols := atlasSize.Width / tileSize.Width
	row := id / cols
	col := id - row*cols

	aw := float64(atlasSize.Width)
	ah := float64(atlasSize.Height)
	return SourceRect{
		X:      float64(col*tileSize.Width) / aw,
		Y:      float64(row*tileSize.Height) / ah,
		Width:  float64(tileSize.Width) / aw,
		Height: float64(tileSize.Height) / ah,
	}
}

// Grid is a tile size validated against one atlas. It is a value type and is
// safe to copy.
type Grid struct {
	TileSize  Dimensions
	AtlasSize Dimensions
	cols      int
	rows      int
}

// NewGrid validates tileSize against atlasSize. It returns a *ConfigError if
// the tile size is not positive or leaves no whole column or row.
func NewGrid(tileSize, atlasSize Dimensions) (Grid, error) {
	if tileSize.Width <= 0 || tileSize.Height <= 0 {
		return Grid{}, configErrorf("tile size %dx%d must be positive", tileSize.Width, tileSize.Height)
	}
	cols := atlasSize.Width / tileSize.Width
	rows := atlasSize.Height / tileSize.Height
	if cols == 0 || rows == 0 {
		return Grid{}, configErrorf("tile size %dx%d leaves no whole cell in atlas %dx%d",
			tileSize.Width, tileSize.Height, atlasSize.Width, atlasSize.Height)
	}
	return Grid{TileSize: tileSize, AtlasSize: atlasSize, cols: cols, rows: rows}, nil
}

// Cols returns the number of cells per atlas row.
func (g Grid) Cols() int { return g.cols }

// Rows returns the number of cell rows in the atlas.
func (g Grid) Rows() int { return g.rows }

// TileCount returns Cols*Rows.
func (g Grid) TileCount() int { return g.cols * g.rows }

// Even reports whether the tile size divides the atlas exactly. When false,
// the trailing pixels of each row and column are never sampled.
func (g Grid) Even() bool {
	return g.AtlasSize.Width%g.TileSize.Width == 0 && g.AtlasSize.Height%g.TileSize.Height == 0
}

// Contains reports whether id addresses a cell inside the atlas.
func (g Grid) Contains(id int) bool {
	return id >= 0 && id < g.TileCount()
}

// Rect returns RectFor(id, g.TileSize, g.AtlasSize).
func (g Grid) Rect(id int) SourceRect {
	return RectFor(id, g.TileSize, g.AtlasSize)
}

// CheckedRect is Rect with a range check. Ids outside [0, TileCount()) return
// a *TileOutOfRangeError with an empty Tileset name.
func (g Grid) CheckedRect(id int) (SourceRect, error) {
	if !g.Contains(id) {
		return SourceRect{}, &TileOutOfRangeError{ID: id, Count: g.TileCount()}
	}
	return g.Rect(id), nil
}
