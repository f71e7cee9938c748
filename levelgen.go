package tilebatch

import (
	"github.com/aquilax/go-perlin"
)

// Perlin parameters: alpha is the weight when summing octaves, beta the
// harmonic scaling, n the number of octaves.
const (
	perlinAlpha  = 2
	perlinBeta   = 2
	perlinOctave = 3
)

// GenOptions configures GenerateLevel.
type GenOptions struct {
	Cols, Rows int
	TileSize   Dimensions
	Tileset    string
	Seed       int64
	// Scale is the noise frequency per tile. Defaults to 0.12.
	Scale float64
	// Palette lists tile ids from lowest to highest elevation. Defaults to
	// {0, 1, 2, 3}.
	Palette []int
	// PlayerSize is the size of the generated player object. Defaults to the
	// tile size.
	PlayerSize Vec2
}

// GenerateLevel builds a Cols x Rows level from 2D Perlin noise, picking each
// tile from Palette by elevation, with a player object at the map center.
// The same options always produce the same level.
func GenerateLevel(opts GenOptions) (*Level, error) {
	if opts.Cols <= 0 || opts.Rows <= 0 {
		return nil, configErrorf("generate: map size %dx%d must be positive", opts.Cols, opts.Rows)
	}
	if opts.TileSize.Width <= 0 || opts.TileSize.Height <= 0 {
		return nil, configErrorf("generate: tile size %dx%d must be positive", opts.TileSize.Width, opts.TileSize.Height)
	}
	if opts.Tileset == "" {
		return nil, &MissingFieldError{Key: "generate.tileset"}
	}
	if opts.Scale == 0 {
		opts.Scale = 0.12
	}
	if len(opts.Palette) == 0 {
		opts.Palette = []int{0, 1, 2, 3}
	}
	if opts.PlayerSize == (Vec2{}) {
		opts.PlayerSize = Vec2{X: float64(opts.TileSize.Width), Y: float64(opts.TileSize.Height)}
	}

	gen := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctave, opts.Seed)
	tw := float64(opts.TileSize.Width)
	th := float64(opts.TileSize.Height)

	level := &Level{Tiles: make([]TileSpec, 0, opts.Cols*opts.Rows)}
	for y := 0; y < opts.Rows; y++ {
		for x := 0; x < opts.Cols; x++ {
			n := gen.Noise2D(float64(x)*opts.Scale, float64(y)*opts.Scale)
			level.Tiles = append(level.Tiles, TileSpec{
				ID:      paletteIndex(opts.Palette, n),
				Pos:     Vec2{X: float64(x) * tw, Y: float64(y) * th},
				Tileset: opts.Tileset,
			})
		}
	}

	center := Vec2{X: float64(opts.Cols) * tw / 2, Y: float64(opts.Rows) * th / 2}
	player, err := NewObject("player", "player", center.Sub(opts.PlayerSize.Scale(0.5)), opts.PlayerSize)
	if err != nil {
		return nil, err
	}
	level.Objects = append(level.Objects, player)
	return level, nil
}

// paletteIndex maps noise in roughly [-1, 1] onto a palette entry.
func paletteIndex(palette []int, noise float64) int {
	v := clamp((noise+1)/2, 0, 1)
	i := int(v * float64(len(palette)))
	if i >= len(palette) {
		i = len(palette) - 1
	}
	return palette[i]
}
