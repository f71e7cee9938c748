package tilebatch

import (
	"bytes"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io/fs"
	"path"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// FSLoader loads atlas images from a filesystem and uploads them as
// Ebitengine images. Names are resolved relative to Dir inside FS.
type FSLoader struct {
	FS  fs.FS
	Dir string
}

// NewFSLoader returns a loader rooted at dir inside fsys.
func NewFSLoader(fsys fs.FS, dir string) *FSLoader {
	return &FSLoader{FS: fsys, Dir: dir}
}

func (l *FSLoader) resolve(name string) string {
	if l.Dir == "" {
		return path.Clean(name)
	}
	return path.Join(l.Dir, name)
}

// Decode reads and decodes an image without uploading it.
func (l *FSLoader) Decode(name string) (image.Image, error) {
	p := l.resolve(name)
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return nil, errors.Wrapf(err, "read image %q", p)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "decode image %q", p)
	}
	return img, nil
}

// LoadImage implements ImageLoader.
func (l *FSLoader) LoadImage(name string) (Image, error) {
	img, err := l.Decode(name)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

// LoadTilesets reads a tileset file from fsys and builds a registry with
// loader.
func LoadTilesets(fsys fs.FS, tilesetsPath string, loader ImageLoader) (*Registry, error) {
	data, err := fs.ReadFile(fsys, tilesetsPath)
	if err != nil {
		return nil, errors.Wrapf(err, "read tilesets %q", tilesetsPath)
	}
	defs, err := ParseTilesets(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse tilesets %q", tilesetsPath)
	}
	return LoadRegistry(defs, loader)
}

// LoadLevel reads a tileset file and a level file from fsys, builds the
// registry with loader, and checks that every tile names a known tileset.
func LoadLevel(fsys fs.FS, tilesetsPath, levelPath string, loader ImageLoader) (*Registry, *Level, error) {
	lvlData, err := fs.ReadFile(fsys, levelPath)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read level %q", levelPath)
	}
	level, err := ParseLevel(lvlData)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "parse level %q", levelPath)
	}

	reg, err := LoadTilesets(fsys, tilesetsPath, loader)
	if err != nil {
		return nil, nil, err
	}
	if err := level.Validate(reg); err != nil {
		return nil, nil, errors.Wrapf(err, "level %q", levelPath)
	}
	return reg, level, nil
}
