package tilebatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// TilesetDef is one entry of a tileset description file.
type TilesetDef struct {
	Name          string
	ImageFilename string
	TileSize      Dimensions
}

// Object is a non-tile marker placed in a level, such as the player spawn.
type Object struct {
	Name string
	Type string
	Pos  Vec2
	Size Vec2
}

// NewObject validates and returns an Object. Name and type are required and
// size must not be negative.
func NewObject(name, typ string, pos, size Vec2) (Object, error) {
	if name == "" {
		return Object{}, &MissingFieldError{Key: "name"}
	}
	if typ == "" {
		return Object{}, &MissingFieldError{Key: "type"}
	}
	if size.X < 0 || size.Y < 0 {
		return Object{}, configErrorf("object %q: negative size %vx%v", name, size.X, size.Y)
	}
	return Object{Name: name, Type: typ, Pos: pos, Size: size}, nil
}

// Level is the parsed content of a level file.
type Level struct {
	Tiles   []TileSpec
	Objects []Object
}

// FindObject returns the first object of the given type.
func (l *Level) FindObject(typ string) (Object, bool) {
	for _, o := range l.Objects {
		if o.Type == typ {
			return o, true
		}
	}
	return Object{}, false
}

// Validate checks that every tile names a tileset held by reg, so a corrupt
// level is caught at load time rather than on the first frame.
func (l *Level) Validate(reg *Registry) error {
	for i := range l.Tiles {
		if _, ok := reg.Batch(l.Tiles[i].Tileset); !ok {
			return errors.Wrapf(&UnknownTilesetError{Name: l.Tiles[i].Tileset}, "tiles[%d]", i)
		}
	}
	return nil
}

// ParseTilesets parses a tileset description:
//
//	{"<name>": {"image_filename": "tiles.png", "tile_size": {"w": 32, "h": 32}}}
//
// Definitions are returned sorted by name.
func ParseTilesets(data []byte) ([]TilesetDef, error) {
	top, err := decodeObject(data, "tilesets")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(top))
	for name := range top {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]TilesetDef, 0, len(names))
	for _, name := range names {
		path := "tilesets." + name
		obj, err := decodeObject(top[name], path)
		if err != nil {
			return nil, err
		}
		def := TilesetDef{Name: name}
		if err := obj.decode("image_filename", path, "string", &def.ImageFilename); err != nil {
			return nil, err
		}
		if def.TileSize, err = obj.dimensions("tile_size", path); err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// ParseLevel parses a level file with required "tiles" and "objects" arrays.
func ParseLevel(data []byte) (*Level, error) {
	top, err := decodeObject(data, "level")
	if err != nil {
		return nil, err
	}

	var rawTiles, rawObjects []json.RawMessage
	if err := top.decode("tiles", "", "array", &rawTiles); err != nil {
		return nil, err
	}
	if err := top.decode("objects", "", "array", &rawObjects); err != nil {
		return nil, err
	}

	level := &Level{
		Tiles:   make([]TileSpec, 0, len(rawTiles)),
		Objects: make([]Object, 0, len(rawObjects)),
	}
	for i, raw := range rawTiles {
		t, err := parseTile(raw, fmt.Sprintf("tiles[%d]", i))
		if err != nil {
			return nil, err
		}
		level.Tiles = append(level.Tiles, t)
	}
	for i, raw := range rawObjects {
		o, err := parseObject(raw, fmt.Sprintf("objects[%d]", i))
		if err != nil {
			return nil, err
		}
		level.Objects = append(level.Objects, o)
	}
	return level, nil
}

func parseTile(raw json.RawMessage, path string) (TileSpec, error) {
	obj, err := decodeObject(raw, path)
	if err != nil {
		return TileSpec{}, err
	}
	var t TileSpec
	var id uint
	if err := obj.decode("id", path, "unsigned integer", &id); err != nil {
		return TileSpec{}, err
	}
	t.ID = int(id)
	if t.Pos, err = obj.vec("pos", path, "x", "y"); err != nil {
		return TileSpec{}, err
	}
	if err := obj.decode("tileset", path, "string", &t.Tileset); err != nil {
		return TileSpec{}, err
	}
	return t, nil
}

func parseObject(raw json.RawMessage, path string) (Object, error) {
	obj, err := decodeObject(raw, path)
	if err != nil {
		return Object{}, err
	}
	var name, typ string
	if err := obj.decode("name", path, "string", &name); err != nil {
		return Object{}, err
	}
	if err := obj.decode("type", path, "string", &typ); err != nil {
		return Object{}, err
	}
	pos, err := obj.vec("pos", path, "x", "y")
	if err != nil {
		return Object{}, err
	}
	size, err := obj.vec("size", path, "w", "h")
	if err != nil {
		return Object{}, err
	}
	o, err := NewObject(name, typ, pos, size)
	if err != nil {
		return Object{}, errors.Wrap(err, path)
	}
	return o, nil
}

// --- JSON helpers ---

// jsonObject is a decoded JSON object whose values are parsed on demand so
// that absent keys and mistyped values can be told apart.
type jsonObject map[string]json.RawMessage

func joinKey(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// decodeObject decodes raw as a JSON object. Malformed JSON is returned as a
// wrapped syntax error; any other JSON type is a *TypeMismatchError.
func decodeObject(raw []byte, path string) (jsonObject, error) {
	var obj jsonObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, jsonError(err, path, "object")
	}
	if obj == nil {
		return nil, &TypeMismatchError{Key: path, Expected: "object"}
	}
	return obj, nil
}

// decode unmarshals obj[key] into v. A missing or null key is a
// *MissingFieldError.
func (o jsonObject) decode(key, path, expected string, v any) error {
	full := joinKey(path, key)
	raw, ok := o[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return &MissingFieldError{Key: full}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return jsonError(err, full, expected)
	}
	return nil
}

// vec decodes obj[key] as {"<xKey>": number, "<yKey>": number}.
func (o jsonObject) vec(key, path, xKey, yKey string) (Vec2, error) {
	full := joinKey(path, key)
	var inner jsonObject
	if err := o.decode(key, path, "object", &inner); err != nil {
		return Vec2{}, err
	}
	if inner == nil {
		return Vec2{}, &TypeMismatchError{Key: full, Expected: "object"}
	}
	var v Vec2
	if err := inner.decode(xKey, full, "number", &v.X); err != nil {
		return Vec2{}, err
	}
	if err := inner.decode(yKey, full, "number", &v.Y); err != nil {
		return Vec2{}, err
	}
	return v, nil
}

// dimensions decodes obj[key] as {"w": uint, "h": uint}.
func (o jsonObject) dimensions(key, path string) (Dimensions, error) {
	full := joinKey(path, key)
	var inner jsonObject
	if err := o.decode(key, path, "object", &inner); err != nil {
		return Dimensions{}, err
	}
	if inner == nil {
		return Dimensions{}, &TypeMismatchError{Key: full, Expected: "object"}
	}
	var w, h uint
	if err := inner.decode("w", full, "unsigned integer", &w); err != nil {
		return Dimensions{}, err
	}
	if err := inner.decode("h", full, "unsigned integer", &h); err != nil {
		return Dimensions{}, err
	}
	return Dimensions{Width: int(w), Height: int(h)}, nil
}

func jsonError(err error, key, expected string) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &TypeMismatchError{Key: key, Expected: expected}
	}
	return errors.Wrapf(err, "parse %s", key)
}
