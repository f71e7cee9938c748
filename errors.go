package tilebatch

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrMissingField   = errors.New("tilebatch: missing field")
	ErrTypeMismatch   = errors.New("tilebatch: type mismatch")
	ErrUnknownTileset = errors.New("tilebatch: unknown tileset")
	ErrBackendDraw    = errors.New("tilebatch: backend draw failed")
	ErrConfig         = errors.New("tilebatch: invalid configuration")
	ErrTileOutOfRange = errors.New("tilebatch: tile id out of range")
)

// MissingFieldError reports a required JSON key that was absent.
// Key is a dotted path such as "tiles[3].pos".
type MissingFieldError struct {
	Key string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("tilebatch: missing field %q", e.Key)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// TypeMismatchError reports a JSON key holding a value of the wrong type.
type TypeMismatchError struct {
	Key      string
	Expected string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("tilebatch: field %q: expected %s", e.Key, e.Expected)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// UnknownTilesetError reports a tile that names a tileset the registry does
// not hold. The level data is corrupt; the frame is abandoned.
type UnknownTilesetError struct {
	Name string
}

func (e *UnknownTilesetError) Error() string {
	return fmt.Sprintf("tilebatch: unknown tileset %q", e.Name)
}

func (e *UnknownTilesetError) Is(target error) bool { return target == ErrUnknownTileset }

// BackendDrawError wraps a failure reported by a Backend while flushing the
// named tileset.
type BackendDrawError struct {
	Tileset string
	Err     error
}

func (e *BackendDrawError) Error() string {
	return fmt.Sprintf("tilebatch: draw tileset %q: %v", e.Tileset, e.Err)
}

func (e *BackendDrawError) Is(target error) bool { return target == ErrBackendDraw }

// Unwrap returns the backend error.
func (e *BackendDrawError) Unwrap() error { return e.Err }

// Cause returns the backend error for github.com/pkg/errors.Cause.
func (e *BackendDrawError) Cause() error { return e.Err }

// ConfigError reports invalid geometry or configuration values detected at
// construction time.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "tilebatch: " + e.Reason
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

func configErrorf(format string, args ...any) error {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// TileOutOfRangeError reports a tile id outside the atlas grid.
type TileOutOfRangeError struct {
	Tileset string
	ID      int
	Count   int
}

func (e *TileOutOfRangeError) Error() string {
	return fmt.Sprintf("tilebatch: tileset %q: tile id %d out of range [0, %d)", e.Tileset, e.ID, e.Count)
}

func (e *TileOutOfRangeError) Is(target error) bool { return target == ErrTileOutOfRange }
