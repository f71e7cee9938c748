package tilebatch

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
)

// Screenshotter captures labeled PNGs of the rendered frame. Queue from
// Update, then call Capture at the end of Draw.
type Screenshotter struct {
	// Dir is created on first capture.
	Dir string

	queue []string
	now   func() time.Time
}

// NewScreenshotter returns a Screenshotter writing into dir.
func NewScreenshotter(dir string) *Screenshotter {
	return &Screenshotter{Dir: dir, now: time.Now}
}

// Queue requests a screenshot of the next captured frame.
func (s *Screenshotter) Queue(label string) {
	s.queue = append(s.queue, label)
}

// Pending returns the number of queued screenshots.
func (s *Screenshotter) Pending() int { return len(s.queue) }

// Capture writes one PNG per queued label as Dir/<timestamp>_<label>.png and
// clears the queue. The first write error is returned after every label has
// been attempted.
func (s *Screenshotter) Capture(screen *ebiten.Image) error {
	if len(s.queue) == 0 {
		return nil
	}
	defer func() { s.queue = s.queue[:0] }()

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return errors.Wrap(err, "screenshot")
	}

	bounds := screen.Bounds()
	pixels := make([]byte, 4*bounds.Dx()*bounds.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, bounds.Dx(), bounds.Dy())

	now := s.now
	if now == nil {
		now = time.Now
	}
	stamp := now().Format("20060102_150405")
	var firstErr error
	for _, label := range s.queue {
		path := filepath.Join(s.Dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil && firstErr == nil {
			firstErr = errors.Wrap(err, "screenshot")
		}
	}
	return firstErr
}

// unpremultiply converts premultiplied RGBA pixels to straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "encode %s", path)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.', replacing everything
// else with '_'. An empty label becomes "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
