package tilebatch

import (
	"image"
	"testing"

	"github.com/pkg/errors"
)

// fakeImage is an atlas handle with fixed bounds.
type fakeImage struct{ w, h int }

func (f fakeImage) Bounds() image.Rectangle { return image.Rect(0, 0, f.w, f.h) }

// recordingBackend keeps a copy of every submission it receives.
type recordingBackend struct {
	subs []Submission
	fail map[string]error
}

func (r *recordingBackend) DrawBatch(sub Submission) error {
	cp := sub
	cp.Requests = append([]DrawRequest(nil), sub.Requests...)
	r.subs = append(r.subs, cp)
	if err := r.fail[sub.Tileset]; err != nil {
		return err
	}
	return nil
}

func newTestBatch(t *testing.T, name string) *TilesetBatch {
	t.Helper()
	b, err := NewTilesetBatch(name, fakeImage{64, 64}, Dimensions{Width: 16, Height: 16})
	if err != nil {
		t.Fatalf("NewTilesetBatch: %v", err)
	}
	return b
}

func TestNewTilesetBatch(t *testing.T) {
	b := newTestBatch(t, "ground")
	if b.Name() != "ground" {
		t.Errorf("Name = %q, want ground", b.Name())
	}
	if b.Grid().AtlasSize != (Dimensions{Width: 64, Height: 64}) {
		t.Errorf("AtlasSize = %+v, want 64x64", b.Grid().AtlasSize)
	}
	if b.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", b.Pending())
	}
}

func TestNewTilesetBatchErrors(t *testing.T) {
	if _, err := NewTilesetBatch("nil", nil, Dimensions{Width: 16, Height: 16}); !errors.Is(err, ErrConfig) {
		t.Errorf("nil atlas err = %v, want ErrConfig", err)
	}
	_, err := NewTilesetBatch("huge", fakeImage{8, 8}, Dimensions{Width: 16, Height: 16})
	if !errors.Is(err, ErrConfig) {
		t.Errorf("oversized tile err = %v, want ErrConfig", err)
	}
}

func TestFlushSingleSubmissionInOrder(t *testing.T) {
	b := newTestBatch(t, "ground")
	positions := []Vec2{{X: 0, Y: 0}, {X: 16, Y: 0}, {X: 32, Y: 16}}
	ids := []int{2, 0, 5}
	for i := range ids {
		if err := b.Enqueue(ids[i], positions[i]); err != nil {
			t.Fatal(err)
		}
	}

	rec := &recordingBackend{}
	if err := b.Flush(rec); err != nil {
		t.Fatal(err)
	}
	if len(rec.subs) != 1 {
		t.Fatalf("submissions = %d, want 1", len(rec.subs))
	}
	sub := rec.subs[0]
	if len(sub.Requests) != 3 {
		t.Fatalf("requests = %d, want 3", len(sub.Requests))
	}
	for i, req := range sub.Requests {
		if req.Dst != positions[i] {
			t.Errorf("request %d dst = %+v, want %+v", i, req.Dst, positions[i])
		}
		want := RectFor(ids[i], Dimensions{Width: 16, Height: 16}, Dimensions{Width: 64, Height: 64})
		if req.Src != want {
			t.Errorf("request %d src = %+v, want %+v", i, req.Src, want)
		}
	}
	if sub.Tileset != "ground" || sub.TileSize != (Dimensions{Width: 16, Height: 16}) {
		t.Errorf("submission header = %q %+v", sub.Tileset, sub.TileSize)
	}
}

func TestFlushEmptiesQueue(t *testing.T) {
	b := newTestBatch(t, "ground")
	_ = b.Enqueue(1, Vec2{})
	rec := &recordingBackend{}
	if err := b.Flush(rec); err != nil {
		t.Fatal(err)
	}
	if err := b.Flush(rec); err != nil {
		t.Fatal(err)
	}
	if len(rec.subs) != 1 {
		t.Errorf("submissions after two flushes = %d, want 1", len(rec.subs))
	}
	if b.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", b.Pending())
	}
}

func TestFlushEmptyBatchSkipsBackend(t *testing.T) {
	b := newTestBatch(t, "ground")
	called := false
	err := b.Flush(BackendFunc(func(Submission) error {
		called = true
		return nil
	}))
	if err != nil {
		t.Fatal(err)
	}
	if called {
		t.Error("backend called for empty batch")
	}
}

func TestFlushBackendErrorClearsQueue(t *testing.T) {
	b := newTestBatch(t, "ground")
	_ = b.Enqueue(0, Vec2{})
	_ = b.Enqueue(1, Vec2{X: 16})

	boom := errors.New("device lost")
	err := b.Flush(BackendFunc(func(Submission) error { return boom }))

	var drawErr *BackendDrawError
	if !errors.As(err, &drawErr) {
		t.Fatalf("err = %v, want *BackendDrawError", err)
	}
	if drawErr.Tileset != "ground" {
		t.Errorf("Tileset = %q, want ground", drawErr.Tileset)
	}
	if !errors.Is(err, boom) {
		t.Error("errors.Is(err, boom) = false")
	}
	if errors.Cause(err) != boom {
		t.Error("errors.Cause did not reach the backend error")
	}
	if b.Pending() != 0 {
		t.Errorf("Pending after failed flush = %d, want 0", b.Pending())
	}
}

func TestDiscard(t *testing.T) {
	b := newTestBatch(t, "ground")
	_ = b.Enqueue(0, Vec2{})
	b.Discard()
	if b.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", b.Pending())
	}
}

func TestEnqueueNegativeID(t *testing.T) {
	b := newTestBatch(t, "ground")
	err := b.Enqueue(-3, Vec2{})
	var oor *TileOutOfRangeError
	if !errors.As(err, &oor) {
		t.Fatalf("err = %v, want *TileOutOfRangeError", err)
	}
	if oor.Tileset != "ground" || oor.ID != -3 || oor.Count != 16 {
		t.Errorf("error = %+v", oor)
	}
	if b.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", b.Pending())
	}
}

func TestEnqueueOutOfGrid(t *testing.T) {
	b := newTestBatch(t, "ground")

	// Default: unguarded formula, id 16 lands one row past the atlas.
	if err := b.Enqueue(16, Vec2{}); err != nil {
		t.Fatalf("lenient Enqueue(16): %v", err)
	}
	rec := &recordingBackend{}
	_ = b.Flush(rec)
	if got := rec.subs[0].Requests[0].Src; got.Y != 1 || got.X != 0 {
		t.Errorf("src for id 16 = %+v, want origin (0, 1)", got)
	}

	b.SetStrict(true)
	if err := b.Enqueue(16, Vec2{}); !errors.Is(err, ErrTileOutOfRange) {
		t.Errorf("strict Enqueue(16) err = %v, want ErrTileOutOfRange", err)
	}
	if err := b.Enqueue(15, Vec2{}); err != nil {
		t.Errorf("strict Enqueue(15): %v", err)
	}
}

func TestRectMemo(t *testing.T) {
	b := newTestBatch(t, "ground")
	if b.known != nil {
		t.Fatal("memo allocated before first use")
	}
	first := b.rect(6)
	if !b.known[6] {
		t.Error("id 6 not memoized")
	}
	if again := b.rect(6); again != first {
		t.Errorf("memoized rect = %+v, want %+v", again, first)
	}
	if len(b.known) != b.grid.TileCount() {
		t.Errorf("memo len = %d, want %d", len(b.known), b.grid.TileCount())
	}
	b.rect(1 << 20)
	if len(b.known) != b.grid.TileCount() {
		t.Error("memo grew for an out-of-grid id")
	}
}

func TestAppendQuads(t *testing.T) {
	sub := Submission{
		Atlas:     fakeImage{64, 64},
		AtlasSize: Dimensions{Width: 64, Height: 64},
		TileSize:  Dimensions{Width: 16, Height: 16},
		Requests: []DrawRequest{
			{Dst: Vec2{X: 10, Y: 20}, Src: RectFor(5, Dimensions{Width: 16, Height: 16}, Dimensions{Width: 64, Height: 64})},
			{Dst: Vec2{X: 26, Y: 20}, Src: RectFor(0, Dimensions{Width: 16, Height: 16}, Dimensions{Width: 64, Height: 64})},
		},
	}
	verts, inds := appendQuads(nil, nil, sub)
	if len(verts) != 8 || len(inds) != 12 {
		t.Fatalf("got %d verts %d inds, want 8 and 12", len(verts), len(inds))
	}

	tl, br := verts[0], verts[3]
	if tl.DstX != 10 || tl.DstY != 20 || tl.SrcX != 16 || tl.SrcY != 16 {
		t.Errorf("TL = %+v", tl)
	}
	if br.DstX != 26 || br.DstY != 36 || br.SrcX != 32 || br.SrcY != 32 {
		t.Errorf("BR = %+v", br)
	}
	if tl.ColorR != 1 || tl.ColorA != 1 {
		t.Errorf("vertex color = (%v, %v), want opaque white", tl.ColorR, tl.ColorA)
	}

	wantInds := []uint32{0, 1, 2, 1, 3, 2, 4, 5, 6, 5, 7, 6}
	for i, want := range wantInds {
		if inds[i] != want {
			t.Fatalf("inds = %v, want %v", inds, wantInds)
		}
	}
}

func TestAppendQuadsSubImageOffset(t *testing.T) {
	sub := Submission{
		Atlas:     offsetImage{image.Rect(100, 50, 164, 114)},
		AtlasSize: Dimensions{Width: 64, Height: 64},
		TileSize:  Dimensions{Width: 16, Height: 16},
		Requests:  []DrawRequest{{Src: SourceRect{Width: 0.25, Height: 0.25}}},
	}
	verts, _ := appendQuads(nil, nil, sub)
	if verts[0].SrcX != 100 || verts[0].SrcY != 50 {
		t.Errorf("src origin = (%v, %v), want (100, 50)", verts[0].SrcX, verts[0].SrcY)
	}
}

type offsetImage struct{ r image.Rectangle }

func (o offsetImage) Bounds() image.Rectangle { return o.r }
