package ingest

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"strconv"
	"testing"
	"testing/fstest"
	"time"

	"github.com/milk9111/traceable/config"
	"github.com/milk9111/traceable/rationale"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.NRGBA{R: 0xff, A: 0xff})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

type fixedCategorizer struct {
	cat  rationale.Category
	err  error
	wait chan struct{}
}

func (f *fixedCategorizer) Categorize(ctx context.Context, _ string, _ int) (rationale.Category, error) {
	if f.wait != nil {
		select {
		case <-f.wait:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.cat, f.err
}

func newTestProcessor(cat Categorizer) *Processor {
	p := NewProcessor(cat, 0, config.Default().Ingest.Spawn, func() (float64, float64) { return 1440, 900 })
	p.rng = rand.New(rand.NewPCG(1, 2))
	n := 0
	p.newID = func() string {
		n++
		return "asset" + strconv.Itoa(n)
	}
	p.now = func() time.Time { return time.Unix(1700000000, 0) }
	return p
}

func TestProcessKindsAndOrder(t *testing.T) {
	p := newTestProcessor(&fixedCategorizer{cat: rationale.CategorySketches})
	files := []File{
		{Name: "sketch.png", Data: pngBytes(t)},
		{Name: "notes.txt", Data: []byte("line one\r\nline two\n")},
		{Name: "broken.png", Data: []byte{0x89, 'P', 'N', 'G'}},
	}

	assets, err := p.Process(context.Background(), files)
	if err != nil {
		t.Fatal(err)
	}
	if len(assets) != 3 {
		t.Fatalf("expected 3 assets, got %d", len(assets))
	}

	wantKinds := []Kind{KindImage, KindText, KindText}
	for i, a := range assets {
		if a.Name != files[i].Name {
			t.Fatalf("asset %d is %q, want file order", i, a.Name)
		}
		if a.Kind != wantKinds[i] {
			t.Fatalf("%s: kind %s, want %s", a.Name, a.Kind, wantKinds[i])
		}
		if a.Category != rationale.CategorySketches {
			t.Fatalf("%s: category %q", a.Name, a.Category)
		}
		if !a.Timestamp.Equal(time.Unix(1700000000, 0)) {
			t.Fatalf("%s: timestamp %v", a.Name, a.Timestamp)
		}
	}
	if assets[0].Image == nil || assets[0].Image.Bounds().Dx() != 4 {
		t.Fatalf("image not decoded")
	}
	if assets[1].Preview != "line one\nline two" {
		t.Fatalf("preview = %q", assets[1].Preview)
	}
	if p.Busy() {
		t.Fatalf("processor should be idle after Process returns")
	}
}

func TestSpawnPositions(t *testing.T) {
	p := newTestProcessor(nil)
	files := make([]File, 50)
	for i := range files {
		files[i] = File{Name: "f" + strconv.Itoa(i) + ".txt", Data: []byte("x")}
	}
	assets, err := p.Process(context.Background(), files)
	if err != nil {
		t.Fatal(err)
	}

	ids := make(map[string]bool)
	var left, right int
	for _, a := range assets {
		x, y := a.Position.X, a.Position.Y
		switch {
		case x >= 720+400 && x <= 720+600:
			right++
		case x >= 720-600 && x <= 720-400:
			left++
		default:
			t.Fatalf("x = %v outside both spawn bands", x)
		}
		if y < 100 || y > 500 {
			t.Fatalf("y = %v outside [100, 500]", y)
		}
		if !a.Category.Known() {
			t.Fatalf("random categorizer produced %q", a.Category)
		}
		if ids[a.ID] {
			t.Fatalf("duplicate id %s", a.ID)
		}
		ids[a.ID] = true
	}
	if left == 0 || right == 0 {
		t.Fatalf("expected both sides to be used, left=%d right=%d", left, right)
	}
}

func TestProcessCategorizerFailureFallsBack(t *testing.T) {
	boom := errors.New("boom")
	p := newTestProcessor(&fixedCategorizer{err: boom})
	assets, err := p.Process(context.Background(), []File{{Name: "a.txt"}, {Name: "b.txt"}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the categorizer error, got %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("assets should still be produced, got %d", len(assets))
	}
	for _, a := range assets {
		if !a.Category.Known() {
			t.Fatalf("fallback category %q", a.Category)
		}
	}
}

func TestProcessCancelledDuringDelay(t *testing.T) {
	p := newTestProcessor(nil)
	p.Delay = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assets, err := p.Process(ctx, []File{{Name: "a.txt"}})
	if !errors.Is(err, context.Canceled) || assets != nil {
		t.Fatalf("got %v, %v", assets, err)
	}
}

func TestStartDeliversBatch(t *testing.T) {
	release := make(chan struct{})
	p := newTestProcessor(&fixedCategorizer{cat: rationale.CategoryUserResearch, wait: release})

	p.Start(context.Background(), []File{{Name: "a.txt", Data: []byte("a")}})
	if !p.Busy() {
		t.Fatalf("processor should report busy while a batch runs")
	}
	close(release)

	select {
	case b := <-p.Results():
		if b.Err != nil || len(b.Assets) != 1 || b.Assets[0].Category != rationale.CategoryUserResearch {
			t.Fatalf("unexpected batch %+v", b)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no batch delivered")
	}

	p.Start(context.Background(), nil)
	select {
	case b := <-p.Results():
		t.Fatalf("empty start should not deliver, got %+v", b)
	default:
	}
}

func TestScriptCategorizer(t *testing.T) {
	src, err := config.LoadScript(config.DefaultScript)
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewScriptCategorizer(src)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name  string
		index int
		want  rationale.Category
	}{
		{"Interview-03.txt", 0, rationale.CategoryUserResearch},
		{"wireframe.png", 0, rationale.CategorySketches},
		{"palette.jpg", 0, rationale.CategoryStyleReferences},
		{"IMG_0001.png", 0, rationale.Categories[0]},
		{"IMG_0002.png", 4, rationale.Categories[1]},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.Categorize(context.Background(), tc.name, tc.index)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}

	empty, err := NewScriptCategorizer([]byte(`category = ""`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := empty.Categorize(context.Background(), "x", 0); !errors.Is(err, ErrNoCategory) {
		t.Fatalf("expected ErrNoCategory, got %v", err)
	}

	if _, err := NewScriptCategorizer([]byte(`category = (`)); err == nil {
		t.Fatalf("expected a compile error")
	}
}

func TestReadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"b.png":          {Data: []byte("b")},
		"a.txt":          {Data: []byte("a")},
		".DS_Store":      {Data: []byte("junk")},
		".cache/x.png":   {Data: []byte("x")},
		"nested/c.jpg":   {Data: []byte("c")},
		"nested/.hidden": {Data: []byte("h")},
	}
	files, err := ReadFS(fsys)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	want := []string{"a.txt", "b.png", "c.jpg"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}

	if files, err := ReadDir(""); err != nil || files != nil {
		t.Fatalf("empty dir should read nothing")
	}
	if _, err := ReadDir(t.TempDir() + "/missing"); err == nil {
		t.Fatalf("expected an error for a missing directory")
	}
}

func TestLibrary(t *testing.T) {
	l := NewLibrary()
	l.Prepend([]Asset{
		{ID: "a", Category: rationale.CategorySketches},
		{ID: "b", Category: rationale.CategoryUserResearch},
	})
	l.Prepend([]Asset{
		{ID: "c", Category: rationale.CategorySketches},
		{ID: "d", Category: "Moodboards"},
		{ID: "a", Category: rationale.CategoryUserResearch},
	})

	ids := l.IDs()
	want := []string{"c", "d", "a", "b"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}

	groups := l.Groups()
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %+v", groups)
	}
	if groups[0].Category != rationale.CategoryUserResearch || groups[1].Category != rationale.CategorySketches || groups[2].Category != "Moodboards" {
		t.Fatalf("unexpected group order %+v", groups)
	}
	if len(groups[1].IDs) != 2 || groups[1].IDs[0] != "c" {
		t.Fatalf("sketches should list newest first, got %v", groups[1].IDs)
	}

	if !l.Remove("c") || l.Remove("c") || l.Len() != 3 {
		t.Fatalf("remove failed, len=%d", l.Len())
	}
}
