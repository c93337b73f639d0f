// Package ingest turns uploaded files into board assets: it decodes them,
// sorts them into categories and picks where they land on the canvas.
package ingest

import (
	"bytes"
	"context"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math/rand/v2"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/milk9111/traceable/common"
	"github.com/milk9111/traceable/config"
	"github.com/milk9111/traceable/logger"
	"github.com/milk9111/traceable/rationale"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
	"honnef.co/go/curve"
)

type Kind string

const (
	KindImage Kind = "image"
	KindText  Kind = "text"
)

const (
	decodeParallelism = 4
	previewLines      = 6
	previewBytes      = 240
)

// Asset is a processed upload ready to be placed on the board.
type Asset struct {
	ID        string
	Name      string
	Kind      Kind
	Category  rationale.Category
	Timestamp time.Time
	Position  curve.Point
	Image     image.Image
	Preview   string
}

// Batch is the outcome of one Start call.
type Batch struct {
	Assets []Asset
	Err    error
}

type Processor struct {
	Categorizer Categorizer
	Delay       time.Duration
	Spawn       config.SpawnConfig
	// Screen returns the current canvas size; spawn x is relative to its
	// horizontal centre.
	Screen func() (w, h float64)

	mu       sync.Mutex
	rng      *rand.Rand
	fallback *RandomCategorizer
	now      func() time.Time
	newID    func() string

	busy    atomic.Int32
	results chan Batch
}

func NewProcessor(cat Categorizer, delay time.Duration, spawn config.SpawnConfig, screen func() (float64, float64)) *Processor {
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	return &Processor{
		Categorizer: cat,
		Delay:       delay,
		Spawn:       spawn,
		Screen:      screen,
		rng:         rng,
		fallback:    NewRandomCategorizer(rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64()))),
		now:         time.Now,
		newID:       common.NewID,
		results:     make(chan Batch, 4),
	}
}

// Busy reports whether any batch is being processed.
func (p *Processor) Busy() bool {
	return p != nil && p.busy.Load() > 0
}

// Results delivers batches started with Start.
func (p *Processor) Results() <-chan Batch {
	return p.results
}

// Start processes files in the background and sends the batch on Results.
func (p *Processor) Start(ctx context.Context, files []File) {
	if p == nil || len(files) == 0 {
		return
	}
	p.busy.Add(1)
	go func() {
		defer p.busy.Add(-1)
		assets, err := p.process(ctx, files)
		select {
		case p.results <- Batch{Assets: assets, Err: err}:
		case <-ctx.Done():
		}
	}()
}

// Process waits out the simulated analysis delay, then decodes and
// categorizes files concurrently. Assets come back in file order. A failing
// categorizer falls back to a random category and the failure is returned
// alongside the assets.
func (p *Processor) Process(ctx context.Context, files []File) ([]Asset, error) {
	p.busy.Add(1)
	defer p.busy.Add(-1)
	return p.process(ctx, files)
}

func (p *Processor) process(ctx context.Context, files []File) ([]Asset, error) {
	if p.Delay > 0 {
		timer := time.NewTimer(p.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	stamp := p.now()
	assets := make([]Asset, len(files))
	catErrs := make([]error, len(files))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(decodeParallelism)
	for i, f := range files {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			id, pos := p.place()
			a := Asset{
				ID:        id,
				Name:      f.Name,
				Kind:      KindText,
				Timestamp: stamp,
				Position:  pos,
			}
			if img, _, err := image.Decode(bytes.NewReader(f.Data)); err == nil {
				a.Kind = KindImage
				a.Image = img
			} else {
				a.Preview = preview(f.Data)
			}

			cat, err := p.categorize(gCtx, f.Name, i)
			if err != nil {
				catErrs[i] = err
			}
			a.Category = cat
			assets[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	err := errors.Join(catErrs...)
	if err != nil {
		logger.Warn("categorizer failed, using random categories", "err", err)
	}
	logger.Debug("processed uploads", "count", len(assets))
	return assets, err
}

// SetCategorizer swaps the categorizer. Files of a running batch that are
// not categorized yet use the new one.
func (p *Processor) SetCategorizer(c Categorizer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Categorizer = c
}

func (p *Processor) categorize(ctx context.Context, name string, index int) (rationale.Category, error) {
	p.mu.Lock()
	c := p.Categorizer
	p.mu.Unlock()
	if c != nil {
		cat, err := c.Categorize(ctx, name, index)
		if err == nil {
			return cat, nil
		}
		fallback, _ := p.fallback.Categorize(ctx, name, index)
		return fallback, err
	}
	return p.fallback.Categorize(ctx, name, index)
}

// place assigns an id and drops the asset to the left or right of the
// canvas centre.
func (p *Processor) place() (string, curve.Point) {
	p.mu.Lock()
	defer p.mu.Unlock()

	w := 0.0
	if p.Screen != nil {
		w, _ = p.Screen()
	}
	offset := p.Spawn.LeftOffset
	if p.rng.Float64() > 0.5 {
		offset = p.Spawn.RightOffset
	}
	x := w/2 + offset + p.rng.Float64()*p.Spawn.JitterX
	y := p.Spawn.Top + p.rng.Float64()*p.Spawn.JitterY
	return p.newID(), curve.Pt(x, y)
}

func preview(data []byte) string {
	if len(data) > previewBytes {
		data = data[:previewBytes]
	}
	for len(data) > 0 && !utf8.Valid(data) {
		data = data[:len(data)-1]
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if len(lines) > previewLines {
		lines = lines[:previewLines]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
