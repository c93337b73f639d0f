package ingest

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/traceable/rationale"
)

// Categorizer assigns a category to an uploaded file. index is the file's
// position in its batch.
type Categorizer interface {
	Categorize(ctx context.Context, name string, index int) (rationale.Category, error)
}

// RandomCategorizer picks one of the known categories uniformly.
type RandomCategorizer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomCategorizer(rng *rand.Rand) *RandomCategorizer {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &RandomCategorizer{rng: rng}
}

func (c *RandomCategorizer) Categorize(context.Context, string, int) (rationale.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return rationale.Categories[c.rng.IntN(len(rationale.Categories))], nil
}

var ErrNoCategory = errors.New("ingest: script produced no category")

// ScriptCategorizer runs a tengo script per file. The script sees `name`,
// `index` and `categories` and must assign `category`.
type ScriptCategorizer struct {
	compiled *tengo.Compiled
}

func NewScriptCategorizer(src []byte) (*ScriptCategorizer, error) {
	script := tengo.NewScript(src)
	_ = script.Add("name", "")
	_ = script.Add("index", 0)
	_ = script.Add("categories", []any{})
	_ = script.Add("category", "")

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("ingest: compile categorizer: %w", err)
	}
	return &ScriptCategorizer{compiled: compiled}, nil
}

func (c *ScriptCategorizer) Categorize(ctx context.Context, name string, index int) (rationale.Category, error) {
	if c == nil || c.compiled == nil {
		return "", ErrNoCategory
	}
	run := c.compiled.Clone()

	categories := make([]any, 0, len(rationale.Categories))
	for _, cat := range rationale.Categories {
		categories = append(categories, string(cat))
	}
	if err := run.Set("name", name); err != nil {
		return "", err
	}
	if err := run.Set("index", index); err != nil {
		return "", err
	}
	if err := run.Set("categories", categories); err != nil {
		return "", err
	}
	if err := run.Set("category", ""); err != nil {
		return "", err
	}
	if err := run.RunContext(ctx); err != nil {
		return "", fmt.Errorf("ingest: categorize %s: %w", name, err)
	}

	got := strings.TrimSpace(run.Get("category").String())
	if got == "" {
		return "", fmt.Errorf("ingest: categorize %s: %w", name, ErrNoCategory)
	}
	return rationale.Category(got), nil
}
