// Package engine defines the grammar engine collaborator and the pool guard
// that bounds concurrent access to the single process-wide engine handle.
package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"

	"github.com/heartmarshall/grammalecte-api/internal/domain"
)

// Engine is a grammar and spelling checker.
//
// CheckParagraph returns the raw JSON diagnostics for one paragraph, or an
// empty payload when the paragraph has no errors. When returnText is true the
// payload also carries the paragraph text the engine worked on.
type Engine interface {
	CheckParagraph(ctx context.Context, index int, paragraph string, opts domain.OptionSet, returnText bool) ([]byte, error)
	Suggest(ctx context.Context, token string) ([][]string, error)
	Info(ctx context.Context) (domain.EngineInfo, error)
	Options(ctx context.Context) (domain.OptionSet, error)
	DefaultOptions(ctx context.Context) (domain.OptionSet, error)
}

// Guard wraps an Engine and admits at most a fixed number of concurrent
// remote calls. Callers waiting for a slot give up when their context ends.
type Guard struct {
	next Engine
	sem  *semaphore.Weighted
	size int
}

var _ Engine = (*Guard)(nil)

// NewGuard creates a Guard allowing size concurrent calls. size < 1 means 1.
func NewGuard(next Engine, size int) *Guard {
	if size < 1 {
		size = 1
	}
	return &Guard{
		next: next,
		sem:  semaphore.NewWeighted(int64(size)),
		size: size,
	}
}

// Size returns the number of concurrent calls the guard admits.
func (g *Guard) Size() int { return g.size }

func (g *Guard) acquire(ctx context.Context) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("engine: wait for slot: %w", err)
	}
	return nil
}

func (g *Guard) CheckParagraph(ctx context.Context, index int, paragraph string, opts domain.OptionSet, returnText bool) ([]byte, error) {
	if err := g.acquire(ctx); err != nil {
		return nil, err
	}
	defer g.sem.Release(1)
	return g.next.CheckParagraph(ctx, index, paragraph, opts, returnText)
}

func (g *Guard) Suggest(ctx context.Context, token string) ([][]string, error) {
	if err := g.acquire(ctx); err != nil {
		return nil, err
	}
	defer g.sem.Release(1)
	return g.next.Suggest(ctx, token)
}

func (g *Guard) Options(ctx context.Context) (domain.OptionSet, error) {
	if err := g.acquire(ctx); err != nil {
		return nil, err
	}
	defer g.sem.Release(1)
	return g.next.Options(ctx)
}

// Info is served from the engine's startup snapshot and is not rationed.
func (g *Guard) Info(ctx context.Context) (domain.EngineInfo, error) {
	return g.next.Info(ctx)
}

// DefaultOptions is served from the engine's startup snapshot and is not rationed.
func (g *Guard) DefaultOptions(ctx context.Context) (domain.OptionSet, error) {
	return g.next.DefaultOptions(ctx)
}
