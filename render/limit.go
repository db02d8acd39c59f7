package render

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/jonwraymond/tinyshape/shape"
)

// LimitStats reports Limited activity.
type LimitStats struct {
	Active    int
	MaxActive int
	Limit     int
	Waited    uint64 // renders that had to queue for a slot
}

// Limited bounds how many shapes the wrapped renderer draws at once.
// Overlay composition is cheap and is not limited.
type Limited struct {
	next Renderer
	sem  *semaphore.Weighted
	n    int

	mu        sync.Mutex
	active    int
	maxActive int
	waited    uint64
}

// Limit wraps r so that at most n RenderShape calls run concurrently.
// n <= 0 returns r unchanged.
func Limit(r Renderer, n int) Renderer {
	if n <= 0 || r == nil {
		return r
	}
	return &Limited{next: r, sem: semaphore.NewWeighted(int64(n)), n: n}
}

// RenderShape implements Renderer. It blocks until a slot is free.
func (l *Limited) RenderShape(spec ShapeSpec) (Resource, error) {
	if !l.sem.TryAcquire(1) {
		l.mu.Lock()
		l.waited++
		l.mu.Unlock()
		// Background never cancels, so Acquire cannot fail.
		_ = l.sem.Acquire(context.Background(), 1)
	}
	l.enter()
	defer func() {
		l.leave()
		l.sem.Release(1)
	}()
	return l.next.RenderShape(spec)
}

// RenderOverlay implements Renderer.
func (l *Limited) RenderOverlay(states shape.StateColorMap, content, mask Resource) (Resource, error) {
	return l.next.RenderOverlay(states, content, mask)
}

// Stats returns a snapshot of limiter activity.
func (l *Limited) Stats() LimitStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return LimitStats{Active: l.active, MaxActive: l.maxActive, Limit: l.n, Waited: l.waited}
}

func (l *Limited) enter() {
	l.mu.Lock()
	l.active++
	if l.active > l.maxActive {
		l.maxActive = l.active
	}
	l.mu.Unlock()
}

func (l *Limited) leave() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()
}

var _ Renderer = (*Limited)(nil)
