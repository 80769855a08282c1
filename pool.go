package missioncontrol

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one renderer is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// RendererPool hands out Renderers for concurrent PDF export. A Renderer
// prints one page at a time, so each pooled renderer owns its own browser.
// Renderers are created on first Acquire.
type RendererPool struct {
	newRenderer func() (*Renderer, error)
	size        int
	renderers   []*Renderer
	sem         chan *Renderer
	mu          sync.Mutex
	created     int
	closed      bool
}

// NewRendererPool creates a pool of up to n renderers built with opts.
func NewRendererPool(n int, opts ...Option) *RendererPool {
	if n < MinPoolSize {
		n = MinPoolSize
	}

	return &RendererPool{
		newRenderer: func() (*Renderer, error) { return NewRenderer(opts...) },
		size:        n,
		renderers:   make([]*Renderer, 0, n),
		sem:         make(chan *Renderer, n),
	}
}

// Acquire returns an idle renderer, creating one while below capacity.
// Blocks until a renderer is released or ctx is done.
func (p *RendererPool) Acquire(ctx context.Context) (*Renderer, error) {
	select {
	case r, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return r, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create outside the lock; NewRenderer reads assets.
		r, err := p.newRenderer()

		p.mu.Lock()
		defer p.mu.Unlock()
		if err != nil {
			p.created--
			return nil, err
		}
		if p.closed {
			_ = r.Close()
			return nil, ErrPoolClosed
		}
		p.renderers = append(p.renderers, r)
		return r, nil
	}
	p.mu.Unlock()

	select {
	case r, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return r, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a renderer to the pool. The channel holds every renderer
// the pool created, so the send never blocks.
func (p *RendererPool) Release(r *Renderer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		p.sem <- r
	}
}

// RenderPDF acquires a renderer, prints input, and releases the renderer.
func (p *RendererPool) RenderPDF(ctx context.Context, input Input) ([]byte, error) {
	r, err := p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer p.Release(r)

	return r.RenderPDF(ctx, input)
}

// Close releases all browser resources. Renderers still checked out are
// closed too; releasing them afterwards is a no-op.
func (p *RendererPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	renderers := p.renderers
	p.mu.Unlock()

	var errs []error
	for _, r := range renderers {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *RendererPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs in containers.
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
