// Package pregen keeps a small buffer of ready-to-serve games per
// (size, difficulty) so a new-game request rarely waits on the
// generator.
package pregen

import (
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"svw.info/sudogen/internal/domain"
	"svw.info/sudogen/internal/generator"
	"svw.info/sudogen/internal/geometry"
)

var log = logrus.WithField("component", "pregen")

type key struct {
	size int
	diff domain.Difficulty
}

type item struct {
	solution domain.Grid
	puzzle   domain.Grid
	seed     int64
}

// Pool pregenerates puzzles in background workers, one per
// (size, difficulty) combination, each feeding a buffered channel.
type Pool struct {
	engine *generator.Engine
	depth  int
	seedFn func() int64

	buffers map[key]chan item
	stop    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// New builds a pool covering every supported size and difficulty.
// depth is the number of games buffered per combination.
func New(engine *generator.Engine, depth int) *Pool {
	if depth <= 0 {
		depth = 2
	}
	p := &Pool{
		engine:  engine,
		depth:   depth,
		seedFn:  func() int64 { return time.Now().UnixNano() },
		buffers: make(map[key]chan item),
		stop:    make(chan struct{}),
	}
	for _, size := range geometry.Sizes() {
		for _, d := range []domain.Difficulty{domain.Easy, domain.Medium, domain.Hard} {
			p.buffers[key{size, d}] = make(chan item, depth)
		}
	}
	return p
}

// Start launches one filler goroutine per buffer.
func (p *Pool) Start() {
	for k, ch := range p.buffers {
		p.wg.Add(1)
		go p.fill(k, ch)
	}
	log.WithField("buffers", len(p.buffers)).Debug("pregeneration started")
}

func (p *Pool) fill(k key, ch chan item) {
	defer p.wg.Done()
	for {
		seed := p.seedFn()
		rng := rand.New(rand.NewSource(seed))
		solution := p.engine.Solution(k.size, rng)
		puzzle := generator.Carve(solution, k.diff, rng)
		select {
		case ch <- item{solution: solution, puzzle: puzzle, seed: seed}:
		case <-p.stop:
			return
		}
	}
}

// Take hands out a pregenerated pair without blocking. ok is false
// when the buffer is empty (or the pool never started); the caller
// generates inline then.
func (p *Pool) Take(size int, d domain.Difficulty) (solution, puzzle domain.Grid, seed int64, ok bool) {
	ch, found := p.buffers[key{size, d}]
	if !found {
		return nil, nil, 0, false
	}
	select {
	case it := <-ch:
		return it.solution, it.puzzle, it.seed, true
	default:
		return nil, nil, 0, false
	}
}

// Stop terminates the workers and waits for them to exit.
func (p *Pool) Stop() {
	p.once.Do(func() { close(p.stop) })
	p.wg.Wait()
}
