package schedule

import (
	"salon-booking/calendar"
	"salon-booking/metrics"
	"sync"

	"go.uber.org/zap"
)

// DefaultConsole is used when a caller does not name its console.
const DefaultConsole = "default"

const defaultMaxBoards = 64

type entry struct {
	board    *Board
	lastUsed uint64
}

// Registry hands out one Board per admin console so each console pages its
// own calendar. When full, the least recently used board is closed and
// forgotten.
type Registry struct {
	clock   calendar.Clock
	lister  RangeLister
	logger  *zap.Logger
	metrics *metrics.Metrics
	max     int

	mu     sync.Mutex
	boards map[string]*entry
	tick   uint64
}

func NewRegistry(clock calendar.Clock, lister RangeLister, logger *zap.Logger, m *metrics.Metrics, maxBoards int) *Registry {
	if maxBoards <= 0 {
		maxBoards = defaultMaxBoards
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		clock:   clock,
		lister:  lister,
		logger:  logger,
		metrics: m,
		max:     maxBoards,
		boards:  make(map[string]*entry),
	}
}

// Board returns the board for console, creating it on first use.
func (r *Registry) Board(console string) *Board {
	if console == "" {
		console = DefaultConsole
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tick++

	if e, ok := r.boards[console]; ok {
		e.lastUsed = r.tick
		return e.board
	}
	if len(r.boards) >= r.max {
		r.evictLocked()
	}
	b := NewBoard(r.clock, r.lister, r.logger, r.metrics)
	r.boards[console] = &entry{board: b, lastUsed: r.tick}
	return b
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.boards)
}

// Close cancels the in-flight fetches of every board.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, e := range r.boards {
		e.board.Close()
		delete(r.boards, key)
	}
}

func (r *Registry) evictLocked() {
	var oldest string
	var oldestUse uint64
	for key, e := range r.boards {
		if oldest == "" || e.lastUsed < oldestUse {
			oldest, oldestUse = key, e.lastUsed
		}
	}
	if e, ok := r.boards[oldest]; ok {
		e.board.Close()
		delete(r.boards, oldest)
		r.logger.Debug("evicted calendar board", zap.String("console", oldest))
	}
}
