package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines   int
	Repeats      int
	Combinations int
	Duration     time.Duration
	Playouts     int
	FullPlayouts int // Playouts that ended before the turn cap
	BestWins     int
}

type MoveMetric struct {
	Turn   int
	Player int // Player ID
	SearchMetric
}

type GameMetric struct {
	ID             string
	StartingPlayer int // Player ID
	Winner         int // Player ID, 0 for a tie
	Reason         string
	Turns          int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	Elapsed1       time.Duration // Decision time of player 1
	Elapsed2       time.Duration // Decision time of player 2
}

type Collector interface {
	Start(goroutines, repeats, combinations int)
	AddPlayout()
	AddFullPlayout()
	Complete(bestWins int) SearchMetric
}

type collector struct {
	goroutines   int
	repeats      int
	combinations int
	startTime    time.Time
	playouts     atomic.Int32
	fullPlayouts atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, repeats, combinations int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.repeats = repeats
	m.combinations = combinations
	m.playouts.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *collector) AddPlayout() {
	m.playouts.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) Complete(bestWins int) SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Repeats:      m.repeats,
		Combinations: m.combinations,
		Duration:     time.Since(m.startTime),
		Playouts:     int(m.playouts.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		BestWins:     bestWins,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, repeats, combinations int) {}
func (m *dummyCollector) AddPlayout()                                {}
func (m *dummyCollector) AddFullPlayout()                            {}
func (m *dummyCollector) Complete(bestWins int) SearchMetric         { return SearchMetric{} }
