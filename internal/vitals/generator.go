package vitals

import (
	"math/rand/v2"
	"sync"
	"time"

	"healeo-sense/internal/engine"
)

// Range is a half-open interval [Min, Max).
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r Range) Contains(v int) bool {
	return v >= r.Min && v < r.Max
}

// Ranges used by the test-mode generator.
var (
	BloodPressureRange = Range{Min: 90, Max: 130}
	BloodSugarRange    = Range{Min: 70, Max: 150}
	ProteinRange       = Range{Min: 50, Max: 100}
	CaloriesRange      = Range{Min: 1500, Max: 2000}
	FiberRange         = Range{Min: 20, Max: 30}
)

func InReferenceRange(r engine.VitalReadings) bool {
	return BloodPressureRange.Contains(r.BloodPressureSystolic) &&
		BloodSugarRange.Contains(r.BloodSugar) &&
		ProteinRange.Contains(r.ProteinLevel) &&
		CaloriesRange.Contains(r.Calories) &&
		FiberRange.Contains(r.Fiber)
}

// Generator produces mock readings. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator returns a deterministic generator for a non-zero seed and a time-seeded one otherwise.
func NewGenerator(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (g *Generator) Generate() engine.VitalReadings {
	g.mu.Lock()
	defer g.mu.Unlock()

	return engine.VitalReadings{
		BloodPressureSystolic: g.draw(BloodPressureRange),
		BloodSugar:            g.draw(BloodSugarRange),
		ProteinLevel:          g.draw(ProteinRange),
		Calories:              g.draw(CaloriesRange),
		Fiber:                 g.draw(FiberRange),
	}
}

func (g *Generator) draw(r Range) int {
	return r.Min + g.rnd.IntN(r.Max-r.Min)
}
