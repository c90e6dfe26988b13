package rover

import (
	"math"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/florisys/field.report/internal/timeutil"
)

// Simulator produces a random-walk telemetry stream for one mock run.
// Speed and heading drift with Gaussian noise while the battery drains
// steadily. Not safe for concurrent use; drive it from a single loop.
type Simulator struct {
	clock timeutil.Clock
	runID string

	speedNoise   distuv.Normal
	headingNoise distuv.Normal

	speed   float64
	heading float64
	battery float64
}

// NewSimulator seeds a simulator. The same seed yields the same telemetry
// stream against the same clock.
func NewSimulator(clock timeutil.Clock, seed uint64) *Simulator {
	src := rand.NewSource(seed)
	return &Simulator{
		clock:        clock,
		runID:        uuid.NewString(),
		speedNoise:   distuv.Normal{Mu: 0, Sigma: 0.15, Src: src},
		headingNoise: distuv.Normal{Mu: 0, Sigma: 4, Src: src},
		speed:        0.8,
		heading:      90,
		battery:      100,
	}
}

// RunID identifies the mock run the samples belong to.
func (s *Simulator) RunID() string {
	return s.runID
}

// Next advances the walk one step and returns the resulting sample.
func (s *Simulator) Next() Sample {
	s.speed += s.speedNoise.Rand()
	if s.speed < 0 {
		s.speed = 0
	}
	if s.speed > 2.5 {
		s.speed = 2.5
	}

	s.heading = math.Mod(s.heading+s.headingNoise.Rand()+360, 360)

	// Drain scales with speed; an idle rover still loses a trickle.
	s.battery -= 0.01 + 0.02*s.speed
	if s.battery < 0 {
		s.battery = 0
	}

	return Sample{
		RunID:      s.runID,
		Timestamp:  s.clock.Now(),
		SpeedMS:    s.speed,
		HeadingDeg: s.heading,
		BatteryPct: s.battery,
	}
}
