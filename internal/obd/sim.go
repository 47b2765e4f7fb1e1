package obd

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// simFaultPool is the set of codes the simulator can report.
var simFaultPool = []FaultCode{
	{Code: "P0420", Description: "Catalyst system efficiency below threshold"},
	{Code: "P0171", Description: "System too lean (bank 1)"},
	{Code: "P0101", Description: "Mass air flow circuit range/performance"},
	{Code: "P0300", Description: "Random/multiple cylinder misfire detected"},
	{Code: "C0035", Description: "Left front wheel speed sensor circuit"},
}

// Simulator generates plausible vehicle data without an adapter, mirroring
// the dashboard's simulation mode. Safe for concurrent use: the worker calls
// the Diagnostics side while the poll loop takes snapshots.
type Simulator struct {
	mu  sync.Mutex
	rnd *rand.Rand

	started    bool
	lastTick   time.Time
	runtime    time.Duration
	distKm     float64
	sinceClear time.Duration
}

// NewSimulator creates a simulator. The seed makes runs reproducible in
// tests; pass e.g. time.Now().UnixNano() for live variation.
func NewSimulator(seed int64) *Simulator {
	return &Simulator{rnd: rand.New(rand.NewSource(seed))}
}

// Snapshot returns a fresh random snapshot and advances the accumulators by
// the time elapsed since the previous call.
func (s *Simulator) Snapshot(now time.Time) VehicleData {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		elapsed := now.Sub(s.lastTick)
		if elapsed > 0 {
			s.runtime += elapsed
			s.sinceClear += elapsed
			// 36-180 km/h worth of creep, same order as the original's
			// per-tick 0.01-0.05 km.
			s.distKm += elapsed.Hours() * (36 + 144*s.rnd.Float64())
		}
	}
	s.started = true
	s.lastTick = now

	return VehicleData{
		Speed:          s.between(0, 180),
		RPM:            s.between(800, 7000),
		Throttle:       s.between(0, 100),
		EngineLoad:     s.between(10, 95),
		TimingAdvance:  s.between(-10, 45),
		CoolantTemp:    s.between(70, 105),
		IntakeTemp:     s.between(15, 45),
		OilTemp:        s.between(80, 120),
		FuelPressure:   s.between(250, 550),
		FuelRate:       s.between(0.5, 25),
		IntakePressure: s.between(30, 120),
		MAF:            s.between(2, 95),
		MaxMAF:         255,

		RuntimeSeconds:    s.runtime.Seconds(),
		DistSinceClearKm:  s.distKm,
		TimeSinceClearSec: s.sinceClear.Seconds(),
	}
}

// between returns a uniformly random value in [lo, hi). Caller holds the lock.
func (s *Simulator) between(lo, hi float64) float64 {
	return lo + (hi-lo)*s.rnd.Float64()
}

// ReadFaultCodes returns between zero and three codes drawn from the pool
// without repetition.
func (s *Simulator) ReadFaultCodes(ctx context.Context) ([]FaultCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.rnd.Intn(4)
	if n == 0 {
		return nil, nil
	}

	perm := s.rnd.Perm(len(simFaultPool))
	codes := make([]FaultCode, 0, n)
	for _, i := range perm[:n] {
		codes = append(codes, simFaultPool[i])
	}
	return codes, nil
}

// ClearFaultCodes resets the distance and time accumulators, like a real
// ECU does when codes are wiped.
func (s *Simulator) ClearFaultCodes(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.distKm = 0
	s.sinceClear = 0
	return nil
}
