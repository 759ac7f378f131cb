package simulator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"maternal-vitals/internal/logger"
	"maternal-vitals/internal/model"

	"github.com/sirupsen/logrus"
)

// DefaultInterval is how often the live feed changes.
const DefaultInterval = 120 * time.Second

// Store is the part of data.Store the simulator writes to.
type Store interface {
	Len() int
	Update(updates map[int]model.Record) bool
}

// Publisher receives every completed cycle.
type Publisher interface {
	Publish(ctx context.Context, cycle model.Cycle) error
}

// Ticker abstracts time.Ticker so tests can fire cycles by hand.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker is the production Ticker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Options configures a Simulator. Zero values select the defaults.
type Options struct {
	Interval  time.Duration
	Profiles  []model.Profile // slot i is driven by Profiles[i]; needs model.RiskSlots entries
	Rand      *rand.Rand
	Publisher Publisher
	NewTicker func(time.Duration) Ticker
	Now       func() time.Time
}

// Simulator rewrites the vitals of the first model.RiskSlots records once per
// interval. It is not safe for concurrent use: Run owns it.
type Simulator struct {
	store     Store
	interval  time.Duration
	profiles  []model.Profile
	rnd       *rand.Rand
	publisher Publisher
	newTicker func(time.Duration) Ticker
	now       func() time.Time
	seq       uint64
}

func New(store Store, opts Options) *Simulator {
	s := &Simulator{
		store:     store,
		interval:  opts.Interval,
		profiles:  opts.Profiles,
		rnd:       opts.Rand,
		publisher: opts.Publisher,
		newTicker: opts.NewTicker,
		now:       opts.Now,
	}
	if s.interval <= 0 {
		s.interval = DefaultInterval
	}
	if len(s.profiles) != model.RiskSlots {
		if len(s.profiles) != 0 {
			logger.WithField("profiles", len(s.profiles)).Warn("Expected one profile per risk slot, using defaults")
		}
		s.profiles = model.DefaultProfiles()
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.newTicker == nil {
		s.newTicker = NewTimeTicker
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Run mutates the store once per interval until ctx is done. The first cycle
// fires after one full interval, so clients first see the data as loaded.
//
// A panic inside a cycle ends the simulation but not the process; the server
// keeps serving the last published snapshot.
func (s *Simulator) Run(ctx context.Context) {
	log := logger.WithFields(logrus.Fields{"component": "simulator", "interval": s.interval.String()})

	t := s.newTicker(s.interval)
	defer t.Stop()

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", fmt.Sprint(r)).Error("Simulator stopped after a failed cycle")
		}
	}()

	log.Info("Simulator started")
	for {
		select {
		case <-ctx.Done():
			log.Info("Simulator stopped")
			return
		case <-t.C():
			s.Step(ctx)
		}
	}
}

// Step runs one cycle. With fewer than model.RiskSlots records nothing is written and
// ok is false; the next interval simply tries again.
func (s *Simulator) Step(ctx context.Context) (cycle model.Cycle, ok bool) {
	if s.store.Len() < model.RiskSlots {
		return model.Cycle{}, false
	}

	updates := make(map[int]model.Record, len(s.profiles))
	cycle = model.Cycle{At: s.now().UTC()}
	for i, p := range s.profiles {
		v := s.sample(p)
		updates[i] = v.Fields()
		cycle.Updates = append(cycle.Updates, model.VitalsUpdate{Index: i, Profile: p.Name, Vitals: v})
	}
	if !s.store.Update(updates) {
		return model.Cycle{}, false
	}
	s.seq++
	cycle.Seq = s.seq

	logger.WithFields(logrus.Fields{"component": "simulator", "seq": cycle.Seq}).Debug("Updated patient data")

	if s.publisher != nil {
		// A publish never outlives the cycle it reports on.
		pubCtx, cancel := context.WithTimeout(ctx, s.interval)
		err := s.publisher.Publish(pubCtx, cycle)
		cancel()
		if err != nil {
			logger.WithFields(logrus.Fields{"component": "simulator", "seq": cycle.Seq}).
				WithError(err).Warn("Failed to publish cycle")
		}
	}
	return cycle, true
}

func (s *Simulator) sample(p model.Profile) model.Vitals {
	var v model.Vitals
	v.FetalHeartRate = s.intn(p.FetalHeartRate)
	v.MaternalHeartRate = s.intn(p.MaternalHeartRate)
	systolic := s.intn(p.Systolic)
	diastolic := s.intn(p.Diastolic)
	v.BloodPressure = model.FormatBloodPressure(systolic, diastolic)
	v.FetalMovement = s.intn(p.FetalMovement)
	return v
}

// intn draws uniformly from the inclusive range r.
func (s *Simulator) intn(r model.Range) int {
	return r.Min + s.rnd.Intn(r.Max-r.Min+1)
}
