package accumulator

import (
	"context"
	"sync"
	"time"
)

// Accumulator counts occurrences and stores the count every interval as a sample.
type Accumulator struct {
	mu sync.RWMutex

	Label   string
	samples []Sample
	acc     int64

	// Samples to store before the oldest are discarded.
	storedSamples int

	// Time between samples. 360 samples with an interval of 10 seconds
	// provide an hour of history.
	interval time.Duration
}

// Sample contains the time the sample was made and its value.
type Sample struct {
	StoredAt time.Time `json:"stored_at"`
	Value    int64     `json:"value"`
}

// NewAccumulator creates an accumulator. This does not automatically call Run.
func NewAccumulator(label string, storedSamples int, interval time.Duration) *Accumulator {
	if storedSamples < 1 {
		storedSamples = 1
	}

	return &Accumulator{
		Label:         label,
		samples:       make([]Sample, 0, storedSamples),
		storedSamples: storedSamples,
		interval:      interval,
	}
}

func (ac *Accumulator) Increment() {
	ac.IncrementBy(1)
}

func (ac *Accumulator) IncrementBy(n int64) {
	ac.mu.Lock()
	ac.acc += n
	ac.mu.Unlock()
}

// Pending returns the count that has not been sampled yet.
func (ac *Accumulator) Pending() int64 {
	ac.mu.RLock()
	defer ac.mu.RUnlock()

	return ac.acc
}

// Samples returns a copy of every stored sample, oldest first.
func (ac *Accumulator) Samples() SampleGroup {
	ac.mu.RLock()
	defer ac.mu.RUnlock()

	return SampleGroup{
		Label:   ac.Label,
		Samples: append([]Sample(nil), ac.samples...),
	}
}

// SamplesSince returns the samples stored after t.
func (ac *Accumulator) SamplesSince(t time.Time) SampleGroup {
	return ac.Samples().Since(t)
}

// RunOnce stores the current count as a sample made at t and resets the count.
func (ac *Accumulator) RunOnce(t time.Time) {
	ac.mu.Lock()
	defer ac.mu.Unlock()

	ac.samples = append(ac.samples, Sample{
		StoredAt: t,
		Value:    ac.acc,
	})

	ac.acc = 0

	if len(ac.samples) > ac.storedSamples {
		ac.samples = append(ac.samples[:0], ac.samples[len(ac.samples)-ac.storedSamples:]...)
	}
}

// Run samples every interval until the context is done.
func (ac *Accumulator) Run(ctx context.Context) {
	t := time.NewTicker(ac.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			ac.RunOnce(now.UTC())
		}
	}
}

// SampleGroup holds a group of samples, oldest first.
type SampleGroup struct {
	Label   string   `json:"label"`
	Samples []Sample `json:"samples"`
}

func (sg SampleGroup) Sum() int64 {
	acc := int64(0)
	for _, sample := range sg.Samples {
		acc += sample.Value
	}

	return acc
}

// Avg returns the average of the samples, or 0 when there are none.
func (sg SampleGroup) Avg() float64 {
	if len(sg.Samples) == 0 {
		return 0
	}

	return float64(sg.Sum()) / float64(len(sg.Samples))
}

// Since returns the samples stored after t.
func (sg SampleGroup) Since(t time.Time) SampleGroup {
	for index, sample := range sg.Samples {
		if sample.StoredAt.After(t) {
			return SampleGroup{Label: sg.Label, Samples: sg.Samples[index:]}
		}
	}

	return SampleGroup{Label: sg.Label, Samples: []Sample{}}
}
