package mocks

import (
	"saleema/infras/metrics"
	"sync"
	"time"
)

// Recorder keeps observations in memory so tests can assert on them.
type Recorder struct {
	mu            sync.Mutex
	Reservations  map[string]int
	Cancellations map[string]int
	LockWaits     int
}

func NewMetrics() *Recorder {
	return &Recorder{
		Reservations:  map[string]int{},
		Cancellations: map[string]int{},
	}
}

var _ metrics.Booking = (*Recorder)(nil)

func (r *Recorder) ObserveReservation(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Reservations[outcome]++
}

func (r *Recorder) ObserveCancellation(trigger string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Cancellations[trigger]++
}

func (r *Recorder) ObserveLockWait(_ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.LockWaits++
}

func (r *Recorder) Reservation(outcome string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.Reservations[outcome]
}

func (r *Recorder) Cancellation(trigger string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.Cancellations[trigger]
}
