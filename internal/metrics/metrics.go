package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Registry holds the process counters reported by /health.
type Registry struct {
	started time.Time

	Requests      Counter
	ClientErrors  Counter
	ServerErrors  Counter
	OrdersCreated Counter
	Uploads       Counter
}

func NewRegistry() *Registry {
	return &Registry{started: time.Now()}
}

// ObserveStatus counts one finished request.
func (r *Registry) ObserveStatus(status int) {
	r.Requests.Inc()
	switch {
	case status >= 500:
		r.ServerErrors.Inc()
	case status >= 400:
		r.ClientErrors.Inc()
	}
}

type Snapshot struct {
	UptimeSeconds int64  `json:"uptime_seconds"`
	Requests      uint64 `json:"requests"`
	ClientErrors  uint64 `json:"client_errors"`
	ServerErrors  uint64 `json:"server_errors"`
	OrdersCreated uint64 `json:"orders_created"`
	Uploads       uint64 `json:"uploads"`
}

func (r *Registry) Snapshot() Snapshot {
	return Snapshot{
		UptimeSeconds: int64(time.Since(r.started).Seconds()),
		Requests:      r.Requests.Load(),
		ClientErrors:  r.ClientErrors.Load(),
		ServerErrors:  r.ServerErrors.Load(),
		OrdersCreated: r.OrdersCreated.Load(),
		Uploads:       r.Uploads.Load(),
	}
}
