// Package metrics exports store activity as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/idilsaglam/todochat/internal/store"
)

const namespace = "todochat"

// Recorder counts dispatches and persistence writes, and tracks the size
// of each slice.
type Recorder struct {
	dispatches *prometheus.CounterVec
	writes     *prometheus.CounterVec
	todos      *prometheus.GaugeVec
	messages   prometheus.Gauge
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatches_total",
			Help:      "Actions dispatched to the store, by action type and result.",
		}, []string{"action", "result"}),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_writes_total",
			Help:      "Writes to durable storage, by key and outcome.",
		}, []string{"key", "outcome"}),
		todos: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "todos",
			Help:      "Todo items currently held, by filter.",
		}, []string{"filter"}),
		messages: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chat_messages",
			Help:      "Messages in the current chat room.",
		}),
	}
	if reg != nil {
		reg.MustRegister(r.dispatches, r.writes, r.todos, r.messages)
	}
	return r
}

// ObserveDispatch implements store.DispatchObserver.
func (r *Recorder) ObserveDispatch(a store.Action, res store.Result) {
	if r == nil {
		return
	}
	r.dispatches.WithLabelValues(a.Type(), res.String()).Inc()
}

// ObserveWrite records one durable write.
func (r *Recorder) ObserveWrite(key string, err error) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.writes.WithLabelValues(key, outcome).Inc()
}

// Track keeps the size gauges in line with s. It returns the
// unsubscribe function.
func (r *Recorder) Track(s *store.Store) func() {
	r.setSizes(s.Snapshot())
	return s.Subscribe(func(c store.Change) { r.setSizes(c.Next) })
}

func (r *Recorder) setSizes(st store.State) {
	stats := store.Stats(st.Todos)
	r.todos.WithLabelValues("all").Set(float64(stats.Total))
	r.todos.WithLabelValues("completed").Set(float64(stats.Completed))
	r.todos.WithLabelValues("uncompleted").Set(float64(stats.Pending()))
	n := 0
	if st.Chat.CurrentRoom != nil {
		n = len(st.Chat.CurrentRoom.Messages)
	}
	r.messages.Set(float64(n))
}
