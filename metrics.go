package fleece

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts what the pipeline did. A nil *Metrics counts nothing.
type Metrics struct {
	linesRead      prometheus.Counter
	idleWaits      prometheus.Counter
	parseFallbacks prometheus.Counter
	eventsSent     prometheus.Counter
	bytesSent      prometheus.Counter
	sendErrors     prometheus.Counter
}

// NewMetrics registers the pipeline counters; a nil registerer means no metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fleece",
			Name:      name,
			Help:      help,
		})
	}
	m := &Metrics{
		linesRead:      counter("lines_read_total", "Lines read from the input"),
		idleWaits:      counter("idle_waits_total", "Empty reads that caused an idle wait"),
		parseFallbacks: counter("parse_fallbacks_total", "Lines that were not a JSON object and became a message field"),
		eventsSent:     counter("events_sent_total", "Events handed to the output without error"),
		bytesSent:      counter("bytes_sent_total", "Encoded event bytes handed to the output"),
		sendErrors:     counter("send_errors_total", "Events the output failed to send"),
	}
	reg.MustRegister(m.linesRead, m.idleWaits, m.parseFallbacks, m.eventsSent, m.bytesSent, m.sendErrors)
	return m
}

func (m *Metrics) lineRead() {
	if m != nil {
		m.linesRead.Inc()
	}
}

func (m *Metrics) idleWait() {
	if m != nil {
		m.idleWaits.Inc()
	}
}

func (m *Metrics) parseFallback() {
	if m != nil {
		m.parseFallbacks.Inc()
	}
}

func (m *Metrics) sent() {
	if m != nil {
		m.eventsSent.Inc()
	}
}

// SentBytes is called by outputs once a payload has left the process.
func (m *Metrics) SentBytes(n int) {
	if m != nil {
		m.bytesSent.Add(float64(n))
	}
}

func (m *Metrics) sendError() {
	if m != nil {
		m.sendErrors.Inc()
	}
}
