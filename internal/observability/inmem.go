package observability

import "sync"

type observe struct {
	Kind          string
	Op            string
	Method, Route string
	Status        int
	ChargeMs      float64
	DbMs          float64
	Dur           float64
	OK            bool
}

// Inmem keeps the last max observations, for debugging and tests.
type Inmem struct {
	mu     sync.Mutex
	last   []*observe
	max    int
	totals struct {
		cacheHits, cacheMiss int
	}
}

func NewInmem(max int) *Inmem {
	return &Inmem{
		max: max,
	}
}

func (m *Inmem) push(v *observe) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = append(m.last, v)
	if len(m.last) > m.max {
		m.last = m.last[1:]
	}
}

func (m *Inmem) ObserveCreate(chargeMs, dbWriteMs float64, ok bool) {
	m.push(&observe{Kind: "create", ChargeMs: chargeMs, DbMs: dbWriteMs, OK: ok})
}

func (m *Inmem) ObserveQuery(op string, dbMs float64) {
	m.push(&observe{Kind: "query", Op: op, DbMs: dbMs})
}

func (m *Inmem) ObserveHTTP(method, route string, status int, durMs float64) {
	m.push(&observe{Kind: "http", Method: method, Route: route, Status: status, Dur: durMs})
}

func (m *Inmem) ObserveEvent(ok bool) {
	m.push(&observe{Kind: "event", OK: ok})
}

func (m *Inmem) IncDishCacheHit() {
	m.mu.Lock()
	m.totals.cacheHits++
	m.mu.Unlock()
}

func (m *Inmem) IncDishCacheMiss() {
	m.mu.Lock()
	m.totals.cacheMiss++
	m.mu.Unlock()
}

func (m *Inmem) CacheTotals() (hits, misses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals.cacheHits, m.totals.cacheMiss
}
