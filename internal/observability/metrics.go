package observability

type Metrics interface {
	// ObserveCreate records one order-creation attempt with the time spent
	// in the payment gateway and the store write.
	ObserveCreate(chargeMs, dbWriteMs float64, ok bool)
	// ObserveQuery records one read operation against the store.
	ObserveQuery(op string, dbMs float64)
	ObserveHTTP(method, route string, status int, durMs float64)
	ObserveEvent(ok bool)
	IncDishCacheHit()
	IncDishCacheMiss()
}

type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) ObserveCreate(float64, float64, bool)     {}
func (Noop) ObserveQuery(string, float64)             {}
func (Noop) ObserveHTTP(string, string, int, float64) {}
func (Noop) ObserveEvent(bool)                        {}
func (Noop) IncDishCacheHit()                         {}
func (Noop) IncDishCacheMiss()                        {}
