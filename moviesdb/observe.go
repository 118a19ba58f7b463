package moviesdb

import "time"

// Outcome summarizes one completed logical call, counting every attempt the
// retry loop made. FinalStatus is 0 when no response was ever received.
type Outcome struct {
	Endpoint    Endpoint
	Attempts    int
	FinalStatus int
	Elapsed     time.Duration
}

// Observer receives an Outcome per completed call. The client does not
// define a log format; wiring an Observer to a logger or metrics sink is
// the caller's business.
type Observer interface {
	Observe(Outcome)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(Outcome)

func (f ObserverFunc) Observe(o Outcome) { f(o) }
