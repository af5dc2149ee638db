package access

// Resolution outcomes reported to Metrics
const (
	OutcomeFound   = "found"
	OutcomeGuessed = "guessed"
)

// Metrics receives resolver events
type Metrics interface {
	AccessResolved(outcome string)
	PhotoResolved(tier string)
	LookupDegraded(collection string)
}

// NopMetrics discards all events
type NopMetrics struct{}

func (NopMetrics) AccessResolved(string) {}
func (NopMetrics) PhotoResolved(string)  {}
func (NopMetrics) LookupDegraded(string) {}
