package metrics

// MultiSink fans events out to several sinks. The first error encountered
// is returned after every sink has been offered the event.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink wraps the given sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordPlan(ev PlanEvent) error {
	var first error
	for _, s := range m.sinks {
		if err := s.RecordPlan(ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m *MultiSink) RecordBudget(ev BudgetEvent) error {
	var first error
	for _, s := range m.sinks {
		if err := s.RecordBudget(ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}
