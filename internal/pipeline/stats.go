package pipeline

// RunSummary tracks outcome counters across a batch run. The scheduler is
// its only writer.
type RunSummary struct {
	Total     int
	Done      int
	Succeeded int
	Skipped   int
	Failed    int

	SkipReasons map[SkipReason]int
}

// Add records one outcome.
func (s *RunSummary) Add(o Outcome) {
	s.Done++
	switch o.Status {
	case Succeeded:
		s.Succeeded++
	case Skipped:
		s.Skipped++
		if s.SkipReasons == nil {
			s.SkipReasons = make(map[SkipReason]int)
		}
		s.SkipReasons[o.Reason]++
	default:
		s.Failed++
	}
}

// Interrupted reports whether some paths were never started.
func (s *RunSummary) Interrupted() bool { return s.SkipReasons[SkipInterrupted] > 0 }
