package pipeline

// Status is the terminal state of one file's pipeline.
type Status int

const (
	Succeeded Status = iota
	Skipped
	Failed
)

func (s Status) String() string {
	switch s {
	case Succeeded:
		return "succeeded"
	case Skipped:
		return "skipped"
	default:
		return "failed"
	}
}

// SkipReason explains a Skipped outcome.
type SkipReason string

const (
	SkipEmptyDescription SkipReason = "empty description"
	SkipEmptyName        SkipReason = "empty name"
	SkipUnchanged        SkipReason = "name unchanged"
	SkipExists           SkipReason = "destination exists"
	SkipInterrupted      SkipReason = "interrupted"
)

// Outcome is the single result recorded for an admitted path.
type Outcome struct {
	Status      Status
	Source      string
	Destination string     // Set when Succeeded, and for SkipExists.
	Reason      SkipReason // Set when Skipped.
	Err         error      // Set when Failed.
}

func succeeded(src, dst string) Outcome {
	return Outcome{Status: Succeeded, Source: src, Destination: dst}
}

func skipped(src string, reason SkipReason) Outcome {
	return Outcome{Status: Skipped, Source: src, Reason: reason}
}

func failed(src string, err error) Outcome {
	return Outcome{Status: Failed, Source: src, Err: err}
}
