package pipeline

// State is the lifecycle stage of an Orchestrator.
type State int

const (
	// Idle is a new orchestrator that has not started a run.
	Idle State = iota
	// KeyLoaded means the key schedule has been derived.
	KeyLoaded
	// Partitioned means the block stream has been split into worker ranges.
	Partitioned
	// Running means workers are transforming their ranges.
	Running
	// Reassembling means every worker finished and outputs are being joined.
	Reassembling
	// Done means the run produced its full output.
	Done
	// Failed means the run stopped on an error and produced no output.
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case KeyLoaded:
		return "key-loaded"
	case Partitioned:
		return "partitioned"
	case Running:
		return "running"
	case Reassembling:
		return "reassembling"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
