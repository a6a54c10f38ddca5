package scaffold

// State tracks a pipeline's progress through the baseline sequence. The
// baseline states form a strict total order; Aborted is reached from any of
// them on unhandled failure and is terminal.
type State int

const (
	StateCreated State = iota
	StateInitialized
	StateConfigResolved
	StateDependenciesMapped
	StateSourcesWritten
	StateCustomStepsRun
	StateFinalized
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateInitialized:
		return "initialized"
	case StateConfigResolved:
		return "config-resolved"
	case StateDependenciesMapped:
		return "dependencies-mapped"
	case StateSourcesWritten:
		return "sources-written"
	case StateCustomStepsRun:
		return "custom-steps-run"
	case StateFinalized:
		return "finalized"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}
