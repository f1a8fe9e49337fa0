package purge

// ExecutionState is the outcome of the execution gate.
type ExecutionState int

const (
	CanExecute ExecutionState = iota
	InvalidArguments
	TimeSinceLastPurgeTooShort
	SkippedByToken
	OtherErrors
)

func (s ExecutionState) String() string {
	switch s {
	case CanExecute:
		return "CanExecute"
	case InvalidArguments:
		return "InvalidArguments"
	case TimeSinceLastPurgeTooShort:
		return "TimeSinceLastPurgeTooShort"
	case SkippedByToken:
		return "SkippedByToken"
	case OtherErrors:
		return "OtherErrors"
	default:
		return "Unknown"
	}
}
