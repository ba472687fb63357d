package pipeline

// Build states. A build that fails before the script phase is "errored";
// only a script failure counts as "failed".
const (
	StatePending = "pending"
	StateRunning = "running"
	StatePassed  = "passed"
	StateFailed  = "failed"
	StateErrored = "errored"
)

// Phase identifies one stage of the linear pipeline.
type Phase string

// Pipeline phases in execution order.
const (
	PhaseBeforeInstall Phase = "before_install"
	PhaseInstall       Phase = "install"
	PhaseBeforeScript  Phase = "before_script"
	PhaseScript        Phase = "script"
	PhaseAfterSuccess  Phase = "after_success"
)
