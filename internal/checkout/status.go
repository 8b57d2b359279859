package checkout

type State string

const (
	StateIdle       State = "IDLE"
	StateSubmitting State = "SUBMITTING"
	StateSucceeded  State = "SUCCEEDED"
	StateFailed     State = "FAILED"
)

func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// String representation (for logging)
func (s State) String() string {
	return string(s)
}

type Status struct {
	State      State  `json:"state"`
	Submitting bool   `json:"submitting"`
	Error      string `json:"error,omitempty"`
	OrderID    string `json:"orderId,omitempty"`
}
