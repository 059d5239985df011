package graph

// Role classifies a node's position in the computational graph and controls
// its default gradient behavior.
type Role int

const (
	// Source is an external input (data, constants). It never requires
	// gradients unless explicitly overridden at construction.
	Source Role = iota

	// Parameter is a trainable value. It requires gradients by default and
	// is what optimizers update.
	Parameter

	// Computed is produced by an operation. It requires gradients iff any
	// of its operands does.
	Computed
)

// String returns a human-readable role name.
func (r Role) String() string {
	switch r {
	case Source:
		return "source"
	case Parameter:
		return "parameter"
	case Computed:
		return "computed"
	default:
		return "unknown"
	}
}
