package service

import "sync"

// Operation identifies the kind of mutating operation in flight.
type Operation string

const (
	OpUploading Operation = "uploading"
	OpSaving    Operation = "saving"
	OpDeleting  Operation = "deleting"
)

// Message returns the human-readable status text shown while the
// operation runs.
func (o Operation) Message() string {
	switch o {
	case OpUploading:
		return "Uploading and processing..."
	case OpSaving:
		return "Saving contract..."
	case OpDeleting:
		return "Please wait, deleting the PDF..."
	default:
		return ""
	}
}

// busyState is a single-slot operation gate: Idle -> Busy(kind) -> Idle.
// A second trigger while busy is rejected deterministically instead of
// relying on the UI disabling its affordances.
type busyState struct {
	mu      sync.Mutex
	current Operation
}

// begin claims the slot for op. It returns ErrBusy if an operation is
// already in flight.
func (b *busyState) begin(op Operation) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current != "" {
		return ErrBusy
	}
	b.current = op
	return nil
}

// end releases the slot. Safe to call on every exit path.
func (b *busyState) end() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = ""
}

// Current returns the operation in flight, or "" when idle.
func (b *busyState) Current() Operation {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}
