package model

// Contract represents a tracked agreement document. The remote store owns
// the record; the client side holds a read-mostly copy that is refreshed
// after every mutation.
type Contract struct {
	ID       string `json:"firebase_doc_id,omitempty"`
	Company  string `json:"company"`
	Service  string `json:"service"`
	Category string `json:"category"`
	Status   string `json:"status"`   // Active, Expired, Pending
	Action   string `json:"action"`   // Renew, Cancel, Review
	Priority string `json:"priority"` // high, medium, low
	Ends     string `json:"ends"`     // date string, "TBD" means no expiry tracked
	Value    string `json:"value"`
	PDFURL   string `json:"pdf_url,omitempty"`
}

// Status constants
const (
	StatusActive  = "Active"
	StatusExpired = "Expired"
	StatusPending = "Pending"
)

// Action constants
const (
	ActionRenew  = "Renew"
	ActionCancel = "Cancel"
	ActionReview = "Review"
)

// Priority constants
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// EndsNotTracked is the sentinel for contracts without a tracked expiry.
const EndsNotTracked = "TBD"

// HasID reports whether the contract carries the remote document id
// required for update and delete.
func (c *Contract) HasID() bool {
	return c.ID != ""
}
