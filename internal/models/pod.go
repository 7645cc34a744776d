package models

// Pod types. A pod is either an ongoing arrangement (roommates) or a
// temporary one (a trip) with an optional end date.
const (
	PodTypeOngoing   = "ongoing"
	PodTypeTemporary = "temporary"
)

// ApprovalPending is the initial approval status for every member of a new
// shared expense. No operation currently transitions it: approvals are
// write-once-pending data, kept for forward compatibility rather than driving
// any workflow.
const ApprovalPending = "pending"

// Pod is a named group of users who share expenses. Members are usernames,
// deduplicated, and must all exist in the user directory when the pod is
// created. Pods are never deleted; inactive ones are only filtered from views.
type Pod struct {
	Name string `json:"name"`

	// Type is PodTypeOngoing or PodTypeTemporary.
	Type string `json:"type"`

	Members []string `json:"members"`

	Expenses []SharedExpense `json:"expenses"`

	// CreatedAt is the creation timestamp in TimestampLayout form.
	CreatedAt string `json:"created_at"`

	// EndDate is an optional DateLayout date; empty means no end date.
	EndDate string `json:"end_date"`
}

// SharedExpense is one expense recorded against a pod, with the allocation
// each member carries.
type SharedExpense struct {
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Note     string  `json:"note"`

	// Date is the creation timestamp in TimestampLayout form.
	Date string `json:"date"`

	// Split maps each pod member (at creation time) to their allocated share.
	Split map[string]float64 `json:"split"`

	// Approvals maps each member to an approval status, initialized to
	// ApprovalPending for everyone. See ApprovalPending.
	Approvals map[string]string `json:"approvals"`
}
