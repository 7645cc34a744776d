package models

// Expense is one personal expense entry. Entries are immutable once created;
// the owning list is only ever appended to.
type Expense struct {
	// Amount is the two-decimal currency amount.
	Amount float64 `json:"amount"`

	// Category is the spending category; "General" when none was given.
	Category string `json:"category"`

	// Note is free text.
	Note string `json:"note"`

	// Date is the creation timestamp in TimestampLayout form.
	Date string `json:"date"`
}

// Goal is a savings goal. Saved only ever increases and may exceed Target;
// display progress is clamped to 100% but the stored value is not.
type Goal struct {
	Name string `json:"name"`

	// Target is the positive amount being saved toward.
	Target float64 `json:"target"`

	// Saved is the cumulative amount added so far, starting at 0.
	Saved float64 `json:"saved"`

	// Deadline is an optional DateLayout date; empty means none.
	Deadline string `json:"deadline"`

	// CreatedAt is the creation timestamp in TimestampLayout form.
	CreatedAt string `json:"created_at"`
}

// Progress returns the saved/target percentage clamped to 100 for display.
// A non-positive target reports 0.
func (g Goal) Progress() float64 {
	if g.Target <= 0 {
		return 0
	}
	p := g.Saved / g.Target * 100
	if p > 100 {
		return 100
	}
	return p
}
