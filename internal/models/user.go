package models

// TimestampLayout is the layout of record creation timestamps.
const TimestampLayout = "2006-01-02 15:04"

// DateLayout is the layout of calendar-date fields (deadlines, end dates,
// streak activity dates).
const DateLayout = "2006-01-02"

// Database is the whole persisted aggregate: every user record keyed by
// username. The store owns exactly one of these for the process lifetime.
type Database struct {
	Users map[string]*User `json:"users"`
}

// NewDatabase returns an empty database.
func NewDatabase() *Database {
	return &Database{Users: make(map[string]*User)}
}

// User is one registered account and everything it owns.
type User struct {
	// FullName is the display name entered at signup.
	FullName string `json:"full_name"`

	// Email is the contact address, also used for username recovery.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the login password.
	PasswordHash string `json:"password_hash"`

	// RecoveryHash is the bcrypt hash of the lowercased recovery answer.
	RecoveryHash string `json:"recovery_hash"`

	Goals    []Goal    `json:"goals"`
	Expenses []Expense `json:"expenses"`
	Pods     []Pod     `json:"pods"`

	Streak Streak `json:"streak"`
}

// EnsureShape backfills collections and streak state on records loaded from
// older files that may predate one of the fields.
func (u *User) EnsureShape() {
	if u.Goals == nil {
		u.Goals = []Goal{}
	}
	if u.Expenses == nil {
		u.Expenses = []Expense{}
	}
	if u.Pods == nil {
		u.Pods = []Pod{}
	}
}

// Streak is the consecutive-activity-day state for one user.
type Streak struct {
	// Count is the current run length in days, never negative.
	Count int `json:"count"`

	// LastActiveOn is the date of the most recent qualifying activity in
	// DateLayout form, or nil before the first activity.
	LastActiveOn *string `json:"last_active_on"`
}
