package entities

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrClassTreeNotFound = errors.New("class tree not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNoFeedURL         = errors.New("no feed url configured")
	ErrNoGoogleAccount   = errors.New("no google account linked")

	// Feed import errors. Fetch and parse failures abort the whole
	// import before anything is persisted.
	ErrFeedUnreachable = errors.New("feed unreachable")
	ErrFeedRejected    = errors.New("feed rejected by remote server")
	ErrFeedMalformed   = errors.New("feed document malformed")
)

// UserRole identifies the permission level of a user account.
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleStudent UserRole = "student"
)

// SyncStatus is the terminal state of one synchronization attempt.
type SyncStatus string

const (
	SyncStatusCreated SyncStatus = "created"
	SyncStatusFailed  SyncStatus = "failed"
)

// UnknownClassName is the sentinel class used for feed entries whose
// summary carries no bracketed class tag.
const UnknownClassName = "Unknown Class"

// classPalette is the fixed, ordered color palette assigned to classes in
// first-seen order. Indexing wraps around when a feed yields more classes
// than palette entries.
var classPalette = []string{
	"#4F86C6", // blue
	"#E5707E", // coral
	"#6BBF8A", // green
	"#F2B95F", // amber
	"#9B7EDE", // violet
	"#55B8C9", // teal
	"#E58F65", // orange
	"#C96FA8", // pink
}

// PaletteColor returns the palette entry for the given running class index,
// wrapping modulo palette length.
func PaletteColor(index int) string {
	return classPalette[index%len(classPalette)]
}

// PaletteSize returns the number of distinct palette colors.
func PaletteSize() int {
	return len(classPalette)
}

// ClassID derives the identifier of a class from its display name. The
// derivation is a pure function so re-importing a feed with the same class
// names reproduces the same identifiers.
func ClassID(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// NewAssignmentID generates an identifier for a feed entry that carries no
// provider UID. These identifiers are random and therefore not stable
// across re-imports.
func NewAssignmentID() string {
	return uuid.New().String()
}

// User represents a user account in the system
type User struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	Email              string     `json:"email" db:"email"`
	Username           string     `json:"username" db:"username"`
	PasswordHash       string     `json:"-" db:"password_hash"`
	FirstName          *string    `json:"first_name" db:"first_name"`
	LastName           *string    `json:"last_name" db:"last_name"`
	Role               UserRole   `json:"role" db:"role"`
	IsActive           bool       `json:"is_active" db:"is_active"`
	FeedURL            *string    `json:"feed_url" db:"feed_url"`
	GoogleRefreshToken *string    `json:"-" db:"google_refresh_token"`
	Timezone           string     `json:"timezone" db:"timezone"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt          *time.Time `json:"deleted_at" db:"deleted_at"`
}

// CalendarEntry is one raw record decoded from a calendar feed. Entries are
// consumed during extraction and never persisted.
type CalendarEntry struct {
	UID         string
	Summary     string
	Description string
	Start       time.Time
}

// Assignment is one due-dated task extracted from a single feed entry.
type Assignment struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DueDate     time.Time `json:"due_date"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
}

// Class groups the assignments that share one bracketed feed tag. The
// assignment list keeps feed order, not chronological order.
type Class struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Color       string       `json:"color"`
	Icon        string       `json:"icon"`
	Assignments []Assignment `json:"assignments"`
}

// AssignmentCount returns the total number of assignments across classes.
func AssignmentCount(classes []Class) int {
	total := 0
	for _, c := range classes {
		total += len(c.Assignments)
	}
	return total
}

// SyncResult records the outcome of one calendar or event creation attempt
// against the external calendar. It is returned to the caller and never
// persisted.
type SyncResult struct {
	ClassName      string     `json:"class_name"`
	AssignmentName string     `json:"assignment_name,omitempty"`
	Status         SyncStatus `json:"status"`
	Error          string     `json:"error,omitempty"`
}
