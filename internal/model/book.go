package model

import (
	"strings"
	"time"
)

// Goals a book can support. Stored values are validated at the API
// boundary; unrecognized input is rejected, never stored.
const (
	GoalFocus        = "focus"
	GoalSleep        = "sleep"
	GoalFitness      = "fitness"
	GoalMindset      = "mindset"
	GoalProductivity = "productivity"
	GoalStress       = "stress"
)

// Moods a reader can pick when asking for a recommendation.
const (
	MoodMotivated   = "motivated"
	MoodTired       = "tired"
	MoodOverwhelmed = "overwhelmed"
	MoodCurious     = "curious"
	MoodCalm        = "calm"
)

// Reading status of a saved book.
const (
	BookStatusWant     = "want"
	BookStatusReading  = "reading"
	BookStatusFinished = "finished"
)

// Goals lists the accepted goal values.
var Goals = []string{GoalFocus, GoalSleep, GoalFitness, GoalMindset, GoalProductivity, GoalStress}

// Moods lists the accepted mood values.
var Moods = []string{MoodMotivated, MoodTired, MoodOverwhelmed, MoodCurious, MoodCalm}

// BookStatuses lists the accepted reading-status values.
var BookStatuses = []string{BookStatusWant, BookStatusReading, BookStatusFinished}

// ValidGoal reports whether g is a recognized goal.
func ValidGoal(g string) bool { return contains(Goals, g) }

// ValidMood reports whether m is a recognized mood.
func ValidMood(m string) bool { return contains(Moods, m) }

// ValidBookStatus reports whether s is a recognized reading status.
func ValidBookStatus(s string) bool { return contains(BookStatuses, s) }

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// Book is a catalogue entry that can be recommended.
type Book struct {
	ID          string `json:"id" db:"id" mapstructure:"id"`
	Title       string `json:"title" db:"title" mapstructure:"title"`
	Author      string `json:"author" db:"author" mapstructure:"author"`
	Description string `json:"description" db:"description" mapstructure:"description"`

	// Goal and Mood drive the recommendation filter.
	Goal string `json:"goal" db:"goal" mapstructure:"goal"`
	Mood string `json:"mood" db:"mood" mapstructure:"mood"`

	// MinutesPerDay is the reading time the book expects, used for the
	// "how much time do you have" filter.
	MinutesPerDay int `json:"minutes_per_day" db:"minutes_per_day" mapstructure:"minutes_per_day"`

	// Tags is a comma-separated free-form list ("habits, discipline").
	Tags string `json:"tags" db:"tags" mapstructure:"tags"`
}

// TagList splits Tags into normalized individual tags.
func (b Book) TagList() []string {
	var tags []string
	for _, t := range strings.Split(b.Tags, ",") {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// UserBook is one identity's relationship with a book: saved state,
// reading progress, and optional feedback. One row per (identity, book).
type UserBook struct {
	ID       string `json:"id" db:"id"`
	Identity string `json:"identity" db:"identity"`
	BookID   string `json:"book_id" db:"book_id"`
	Status   string `json:"status" db:"status"`
	Progress int    `json:"progress" db:"progress"` // 0-100
	Rating   *int   `json:"rating,omitempty" db:"rating"`
	Notes    string `json:"notes" db:"notes"`

	SavedAt   time.Time `json:"saved_at" db:"saved_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// LibraryEntry is a saved book joined with its catalogue record,
// as shown on the library page.
type LibraryEntry struct {
	UserBook
	Book Book `json:"book"`
}
