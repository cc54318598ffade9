// Package mood holds the client-side mood tracker. Entries live in memory
// only and are never sent to the server.
package mood

import (
	"errors"
	"math"
	"strings"
	"sync"
	"time"
)

const (
	SaveDelay    = 500 * time.Millisecond
	LoggedToast  = "Mood logged!"
	SelectToast  = "Please select a mood"
	EmptyMessage = "No mood entries yet. Start tracking!"
)

var (
	ErrNoMood      = errors.New("no mood selected")
	ErrUnknownMood = errors.New("unknown mood")
)

type Option struct {
	Emoji string
	Label string
	// Color is an ANSI 256 color code used when rendering the mood.
	Color string
}

var Options = []Option{
	{Emoji: "😊", Label: "Happy", Color: "220"},
	{Emoji: "😢", Label: "Sad", Color: "39"},
	{Emoji: "😰", Label: "Anxious", Color: "135"},
	{Emoji: "😔", Label: "Tired", Color: "245"},
	{Emoji: "😤", Label: "Frustrated", Color: "196"},
	{Emoji: "🤗", Label: "Grateful", Color: "35"},
	{Emoji: "💪", Label: "Motivated", Color: "208"},
	{Emoji: "🌟", Label: "Hopeful", Color: "205"},
}

func Lookup(emoji string) (Option, bool) {
	for _, o := range Options {
		if o.Emoji == emoji {
			return o, true
		}
	}
	return Option{}, false
}

type Entry struct {
	ID        int64
	Mood      string
	Note      string
	CreatedAt time.Time
}

type Stat struct {
	Option
	Count   int
	Percent int
}

// Tracker keeps entries newest first. IDs are millisecond timestamps bumped
// when needed so they stay strictly increasing.
type Tracker struct {
	mu      sync.Mutex
	entries []Entry
	lastID  int64
	now     func() time.Time
}

func NewTracker(now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{now: now}
}

func Validate(emoji string) error {
	if emoji == "" {
		return ErrNoMood
	}
	if _, ok := Lookup(emoji); !ok {
		return ErrUnknownMood
	}
	return nil
}

func (t *Tracker) Log(emoji, note string) (Entry, error) {
	if err := Validate(emoji); err != nil {
		return Entry{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	id := now.UnixMilli()
	if id <= t.lastID {
		id = t.lastID + 1
	}
	t.lastID = id

	entry := Entry{
		ID:        id,
		Mood:      emoji,
		Note:      strings.TrimSpace(note),
		CreatedAt: now,
	}
	t.entries = append([]Entry{entry}, t.entries...)
	return entry, nil
}

func (t *Tracker) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Entry(nil), t.entries...)
}

func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Stats returns one row per option in display order, or nil when there are
// no entries.
func (t *Tracker) Stats() []Stat {
	t.mu.Lock()
	defer t.mu.Unlock()

	total := len(t.entries)
	if total == 0 {
		return nil
	}

	counts := make(map[string]int, len(Options))
	for _, e := range t.entries {
		counts[e.Mood]++
	}

	stats := make([]Stat, 0, len(Options))
	for _, o := range Options {
		count := counts[o.Emoji]
		stats = append(stats, Stat{
			Option:  o,
			Count:   count,
			Percent: int(math.Round(float64(count) / float64(total) * 100)),
		})
	}
	return stats
}

// FormatTimestamp renders an entry time as "Jan 2, 2006 at 15:04" in local time.
func FormatTimestamp(ts time.Time) string {
	return ts.Local().Format("Jan 2, 2006") + " at " + ts.Local().Format("15:04")
}
