package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ActivityType is the kind of activity a presence displays.
// The values are fixed by the client and are not contiguous.
type ActivityType int

const (
	ActivityGame      ActivityType = 0
	ActivityStreaming ActivityType = 1
	ActivityListening ActivityType = 2
	ActivityWatching  ActivityType = 3
	ActivityCompeting ActivityType = 5
)

var activityNames = map[ActivityType]string{
	ActivityGame:      "Game",
	ActivityStreaming: "Streaming",
	ActivityListening: "Listening",
	ActivityWatching:  "Watching",
	ActivityCompeting: "Competing",
}

// ActivityTypes returns every activity type in display order.
func ActivityTypes() []ActivityType {
	return []ActivityType{
		ActivityGame,
		ActivityStreaming,
		ActivityListening,
		ActivityWatching,
		ActivityCompeting,
	}
}

func (a ActivityType) String() string {
	if name, ok := activityNames[a]; ok {
		return name
	}
	return fmt.Sprintf("ActivityType(%d)", int(a))
}

// Valid reports whether a is one of the known activity types.
func (a ActivityType) Valid() bool {
	_, ok := activityNames[a]
	return ok
}

// ParseActivityType accepts a name ("streaming") or a numeric value ("1").
func ParseActivityType(value string) (ActivityType, error) {
	trimmed := strings.TrimSpace(value)
	if n, err := strconv.Atoi(trimmed); err == nil {
		a := ActivityType(n)
		if !a.Valid() {
			return 0, fmt.Errorf("unknown activity type %d", n)
		}
		return a, nil
	}
	for a, name := range activityNames {
		if strings.EqualFold(name, trimmed) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown activity type %q", value)
}

// Button is a clickable link shown under a presence.
type Button struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// Party is the "n of m" indicator. Either count may be absent on its own.
type Party struct {
	Members *int `json:"members,omitempty" yaml:"members,omitempty"`
	Size    *int `json:"size,omitempty" yaml:"size,omitempty"`
}

// PresenceConfig is a rich presence profile.
type PresenceConfig struct {
	ClientID   string       `json:"client_id" yaml:"client_id"`
	Name       string       `json:"name" yaml:"name"`
	Details    string       `json:"details,omitempty" yaml:"details,omitempty"`
	State      string       `json:"state,omitempty" yaml:"state,omitempty"`
	Type       ActivityType `json:"type" yaml:"type"`
	URL        string       `json:"url,omitempty" yaml:"url,omitempty"`
	LargeImage string       `json:"large_image" yaml:"large_image"`
	LargeText  string       `json:"large_text" yaml:"large_text"`
	SmallImage string       `json:"small_image" yaml:"small_image"`
	SmallText  string       `json:"small_text" yaml:"small_text"`
	ShowTime   bool         `json:"show_time" yaml:"show_time"`
	Buttons    []Button     `json:"buttons" yaml:"buttons"`
	Party      *Party       `json:"party,omitempty" yaml:"party,omitempty"`
}

// Clone returns a deep copy that shares no memory with c.
func (c PresenceConfig) Clone() PresenceConfig {
	out := c
	if c.Buttons != nil {
		out.Buttons = make([]Button, len(c.Buttons))
		copy(out.Buttons, c.Buttons)
	}
	if c.Party != nil {
		out.Party = c.Party.Clone()
	}
	return out
}

// Clone returns a deep copy of p.
func (p *Party) Clone() *Party {
	if p == nil {
		return nil
	}
	out := &Party{}
	if p.Members != nil {
		v := *p.Members
		out.Members = &v
	}
	if p.Size != nil {
		v := *p.Size
		out.Size = &v
	}
	return out
}

// Profile is a named, stored presence config.
type Profile struct {
	Name      string         `json:"name"`
	Config    PresenceConfig `json:"config"`
	UpdatedAt int64          `json:"updated_at"`
}

// FilePatch is one changed file of a commit. Patch holds unified diff text
// starting at the first hunk header.
type FilePatch struct {
	Filename  string `json:"filename"`
	Status    string `json:"status,omitempty"`
	Additions int    `json:"additions,omitempty"`
	Deletions int    `json:"deletions,omitempty"`
	Patch     string `json:"patch,omitempty"`
}

// CommitDetail is a commit with its per-file patches.
type CommitDetail struct {
	SHA     string      `json:"sha"`
	Message string      `json:"message,omitempty"`
	Author  string      `json:"author,omitempty"`
	Date    time.Time   `json:"date,omitempty"`
	Files   []FilePatch `json:"files"`
}

// ShortSHA returns the first seven characters of the sha.
func (c CommitDetail) ShortSHA() string {
	if len(c.SHA) <= 7 {
		return c.SHA
	}
	return c.SHA[:7]
}
