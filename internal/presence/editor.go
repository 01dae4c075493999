package presence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/adamavenir/rpcdeck/internal/types"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// MaxButtons is how many buttons the client will display.
const MaxButtons = 2

// ErrButtonIndex is returned when a button index is out of range.
var ErrButtonIndex = errors.New("button index out of range")

// SaveFunc receives the saved record. It owns persistence. A non-nil error
// leaves the editor dirty so the save can be retried.
type SaveFunc func(types.PresenceConfig) error

// Editor holds the working and original copies of a presence config while
// it is being edited.
type Editor struct {
	initial  types.PresenceConfig
	original types.PresenceConfig
	working  types.PresenceConfig
	onSave   SaveFunc
	strict   bool

	// revisions drive the dirty memo
	originalRev int
	workingRev  int
	memoOrig    int
	memoWork    int
	memoDirty   bool
	memoValid   bool
}

// Option configures an Editor.
type Option func(*Editor)

// WithStrictValidation makes Save refuse records with empty required fields.
func WithStrictValidation(strict bool) Option {
	return func(e *Editor) {
		e.strict = strict
	}
}

// NewEditor copies input so neither side sees the other's mutations until Save.
func NewEditor(input types.PresenceConfig, onSave SaveFunc, opts ...Option) *Editor {
	e := &Editor{
		initial:  input.Clone(),
		original: input.Clone(),
		working:  input.Clone(),
		onSave:   onSave,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Working returns a copy of the live record.
func (e *Editor) Working() types.PresenceConfig {
	return e.working.Clone()
}

// Original returns a copy of the last saved record.
func (e *Editor) Original() types.PresenceConfig {
	return e.original.Clone()
}

// Update shallow-merges the set fields of p into the working copy.
func (e *Editor) Update(p Partial) {
	p.apply(&e.working)
	e.workingRev++
}

// IsDirty reports whether the working copy differs from the original.
func (e *Editor) IsDirty() bool {
	if e.memoValid && e.memoOrig == e.originalRev && e.memoWork == e.workingRev {
		return e.memoDirty
	}
	e.memoDirty = !equalConfigs(e.original, e.working)
	e.memoOrig = e.originalRev
	e.memoWork = e.workingRev
	e.memoValid = true
	return e.memoDirty
}

// Reset discards every edit and returns to the record the editor was opened with.
func (e *Editor) Reset() {
	e.working = e.initial.Clone()
	e.workingRev++
}

// Save hands the working copy to the save callback and, once it has been
// accepted, makes it the new original.
func (e *Editor) Save() error {
	if e.strict {
		if err := Validate(e.working); err != nil {
			return err
		}
	}
	if e.onSave != nil {
		if err := e.onSave(e.working.Clone()); err != nil {
			return err
		}
	}
	e.original = e.working.Clone()
	e.originalRev++
	return nil
}

// StreamURLEnabled reports whether the stream URL field may be edited.
func (e *Editor) StreamURLEnabled() bool {
	return e.working.Type == types.ActivityStreaming
}

// SetButtonLabel replaces the label of button i.
func (e *Editor) SetButtonLabel(i int, label string) error {
	return e.replaceButton(i, func(b types.Button) types.Button {
		b.Label = label
		return b
	})
}

// SetButtonURL replaces the url of button i.
func (e *Editor) SetButtonURL(i int, url string) error {
	return e.replaceButton(i, func(b types.Button) types.Button {
		b.URL = url
		return b
	})
}

func (e *Editor) replaceButton(i int, edit func(types.Button) types.Button) error {
	if i < 0 || i >= len(e.working.Buttons) {
		return fmt.Errorf("%w: %d", ErrButtonIndex, i)
	}
	buttons := make([]types.Button, len(e.working.Buttons))
	copy(buttons, e.working.Buttons)
	buttons[i] = edit(buttons[i])
	e.Update(Partial{Buttons: buttons})
	return nil
}

// AddButton appends an empty button, up to MaxButtons.
func (e *Editor) AddButton() error {
	if len(e.working.Buttons) >= MaxButtons {
		return fmt.Errorf("at most %d buttons", MaxButtons)
	}
	buttons := make([]types.Button, len(e.working.Buttons), len(e.working.Buttons)+1)
	copy(buttons, e.working.Buttons)
	buttons = append(buttons, types.Button{})
	e.Update(Partial{Buttons: buttons})
	return nil
}

// RemoveButton drops button i.
func (e *Editor) RemoveButton(i int) error {
	if i < 0 || i >= len(e.working.Buttons) {
		return fmt.Errorf("%w: %d", ErrButtonIndex, i)
	}
	buttons := make([]types.Button, 0, len(e.working.Buttons)-1)
	buttons = append(buttons, e.working.Buttons[:i]...)
	buttons = append(buttons, e.working.Buttons[i+1:]...)
	e.Update(Partial{Buttons: buttons})
	return nil
}

// SetPartyMembers sets the member count from field text. Empty text makes it
// absent; the size is carried over as-is.
func (e *Editor) SetPartyMembers(text string) error {
	members, err := parseCount(text)
	if err != nil {
		return fmt.Errorf("party members: %w", err)
	}
	party := &types.Party{Members: members}
	if e.working.Party != nil {
		party.Size = e.working.Party.Clone().Size
	}
	e.setParty(party)
	return nil
}

// SetPartySize sets the party size from field text. Empty text makes it
// absent. Setting a size turns an absent member count into zero, and
// clearing it drops a zero member count again.
func (e *Editor) SetPartySize(text string) error {
	size, err := parseCount(text)
	if err != nil {
		return fmt.Errorf("party size: %w", err)
	}
	party := &types.Party{Size: size}
	if e.working.Party != nil && e.working.Party.Members != nil {
		v := *e.working.Party.Members
		party.Members = &v
	}
	switch {
	case size != nil && party.Members == nil:
		zero := 0
		party.Members = &zero
	case size == nil && party.Members != nil && *party.Members == 0:
		party.Members = nil
	}
	e.setParty(party)
	return nil
}

// setParty stores p, or no party at all when neither count is set.
func (e *Editor) setParty(p *types.Party) {
	if p.Members == nil && p.Size == nil {
		e.working.Party = nil
		e.workingRev++
		return
	}
	e.Update(Partial{Party: p})
}

func parseCount(text string) (*int, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", text)
	}
	return &n, nil
}

// nil and empty button lists compare equal; both mean "no buttons".
func equalConfigs(a, b types.PresenceConfig) bool {
	return cmp.Equal(a, b, cmpopts.EquateEmpty())
}
