package presence

import "github.com/adamavenir/rpcdeck/internal/types"

// Partial is a set of field updates. Nil fields are left unchanged.
// Buttons and Party replace the whole value when set.
type Partial struct {
	ClientID   *string
	Name       *string
	Details    *string
	State      *string
	Type       *types.ActivityType
	URL        *string
	LargeImage *string
	LargeText  *string
	SmallImage *string
	SmallText  *string
	ShowTime   *bool
	Buttons    []types.Button
	Party      *types.Party
}

// String returns a pointer to s, for building a Partial.
func String(s string) *string {
	return &s
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// Activity returns a pointer to a.
func Activity(a types.ActivityType) *types.ActivityType {
	return &a
}

func (p Partial) apply(c *types.PresenceConfig) {
	setString(&c.ClientID, p.ClientID)
	setString(&c.Name, p.Name)
	setString(&c.Details, p.Details)
	setString(&c.State, p.State)
	setString(&c.URL, p.URL)
	setString(&c.LargeImage, p.LargeImage)
	setString(&c.LargeText, p.LargeText)
	setString(&c.SmallImage, p.SmallImage)
	setString(&c.SmallText, p.SmallText)
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.ShowTime != nil {
		c.ShowTime = *p.ShowTime
	}
	if p.Buttons != nil {
		buttons := make([]types.Button, len(p.Buttons))
		copy(buttons, p.Buttons)
		c.Buttons = buttons
	}
	if p.Party != nil {
		c.Party = p.Party.Clone()
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
