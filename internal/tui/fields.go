package tui

import (
	"fmt"
	"strconv"

	"github.com/adamavenir/rpcdeck/internal/presence"
	"github.com/adamavenir/rpcdeck/internal/types"
)

func textField(section, label string, required bool, get func(types.PresenceConfig) string, set func(string) presence.Partial) formField {
	return formField{
		section:  section,
		label:    label,
		kind:     fieldText,
		required: required,
		button:   -1,
		get:      get,
		set: func(e *presence.Editor, v string) error {
			e.Update(set(v))
			return nil
		},
	}
}

func buildFields(buttons int) []formField {
	fields := []formField{
		textField("Presence", "Client Id", true,
			func(c types.PresenceConfig) string { return c.ClientID },
			func(v string) presence.Partial { return presence.Partial{ClientID: presence.String(v)} }),
		textField("Presence", "Name", true,
			func(c types.PresenceConfig) string { return c.Name },
			func(v string) presence.Partial { return presence.Partial{Name: presence.String(v)} }),
		textField("Presence", "Details", false,
			func(c types.PresenceConfig) string { return c.Details },
			func(v string) presence.Partial { return presence.Partial{Details: presence.String(v)} }),
		textField("Presence", "State", false,
			func(c types.PresenceConfig) string { return c.State },
			func(v string) presence.Partial { return presence.Partial{State: presence.String(v)} }),
		{
			section: "Presence",
			label:   "Show Time",
			kind:    fieldSwitch,
			button:  -1,
			get:     func(c types.PresenceConfig) string { return strconv.FormatBool(c.ShowTime) },
			set: func(e *presence.Editor, v string) error {
				on, err := strconv.ParseBool(v)
				if err != nil {
					return err
				}
				e.Update(presence.Partial{ShowTime: presence.Bool(on)})
				return nil
			},
		},
		{
			section: "Activity Type",
			label:   "Activity Type",
			kind:    fieldRadio,
			note:    "What type of activity to display.",
			button:  -1,
			get:     func(c types.PresenceConfig) string { return strconv.Itoa(int(c.Type)) },
			set: func(e *presence.Editor, v string) error {
				a, err := types.ParseActivityType(v)
				if err != nil {
					return err
				}
				e.Update(presence.Partial{Type: presence.Activity(a)})
				return nil
			},
		},
	}

	streamURL := textField("Activity Type", "Stream URL", false,
		func(c types.PresenceConfig) string { return c.URL },
		func(v string) presence.Partial { return presence.Partial{URL: presence.String(v)} })
	streamURL.note = "A Twitch or Youtube link"
	streamURL.placeholder = "https://twitch.tv/..."
	streamURL.enabled = (*presence.Editor).StreamURLEnabled
	fields = append(fields, streamURL)

	assets := []formField{
		textField("Assets", "Large Image Text", true,
			func(c types.PresenceConfig) string { return c.LargeText },
			func(v string) presence.Partial { return presence.Partial{LargeText: presence.String(v)} }),
		textField("Assets", "Large Image Url", true,
			func(c types.PresenceConfig) string { return c.LargeImage },
			func(v string) presence.Partial { return presence.Partial{LargeImage: presence.String(v)} }),
		textField("Assets", "Small Image Text", true,
			func(c types.PresenceConfig) string { return c.SmallText },
			func(v string) presence.Partial { return presence.Partial{SmallText: presence.String(v)} }),
		textField("Assets", "Small Image Url", true,
			func(c types.PresenceConfig) string { return c.SmallImage },
			func(v string) presence.Partial { return presence.Partial{SmallImage: presence.String(v)} }),
	}
	assets[1].placeholder = "https://cdn.discordapp.com/"
	assets[3].placeholder = "https://cdn.discordapp.com/"
	fields = append(fields, assets...)

	for i := 0; i < buttons; i++ {
		idx := i
		fields = append(fields,
			formField{
				section:  "Buttons",
				label:    fmt.Sprintf("Button %d label", idx+1),
				kind:     fieldText,
				required: true,
				button:   idx,
				get:      func(c types.PresenceConfig) string { return buttonAt(c, idx).Label },
				set:      func(e *presence.Editor, v string) error { return e.SetButtonLabel(idx, v) },
			},
			formField{
				section:     "Buttons",
				label:       fmt.Sprintf("Button %d url", idx+1),
				kind:        fieldText,
				required:    true,
				placeholder: "https://",
				button:      idx,
				get:         func(c types.PresenceConfig) string { return buttonAt(c, idx).URL },
				set:         func(e *presence.Editor, v string) error { return e.SetButtonURL(idx, v) },
			},
		)
	}

	fields = append(fields,
		formField{
			section: "Party",
			label:   "Party Members",
			kind:    fieldText,
			button:  -1,
			get:     func(c types.PresenceConfig) string { return partyCount(c.Party, true) },
			set:     (*presence.Editor).SetPartyMembers,
		},
		formField{
			section: "Party",
			label:   "Party Size",
			kind:    fieldText,
			note:    `"State" will have to be defined for the party information to show`,
			button:  -1,
			get:     func(c types.PresenceConfig) string { return partyCount(c.Party, false) },
			set:     (*presence.Editor).SetPartySize,
		},
	)
	return fields
}

func buttonAt(c types.PresenceConfig, i int) types.Button {
	if i < 0 || i >= len(c.Buttons) {
		return types.Button{}
	}
	return c.Buttons[i]
}

func partyCount(p *types.Party, members bool) string {
	if p == nil {
		return ""
	}
	v := p.Size
	if members {
		v = p.Members
	}
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
