package presence

import (
	"fmt"
	"strings"

	"github.com/adamavenir/rpcdeck/internal/types"
)

// ValidationFailed lists required fields that are empty.
type ValidationFailed struct {
	Fields []string
}

func (e *ValidationFailed) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Validate checks the fields the editor marks as required.
func Validate(c types.PresenceConfig) error {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	check("client id", c.ClientID)
	check("name", c.Name)
	check("large image text", c.LargeText)
	check("large image url", c.LargeImage)
	check("small image text", c.SmallText)
	check("small image url", c.SmallImage)
	for i, b := range c.Buttons {
		check(fmt.Sprintf("button %d label", i+1), b.Label)
		check(fmt.Sprintf("button %d url", i+1), b.URL)
	}
	if len(missing) > 0 {
		return &ValidationFailed{Fields: missing}
	}
	return nil
}
