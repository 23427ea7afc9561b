package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/vanderheijden86/spotlight/pkg/config"
)

// KeyMap holds the overlay's key bindings.
type KeyMap struct {
	Next     key.Binding
	Activate key.Binding
	Close    key.Binding
}

// NewKeyMap builds bindings from the configured key names.
func NewKeyMap(kc config.KeyConfig) KeyMap {
	return KeyMap{
		Next:     binding(kc.Next, "next"),
		Activate: binding(kc.Activate, "tap target"),
		Close:    binding(kc.Close, "dismiss"),
	}
}

func binding(keys []string, desc string) key.Binding {
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKey(keys[0]), desc),
	)
}

func helpKey(k string) string {
	switch k {
	case " ":
		return "space"
	case "right":
		return "→"
	default:
		return k
	}
}

// ShortHelp returns the bindings shown in the demo footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Activate, k.Close}
}
