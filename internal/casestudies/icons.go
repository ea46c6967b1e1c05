package casestudies

import (
	"encoding/json"
	"sort"
)

// Icon is a presentation glyph. Only Name is persisted; Glyph is the
// lucide identifier the frontend renders.
type Icon struct {
	Name  string
	Glyph string
}

const defaultIconName = "MessageSquare"

var iconTable = map[string]Icon{
	"MessageSquare": {Name: "MessageSquare", Glyph: "message-square"},
	"Trophy":        {Name: "Trophy", Glyph: "trophy"},
	"Calculator":    {Name: "Calculator", Glyph: "calculator"},
	"Cog":           {Name: "Cog", Glyph: "cog"},
	"Brain":         {Name: "Brain", Glyph: "brain"},
	"BarChart":      {Name: "BarChart", Glyph: "bar-chart"},
	"Rocket":        {Name: "Rocket", Glyph: "rocket"},
	"Zap":           {Name: "Zap", Glyph: "zap"},
}

func DefaultIcon() Icon {
	return iconTable[defaultIconName]
}

// LookupIcon resolves a stored name exactly.
func LookupIcon(name string) (Icon, bool) {
	icon, ok := iconTable[name]
	return icon, ok
}

// ResolveIcon resolves a stored name, falling back to the default glyph for
// unknown or empty names.
func ResolveIcon(name string) Icon {
	if icon, ok := iconTable[name]; ok {
		return icon
	}
	return DefaultIcon()
}

func IconNames() []string {
	names := make([]string, 0, len(iconTable))
	for name := range iconTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (i Icon) MarshalText() ([]byte, error) {
	if i.Name == "" {
		return []byte(defaultIconName), nil
	}
	return []byte(i.Name), nil
}

func (i *Icon) UnmarshalText(text []byte) error {
	*i = ResolveIcon(string(text))
	return nil
}

// UnmarshalJSON accepts any JSON value: anything but a known icon name,
// including null or a number, resolves to the default icon.
func (i *Icon) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		*i = DefaultIcon()
		return nil
	}
	*i = ResolveIcon(name)
	return nil
}
