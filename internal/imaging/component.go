package imaging

import (
	"strings"

	"github.com/ironsheep/grime/internal/errors"
)

// Component selects the scalar extracted from a pixel by Greyscale.
type Component int

// The closed set of channel selectors.
const (
	RedComponent Component = iota
	GreenComponent
	BlueComponent
	ValueComponent
	IntensityComponent
	LumaComponent
)

// Components lists every selector in declaration order.
var Components = []Component{
	RedComponent, GreenComponent, BlueComponent,
	ValueComponent, IntensityComponent, LumaComponent,
}

// ParseComponent maps a selector name to a Component. Both the short form
// ("red") and the script form ("red-component") are accepted, case-insensitively.
func ParseComponent(name string) (Component, error) {
	n := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), "-component")
	switch n {
	case "red":
		return RedComponent, nil
	case "green":
		return GreenComponent, nil
	case "blue":
		return BlueComponent, nil
	case "value":
		return ValueComponent, nil
	case "intensity":
		return IntensityComponent, nil
	case "luma":
		return LumaComponent, nil
	}
	return 0, errors.New(errors.ErrCodeUnknownComponent, "unknown component %q", name)
}

// String returns the script name of the component, e.g. "red-component".
func (c Component) String() string {
	switch c {
	case RedComponent:
		return "red-component"
	case GreenComponent:
		return "green-component"
	case BlueComponent:
		return "blue-component"
	case ValueComponent:
		return "value-component"
	case IntensityComponent:
		return "intensity-component"
	case LumaComponent:
		return "luma-component"
	}
	return "unknown-component"
}

// Extract returns the scalar this component selects from p.
func (c Component) Extract(p Pixel) (int, error) {
	switch c {
	case RedComponent:
		return p.R, nil
	case GreenComponent:
		return p.G, nil
	case BlueComponent:
		return p.B, nil
	case ValueComponent:
		return p.Value(), nil
	case IntensityComponent:
		return p.Intensity(), nil
	case LumaComponent:
		return p.Luma(), nil
	}
	return 0, errors.New(errors.ErrCodeUnknownComponent, "unknown component %d", int(c))
}
