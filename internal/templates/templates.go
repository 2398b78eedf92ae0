// Package templates supplies the fixed quick-start presets for the add form.
package templates

import (
	"strings"

	"github.com/mlenoir/octogym-cli/internal/domain"
)

type Template struct {
	Label           string
	Type            string
	DurationMinutes int
	Intensity       string
}

var presets = []Template{
	{Label: "Jogging 30 min (Medium)", Type: "Jogging", DurationMinutes: 30, Intensity: "Medium"},
	{Label: "Weights 45 min (High)", Type: "Weightlifting", DurationMinutes: 45, Intensity: "High"},
	{Label: "Yoga 20 min (Low)", Type: "Yoga", DurationMinutes: 20, Intensity: "Low"},
}

// List returns the presets in display order.
func List() []Template {
	out := make([]Template, len(presets))
	copy(out, presets)
	return out
}

// Find matches a preset by case-insensitive prefix on its label or type.
func Find(name string) (Template, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return Template{}, false
	}

	for _, preset := range presets {
		if strings.HasPrefix(strings.ToLower(preset.Label), needle) ||
			strings.HasPrefix(strings.ToLower(preset.Type), needle) {
			return preset, true
		}
	}

	return Template{}, false
}

// Draft prefills a workout draft from the preset. The date stays empty so the
// record store can default it.
func (t Template) Draft() domain.WorkoutDraft {
	return domain.WorkoutDraft{
		Type:            t.Type,
		DurationMinutes: t.DurationMinutes,
		Intensity:       t.Intensity,
	}
}
