package timer

import (
	"fmt"
	"strings"
)

// Preset is a named rest duration.
type Preset struct {
	Name    string
	Seconds int
}

// RestPresets are the exercise-specific rest times offered by the timer.
var RestPresets = []Preset{
	{Name: "Compound Lifts", Seconds: 180},
	{Name: "Isolation Exercises", Seconds: 90},
	{Name: "Cardio Intervals", Seconds: 60},
	{Name: "Powerlifting", Seconds: 300},
	{Name: "Bodyweight", Seconds: 45},
}

// QuickAddSeconds are the deltas offered for extending a running rest. The
// first one is used when no delta is given.
var QuickAddSeconds = []int{15, 30, 60}

// QuickAddLabel renders the quick-add deltas as "+15 +30 +60".
func QuickAddLabel() string {
	labels := make([]string, len(QuickAddSeconds))
	for i, s := range QuickAddSeconds {
		labels[i] = fmt.Sprintf("+%d", s)
	}
	return strings.Join(labels, " ")
}

// FindPreset looks a preset up by name, ignoring case and surrounding space.
func FindPreset(name string) (Preset, bool) {
	name = strings.TrimSpace(name)
	for _, p := range RestPresets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// FormatTime renders seconds as MM:SS.
func FormatTime(seconds int) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%02d:%02d", sign, seconds/60, seconds%60)
}
