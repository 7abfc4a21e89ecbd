// Package seed holds the built-in exercise catalog and training splits that
// are written to an empty store on first run.
package seed

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/mrlokans/gymclock/internal/entities"
)

//go:embed exercises.json
var exercisesJSON []byte

//go:embed splits.json
var splitsJSON []byte

// ErrInvalidCatalog wraps every validation failure of a catalog.
var ErrInvalidCatalog = errors.New("invalid seed catalog")

// Split is a predefined split together with its templates and its week
// layout (weekday to program day, "Rest" for off days).
type Split struct {
	entities.PredefinedSplit
	Templates []entities.SplitTemplate `json:"templates"`
	Layout    map[string]string        `json:"layout"`
}

// Days returns the layout as rows, Monday first.
func (s Split) Days() []entities.SplitDay {
	days := make([]entities.SplitDay, 0, len(s.Layout))
	for _, weekday := range entities.Weekdays {
		if plan, ok := s.Layout[weekday]; ok {
			days = append(days, entities.SplitDay{SplitID: s.ID, Weekday: weekday, Plan: plan})
		}
	}
	return days
}

type Catalog struct {
	Exercises []entities.Exercise
	Splits    []Split
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(exercisesJSON, splitsJSON)
})

// Default returns a private copy of the embedded catalog; callers may modify
// it freely.
func Default() (*Catalog, error) {
	catalog, err := loadDefault()
	if err != nil {
		return nil, err
	}
	return catalog.clone(), nil
}

// Parse decodes and validates a catalog from its JSON documents.
func Parse(exercises, splits []byte) (*Catalog, error) {
	var catalog Catalog
	if err := json.Unmarshal(exercises, &catalog.Exercises); err != nil {
		return nil, fmt.Errorf("failed to decode exercises: %w", err)
	}
	if err := json.Unmarshal(splits, &catalog.Splits); err != nil {
		return nil, fmt.Errorf("failed to decode splits: %w", err)
	}
	for i := range catalog.Splits {
		split := &catalog.Splits[i]
		if split.Source == "" {
			split.Source = entities.DefaultSplitSource
		}
		for j := range split.Templates {
			split.Templates[j].SplitID = split.ID
		}
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// Validate checks that names are unique, that every template names a catalog
// exercise and that layouts only use weekdays and program days of their split.
func (c *Catalog) Validate() error {
	names := make(map[string]struct{}, len(c.Exercises))
	for _, exercise := range c.Exercises {
		if exercise.Name == "" {
			return fmt.Errorf("%w: exercise without a name", ErrInvalidCatalog)
		}
		if _, dup := names[exercise.Name]; dup {
			return fmt.Errorf("%w: duplicate exercise %q", ErrInvalidCatalog, exercise.Name)
		}
		names[exercise.Name] = struct{}{}
	}

	ids := make(map[string]struct{}, len(c.Splits))
	for _, split := range c.Splits {
		if split.ID == "" {
			return fmt.Errorf("%w: split without an id", ErrInvalidCatalog)
		}
		if _, dup := ids[split.ID]; dup {
			return fmt.Errorf("%w: duplicate split %q", ErrInvalidCatalog, split.ID)
		}
		ids[split.ID] = struct{}{}

		programDays := make(map[string]struct{})
		for _, tmpl := range split.Templates {
			if _, ok := names[tmpl.ExerciseName]; !ok {
				return fmt.Errorf("%w: split %q references unknown exercise %q", ErrInvalidCatalog, split.ID, tmpl.ExerciseName)
			}
			programDays[tmpl.Day] = struct{}{}
		}
		for weekday, plan := range split.Layout {
			if !entities.IsWeekday(weekday) {
				return fmt.Errorf("%w: split %q layout uses %q: %w", ErrInvalidCatalog, split.ID, weekday, entities.ErrInvalidDay)
			}
			if _, ok := programDays[plan]; !ok && plan != entities.PlanRest {
				return fmt.Errorf("%w: split %q has no templates for %q", ErrInvalidCatalog, split.ID, plan)
			}
		}
	}
	return nil
}

func (c *Catalog) clone() *Catalog {
	out := &Catalog{
		Exercises: append([]entities.Exercise(nil), c.Exercises...),
		Splits:    make([]Split, len(c.Splits)),
	}
	for i, split := range c.Splits {
		split.Templates = append([]entities.SplitTemplate(nil), split.Templates...)
		layout := make(map[string]string, len(split.Layout))
		for k, v := range split.Layout {
			layout[k] = v
		}
		split.Layout = layout
		out.Splits[i] = split
	}
	return out
}
