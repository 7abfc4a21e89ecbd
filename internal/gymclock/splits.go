package gymclock

import (
	"context"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mrlokans/gymclock/internal/entities"
)

// Values used when a split template does not spell out a number.
const (
	DefaultSets   = 3
	DefaultReps   = 10
	DefaultWeight = 50.0
)

// ApplyResult counts what ApplySplit did.
type ApplyResult struct {
	TemplatesFound   int
	WorkoutsDeleted  int64
	WorkoutsInserted int
	// Skipped counts templates whose exercise is missing from the catalog or
	// whose program day the split's layout never schedules.
	Skipped int
}

// ApplySplit replaces the planned workouts of the whole week with the
// split's templates. Each template lands on every weekday the split's
// layout assigns to its program day; templates that name a weekday directly
// land on that day. Templates are matched to the catalog by exact exercise
// name and skipped when no exercise matches.
//
// A split without templates leaves the plan untouched. Only store failures
// are returned as errors, and they roll the whole week back.
func (r *Repository) ApplySplit(ctx context.Context, splitID string) (ApplyResult, error) {
	var result ApplyResult
	logger := log.WithField("split", splitID)

	templates, err := r.splits.Templates(ctx, splitID)
	if err != nil {
		return result, err
	}
	result.TemplatesFound = len(templates)
	if len(templates) == 0 {
		logger.Warn("apply split: no templates found")
		return result, nil
	}

	layout, err := r.splits.Layout(ctx, splitID)
	if err != nil {
		return result, err
	}
	weekdays := weekdaysByPlan(layout)

	err = r.db.Transaction(ctx, func(tx *gorm.DB) error {
		workoutRepo := r.workouts.WithTx(tx)
		exerciseRepo := r.exercises.WithTx(tx)

		deleted, err := workoutRepo.DeleteForDay(ctx, entities.Weekdays...)
		if err != nil {
			return err
		}
		result.WorkoutsDeleted = deleted

		byName := make(map[string]*entities.Exercise)
		var planned []entities.Workout
		for _, tmpl := range templates {
			exercise, cached := byName[tmpl.ExerciseName]
			if !cached {
				if exercise, err = exerciseRepo.GetByName(ctx, tmpl.ExerciseName); err != nil {
					return err
				}
				byName[tmpl.ExerciseName] = exercise
			}
			if exercise == nil {
				logger.WithField("exercise", tmpl.ExerciseName).Warn("apply split: exercise not found")
				result.Skipped++
				continue
			}

			days := resolveWeekdays(tmpl.Day, weekdays)
			if len(days) == 0 {
				logger.WithField("day", tmpl.Day).Warn("apply split: program day is not scheduled")
				result.Skipped++
				continue
			}

			for _, day := range days {
				planned = append(planned, workoutFromTemplate(tmpl, exercise, day))
			}
		}
		if err := workoutRepo.CreateBatch(ctx, planned); err != nil {
			return err
		}
		result.WorkoutsInserted = len(planned)
		return nil
	}, entities.Workout{}.TableName())
	if err != nil {
		return ApplyResult{TemplatesFound: result.TemplatesFound}, err
	}

	logger.WithFields(log.Fields{
		"templates": result.TemplatesFound,
		"deleted":   result.WorkoutsDeleted,
		"inserted":  result.WorkoutsInserted,
		"skipped":   result.Skipped,
	}).Info("applied split")
	return result, nil
}

// ApplySplitToSchedule writes the split's week layout into the schedule.
// Unknown splits leave the schedule untouched.
func (r *Repository) ApplySplitToSchedule(ctx context.Context, splitID string) error {
	layout, err := r.splits.Layout(ctx, splitID)
	if err != nil {
		return err
	}
	if len(layout) == 0 {
		log.WithField("split", splitID).Warn("apply split to schedule: no layout found")
		return nil
	}

	schedules := make([]entities.Schedule, 0, len(layout))
	for _, day := range layout {
		schedules = append(schedules, entities.Schedule{Day: day.Weekday, Plan: day.Plan})
	}
	return r.schedules.UpsertAll(ctx, schedules)
}

func workoutFromTemplate(tmpl entities.SplitTemplate, exercise *entities.Exercise, day string) entities.Workout {
	weight := DefaultWeight
	if exercise.IsBodyweight {
		weight = 0
	}
	return entities.Workout{
		ExerciseID:      exercise.ID,
		Day:             day,
		Sets:            parseSets(tmpl.Sets),
		Reps:            parseReps(tmpl.Reps),
		Weight:          weight,
		RestTimeSeconds: tmpl.RestTime,
		OrderInWorkout:  tmpl.OrderInDay,
	}
}

func weekdaysByPlan(layout []entities.SplitDay) map[string][]string {
	byPlan := make(map[string][]string)
	for _, day := range layout {
		byPlan[day.Plan] = append(byPlan[day.Plan], day.Weekday)
	}
	return byPlan
}

func resolveWeekdays(programDay string, byPlan map[string][]string) []string {
	if entities.IsWeekday(programDay) {
		return []string{programDay}
	}
	return byPlan[programDay]
}

// parseSets reads "4" as 4; anything else ("3-4", "3x5") falls back to
// DefaultSets.
func parseSets(sets string) int {
	n, err := strconv.Atoi(strings.TrimSpace(sets))
	if err != nil {
		return DefaultSets
	}
	return n
}

// parseReps reads the lower bound of a range: "8-12" is 8, "5" is 5.
// Non-numeric prescriptions such as "AMRAP" fall back to DefaultReps.
func parseReps(reps string) int {
	lower, _, _ := strings.Cut(reps, "-")
	n, err := strconv.Atoi(strings.TrimSpace(lower))
	if err != nil {
		return DefaultReps
	}
	return n
}
