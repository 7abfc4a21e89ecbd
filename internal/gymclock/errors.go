package gymclock

import "errors"

var (
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrInvalidGoal      = errors.New("goal reps must be positive and weight non-negative")
	ErrInvalidWorkout   = errors.New("workout sets and reps must be positive, weight and rest non-negative")
	ErrEmptyName        = errors.New("exercise name must not be empty")
)
