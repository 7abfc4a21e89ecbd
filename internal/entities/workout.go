package entities

import "time"

// Workout is one planned exercise instance on one weekday.
type Workout struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	ExerciseID      uint       `gorm:"index;not null" json:"exercise_id"`
	Exercise        *Exercise  `gorm:"foreignKey:ExerciseID;constraint:OnDelete:CASCADE" json:"-"`
	Day             string     `gorm:"index;size:10" json:"day"`
	Sets            int        `json:"sets"`
	Reps            int        `json:"reps"`
	Weight          float64    `json:"weight"`
	RestTimeSeconds int        `json:"rest_time_seconds"`
	Notes           *string    `gorm:"type:text" json:"notes,omitempty"`
	OrderInWorkout  int        `gorm:"default:0" json:"order_in_workout"`
	IsCompleted     bool       `gorm:"default:false" json:"is_completed"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

func (Workout) TableName() string {
	return "workouts"
}

// WorkoutWithExercise is a Workout joined with its exercise's catalog fields.
type WorkoutWithExercise struct {
	Workout
	ExerciseName string `json:"exercise_name"`
	Category     string `json:"category"`
	MuscleGroup  string `json:"muscle_group"`
}

// WorkoutLog is an append-only history row written when a workout is completed.
type WorkoutLog struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ExerciseID       uint      `gorm:"index;not null" json:"exercise_id"`
	Exercise         *Exercise `gorm:"foreignKey:ExerciseID;constraint:OnDelete:CASCADE" json:"-"`
	Sets             int       `json:"sets"`
	Reps             int       `json:"reps"`
	Weight           float64   `json:"weight"`
	CompletedAt      time.Time `gorm:"index" json:"completed_at"`
	Duration         *int      `json:"duration,omitempty"` // seconds
	Notes            *string   `gorm:"type:text" json:"notes,omitempty"`
	IsPersonalRecord bool      `gorm:"default:false" json:"is_personal_record"`
}

func (WorkoutLog) TableName() string {
	return "workout_logs"
}
