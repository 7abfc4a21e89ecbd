package entities

import "encoding/json"

// DefaultSplitSource is where the built-in programs were taken from.
const DefaultSplitSource = "thefitness.wiki"

// DefaultTemplateRestSeconds is the rest of a template whose JSON has no
// rest_time. An explicit 0 is kept.
const DefaultTemplateRestSeconds = 90

type SplitDifficulty string

const (
	SplitDifficultyBeginner     SplitDifficulty = "Beginner"
	SplitDifficultyIntermediate SplitDifficulty = "Intermediate"
	SplitDifficultyAdvanced     SplitDifficulty = "Advanced"
)

// PredefinedSplit is a named multi-day program, e.g. Push Pull Legs.
type PredefinedSplit struct {
	ID          string          `gorm:"primaryKey;size:50" json:"id"` // e.g., "ppl", "upper_lower"
	Name        string          `gorm:"size:100" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Source      string          `gorm:"size:100;default:'thefitness.wiki'" json:"source"`
	DaysPerWeek int             `json:"days_per_week"`
	Difficulty  SplitDifficulty `gorm:"size:20" json:"difficulty"`
	Category    string          `gorm:"size:50" json:"category"` // "Strength", "Hypertrophy", "Powerlifting"
}

func (PredefinedSplit) TableName() string {
	return "predefined_splits"
}

// SplitTemplate is one exercise of one program day of a split.
type SplitTemplate struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	SplitID      string           `gorm:"index;size:50;not null" json:"split_id"`
	Split        *PredefinedSplit `gorm:"foreignKey:SplitID;constraint:OnDelete:CASCADE" json:"-"`
	Day          string           `gorm:"size:50" json:"day"` // program day label, e.g. "Push", "Upper"
	ExerciseName string           `gorm:"size:100" json:"exercise_name"`
	Sets         string           `gorm:"size:20" json:"sets"`             // e.g., "3", "3-4", "3x5"
	Reps         string           `gorm:"size:20" json:"reps"`             // e.g., "8-12", "5", "AMRAP"
	Weight       *string          `gorm:"size:50" json:"weight,omitempty"` // e.g., "bodyweight", "75% 1RM"
	RestTime     int              `json:"rest_time"`                       // seconds
	OrderInDay   int              `json:"order_in_day"`
	Notes        *string          `gorm:"type:text" json:"notes,omitempty"`
}

func (SplitTemplate) TableName() string {
	return "split_templates"
}

func (t *SplitTemplate) UnmarshalJSON(data []byte) error {
	type plain SplitTemplate
	decoded := plain{RestTime: DefaultTemplateRestSeconds}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*t = SplitTemplate(decoded)
	return nil
}

// SplitDay places a program day of a split on a weekday.
type SplitDay struct {
	SplitID string           `gorm:"primaryKey;size:50" json:"split_id"`
	Split   *PredefinedSplit `gorm:"foreignKey:SplitID;constraint:OnDelete:CASCADE" json:"-"`
	Weekday string           `gorm:"primaryKey;size:10" json:"weekday"`
	Plan    string           `gorm:"size:50" json:"plan"`
}

func (SplitDay) TableName() string {
	return "split_days"
}
