package entities

type Exercise struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"index;size:100" json:"name"`
	Category     string  `gorm:"index;size:50" json:"category"`     // e.g., "Push", "Pull", "Legs"
	MuscleGroup  string  `gorm:"size:50" json:"muscle_group"`       // e.g., "Chest", "Back", "Quadriceps"
	Description  *string `gorm:"type:text" json:"description,omitempty"`
	IsBodyweight bool    `gorm:"default:false" json:"is_bodyweight"`
}

func (Exercise) TableName() string {
	return "exercises"
}
