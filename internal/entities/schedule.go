package entities

// PlanRest is the plan label of a day without training.
const PlanRest = "Rest"

// Schedule assigns a plan label ("Push", "Legs", "Rest") to a weekday.
type Schedule struct {
	Day  string `gorm:"primaryKey;size:10" json:"day"`
	Plan string `gorm:"size:50" json:"plan"`
}

func (Schedule) TableName() string {
	return "schedules"
}

// Goal holds the daily rep/weight target for a weekday.
type Goal struct {
	Day    string `gorm:"primaryKey;size:10" json:"day"`
	Reps   int    `json:"reps"`
	Weight int    `json:"weight"`
}

func (Goal) TableName() string {
	return "goals"
}
