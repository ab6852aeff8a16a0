package models

// DayWindow is a wall-clock range in "HH:mm".
type DayWindow struct {
	Start string `gorm:"size:5" json:"start"`
	End   string `gorm:"size:5" json:"end"`
}

// WorkingHours is stored inline on the user row.
type WorkingHours struct {
	Weekday  DayWindow `gorm:"embedded;embeddedPrefix:weekday_" json:"weekday"`
	Saturday DayWindow `gorm:"embedded;embeddedPrefix:saturday_" json:"saturday"`
}

func DefaultWorkingHours() WorkingHours {
	return WorkingHours{
		Weekday:  DayWindow{Start: "09:00", End: "21:00"},
		Saturday: DayWindow{Start: "10:00", End: "19:00"},
	}
}

func (w WorkingHours) IsZero() bool {
	return w == WorkingHours{}
}
