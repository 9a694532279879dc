package model

type Experience struct {
	Id               string          `json:"_id"`
	Title            string          `json:"title"`
	ShortDescription string          `json:"shortDescription"`
	FullDescription  string          `json:"fullDescription"`
	PricePerPerson   float64         `json:"pricePerPerson"`
	Duration         int             `json:"duration"`
	TimeLength       string          `json:"timeLength"`
	Type             string          `json:"type"`
	Rating           float64         `json:"rating"`
	Location         Location        `json:"location"`
	ScheduledDates   []ScheduledDate `json:"scheduledDates"`
}

type Location struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type ScheduledDate struct {
	ScheduledDate string     `json:"scheduledDate"`
	TimeSlots     []TimeSlot `json:"timeSlots"`
}

type TimeSlot struct {
	SlotTime string `json:"slotTime"`
}

// HasSlot reports whether slot is one of the date's bookable time slots.
func (d ScheduledDate) HasSlot(slot string) bool {
	for _, s := range d.TimeSlots {
		if s.SlotTime == slot {
			return true
		}
	}
	return false
}

type ExperienceList struct {
	Success bool         `json:"success"`
	Data    []Experience `json:"data"`
	Total   int          `json:"total"`
	Page    int          `json:"page"`
	Pages   int          `json:"pages"`
	Message string       `json:"message"`
}

type ExperienceDetail struct {
	Success bool       `json:"success"`
	Data    Experience `json:"data"`
	Message string     `json:"message"`
}
