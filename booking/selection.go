package booking

import "bookit-cli/model"

const (
	MinGuests = 1
	MaxGuests = 10
)

// Selection holds one wizard session's in-progress choice. A chosen time
// always belongs to the chosen date: picking a new date clears the time.
type Selection struct {
	Experience model.Experience
	Date       model.ScheduledDate
	Time       string
	Guests     int
}

func NewSelection(exp model.Experience) Selection {
	return Selection{Experience: exp, Guests: MinGuests}
}

// ChooseDate sets the date and invalidates any previously chosen time.
func (s *Selection) ChooseDate(date model.ScheduledDate) {
	s.Date = date
	s.Time = ""
}

// ChooseTime picks a slot. It reports false, leaving the selection
// untouched, when no date is chosen or the slot does not belong to it.
func (s *Selection) ChooseTime(slot string) bool {
	if s.Date.ScheduledDate == "" || !s.Date.HasSlot(slot) {
		return false
	}
	s.Time = slot
	return true
}

// AddGuest bumps the guest count; a no-op at MaxGuests.
func (s *Selection) AddGuest() {
	if s.Guests < MaxGuests {
		s.Guests++
	}
}

// RemoveGuest lowers the guest count; a no-op at MinGuests.
func (s *Selection) RemoveGuest() {
	if s.Guests > MinGuests {
		s.Guests--
	}
}

// Ready reports whether the selection can proceed to checkout.
func (s Selection) Ready() bool {
	return s.Experience.Id != "" && s.Date.ScheduledDate != "" && s.Time != ""
}

// Summary computes the current price breakdown for the selection.
func (s Selection) Summary(discountRate float64) PriceSummary {
	guests := s.Guests
	if guests < MinGuests {
		guests = MinGuests
	}
	return Price(s.Experience.PricePerPerson, guests, discountRate)
}
