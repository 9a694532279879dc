package model

// CheckoutOrder is the finalized booking request as the user confirmed it.
// It is built only once the selection is complete and the contact fields
// passed validation, and is immutable from then on.
type CheckoutOrder struct {
	ExperienceId    string
	ExperienceTitle string
	ContactName     string
	ContactEmail    string
	SelectedDate    string
	SelectedTime    string
	Guests          int
	PromoCode       string
	Total           string
}

type ReservationRequest struct {
	ActivityId           string         `json:"activityId"`
	ContactDetails       ContactDetails `json:"contactDetails"`
	SelectedDate         string         `json:"selectedDate"`
	SelectedTime         string         `json:"selectedTime"`
	NumberOfParticipants int            `json:"numberOfParticipants"`
	CouponCode           *string        `json:"couponCode"`
}

type ContactDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type ReservationResponse struct {
	Success bool             `json:"success"`
	Data    *ReservationData `json:"data"`
	Message string           `json:"message"`
}

type ReservationData struct {
	Id                   string               `json:"_id"`
	ConfirmationCode     string               `json:"confirmationCode"`
	Activity             *ReservationActivity `json:"activity"`
	SelectedDate         string               `json:"selectedDate"`
	SelectedTime         string               `json:"selectedTime"`
	NumberOfParticipants int                  `json:"numberOfParticipants"`
	CostBreakdown        *CostBreakdown       `json:"costBreakdown"`
}

type ReservationActivity struct {
	Title string `json:"title"`
}

type CostBreakdown struct {
	GrandTotal float64 `json:"grandTotal"`
}

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// ReservationOutcome is the terminal result of one submission attempt.
// On success BookingId may be empty when the server issued neither a
// confirmation code nor an id; the result view must surface that rather
// than invent a reference.
type ReservationOutcome struct {
	Status     string
	BookingId  string
	Experience string
	Date       string
	Time       string
	Guests     int
	Total      string
}
