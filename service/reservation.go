package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"bookit-cli/model"
)

// SubmitReservation posts one reservation and normalizes whatever happens
// into an outcome. The call is made exactly once with no retry: a failed
// submission is terminal for this attempt and the user restarts the flow.
// Transport faults never escape as errors; they become a failure outcome.
func (c *Client) SubmitReservation(ctx context.Context, order model.CheckoutOrder, authToken string) model.ReservationOutcome {
	res, err := c.CreateReservation(ctx, buildReservationRequest(order), authToken)
	if err != nil || !res.Success {
		return model.ReservationOutcome{Status: model.StatusFailure}
	}
	return successOutcome(order, res.Data)
}

// CreateReservation performs the raw reservation POST. The bearer header
// is attached only when a token is present; anonymous submission is
// permitted.
func (c *Client) CreateReservation(ctx context.Context, reservation model.ReservationRequest, authToken string) (model.ReservationResponse, error) {
	endpoint := fmt.Sprintf("%s/reservations", c.baseURL)

	payload, err := json.Marshal(reservation)
	if err != nil {
		return model.ReservationResponse{}, fmt.Errorf("encode reservation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return model.ReservationResponse{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return model.ReservationResponse{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))
		return model.ReservationResponse{}, &APIError{
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Endpoint:   endpoint,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	var parsed model.ReservationResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return model.ReservationResponse{}, fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	return parsed, nil
}

func buildReservationRequest(order model.CheckoutOrder) model.ReservationRequest {
	var coupon *string
	if order.PromoCode != "" {
		code := order.PromoCode
		coupon = &code
	}
	return model.ReservationRequest{
		ActivityId: order.ExperienceId,
		ContactDetails: model.ContactDetails{
			Name:  order.ContactName,
			Email: order.ContactEmail,
			Phone: "",
		},
		SelectedDate:         order.SelectedDate,
		SelectedTime:         order.SelectedTime,
		NumberOfParticipants: order.Guests,
		CouponCode:           coupon,
	}
}

// successOutcome echoes the server's resolved booking fields, falling back
// to the order's client-side values for anything the response omits. A
// reservation with neither confirmation code nor id keeps an empty
// BookingId so the result view can flag the missing reference.
func successOutcome(order model.CheckoutOrder, data *model.ReservationData) model.ReservationOutcome {
	outcome := model.ReservationOutcome{
		Status:     model.StatusSuccess,
		Experience: order.ExperienceTitle,
		Date:       order.SelectedDate,
		Time:       order.SelectedTime,
		Guests:     order.Guests,
		Total:      order.Total,
	}
	if data == nil {
		return outcome
	}

	outcome.BookingId = data.ConfirmationCode
	if outcome.BookingId == "" {
		outcome.BookingId = data.Id
	}
	if data.Activity != nil && data.Activity.Title != "" {
		outcome.Experience = data.Activity.Title
	}
	if data.SelectedDate != "" {
		outcome.Date = data.SelectedDate
	}
	if data.SelectedTime != "" {
		outcome.Time = data.SelectedTime
	}
	if data.NumberOfParticipants > 0 {
		outcome.Guests = data.NumberOfParticipants
	}
	if data.CostBreakdown != nil && data.CostBreakdown.GrandTotal > 0 {
		outcome.Total = fmt.Sprintf("%.2f", data.CostBreakdown.GrandTotal)
	}
	return outcome
}
