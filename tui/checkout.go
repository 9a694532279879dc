package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bookit-cli/booking"
	"bookit-cli/model"
)

const (
	focusName = iota
	focusEmail
	focusPromo
	focusCount
)

var (
	labelStyle   = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	panelStyle   = lipgloss.NewStyle().
			Padding(1, 3).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("63")).
			MarginTop(1)
)

func (m appModel) updateCheckout(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state = stateSelectDate
		return m, nil
	case "ctrl+s":
		return m.submitBooking()
	case "tab", "down":
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case "shift+tab", "up":
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil
	}

	if msg.Type == tea.KeyEnter {
		if m.focus == focusPromo {
			m = m.applyPromo()
			return m, nil
		}
		m.setFocus(m.focus + 1)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		before := m.nameInput.Value()
		m.nameInput, cmd = m.nameInput.Update(msg)
		if m.nameInput.Value() != before {
			m.fieldErrs.Name = ""
		}
	case focusEmail:
		before := m.emailInput.Value()
		m.emailInput, cmd = m.emailInput.Update(msg)
		if m.emailInput.Value() != before {
			m.fieldErrs.Email = ""
		}
	case focusPromo:
		if m.promoApplied {
			// a valid applied promo locks the field
			return m, nil
		}
		before := m.promoInput.Value()
		m.promoInput, cmd = m.promoInput.Update(msg)
		if m.promoInput.Value() != before {
			m.promoError = ""
		}
	}
	return m, cmd
}

func (m *appModel) setFocus(focus int) {
	if focus < 0 || focus >= focusCount {
		return
	}
	m.focus = focus
	m.nameInput.Blur()
	m.emailInput.Blur()
	m.promoInput.Blur()
	switch focus {
	case focusName:
		m.nameInput.Focus()
	case focusEmail:
		m.emailInput.Focus()
	case focusPromo:
		if !m.promoApplied {
			m.promoInput.Focus()
		}
	}
}

// applyPromo validates the entered code against the registry. Applying
// while a code is already active is a no-op; at most one promo per order.
func (m appModel) applyPromo() appModel {
	if m.promoApplied {
		return m
	}
	code := strings.TrimSpace(m.promoInput.Value())
	if code == "" {
		return m
	}
	rate, ok := m.promos.Validate(code)
	if !ok {
		m.promoError = "Invalid promo code"
		return m
	}
	m.promoRate = rate
	m.promoApplied = true
	m.promoError = ""
	m.promoInput.SetValue(strings.ToUpper(code))
	m.promoInput.Blur()
	return m
}

// submitBooking validates the contact fields and, when clean, freezes the
// order and moves to the submitting state. While submitting, further
// submit events never reach here, so one attempt maps to one request.
func (m appModel) submitBooking() (tea.Model, tea.Cmd) {
	m.fieldErrs = booking.ValidateContact(m.nameInput.Value(), m.emailInput.Value())
	if !m.fieldErrs.OK() {
		return m, nil
	}
	if !m.selection.Ready() {
		m.state = stateBrowse
		return m, nil
	}

	order := m.buildOrder()
	m.state = stateSubmitting
	return m, tea.Batch(m.submitReservationCmd(order), m.spinner.Tick)
}

func (m appModel) buildOrder() model.CheckoutOrder {
	summary := m.selection.Summary(m.activeRate())
	promo := ""
	if m.promoApplied {
		promo = strings.ToUpper(strings.TrimSpace(m.promoInput.Value()))
	}
	return model.CheckoutOrder{
		ExperienceId:    m.selection.Experience.Id,
		ExperienceTitle: m.selection.Experience.Title,
		ContactName:     strings.TrimSpace(m.nameInput.Value()),
		ContactEmail:    strings.TrimSpace(m.emailInput.Value()),
		SelectedDate:    m.selection.Date.ScheduledDate,
		SelectedTime:    m.selection.Time,
		Guests:          m.selection.Guests,
		PromoCode:       promo,
		Total:           booking.FormatAmount(summary.Total),
	}
}

func (m appModel) activeRate() float64 {
	if m.promoApplied {
		return m.promoRate
	}
	return 0
}

func (m appModel) submitReservationCmd(order model.CheckoutOrder) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		outcome := m.client.SubmitReservation(ctx, order, m.authToken)
		return reservationMsg{outcome: outcome}
	}
}

func (m appModel) checkoutView() string {
	summary := m.selection.Summary(m.activeRate())

	form := []string{
		labelStyle.Render("Your Information"),
		"",
		"Full Name",
		m.nameInput.View(),
	}
	if m.fieldErrs.Name != "" {
		form = append(form, errorStyle.Render(m.fieldErrs.Name))
	}
	form = append(form,
		"",
		"Email Address",
		m.emailInput.View(),
	)
	if m.fieldErrs.Email != "" {
		form = append(form, errorStyle.Render(m.fieldErrs.Email))
	}
	form = append(form,
		"",
		labelStyle.Render("Promo Code"),
		m.promoInput.View(),
	)
	switch {
	case m.promoApplied:
		form = append(form, successStyle.Render(fmt.Sprintf("Promo code applied! You saved %s", booking.FormatAmount(summary.Discount))))
	case m.promoError != "":
		form = append(form, errorStyle.Render(m.promoError))
	default:
		form = append(form, hint("Try SAVE10, SAVE20 or WELCOME"))
	}

	order := []string{
		labelStyle.Render("Order Summary"),
		"",
		fmt.Sprintf("Experience  %s", m.selection.Experience.Title),
		fmt.Sprintf("Date        %s", formatDisplayDate(m.selection.Date.ScheduledDate)),
		fmt.Sprintf("Time        %s", m.selection.Time),
		fmt.Sprintf("Guests      %d", m.selection.Guests),
		"",
		fmt.Sprintf("Subtotal    %s", booking.FormatAmount(summary.Subtotal)),
		fmt.Sprintf("Taxes       %s", booking.FormatAmount(summary.Taxes)),
	}
	if m.promoApplied {
		order = append(order, successStyle.Render(fmt.Sprintf("Discount   -%s", booking.FormatAmount(summary.Discount))))
	}
	order = append(order,
		"",
		labelStyle.Render(fmt.Sprintf("Total       %s", booking.FormatAmount(summary.Total))),
	)

	left := strings.Join(form, "\n")
	right := panelStyle.Render(strings.Join(order, "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", right)
}

func (m appModel) submittingView() string {
	return fmt.Sprintf("%s Processing your booking...\n\n%s", m.spinner.View(), hint("This may take a moment. Submission cannot be cancelled."))
}
