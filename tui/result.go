package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) successView() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("2")).
		Padding(0, 2).
		Render("Booking Confirmed!")

	var reference string
	if m.outcome.BookingId != "" {
		reference = fmt.Sprintf("Booking Reference: %s\n%s",
			lipgloss.NewStyle().Bold(true).Render(m.outcome.BookingId),
			hint("Save this reference number for your records."))
	} else {
		reference = errorStyle.Render("Your booking was successful but a reference number could not be generated.\nPlease contact support with your booking details.")
	}

	details := []string{
		fmt.Sprintf("Experience  %s", m.outcome.Experience),
		fmt.Sprintf("Date        %s", formatDisplayDate(m.outcome.Date)),
		fmt.Sprintf("Time        %s", m.outcome.Time),
		fmt.Sprintf("Guests      %d", m.outcome.Guests),
		fmt.Sprintf("Total Paid  %s", m.outcome.Total),
	}

	content := strings.Join([]string{
		title,
		"",
		"Your experience has been successfully booked.",
		"",
		reference,
		"",
		strings.Join(details, "\n"),
		"",
		hint("A confirmation email has been sent to your email address."),
		"",
		hint("Press b to book another experience."),
	}, "\n")

	return m.centeredPanel(content)
}

func (m appModel) failureView() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("1")).
		Padding(0, 2).
		Render("Booking Failed")

	content := strings.Join([]string{
		title,
		"",
		"Unfortunately, we couldn't process your booking.",
		"",
		labelStyle.Render("What went wrong?"),
		"- Payment processing error",
		"- Network connection issue",
		"- The selected time slot may no longer be available",
		"",
		labelStyle.Render("Need help?"),
		"Contact support@experiences.com or call 1-800-EXP-HELP.",
		"",
		hint("Press r to try again, or b to go back to experiences."),
	}, "\n")

	return m.centeredPanel(content)
}

func (m appModel) centeredPanel(content string) string {
	style := panelStyle
	if m.width > 56 {
		cardWidth := m.width - 8
		if cardWidth > 84 {
			cardWidth = 84
		}
		style = style.Width(cardWidth)
	}
	panel := style.Render(content)
	if m.width > 0 {
		panel = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, panel)
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(panel)
}
