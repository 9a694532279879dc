package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"bookit-cli/booking"
	"bookit-cli/model"
)

type testItem struct {
	value string
}

func (t testItem) Title() string       { return t.value }
func (t testItem) Description() string { return "" }
func (t testItem) FilterValue() string { return strings.ToLower(t.value) }

func testExperience() model.Experience {
	return model.Experience{
		Id:             "exp-1",
		Title:          "Sunset Yoga Session",
		PricePerPerson: 45.00,
		ScheduledDates: []model.ScheduledDate{
			{
				ScheduledDate: "2026-09-05",
				TimeSlots:     []model.TimeSlot{{SlotTime: "06:00 AM"}, {SlotTime: "07:00 AM"}},
			},
			{
				ScheduledDate: "2026-09-06",
				TimeSlots:     []model.TimeSlot{{SlotTime: "05:30 PM"}},
			},
		},
	}
}

func newTestModel() appModel {
	return New().(appModel)
}

func newDetailModel() appModel {
	m := newTestModel()
	exp := testExperience()
	m.selection = booking.NewSelection(exp)
	m.dateList.SetItems(buildDateItems(exp.ScheduledDates))
	m.dateList.Select(0)
	m.state = stateSelectDate
	return m
}

func newFilterModel(items []list.Item) *appModel {
	m := newTestModel()
	m.state = stateBrowse
	m.experienceList = newList("Experiences")
	m.experienceList.SetItems(items)
	return &m
}

func TestHandleFilterInput_AppendsRunes(t *testing.T) {
	m := newFilterModel([]list.Item{
		testItem{value: "Sunset Yoga Session"},
		testItem{value: "Mountain Hiking Adventure"},
	})

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}) {
		t.Fatal("expected filter input to be handled")
	}
	if got := m.experienceList.FilterValue(); got != "y" {
		t.Fatalf("expected filter value to be %q, got %q", "y", got)
	}

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")}) {
		t.Fatal("expected filter input to be handled")
	}
	if got := m.experienceList.FilterValue(); got != "yo" {
		t.Fatalf("expected filter value to be %q, got %q", "yo", got)
	}
}

func TestHandleFilterInput_Backspace(t *testing.T) {
	m := newFilterModel([]list.Item{
		testItem{value: "Sunset Yoga Session"},
	})

	_ = m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	_ = m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeyBackspace}) {
		t.Fatal("expected backspace to be handled")
	}
	if got := m.experienceList.FilterValue(); got != "y" {
		t.Fatalf("expected filter value to be %q, got %q", "y", got)
	}
}

func TestHandleFilterInput_IgnoredOnPlainLists(t *testing.T) {
	m := newDetailModel()
	if m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}) {
		t.Fatal("expected date list not to accept filter input")
	}
}

func TestGuestKeys_Clamp(t *testing.T) {
	m := newDetailModel()

	next, _, handled := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-")})
	if !handled {
		t.Fatal("expected key to be handled")
	}
	if next.selection.Guests != booking.MinGuests {
		t.Fatalf("expected guests to stay at %d, got %d", booking.MinGuests, next.selection.Guests)
	}

	for i := 0; i < 15; i++ {
		next, _, _ = next.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")})
	}
	if next.selection.Guests != booking.MaxGuests {
		t.Fatalf("expected guests to cap at %d, got %d", booking.MaxGuests, next.selection.Guests)
	}
}

func TestChooseDateViaList_ResetsTime(t *testing.T) {
	m := newDetailModel()
	m.selection.ChooseDate(m.selection.Experience.ScheduledDates[0])
	if !m.selection.ChooseTime("06:00 AM") {
		t.Fatal("expected slot to be accepted")
	}

	m.dateList.Select(1)
	next, _, handled := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if !handled {
		t.Fatal("expected enter to be handled")
	}
	if next.selection.Time != "" {
		t.Fatalf("expected time to reset on date change, got %q", next.selection.Time)
	}
	if next.state != stateSelectTime {
		t.Fatalf("expected time selection state, got %d", next.state)
	}
}

func TestContinueToCheckout_RejectedWithoutTime(t *testing.T) {
	m := newDetailModel()
	m.selection.ChooseDate(m.selection.Experience.ScheduledDates[0])

	next, _, handled := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	if !handled {
		t.Fatal("expected key to be handled")
	}
	if next.state != stateSelectDate {
		t.Fatalf("expected to stay in date selection, got %d", next.state)
	}
	if next.notice == "" {
		t.Fatal("expected a notice explaining the rejection")
	}
}

func TestContinueToCheckout_AdvancesWhenReady(t *testing.T) {
	m := newDetailModel()
	m.selection.ChooseDate(m.selection.Experience.ScheduledDates[0])
	if !m.selection.ChooseTime("06:00 AM") {
		t.Fatal("expected slot to be accepted")
	}

	next, _, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	if next.state != stateCheckout {
		t.Fatalf("expected checkout state, got %d", next.state)
	}
}

func TestEnterCheckout_RedirectsWithoutSelection(t *testing.T) {
	m := newTestModel()
	next := m.enterCheckout()
	if next.state != stateBrowse {
		t.Fatalf("expected silent redirect to browse, got %d", next.state)
	}
}

func TestShowResult_RedirectsWithoutPayload(t *testing.T) {
	m := newTestModel()
	next := m.showResult(model.ReservationOutcome{})
	if next.state != stateBrowse {
		t.Fatalf("expected silent redirect to browse, got %d", next.state)
	}
}

func TestShowResult_Success(t *testing.T) {
	m := newTestModel()
	next := m.showResult(model.ReservationOutcome{
		Status:     model.StatusSuccess,
		BookingId:  "ABC123",
		Experience: "Sunset Yoga Session",
		Guests:     2,
		Total:      "99.00",
	})
	if next.state != stateSuccess {
		t.Fatalf("expected success state, got %d", next.state)
	}
	if !strings.Contains(next.successView(), "ABC123") {
		t.Fatal("expected booking reference in success view")
	}
}

func TestShowResult_DegradedSuccess(t *testing.T) {
	m := newTestModel()
	next := m.showResult(model.ReservationOutcome{
		Status:     model.StatusSuccess,
		Experience: "Sunset Yoga Session",
		Guests:     2,
		Total:      "99.00",
	})
	if next.state != stateSuccess {
		t.Fatalf("expected success state, got %d", next.state)
	}
	view := next.successView()
	if !strings.Contains(view, "reference number could not be generated") {
		t.Fatal("expected degraded-success notice in view")
	}
}

func TestShowResult_Failure(t *testing.T) {
	m := newTestModel()
	next := m.showResult(model.ReservationOutcome{Status: model.StatusFailure})
	if next.state != stateFailure {
		t.Fatalf("expected failure state, got %d", next.state)
	}
	if !strings.Contains(next.failureView(), "Booking Failed") {
		t.Fatal("expected failure headline in view")
	}
}

func TestGoBack_DiscardsSelection(t *testing.T) {
	m := newDetailModel()
	m.selection.ChooseDate(m.selection.Experience.ScheduledDates[0])

	next, _ := m.goBack()
	if next.state != stateBrowse {
		t.Fatalf("expected browse state, got %d", next.state)
	}
	if next.selection.Experience.Id != "" {
		t.Fatal("expected selection to be discarded")
	}
}

func TestBookAnother_ResetsSession(t *testing.T) {
	m := newDetailModel()
	m.experienceList.SetItems([]list.Item{testItem{value: "Sunset Yoga Session"}})
	m.state = stateSuccess
	m.outcome = model.ReservationOutcome{Status: model.StatusSuccess, BookingId: "ABC123"}
	m.promoApplied = true
	m.promoRate = 0.20

	next, cmd, _ := m.bookAnother()
	if next.state != stateBrowse {
		t.Fatalf("expected browse state, got %d", next.state)
	}
	if cmd != nil {
		t.Fatal("expected no refetch when the catalog is already loaded")
	}
	if next.outcome.Status != "" || next.promoApplied || next.selection.Experience.Id != "" {
		t.Fatal("expected session state to be reset")
	}
}

func TestSubmitKeyIgnoredWhileSubmitting(t *testing.T) {
	m := newDetailModel()
	m.state = stateSubmitting

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	next := updated.(appModel)
	if next.state != stateSubmitting {
		t.Fatalf("expected to stay submitting, got %d", next.state)
	}
	if cmd != nil {
		t.Fatal("expected repeated submit to be a no-op")
	}
}

func TestGoBack_NoCancelWhileSubmitting(t *testing.T) {
	m := newDetailModel()
	m.state = stateSubmitting

	next, _ := m.goBack()
	if next.state != stateSubmitting {
		t.Fatalf("expected submission to be uncancellable, got %d", next.state)
	}
}
