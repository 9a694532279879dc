package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bookit-cli/booking"
	"bookit-cli/model"
	"bookit-cli/service"
	"bookit-cli/store"
)

type appState int

const (
	stateLoadingExperiences appState = iota
	stateBrowse
	stateLoadingExperience
	stateSelectDate
	stateSelectTime
	stateCheckout
	stateSubmitting
	stateSuccess
	stateFailure
	stateError
)

const catalogPageSize = 12

type appModel struct {
	client *service.Client

	state     appState
	lastState appState
	err       error

	width  int
	height int

	experiences []model.Experience
	page        int
	pages       int

	experienceList list.Model
	dateList       list.Model
	timeList       list.Model

	selection booking.Selection
	notice    string

	promos       booking.PromoRegistry
	promoApplied bool
	promoRate    float64
	promoError   string

	nameInput  textinput.Model
	emailInput textinput.Model
	promoInput textinput.Model
	focus      int
	fieldErrs  booking.ContactErrors

	outcome model.ReservationOutcome

	authToken string

	spinner spinner.Model
}

type errMsg struct {
	err            error
	returnState    appState
	returnStateSet bool
}

type experiencesMsg struct {
	experiences []model.Experience
	page        int
	pages       int
	err         error
}

type experienceMsg struct {
	experience model.Experience
	err        error
}

type reservationMsg struct {
	outcome model.ReservationOutcome
}

func New() tea.Model {
	client := service.NewClient(nil)
	m := appModel{
		client:    client,
		state:     stateLoadingExperiences,
		page:      1,
		pages:     1,
		promos:    booking.DefaultPromoRegistry(),
		authToken: strings.TrimSpace(os.Getenv("BOOKIT_TOKEN")),
	}

	m.experienceList = newList("Experiences")
	m.dateList = newPlainList("Select Date")
	m.timeList = newPlainList("Select Time")

	m.nameInput = newInput("John Doe", 80)
	m.emailInput = newInput("john@example.com", 120)
	m.promoInput = newInput("Enter promo code", 24)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.fetchExperiencesCmd(1), m.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if m.state == stateCheckout {
			return m.updateCheckout(msg)
		}
		if m.handleFilterInput(msg) {
			return m, nil
		}
		var handled bool
		m, cmd, handled := m.handleKey(msg)
		if handled {
			return m, cmd
		}
		// fallthrough to component update
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isLoadingState() {
			return m, cmd
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		if msg.returnStateSet {
			m.lastState = msg.returnState
		} else {
			m.lastState = recoverStateFrom(m.state)
		}
		m.state = stateError
		return m, nil

	case experiencesMsg:
		if msg.err != nil {
			return m, errCmd(msg.err)
		}
		m.experiences = msg.experiences
		m.page = msg.page
		m.pages = msg.pages
		m.experienceList.SetItems(buildExperienceItems(msg.experiences))
		m.experienceList.Select(0)
		m.state = stateBrowse
		return m, nil

	case experienceMsg:
		if msg.err != nil {
			return m, errWithOptionsCmd(msg.err, stateBrowse)
		}
		return m.enterDetailSelection(msg.experience), nil

	case reservationMsg:
		return m.showResult(msg.outcome), nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateBrowse:
		m.experienceList, cmd = m.experienceList.Update(msg)
	case stateSelectDate:
		m.dateList, cmd = m.dateList.Update(msg)
	case stateSelectTime:
		m.timeList, cmd = m.timeList.Update(msg)
	case stateCheckout:
		switch m.focus {
		case focusName:
			m.nameInput, cmd = m.nameInput.Update(msg)
		case focusEmail:
			m.emailInput, cmd = m.emailInput.Update(msg)
		case focusPromo:
			m.promoInput, cmd = m.promoInput.Update(msg)
		}
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateLoadingExperiences, stateLoadingExperience:
		return header + "\n\n" + m.loadingView()
	case stateBrowse:
		return header + "\n\n" + m.experienceList.View()
	case stateSelectDate:
		return header + "\n\n" + m.selectionSummaryView() + "\n" + m.dateList.View()
	case stateSelectTime:
		return header + "\n\n" + m.selectionSummaryView() + "\n" + m.timeList.View()
	case stateCheckout:
		return header + "\n\n" + m.checkoutView()
	case stateSubmitting:
		return header + "\n\n" + m.submittingView()
	case stateSuccess:
		return header + "\n\n" + m.successView()
	case stateFailure:
		return header + "\n\n" + m.failureView()
	case stateError:
		return header + "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.err.Error()) + "\n\n" + hint("Press esc to go back or ctrl+c to quit.")
	default:
		return header
	}
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("BookIt TUI")
	sub := []string{}
	if m.selection.Experience.Title != "" {
		sub = append(sub, fmt.Sprintf("Experience: %s", m.selection.Experience.Title))
	}
	if m.selection.Date.ScheduledDate != "" {
		sub = append(sub, fmt.Sprintf("Date: %s", formatDisplayDate(m.selection.Date.ScheduledDate)))
	}
	if m.selection.Time != "" {
		sub = append(sub, fmt.Sprintf("Time: %s", m.selection.Time))
	}
	if m.state == stateBrowse && m.pages > 1 {
		sub = append(sub, fmt.Sprintf("Page %d/%d", m.page, m.pages))
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}

	hints := "ctrl+c quit • esc back"
	switch m.state {
	case stateBrowse:
		hints = "ctrl+c quit • type to filter • enter select experience"
		if m.pages > 1 {
			hints += " • ctrl+n/ctrl+p page"
		}
	case stateSelectDate:
		hints = "ctrl+c quit • esc back • enter select date • +/- guests • c continue to checkout"
	case stateSelectTime:
		hints = "ctrl+c quit • esc back • enter select time • +/- guests • c continue to checkout"
	case stateCheckout:
		hints = "ctrl+c quit • esc back • tab next field • enter apply promo • ctrl+s confirm booking"
	case stateSubmitting:
		hints = "submitting reservation, please wait"
	case stateSuccess:
		hints = "b book another • ctrl+c quit"
	case stateFailure:
		hints = "r try again • b back to experiences • ctrl+c quit"
	}

	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint(fmt.Sprintf("Filter: %s", filter))
		}
	}
	return title + meta + filterLine + "\n" + hint(hints)
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true
	case "esc":
		if listPtr := m.activeList(); listPtr != nil {
			if listPtr.SettingFilter() || listPtr.IsFiltered() {
				listPtr.ResetFilter()
				return m, nil, true
			}
		}
		model, cmd := m.goBack()
		return model, cmd, true
	case "+", "=":
		if m.state == stateSelectDate || m.state == stateSelectTime {
			m.selection.AddGuest()
			return m, nil, true
		}
	case "-", "_":
		if m.state == stateSelectDate || m.state == stateSelectTime {
			m.selection.RemoveGuest()
			return m, nil, true
		}
	case "c":
		if m.state == stateSelectDate || m.state == stateSelectTime {
			return m.continueToCheckout()
		}
	case "ctrl+n":
		if m.state == stateBrowse && m.page < m.pages {
			m.state = stateLoadingExperiences
			return m, tea.Batch(m.fetchExperiencesCmd(m.page+1), m.spinner.Tick), true
		}
	case "ctrl+p":
		if m.state == stateBrowse && m.page > 1 {
			m.state = stateLoadingExperiences
			return m, tea.Batch(m.fetchExperiencesCmd(m.page-1), m.spinner.Tick), true
		}
	case "b":
		if m.state == stateSuccess || m.state == stateFailure {
			return m.bookAnother()
		}
	case "r":
		if m.state == stateFailure {
			// selection and contact details survive a failed attempt
			m.state = stateCheckout
			m.outcome = model.ReservationOutcome{}
			return m, nil, true
		}
	}

	if msg.Type == tea.KeyEnter {
		switch m.state {
		case stateBrowse:
			item, ok := m.experienceList.SelectedItem().(experienceItem)
			if !ok {
				return m, nil, true
			}
			m.state = stateLoadingExperience
			return m, tea.Batch(m.fetchExperienceCmd(item.experience.Id), m.spinner.Tick), true
		case stateSelectDate:
			item, ok := m.dateList.SelectedItem().(dateItem)
			if !ok {
				return m, nil, true
			}
			m.selection.ChooseDate(item.date)
			m.notice = ""
			m.timeList.SetItems(buildTimeItems(item.date))
			m.timeList.Select(0)
			m.state = stateSelectTime
			return m, nil, true
		case stateSelectTime:
			item, ok := m.timeList.SelectedItem().(timeItem)
			if !ok {
				return m, nil, true
			}
			if !m.selection.ChooseTime(item.slot) {
				return m, nil, true
			}
			m.notice = ""
			m.state = stateSelectDate
			return m, nil, true
		case stateSuccess:
			return m.bookAnother()
		case stateError:
			m.state = m.lastState
			return m, nil, true
		}
	}
	return m, nil, false
}

func (m appModel) goBack() (appModel, tea.Cmd) {
	switch m.state {
	case stateBrowse:
		return m, nil
	case stateSelectDate:
		// leaving detail selection discards the session
		m = m.resetSession()
		m.state = stateBrowse
	case stateSelectTime:
		m.state = stateSelectDate
	case stateCheckout:
		m.state = stateSelectDate
	case stateSubmitting:
		// no cancellation once a submission is in flight
		return m, nil
	case stateSuccess, stateFailure:
		model, cmd, _ := m.bookAnother()
		return model, cmd
	case stateError:
		m.state = m.lastState
	default:
		return m, nil
	}
	return m, nil
}

// enterDetailSelection starts a fresh wizard session for an experience.
func (m appModel) enterDetailSelection(experience model.Experience) appModel {
	m.selection = booking.NewSelection(experience)
	m.notice = ""
	_ = store.RememberExperience(experience)
	m.dateList.SetItems(buildDateItems(experience.ScheduledDates))
	m.dateList.Select(0)
	m.state = stateSelectDate
	return m
}

// continueToCheckout enforces the date/time guard. An incomplete selection
// is a non-fatal rejection: the user stays in detail selection with a
// notice.
func (m appModel) continueToCheckout() (appModel, tea.Cmd, bool) {
	if !m.selection.Ready() {
		m.notice = "Please select both date and time"
		return m, nil, true
	}
	return m.enterCheckout(), nil, true
}

// enterCheckout validates the carried payload on entry. Arriving here
// without a complete selection means the step was never legitimately
// reached, so it redirects to browsing instead of rendering partial data.
func (m appModel) enterCheckout() appModel {
	if !m.selection.Ready() {
		m.state = stateBrowse
		return m
	}
	m.fieldErrs = booking.ContactErrors{}
	m.promoError = ""
	m.notice = ""
	m.focus = 0
	m.nameInput.Focus()
	m.emailInput.Blur()
	m.promoInput.Blur()
	m.state = stateCheckout
	return m
}

// showResult validates the outcome payload on entry, mirroring the
// checkout guard: no payload means the step was never reached.
func (m appModel) showResult(outcome model.ReservationOutcome) appModel {
	if outcome.Status == "" {
		m.state = stateBrowse
		return m
	}
	m.outcome = outcome
	if outcome.Status == model.StatusSuccess {
		m.state = stateSuccess
	} else {
		m.state = stateFailure
	}
	return m
}

func (m appModel) bookAnother() (appModel, tea.Cmd, bool) {
	m = m.resetSession()
	if len(m.experienceList.Items()) == 0 {
		m.state = stateLoadingExperiences
		return m, tea.Batch(m.fetchExperiencesCmd(m.page), m.spinner.Tick), true
	}
	m.state = stateBrowse
	return m, nil, true
}

func (m appModel) resetSession() appModel {
	m.selection = booking.Selection{}
	m.outcome = model.ReservationOutcome{}
	m.notice = ""
	m.promoApplied = false
	m.promoRate = 0
	m.promoError = ""
	m.fieldErrs = booking.ContactErrors{}
	m.nameInput.SetValue("")
	m.emailInput.SetValue("")
	m.promoInput.SetValue("")
	m.focus = 0
	return m
}

func (m appModel) selectionSummaryView() string {
	summary := m.selection.Summary(0)
	lines := []string{
		fmt.Sprintf("Guests: %d  •  %s × %d = %s",
			m.selection.Guests,
			booking.FormatAmount(m.selection.Experience.PricePerPerson),
			m.selection.Guests,
			booking.FormatAmount(summary.Subtotal)),
	}
	if m.selection.Ready() {
		lines = append(lines, hint("Date and time selected. Press c to continue to checkout."))
	}
	if m.notice != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.notice))
	}
	return strings.Join(lines, "\n")
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil {
		return false
	}
	if !listPtr.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		m.appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		m.appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		m.popFilter(listPtr)
		return true
	default:
		return false
	}
}

func (m *appModel) appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	current := listPtr.FilterValue()
	listPtr.SetFilterText(current + value)
}

func (m *appModel) popFilter(listPtr *list.Model) {
	value := listPtr.FilterValue()
	if value == "" {
		return
	}
	value = trimLastRune(value)
	if value == "" {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(value)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func (m *appModel) activeList() *list.Model {
	switch m.state {
	case stateBrowse:
		return &m.experienceList
	case stateSelectDate:
		return &m.dateList
	case stateSelectTime:
		return &m.timeList
	default:
		return nil
	}
}

func (m appModel) isLoadingState() bool {
	return m.state == stateLoadingExperiences ||
		m.state == stateLoadingExperience ||
		m.state == stateSubmitting
}

func (m appModel) loadingView() string {
	title := "Loading"
	switch m.state {
	case stateLoadingExperiences:
		title = "Loading experiences"
	case stateLoadingExperience:
		title = "Loading experience details"
	}

	return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), title, hint("Fetching data..."))
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	m.experienceList.SetSize(m.width, h)
	m.dateList.SetSize(m.width, h-2)
	m.timeList.SetSize(m.width, h-2)
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func newPlainList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	return in
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return errMsg{
			err:            err,
			returnState:    0,
			returnStateSet: false,
		}
	}
}

func errWithOptionsCmd(err error, returnState appState) tea.Cmd {
	return func() tea.Msg {
		return errMsg{
			err:            err,
			returnState:    returnState,
			returnStateSet: true,
		}
	}
}

func recoverStateFrom(state appState) appState {
	switch state {
	case stateLoadingExperiences:
		return stateBrowse
	case stateLoadingExperience:
		return stateBrowse
	case stateError:
		return stateBrowse
	default:
		return state
	}
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}

func (m appModel) fetchExperiencesCmd(page int) tea.Cmd {
	return func() tea.Msg {
		if cached, pages, fresh, err := store.LoadCatalogCache(page); err == nil && fresh && len(cached) > 0 {
			return experiencesMsg{experiences: cached, page: page, pages: pages}
		}
		ctx := context.Background()
		experiences, pages, err := m.client.GetExperiences(ctx, page, catalogPageSize, "")
		if err == nil && len(experiences) > 0 {
			_ = store.SaveCatalogCache(page, experiences, pages)
		}
		return experiencesMsg{experiences: experiences, page: page, pages: pages, err: err}
	}
}

func (m appModel) fetchExperienceCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if cached, fresh, err := store.LoadDetailCache(id); err == nil && fresh && cached.Id != "" {
			return experienceMsg{experience: cached}
		}
		ctx := context.Background()
		experience, err := m.client.GetExperience(ctx, id)
		if err != nil {
			return experienceMsg{err: err}
		}
		_ = store.SaveDetailCache(experience)
		return experienceMsg{experience: experience}
	}
}

type experienceItem struct {
	experience model.Experience
	recent     bool
}

func (e experienceItem) Title() string {
	return e.experience.Title
}

func (e experienceItem) Description() string {
	parts := []string{fmt.Sprintf("%s per person", booking.FormatAmount(e.experience.PricePerPerson))}
	if e.experience.TimeLength != "" {
		parts = append(parts, e.experience.TimeLength)
	} else if e.experience.Duration > 0 {
		parts = append(parts, fmt.Sprintf("%d mins", e.experience.Duration))
	}
	if e.experience.Type != "" {
		parts = append(parts, e.experience.Type)
	}
	if e.experience.Rating > 0 {
		parts = append(parts, fmt.Sprintf("★ %.1f", e.experience.Rating))
	}
	if e.recent {
		parts = append(parts, "Recent")
	}
	return strings.Join(parts, " • ")
}

func (e experienceItem) FilterValue() string {
	return strings.ToLower(strings.Join([]string{
		e.experience.Title,
		e.experience.Type,
		e.experience.ShortDescription,
	}, " "))
}

type dateItem struct {
	date model.ScheduledDate
}

func (d dateItem) Title() string {
	return formatDisplayDate(d.date.ScheduledDate)
}

func (d dateItem) Description() string {
	count := len(d.date.TimeSlots)
	if count == 1 {
		return "1 time slot"
	}
	return fmt.Sprintf("%d time slots", count)
}

func (d dateItem) FilterValue() string {
	return d.date.ScheduledDate
}

type timeItem struct {
	slot string
}

func (t timeItem) Title() string       { return t.slot }
func (t timeItem) Description() string { return "" }
func (t timeItem) FilterValue() string { return strings.ToLower(t.slot) }

func buildExperienceItems(experiences []model.Experience) []list.Item {
	recents, _ := store.LoadRecentExperiences()
	recentIDs := map[string]bool{}
	for _, recent := range recents {
		if recent.ID != "" {
			recentIDs[recent.ID] = true
		}
	}

	items := make([]list.Item, 0, len(experiences))
	for _, experience := range experiences {
		items = append(items, experienceItem{
			experience: experience,
			recent:     recentIDs[experience.Id],
		})
	}
	return items
}

func buildDateItems(dates []model.ScheduledDate) []list.Item {
	items := make([]list.Item, 0, len(dates))
	for _, date := range dates {
		items = append(items, dateItem{date: date})
	}
	return items
}

func buildTimeItems(date model.ScheduledDate) []list.Item {
	items := make([]list.Item, 0, len(date.TimeSlots))
	for _, slot := range date.TimeSlots {
		items = append(items, timeItem{slot: slot.SlotTime})
	}
	return items
}

func formatDisplayDate(raw string) string {
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.Format("Mon, Jan 2 2006")
		}
	}
	return raw
}
