package ui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sangwon514/room-search-map/internal/domain"
	"github.com/sangwon514/room-search-map/internal/eventbus"
	"github.com/sangwon514/room-search-map/internal/export"
	"github.com/sangwon514/room-search-map/internal/filterstore"
	"github.com/sangwon514/room-search-map/internal/mapview"
	"github.com/sangwon514/room-search-map/internal/searchclient"
	"github.com/sangwon514/room-search-map/internal/selection"
	"github.com/sangwon514/room-search-map/internal/stats"
	"github.com/sangwon514/room-search-map/internal/ui/input"
	"github.com/sangwon514/room-search-map/internal/ui/input/types"
	"github.com/sangwon514/room-search-map/internal/ui/textmap"
	"github.com/sangwon514/room-search-map/internal/ui/views"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusError
	statusSuccess
	statusLoading
)

var sortCycle = []string{"popular", "recent", "low_using_fee", "high_using_fee"}

var sortLabels = map[string]string{
	"popular":        "인기순",
	"recent":         "최신순",
	"low_using_fee":  "낮은가격순",
	"high_using_fee": "높은가격순",
}

// Wire values for the category filters, matching the service's search
// options. Each cycle starts and ends at "no restriction".
var roomCountCycle = []struct {
	values []string
	label  string
}{
	{nil, "전체"},
	{[]string{"one"}, "1개"},
	{[]string{"two"}, "2개"},
	{[]string{"three_plus"}, "3개 이상"},
}

var propertyTypeCycle = []struct {
	values []string
	label  string
}{
	{nil, "전체"},
	{[]string{"오피스텔"}, "오피스텔"},
	{[]string{"아파트"}, "아파트"},
	{[]string{"고시원"}, "고시원"},
	{[]string{"호텔"}, "호텔"},
}

var themeCycle = []struct {
	value string
	label string
}{
	{"", "전체"},
	{"super_host", "인기호스트 방"},
	{"33m2_md", "추천방"},
}

// Deps carries the services the model coordinates.
type Deps struct {
	Bus        eventbus.EventBus
	Store      *filterstore.Store
	Search     *searchclient.Client
	Selection  *selection.Service
	Controller *mapview.Controller
	Provider   *textmap.Provider
	Validator  *export.Validator
	Exporter   *export.Exporter
	Sessions   export.SessionStore
}

// Model is the top-level Bubble Tea model. It owns the room list state
// and is the single place search results are accepted or discarded.
type Model struct {
	deps Deps

	styles *views.Styles
	input  *input.Handler
	detail *DetailRenderer
	pager  *PagerOps

	width  int
	height int

	rooms   []domain.Room // full result set of the last accepted search
	display []domain.Room // selection-restricted view of rooms
	summary stats.Summary
	cursor  int
	offset  int

	loading    bool
	status     string
	statusKind statusKind
}

// NewModel creates the top-level UI model.
func NewModel(deps Deps) *Model {
	return &Model{
		deps:   deps,
		styles: views.NewStyles(),
		input:  input.New(),
		detail: NewDetailRenderer(),
	}
}

// SetProgram wires the running program in, for pager terminal handoff.
func (m *Model) SetProgram(p *tea.Program) {
	m.pager = NewPagerOps(p)
}

func (m *Model) Init() tea.Cmd {
	m.loading = true
	m.setStatus("검색 중...", statusLoading)
	m.deps.Bus.Publish(eventbus.SearchTriggeredEvent{})
	return m.fetchCmd(m.deps.Store.Snapshot())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		actions, cmd := m.input.HandleKey(msg, m)
		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			if c := m.applyAction(action); c != nil {
				cmds = append(cmds, c)
			}
		}
		return m, tea.Batch(cmds...)

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case searchResultMsg:
		return m, m.handleSearchResult(msg.result)

	case validateResultMsg:
		if msg.valid {
			m.setStatus("세션 확인 완료", statusSuccess)
		} else {
			m.setStatus(msg.message, statusError)
		}
		return m, nil

	case exportResultMsg:
		m.deps.Bus.Publish(eventbus.ExportCompletedEvent{
			Filename:     msg.path,
			Err:          msg.err,
			SessionReset: msg.sessionReset,
		})
		if msg.err != nil {
			m.setStatus(msg.err.Error(), statusError)
		} else {
			m.setStatus("저장됨: "+msg.path, statusSuccess)
		}
		return m, nil

	case pagerDoneMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), statusError)
		}
		return m, nil
	}

	return m, m.input.Update(msg)
}

// handleEvent reacts to domain events forwarded from the bus.
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.FilterCommittedEvent:
		m.loading = true
		m.setStatus("검색 중...", statusLoading)
		return m.fetchCmd(e.Filter)

	case eventbus.ViewportChangedEvent:
		// Route the viewport through the filter store so the committed
		// filter stays the single source of truth for fetches. The
		// keyword is dropped in the same batch: it belongs to the
		// explicit search that set it, and a map pan must not keep
		// re-applying it.
		v := e.Viewport
		empty := ""
		m.deps.Store.UpdateBatch(filterstore.Partial{Keyword: &empty, Viewport: &v})
		return nil

	case eventbus.SelectionChangedEvent:
		m.display = slices.Clone(e.Group.Rooms)
		m.clampCursor()
		m.summary = stats.Summarize(m.display)
		m.deps.Controller.Render(m.rooms, m.deps.Selection.Current())
		return nil

	case eventbus.SelectionClearedEvent:
		m.display = m.rooms
		m.clampCursor()
		m.summary = stats.Summarize(m.display)
		m.deps.Controller.Render(m.rooms, nil)
		return nil

	case eventbus.GeocodeResolvedEvent:
		m.setStatus(fmt.Sprintf("지도 이동: %.6f, %.6f", e.Lat, e.Lng), statusInfo)
		return nil

	case eventbus.ErrorEvent:
		m.setStatus(e.Message, statusError)
		return nil
	}

	return nil
}

// handleSearchResult accepts or discards one search response. Responses
// that lost the race to a newer request are dropped, and a response
// identical to the current list is not re-applied.
func (m *Model) handleSearchResult(result searchclient.Result) tea.Cmd {
	if result.Seq != m.deps.Search.Latest() {
		return nil
	}

	m.loading = false

	if result.ErrorCode != 0 {
		if result.ErrorCode == searchclient.TransportFailure {
			m.setStatus("검색 요청 실패", statusError)
		} else {
			m.setStatus(fmt.Sprintf("검색 오류 (코드 %d)", result.ErrorCode), statusError)
		}
		return nil
	}

	if slices.Equal(result.Rooms, m.rooms) {
		m.setStatus(fmt.Sprintf("%d개 결과", len(m.rooms)), statusInfo)
		return nil
	}

	m.rooms = result.Rooms
	m.display = m.deps.Selection.DisplayRooms(m.rooms)
	m.clampCursor()
	m.summary = stats.Summarize(m.display)
	m.setStatus(fmt.Sprintf("%d개 결과", len(m.rooms)), statusInfo)

	m.deps.Bus.Publish(eventbus.RoomsUpdatedEvent{
		Rooms:      result.Rooms,
		CDNBaseURL: result.CDNBaseURL,
		ErrorCode:  result.ErrorCode,
		Seq:        result.Seq,
	})
	m.deps.Controller.Render(m.rooms, m.deps.Selection.Current())

	return nil
}

func (m *Model) applyAction(action types.Action) tea.Cmd {
	switch a := action.(type) {
	case types.NavigateAction:
		m.navigate(a.Direction)

	case types.PanAction:
		if tm := m.deps.Provider.Current(); tm != nil {
			tm.Pan(a.DX, a.DY)
		}

	case types.ZoomAction:
		if tm := m.deps.Provider.Current(); tm != nil {
			tm.Zoom(a.In)
		}

	case types.SelectGroupAction:
		m.selectGroupAtCursor()

	case types.ClearSelectionAction:
		m.deps.Selection.Clear()

	case types.ToggleFilterAction:
		m.toggleFilter(filterstore.Field(a.Field))

	case types.CycleSortAction:
		m.cycleSort()

	case types.CycleRoomCountAction:
		m.cycleRoomCount()

	case types.CyclePropertyTypeAction:
		m.cyclePropertyType()

	case types.CycleThemeAction:
		m.cycleTheme()

	case types.ResetFiltersAction:
		m.deps.Store.Reset()
		m.setStatus("필터 초기화", statusInfo)

	case types.SearchNowAction:
		m.loading = true
		m.setStatus("검색 중...", statusLoading)
		m.deps.Bus.Publish(eventbus.SearchTriggeredEvent{})
		return m.fetchCmd(m.deps.Store.Snapshot())

	case types.ShowDetailAction:
		return m.showDetailCmd()

	case types.SubmitTextAction:
		return m.submitText(a.Mode, a.Text)

	case types.QuitAction:
		return tea.Quit
	}

	return nil
}

func (m *Model) submitText(mode types.Mode, text string) tea.Cmd {
	text = strings.TrimSpace(text)

	switch mode {
	case types.ModeKeyword:
		// An explicit keyword search drops the spatial restriction: the
		// keyword and the zero-viewport sentinel go in as one batch, so
		// the committed search carries no coordinates. The next map
		// settle restores the rectangle and clears the keyword.
		kw := text
		zero := domain.Viewport{}
		m.deps.Store.UpdateBatch(filterstore.Partial{Keyword: &kw, Viewport: &zero})
		// May recenter the map on the first result's address.
		m.deps.Bus.Publish(eventbus.SearchTriggeredEvent{})

	case types.ModeMinFee, types.ModeMaxFee:
		if text == "" {
			return nil
		}
		fee, err := strconv.Atoi(strings.ReplaceAll(text, ",", ""))
		if err != nil || fee < 0 {
			m.setStatus("잘못된 금액: "+text, statusError)
			return nil
		}
		field := filterstore.FieldMinUsingFee
		if mode == types.ModeMaxFee {
			field = filterstore.FieldMaxUsingFee
		}
		if err := m.deps.Store.Update(field, fee); err != nil {
			m.setStatus(err.Error(), statusError)
		}

	case types.ModeSession:
		if text == "" {
			return nil
		}
		m.deps.Sessions.Set(text)
		m.setStatus("세션 확인 중...", statusLoading)
		return m.validateCmd()

	case types.ModePeriod:
		period, err := parsePeriod(text)
		if err != nil {
			m.setStatus(err.Error(), statusError)
			return nil
		}
		return m.exportCmd(period)
	}

	return nil
}

func (m *Model) fetchCmd(f domain.Filter) tea.Cmd {
	params := searchclient.ParamsFromFilter(f)
	return func() tea.Msg {
		return searchResultMsg{result: m.deps.Search.Search(context.Background(), params)}
	}
}

func (m *Model) validateCmd() tea.Cmd {
	return func() tea.Msg {
		valid, message := m.deps.Validator.Validate(context.Background())
		m.deps.Bus.Publish(eventbus.SessionValidatedEvent{Valid: valid, Message: message})
		return validateResultMsg{valid: valid, message: message}
	}
}

func (m *Model) exportCmd(period domain.Period) tea.Cmd {
	rooms := slices.Clone(m.display)
	m.deps.Bus.Publish(eventbus.ExportStartedEvent{RoomCount: len(rooms), Period: period})
	m.setStatus("예약률 다운로드 중...", statusLoading)
	return func() tea.Msg {
		path, err := m.deps.Exporter.Download(context.Background(), rooms, period)
		return exportResultMsg{
			path:         path,
			err:          err,
			sessionReset: errors.Is(err, export.ErrSessionInvalid),
		}
	}
}

func (m *Model) showDetailCmd() tea.Cmd {
	if m.pager == nil || m.cursor >= len(m.display) {
		return nil
	}
	content := m.detail.RenderRoomDetail(m.display[m.cursor])
	return func() tea.Msg {
		return pagerDoneMsg{err: m.pager.ShowInPager(content)}
	}
}

// selectGroupAtCursor clicks the marker that contains the cursor room.
func (m *Model) selectGroupAtCursor() {
	if m.cursor >= len(m.display) {
		return
	}
	room := m.display[m.cursor]
	if !room.HasCoordinates() {
		m.setStatus("좌표 없는 방입니다", statusInfo)
		return
	}
	tm := m.deps.Provider.Current()
	if tm == nil {
		return
	}
	key := domain.CoordKey(room.Lat, room.Lng)
	for _, spec := range tm.MarkerSpecs() {
		if domain.CoordKey(spec.Position.Lat, spec.Position.Lng) == key {
			if spec.OnClick != nil {
				spec.OnClick()
			}
			return
		}
	}
}

func (m *Model) toggleFilter(field filterstore.Field) {
	f := m.deps.Store.Snapshot()
	var cur bool
	switch field {
	case filterstore.FieldAnimal:
		cur = f.Animal
	case filterstore.FieldSubway:
		cur = f.Subway
	case filterstore.FieldLongtermDiscount:
		cur = f.LongtermDiscount
	case filterstore.FieldEarlyDiscount:
		cur = f.EarlyDiscount
	case filterstore.FieldParkingPlace:
		cur = f.ParkingPlace
	default:
		return
	}
	if err := m.deps.Store.Update(field, !cur); err != nil {
		m.setStatus(err.Error(), statusError)
	}
}

func (m *Model) cycleSort() {
	f := m.deps.Store.Snapshot()
	next := sortCycle[0]
	for i, s := range sortCycle {
		if s == f.Sort {
			next = sortCycle[(i+1)%len(sortCycle)]
			break
		}
	}
	if err := m.deps.Store.Update(filterstore.FieldSort, next); err != nil {
		m.setStatus(err.Error(), statusError)
		return
	}
	m.setStatus("정렬: "+sortLabels[next], statusInfo)
}

func (m *Model) cycleRoomCount() {
	f := m.deps.Store.Snapshot()
	next := roomCountCycle[0]
	for i, c := range roomCountCycle {
		if slices.Equal(c.values, f.RoomCounts) {
			next = roomCountCycle[(i+1)%len(roomCountCycle)]
			break
		}
	}
	if err := m.deps.Store.Update(filterstore.FieldRoomCounts, next.values); err != nil {
		m.setStatus(err.Error(), statusError)
		return
	}
	m.setStatus("방 개수: "+next.label, statusInfo)
}

func (m *Model) cyclePropertyType() {
	f := m.deps.Store.Snapshot()
	next := propertyTypeCycle[0]
	for i, c := range propertyTypeCycle {
		if slices.Equal(c.values, f.PropertyTypes) {
			next = propertyTypeCycle[(i+1)%len(propertyTypeCycle)]
			break
		}
	}
	if err := m.deps.Store.Update(filterstore.FieldPropertyTypes, next.values); err != nil {
		m.setStatus(err.Error(), statusError)
		return
	}
	m.setStatus("유형: "+next.label, statusInfo)
}

func (m *Model) cycleTheme() {
	f := m.deps.Store.Snapshot()
	next := themeCycle[0]
	for i, c := range themeCycle {
		if c.value == f.ThemeType {
			next = themeCycle[(i+1)%len(themeCycle)]
			break
		}
	}
	if err := m.deps.Store.Update(filterstore.FieldThemeType, next.value); err != nil {
		m.setStatus(err.Error(), statusError)
		return
	}
	m.setStatus("테마: "+next.label, statusInfo)
}

func (m *Model) navigate(direction string) {
	page := m.listHeight()
	switch direction {
	case "up":
		m.cursor--
	case "down":
		m.cursor++
	case "pageup":
		m.cursor -= page
	case "pagedown":
		m.cursor += page
	case "home":
		m.cursor = 0
	case "end":
		m.cursor = len(m.display) - 1
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.display) {
		m.cursor = len(m.display) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	height := m.listHeight()
	if height <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+height {
		m.offset = m.cursor - height + 1
	}
}

func (m *Model) setStatus(text string, kind statusKind) {
	m.status = text
	m.statusKind = kind
}

func parsePeriod(text string) (domain.Period, error) {
	parts := strings.Fields(text)
	if len(parts) != 2 {
		return domain.Period{}, fmt.Errorf("기간 형식: YYYY-MM YYYY-MM")
	}
	sy, sm, err := parseYearMonth(parts[0])
	if err != nil {
		return domain.Period{}, err
	}
	ey, em, err := parseYearMonth(parts[1])
	if err != nil {
		return domain.Period{}, err
	}
	return domain.Period{StartYear: sy, StartMonth: sm, EndYear: ey, EndMonth: em}, nil
}

func parseYearMonth(s string) (int, int, error) {
	year, month, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("잘못된 기간: %s", s)
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return 0, 0, fmt.Errorf("잘못된 연도: %s", year)
	}
	mo, err := strconv.Atoi(month)
	if err != nil || mo < 1 || mo > 12 {
		return 0, 0, fmt.Errorf("잘못된 월: %s", month)
	}
	return y, mo, nil
}

// Context interface for the input layer.

func (m *Model) CurrentIndex() int { return m.cursor }

func (m *Model) TotalItems() int { return len(m.display) }

func (m *Model) HasSelection() bool { return m.deps.Selection.HasSelection() }

func (m *Model) SessionSet() bool { return m.deps.Sessions.Get() != "" }

// View rendering.

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "로딩 중..."
	}

	title := m.renderTitle()
	body := m.renderBody()
	statsLine := m.styles.StatsLine(m.summary)
	statusLine := m.renderStatus()
	bottom := m.renderBottom()

	return lipgloss.JoinVertical(lipgloss.Left, title, body, statsLine, statusLine, bottom)
}

func (m *Model) renderTitle() string {
	f := m.deps.Store.Snapshot()

	var parts []string
	if f.Keyword != "" {
		parts = append(parts, "검색어="+f.Keyword)
	}
	parts = append(parts, fmt.Sprintf("주간가 %s~%s원",
		mapview.FormatWon(f.MinUsingFee), mapview.FormatWon(f.MaxUsingFee)))
	parts = append(parts, sortLabels[f.Sort])

	for _, c := range themeCycle {
		if c.value != "" && c.value == f.ThemeType {
			parts = append(parts, c.label)
		}
	}
	if len(f.RoomCounts) > 0 {
		for _, c := range roomCountCycle {
			if slices.Equal(c.values, f.RoomCounts) {
				parts = append(parts, "방 "+c.label)
			}
		}
	}
	if len(f.PropertyTypes) > 0 {
		parts = append(parts, strings.Join(f.PropertyTypes, ","))
	}

	toggles := []struct {
		on    bool
		label string
	}{
		{f.Animal, "반려동물"},
		{f.Subway, "역세권"},
		{f.LongtermDiscount, "장기할인"},
		{f.EarlyDiscount, "얼리할인"},
		{f.ParkingPlace, "주차"},
	}
	for _, t := range toggles {
		if t.on {
			parts = append(parts, t.label)
		}
	}

	return m.styles.Title.Render("방 검색") + "  " + m.styles.Dim.Render(strings.Join(parts, " · "))
}

func (m *Model) renderBody() string {
	mapWidth := m.width * 55 / 100
	listWidth := m.width - mapWidth - 4
	bodyHeight := m.bodyHeight()

	var mapPane string
	if tm := m.deps.Provider.Current(); tm != nil {
		mapPane = tm.Render(mapWidth-2, bodyHeight)
	} else {
		mapPane = "지도 준비 중..."
	}
	mapBox := m.styles.MapBox.Width(mapWidth - 2).Height(bodyHeight).Render(mapPane)

	listBox := m.styles.ListBox.Width(listWidth).Height(bodyHeight).Render(m.renderList(listWidth, bodyHeight))

	return lipgloss.JoinHorizontal(lipgloss.Top, mapBox, listBox)
}

func (m *Model) renderList(width, height int) string {
	if len(m.display) == 0 {
		if m.loading {
			return m.styles.StatusLoading.Render("검색 중...")
		}
		return m.styles.Dim.Render("표시할 방이 없습니다")
	}

	end := m.offset + height
	if end > len(m.display) {
		end = len(m.display)
	}

	lines := make([]string, 0, height)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.styles.RoomRow(m.display[i], i == m.cursor, width))
	}
	if end < len(m.display) {
		lines[len(lines)-1] = m.styles.Dim.Render(fmt.Sprintf("↓ %d개 더", len(m.display)-end))
	}

	return strings.Join(lines, "\n")
}

func (m *Model) renderStatus() string {
	switch m.statusKind {
	case statusError:
		return m.styles.StatusError.Render(m.status)
	case statusSuccess:
		return m.styles.StatusSuccess.Render(m.status)
	case statusLoading:
		return m.styles.StatusLoading.Render(m.status)
	default:
		return m.styles.Status.Render(m.status)
	}
}

func (m *Model) renderBottom() string {
	if ti := m.input.TextInput(); ti != nil {
		return m.styles.Prompt.Render(m.input.Prompt()) + ti.View()
	}
	return m.styles.Help.Render(
		"j/k 이동 · wasd 지도 · +/- 줌 · space 선택 · / 검색어 · f/F 가격 · 1-5 필터 · 6-8 방/유형/테마 · o 정렬 · r 새로고침 · e 내보내기 · S 세션 · q 종료")
}

func (m *Model) bodyHeight() int {
	h := m.height - 5
	if h < 5 {
		h = 5
	}
	return h
}

func (m *Model) listHeight() int {
	return m.bodyHeight()
}
