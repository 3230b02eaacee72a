// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/moya-list/internal/service"
	"github.com/MKhiriev/moya-list/models"
)

type mode int

const (
	modeList mode = iota
	modeDetail
	modeInput
	modeConfirmDelete
	modeTags
	modeLogin
	modeMigration
	modeBuildInfo
)

type writeAction int

const (
	actionAdd writeAction = iota
	actionItem
	actionDeleteItem
	actionSettings
	actionRenameTag
	actionDeleteTag
)

const statusTTL = 3 * time.Second

// Model is the root bubbletea model of the client.
type Model struct {
	ctx        context.Context
	controller Controller
	buildInfo  models.AppBuildInfo
	loc        *time.Location

	copyText func(string) error
	readFile func(string) ([]byte, error)

	width  int
	height int

	mode     mode
	prevMode mode

	criteria  models.FilterCriteria
	cursor    int
	tagCursor int
	detailID  string

	input       inputModel
	login       loginModel
	confirmID   string
	confirmTag  string
	confirmText string

	errMsg    string
	status    string
	statusSeq int
}

// NewModel returns the model for controller. Start is called from Init.
func NewModel(ctx context.Context, controller Controller, buildInfo models.AppBuildInfo) *Model {
	return &Model{
		ctx:        ctx,
		controller: controller,
		buildInfo:  buildInfo,
		loc:        time.Local,
		copyText:   clipboard.WriteAll,
		readFile:   os.ReadFile,
		criteria:   models.FilterCriteria{StatusFilter: models.FilterAll, GroupBy: models.GroupNone},
		login:      newLoginModel(),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.cmdStart(), waitForEvent(m.controller.Events()))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case startedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
		}
		return m, nil

	case eventMsg:
		cmd := m.handleEvent(service.Event(msg))
		return m, tea.Batch(cmd, waitForEvent(m.controller.Events()))

	case eventsClosedMsg:
		return m, nil

	case writeDoneMsg:
		return m, m.handleWriteDone(msg)

	case authDoneMsg:
		m.login.submitting = false
		if msg.err != nil {
			m.login.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.login = newLoginModel()
		m.mode = modeList
		return m, m.setStatus("로그인: " + msg.identity.Label())

	case signedOutMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.resetFilters()
		return m, m.setStatus("로그아웃했습니다")

	case migrationDoneMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			if m.controller.PendingMigration() == 0 {
				m.mode = modeList
			}
			return m, nil
		}
		m.mode = modeList
		if !msg.accepted {
			return m, m.setStatus("로컬 항목을 버렸습니다")
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		return m, m.setStatus("클립보드에 복사했습니다")

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	// cursor blink and other widget messages
	switch m.mode {
	case modeInput:
		var cmd tea.Cmd
		m.input, cmd = m.input.update(msg)
		return m, cmd
	case modeLogin:
		var cmd tea.Cmd
		m.login, cmd = m.login.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleEvent(ev service.Event) tea.Cmd {
	switch ev.Kind {
	case service.EventError:
		m.errMsg = humanizeError(ev.Err)
	case service.EventMigrationPrompt:
		if m.mode != modeMigration {
			m.prevMode = modeList
		}
		m.mode = modeMigration
	case service.EventMigrationDone:
		if ev.Count > 0 {
			return m.setStatus(strconv.Itoa(ev.Count) + "개 항목을 계정으로 가져왔습니다")
		}
	case service.EventStateChanged:
		if m.mode == modeMigration && m.controller.PendingMigration() == 0 {
			m.mode = modeList
		}
	case service.EventItemsChanged, service.EventSettingsChanged:
		m.clampCursor()
		m.dropUnknownTags()
	}
	return nil
}

func (m *Model) handleWriteDone(msg writeDoneMsg) tea.Cmd {
	if m.mode == modeInput {
		m.input.submitting = false
	}
	if msg.err != nil {
		// the input stays open with its text so the user can retry
		m.errMsg = humanizeError(msg.err)
		return nil
	}

	if m.mode == modeInput {
		m.mode = m.prevMode
	}
	switch msg.action {
	case actionDeleteItem:
		if m.mode == modeDetail {
			m.mode = modeList
		}
		m.clampCursor()
	case actionRenameTag:
		m.renameSelectedTag(msg.tag, msg.renamed)
		m.clampTagCursor()
	case actionDeleteTag:
		m.unselectTag(msg.tag)
		m.clampTagCursor()
	}
	return m.setStatus(msg.done)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	if m.errMsg != "" {
		m.errMsg = ""
		return nil
	}

	switch m.mode {
	case modeInput:
		return m.updateInput(msg)
	case modeLogin:
		return m.updateLogin(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	case modeMigration:
		return m.updateMigration(msg)
	case modeTags:
		return m.updateTags(msg)
	case modeDetail:
		return m.updateDetail(msg)
	case modeBuildInfo:
		if key.Matches(msg, keys.esc, keys.buildInfo) {
			m.mode = m.prevMode
		}
		return nil
	default:
		return m.updateList(msg)
	}
}

// ── List ─────────────────────────────────────────────────────────────────────

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.quit):
		return tea.Quit
	case key.Matches(msg, keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.down):
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.enter):
		if item, ok := m.selected(); ok {
			m.detailID = item.ID
			m.mode = modeDetail
		}
	case key.Matches(msg, keys.newItem):
		m.openInput(inputNewItem, "", "")
	case key.Matches(msg, keys.search):
		m.openInput(inputSearch, "", m.criteria.SearchQuery)
	case key.Matches(msg, keys.statusCycle):
		m.criteria.StatusFilter = m.criteria.StatusFilter.Next()
		m.clampCursor()
	case key.Matches(msg, keys.groupCycle):
		m.criteria.GroupBy = m.criteria.GroupBy.Next()
		m.clampCursor()
	case key.Matches(msg, keys.dateFilter):
		m.openInput(inputDate, "", m.criteria.SelectedDate)
	case key.Matches(msg, keys.tagManager):
		m.mode = modeTags
		m.clampTagCursor()
	case key.Matches(msg, keys.esc):
		m.resetFilters()
	case key.Matches(msg, keys.account):
		return m.accountAction()
	case key.Matches(msg, keys.buildInfo):
		m.prevMode = m.mode
		m.mode = modeBuildInfo
	default:
		if item, ok := m.selected(); ok {
			return m.itemAction(msg, item)
		}
	}
	return nil
}

// itemAction handles the keys shared by the list and the detail view.
func (m *Model) itemAction(msg tea.KeyMsg, item models.Item) tea.Cmd {
	switch {
	case key.Matches(msg, keys.toggle):
		return m.cmdWrite(actionItem, "상태를 바꿨습니다", func(ctx context.Context) error {
			return m.controller.ToggleStatus(ctx, item.ID)
		})
	case key.Matches(msg, keys.description):
		m.openInput(inputDescription, item.ID, item.Description)
	case key.Matches(msg, keys.attach):
		m.openInput(inputImagePath, item.ID, "")
	case key.Matches(msg, keys.detach):
		if len(item.Images) == 0 {
			return nil
		}
		ref := item.Images[len(item.Images)-1]
		return m.cmdWrite(actionItem, "이미지를 뺐습니다", func(ctx context.Context) error {
			return m.controller.DetachImage(ctx, item.ID, ref)
		})
	case key.Matches(msg, keys.delete):
		m.prevMode = m.mode
		m.confirmID = item.ID
		m.confirmTag = ""
		m.confirmText = fitText(firstLine(item.Text), 40)
		m.mode = modeConfirmDelete
	case key.Matches(msg, keys.copy):
		text := item.Text
		return func() tea.Msg { return copiedMsg{err: m.copyText(text)} }
	}
	return nil
}

func (m *Model) accountAction() tea.Cmd {
	if !m.controller.Configured() {
		m.errMsg = humanizeError(service.ErrRemoteNotConfigured)
		return nil
	}

	switch m.controller.State() {
	case service.StateAuthenticated:
		return func() tea.Msg { return signedOutMsg{err: m.controller.SignOut(m.ctx)} }
	case service.StateGuest:
		m.login = newLoginModel()
		m.mode = modeLogin
	default:
		m.errMsg = humanizeError(service.ErrSessionPending)
	}
	return nil
}

// ── Detail ───────────────────────────────────────────────────────────────────

func (m *Model) updateDetail(msg tea.KeyMsg) tea.Cmd {
	item, ok := m.controller.Item(m.detailID)
	if !ok || key.Matches(msg, keys.esc) {
		m.mode = modeList
		return nil
	}
	if key.Matches(msg, keys.quit) {
		m.mode = modeList
		return nil
	}
	return m.itemAction(msg, item)
}

// ── Input ────────────────────────────────────────────────────────────────────

func (m *Model) openInput(purpose inputPurpose, target, value string) {
	if m.mode != modeInput {
		m.prevMode = m.mode
	}
	m.input = newInput(purpose, target, value)
	m.mode = modeInput
}

func (m *Model) closeInput() {
	m.mode = m.prevMode
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	if m.input.submitting {
		return nil
	}

	switch {
	case key.Matches(msg, keys.esc):
		if m.input.purpose == inputSearch {
			m.criteria.SearchQuery = ""
			m.clampCursor()
		}
		m.closeInput()
		return nil
	case msg.String() == "ctrl+s" && m.input.multiline():
		return m.submitInput()
	case key.Matches(msg, keys.enter) && !m.input.multiline():
		return m.submitInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.update(msg)

	// search filters while typing
	if m.input.purpose == inputSearch {
		m.criteria.SearchQuery = m.input.Value()
		m.clampCursor()
	}
	return cmd
}

func (m *Model) submitInput() tea.Cmd {
	value := m.input.Value()
	trimmed := strings.TrimSpace(value)
	target := m.input.target

	switch m.input.purpose {
	case inputNewItem:
		if trimmed == "" {
			m.closeInput()
			return nil
		}
		m.input.submitting = true
		return m.cmdWrite(actionAdd, "등록했습니다", func(ctx context.Context) error {
			_, err := m.controller.AddItem(ctx, models.Item{Text: value})
			return err
		})

	case inputSearch:
		m.criteria.SearchQuery = value
		m.closeInput()

	case inputDate:
		if trimmed != "" {
			if _, err := time.ParseInLocation(models.DateLayout, trimmed, m.loc); err != nil {
				m.errMsg = errInvalidDate.Error()
				return nil
			}
		}
		m.criteria.SelectedDate = trimmed
		m.clampCursor()
		m.closeInput()

	case inputDescription:
		m.input.submitting = true
		return m.cmdWrite(actionItem, "설명을 저장했습니다", func(ctx context.Context) error {
			return m.controller.SetDescription(ctx, target, value)
		})

	case inputImagePath:
		if trimmed == "" {
			m.closeInput()
			return nil
		}
		data, err := m.readFile(trimmed)
		if err != nil {
			m.errMsg = humanizeError(err)
			return nil
		}
		m.input.submitting = true
		return m.cmdWrite(actionItem, "이미지를 첨부했습니다", func(ctx context.Context) error {
			return m.controller.AttachImage(ctx, target, data)
		})

	case inputCategory:
		if trimmed == "" {
			m.closeInput()
			return nil
		}
		m.input.submitting = true
		return m.cmdWrite(actionSettings, "카테고리를 추가했습니다", func(ctx context.Context) error {
			return m.controller.AddCategory(ctx, trimmed)
		})

	case inputRename:
		if trimmed == "" || trimmed == target {
			m.closeInput()
			return nil
		}
		m.input.submitting = true
		return func() tea.Msg {
			return writeDoneMsg{
				action:  actionRenameTag,
				done:    "#" + target + " → #" + trimmed,
				tag:     target,
				renamed: trimmed,
				err:     m.controller.RenameTag(m.ctx, target, trimmed),
			}
		}

	case inputColor:
		if trimmed != "" && !validColor(trimmed) {
			m.errMsg = "색상은 #RRGGBB 형식으로 입력하세요"
			return nil
		}
		m.input.submitting = true
		return m.cmdWrite(actionSettings, "색상을 바꿨습니다", func(ctx context.Context) error {
			return m.controller.SetTagColor(ctx, target, trimmed)
		})
	}
	return nil
}

func validColor(v string) bool {
	if len(v) != 7 || v[0] != '#' {
		return false
	}
	_, err := strconv.ParseUint(v[1:], 16, 32)
	return err == nil
}

// ── Confirm, migration, login ────────────────────────────────────────────────

func (m *Model) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.yes):
		m.mode = m.prevMode
		if m.confirmTag != "" {
			tag := m.confirmTag
			return func() tea.Msg {
				return writeDoneMsg{
					action: actionDeleteTag,
					done:   "#" + tag + " 태그를 삭제했습니다",
					tag:    tag,
					err:    m.controller.DeleteTag(m.ctx, tag),
				}
			}
		}
		id := m.confirmID
		return m.cmdWrite(actionDeleteItem, "삭제했습니다", func(ctx context.Context) error {
			return m.controller.DeleteItem(ctx, id)
		})
	case key.Matches(msg, keys.no):
		m.mode = m.prevMode
	}
	return nil
}

func (m *Model) updateMigration(msg tea.KeyMsg) tea.Cmd {
	var accept bool
	switch {
	case key.Matches(msg, keys.yes):
		accept = true
	case msg.String() == "n":
		accept = false
	default:
		return nil
	}

	return func() tea.Msg {
		return migrationDoneMsg{accepted: accept, err: m.controller.ResolveMigration(m.ctx, accept)}
	}
}

func (m *Model) updateLogin(msg tea.KeyMsg) tea.Cmd {
	if m.login.submitting {
		return nil
	}

	switch {
	case key.Matches(msg, keys.esc):
		m.mode = modeList
		return nil
	case msg.String() == "tab" || msg.String() == "down":
		m.login = m.login.setFocus(m.login.focus + 1)
		return nil
	case msg.String() == "shift+tab" || msg.String() == "up":
		m.login = m.login.setFocus(m.login.focus - 1)
		return nil
	case key.Matches(msg, keys.register):
		m.login = m.login.toggleRegister()
		return nil
	case key.Matches(msg, keys.enter):
		if problem := m.login.validate(); problem != "" {
			m.login.errMsg = problem
			return nil
		}
		m.login.submitting = true
		m.login.errMsg = ""
		credentials := m.login.credentials()
		register := m.login.register
		return func() tea.Msg {
			var (
				identity models.Identity
				err      error
			)
			if register {
				identity, err = m.controller.Register(m.ctx, credentials)
			} else {
				identity, err = m.controller.SignIn(m.ctx, credentials)
			}
			return authDoneMsg{identity: identity, err: err}
		}
	}

	var cmd tea.Cmd
	m.login, cmd = m.login.update(msg)
	return cmd
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func (m *Model) cmdStart() tea.Cmd {
	return func() tea.Msg {
		return startedMsg{err: m.controller.Start(m.ctx)}
	}
}

func (m *Model) cmdWrite(action writeAction, done string, write func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return writeDoneMsg{action: action, done: done, err: write(m.ctx)}
	}
}

func waitForEvent(events <-chan service.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *Model) setStatus(status string) tea.Cmd {
	m.status = status
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

// visible returns the filtered items in display order.
func (m *Model) visible() []models.Item {
	var items []models.Item
	for _, g := range m.controller.View(m.criteria, m.loc) {
		items = append(items, g.Items...)
	}
	return items
}

func (m *Model) selected() (models.Item, bool) {
	items := m.visible()
	if m.cursor < 0 || m.cursor >= len(items) {
		return models.Item{}, false
	}
	return items[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) resetFilters() {
	m.criteria = models.FilterCriteria{StatusFilter: models.FilterAll, GroupBy: m.criteria.GroupBy}
	m.clampCursor()
}

// dropUnknownTags removes filter tags that no longer exist, so a deleted tag
// does not leave the list filtered by nothing.
func (m *Model) dropUnknownTags() {
	if len(m.criteria.SelectedTags) == 0 {
		return
	}
	known := make(map[string]struct{})
	for _, tag := range m.controller.Tags() {
		known[tag] = struct{}{}
	}

	kept := m.criteria.SelectedTags[:0]
	for _, tag := range m.criteria.SelectedTags {
		if _, ok := known[tag]; ok {
			kept = append(kept, tag)
		}
	}
	if len(kept) == 0 {
		kept = nil
	}
	m.criteria.SelectedTags = kept
	m.clampCursor()
}

func (m *Model) renameSelectedTag(from, to string) {
	if !slices.Contains(m.criteria.SelectedTags, from) {
		return
	}
	m.unselectTag(from)
	if !slices.Contains(m.criteria.SelectedTags, to) {
		m.criteria.SelectedTags = append(m.criteria.SelectedTags, to)
	}
}

func (m *Model) unselectTag(tag string) {
	m.criteria.SelectedTags = slices.DeleteFunc(m.criteria.SelectedTags, func(t string) bool { return t == tag })
	if len(m.criteria.SelectedTags) == 0 {
		m.criteria.SelectedTags = nil
	}
	m.clampCursor()
}

func (m *Model) toggleSelectedTag(tag string) {
	if slices.Contains(m.criteria.SelectedTags, tag) {
		m.unselectTag(tag)
		return
	}
	m.criteria.SelectedTags = append(m.criteria.SelectedTags, tag)
	m.clampCursor()
}
