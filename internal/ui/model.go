package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/popup-launcher/internal/logging/events"
	"github.com/atomicstack/popup-launcher/internal/menu"
	"github.com/atomicstack/popup-launcher/internal/theme"
	"github.com/atomicstack/popup-launcher/internal/ui/command"
	uistate "github.com/atomicstack/popup-launcher/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type level = uistate.Level

const (
	menuHeaderSeparator = "→"
	defaultRootTitle    = "main menu"
)

// Exit reasons recorded when the model asks the program to quit.
const (
	ExitDismissed = "dismissed"
	ExitLaunched  = "launched"
	ExitInterrupt = "interrupt"
)

type msgHandler func(tea.Msg) tea.Cmd

func newLevel(view menu.View, items []menu.Item) *level {
	title := defaultRootTitle
	if !view.IsRoot() {
		title = view.Category
	}
	return uistate.NewLevel(view, title, items)
}

// Options configures a Model.
type Options struct {
	State      *menu.State
	Dispatcher command.Dispatcher
	Styles     *theme.Styles
	Width      int
	Height     int
	ShowFooter bool
	Mouse      bool
	Log        *zap.Logger
	Tracers    events.Tracers
}

// Model implements the Bubble Tea model for the launcher popup.
type Model struct {
	menu              *menu.State
	stack             []*level
	loading           bool
	pendingLabel      string
	errMsg            string
	infoMsg           string
	infoExpire        time.Time
	width             int
	height            int
	fixedWidth        bool
	fixedHeight       bool
	showFooter        bool
	mouse             bool
	exitReason        string
	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler

	bus    *command.Bus
	styles *theme.Styles
	log    *zap.Logger
	events events.Tracers
}

// NewModel initialises the UI with the root menu of opts.State.
func NewModel(opts Options) *Model {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	state := opts.State
	if state == nil {
		state = menu.NewState(&menu.Config{}, log)
	}
	styles := opts.Styles
	if styles == nil {
		styles = theme.Default()
	}
	root := newLevel(state.View(), state.Items())
	m := &Model{
		menu:       state,
		stack:      []*level{root},
		bus:        command.New(opts.Dispatcher, opts.Tracers.Command, log),
		showFooter: opts.ShowFooter,
		mouse:      opts.Mouse,
		styles:     styles,
		log:        log,
		events:     opts.Tracers,
	}
	m.syncViewport(root)
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// ExitReason reports why the model quit, or "" while it is running.
func (m *Model) ExitReason() string {
	return m.exitReason
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return m.filterCursor.Focus()
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(command.Result{}):    m.handleActionResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

func (m *Model) quit(reason string) tea.Cmd {
	m.exitReason = reason
	return tea.Quit
}
