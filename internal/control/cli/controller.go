package cli

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/salonplan/internal/control"
	"github.com/ja-he/salonplan/internal/control/action"
	"github.com/ja-he/salonplan/internal/input"
	"github.com/ja-he/salonplan/internal/model"
	"github.com/ja-he/salonplan/internal/potatolog"
	"github.com/ja-he/salonplan/internal/schedule"
	"github.com/ja-he/salonplan/internal/storage"
	"github.com/ja-he/salonplan/internal/styling"
	"github.com/ja-he/salonplan/internal/tui"
	"github.com/ja-he/salonplan/internal/ui"
	"github.com/ja-he/salonplan/internal/ui/panes"
)

const (
	timelineWidth = 7
	statusHeight  = 2

	minScale = 1
	maxScale = 12

	fetchTimeout = 30 * time.Second
)

// Screen is what the controller needs of the terminal.
type Screen interface {
	ui.Renderer
	ui.RenderOrchestratorControl
	tui.InitializedScreen
	tui.ScreenSynchronizer
	Dimensions() (x, y, w, h int)
	GetEventPollable() tui.EventPollable
}

// Controller is the struct for the TUI controller.
type Controller struct {
	data     *control.ControlData
	provider storage.DataProvider

	rootPane *panes.RootPane
	gridPane *panes.GridPane

	inputProcessor *input.Overlay
	helpProcessor  input.SimpleInputProcessor

	controllerEvents chan controllerEvent
	fetches          sync.WaitGroup

	gridMtx sync.Mutex
	grid    *schedule.Grid

	clock func() time.Time

	screen Screen
}

// NewController creates a new Controller drawing the grid described by data
// onto the screen, with appointments from the provider.
func NewController(
	data *control.ControlData,
	provider storage.DataProvider,
	stylesheet *styling.Stylesheet,
	statusStyling *styling.StatusStyling,
	screen Screen,
	clock func() time.Time,
) (*Controller, error) {
	c := &Controller{
		data:             data,
		provider:         provider,
		controllerEvents: make(chan controllerEvent, 32),
		clock:            clock,
		screen:           screen,
	}

	gridTree, err := input.ConstructInputTree(map[input.Keyspec]action.Action{
		"h":       action.NewSimple(func() string { return "go to previous " + c.stepName() }, func() { c.goBy(-1) }),
		"l":       action.NewSimple(func() string { return "go to next " + c.stepName() }, func() { c.goBy(1) }),
		"<left>":  action.NewSimple(func() string { return "go to previous " + c.stepName() }, func() { c.goBy(-1) }),
		"<right>": action.NewSimple(func() string { return "go to next " + c.stepName() }, func() { c.goBy(1) }),
		"t":       action.Static("go to today", c.goToToday),
		"m":       action.Static("cycle mode (staff, room, day, week)", c.cycleMode),
		"j":       action.Static("show one hour later", func() { c.shiftWindow(1) }),
		"k":       action.Static("show one hour earlier", func() { c.shiftWindow(-1) }),
		"<down>":  action.Static("show one hour later", func() { c.shiftWindow(1) }),
		"<up>":    action.Static("show one hour earlier", func() { c.shiftWindow(-1) }),
		"+":       action.Static("zoom in", func() { c.zoom(1) }),
		"-":       action.Static("zoom out", func() { c.zoom(-1) }),
		"p":       action.Static("toggle lane packing", c.toggleLanes),
		"r":       action.Static("reload appointments", c.reload),
		"L":       action.Static("toggle log", c.toggleLog),
		"?":       action.Static("toggle help", c.toggleHelp),
		"q":       action.Static("quit", c.quit),
	})
	if err != nil {
		return nil, fmt.Errorf("could not construct grid key bindings (%w)", err)
	}
	helpTree, err := input.ConstructInputTree(map[input.Keyspec]action.Action{
		"?":     action.Static("close help", c.toggleHelp),
		"<esc>": action.Static("close help", c.toggleHelp),
		"q":     action.Static("close help", c.toggleHelp),
	})
	if err != nil {
		return nil, fmt.Errorf("could not construct help key bindings (%w)", err)
	}
	c.inputProcessor = input.NewOverlay(gridTree)
	c.helpProcessor = helpTree

	screenDimensions := screen.Dimensions
	timelineDimensions := func() (x, y, w, h int) {
		_, _, sw, sh := screenDimensions()
		return 0, 0, min(timelineWidth, sw), sh - statusHeight
	}
	gridDimensions := func() (x, y, w, h int) {
		_, _, sw, sh := screenDimensions()
		return timelineWidth, 0, sw - timelineWidth, sh - statusHeight
	}
	statusDimensions := func() (x, y, w, h int) {
		_, _, sw, sh := screenDimensions()
		return 0, sh - statusHeight, sw, statusHeight
	}
	logDimensions := func() (x, y, w, h int) {
		_, _, sw, sh := screenDimensions()
		return 0, 0, sw, sh - statusHeight
	}
	helpDimensions := func() (x, y, w, h int) {
		_, _, sw, sh := screenDimensions()
		helpWidth := 64
		helpHeight := len(c.inputProcessor.GetHelp()) + 2
		return (sw - helpWidth) / 2, (sh - helpHeight) / 2, helpWidth, helpHeight
	}
	constrained := func(dimensions func() (x, y, w, h int)) ui.ConstrainedRenderer {
		return ui.NewConstrainedRenderer(screen, dimensions)
	}

	c.gridPane = panes.NewGridPane(
		constrained(gridDimensions),
		gridDimensions,
		stylesheet,
		c.currentGrid,
		statusStyling,
		data.Hover,
	)
	timelinePane := panes.NewTimelinePane(
		constrained(timelineDimensions),
		timelineDimensions,
		stylesheet,
		c.currentGrid,
		data.CurrentSuntimes,
		func() model.Timestamp { return *model.NewTimestampFromGotime(c.clock()) },
	)
	statusPane := panes.NewStatusPane(
		constrained(statusDimensions),
		statusDimensions,
		stylesheet,
		c.currentGrid,
		func() bool { return data.PackLanes },
		c.hoveredAppointment,
		potatolog.GlobalMemoryLogReaderWriter,
	)
	logPane := panes.NewLogPane(
		constrained(logDimensions),
		logDimensions,
		stylesheet,
		func() bool { return data.ShowLog },
		func() string { return "LOG" },
		potatolog.GlobalMemoryLogReaderWriter,
	)
	helpPane := panes.NewHelpPane(
		constrained(helpDimensions),
		helpDimensions,
		stylesheet,
		func() bool { return data.ShowHelp },
		c.inputProcessor.GetHelp,
	)

	c.rootPane = panes.NewRootPane(
		screen,
		screenDimensions,
		timelinePane,
		c.gridPane,
		statusPane,
		logPane,
		helpPane,
	)

	return c, nil
}

func (c *Controller) currentGrid() *schedule.Grid {
	c.gridMtx.Lock()
	defer c.gridMtx.Unlock()
	return c.grid
}

func (c *Controller) hoveredAppointment() *schedule.PositionedAppointment {
	pos, mouseMode := c.data.Hover()
	if !mouseMode {
		return nil
	}
	return c.gridPane.AppointmentAt(pos.X, pos.Y)
}

// refreshGrid assembles the grid for the current state and time.
func (c *Controller) refreshGrid() {
	g, err := schedule.Assemble(c.data.Request(c.clock()))
	if err != nil {
		log.Error().Err(err).Msg("could not assemble grid, keeping previous")
		return
	}
	c.gridMtx.Lock()
	c.grid = g
	c.gridMtx.Unlock()
}

func (c *Controller) render() {
	c.refreshGrid()
	c.rootPane.Draw()
}

// fetch starts loading the current range in the background and requests a
// render when done. Results arriving after the view moved on are dropped.
func (c *Controller) fetch() {
	generation, dateRange := c.data.BeginFetch()
	log.Debug().Uint64("generation", generation).Str("range", dateRange.String()).Msg("fetching")

	c.fetches.Add(1)
	go func() {
		defer c.fetches.Done()
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		result := control.Fetch(ctx, c.provider, dateRange)
		switch {
		case result.Err != nil:
			log.Error().Err(result.Err).Str("range", dateRange.String()).Msg("could not fetch appointments")
		case !c.data.CompleteFetch(generation, result):
			log.Debug().Uint64("generation", generation).Msg("dropping stale fetch result")
		}
		c.requestRender()
	}()
}

func (c *Controller) requestRender() {
	select {
	case c.controllerEvents <- controllerEventRender:
	default:
		// a render is pending already
	}
}

// stepName names what goBy moves by in the current mode.
func (c *Controller) stepName() string {
	c.data.Lock()
	defer c.data.Unlock()
	if c.data.Mode == schedule.ModeWeek {
		return "week"
	}
	return "day"
}

func (c *Controller) goBy(steps int) {
	c.data.Lock()
	days := steps
	if c.data.Mode == schedule.ModeWeek {
		days *= 7
	}
	c.data.CurrentDate = c.data.CurrentDate.Forward(days)
	log.Debug().Str("new-date", c.data.CurrentDate.String()).Msg("going to new date")
	c.data.Unlock()
	c.fetch()
}

func (c *Controller) goToToday() {
	c.data.Lock()
	c.data.CurrentDate = model.DateFromGotime(c.clock())
	c.data.Unlock()
	c.fetch()
}

func (c *Controller) cycleMode() {
	c.data.Lock()
	c.data.Mode = c.data.Mode.Next()
	log.Debug().Stringer("mode", c.data.Mode).Msg("switched mode")
	c.data.Unlock()
	c.fetch()
}

func (c *Controller) shiftWindow(hours int) {
	c.data.Lock()
	defer c.data.Unlock()
	c.data.Window = c.data.Window.Shifted(hours)
}

func (c *Controller) zoom(by int) {
	c.data.Lock()
	defer c.data.Unlock()
	scale := c.data.Window.Scale + float64(by)
	if scale < minScale || scale > maxScale {
		log.Debug().Float64("scale", scale).Msg("not zooming beyond limits")
		return
	}
	c.data.Window.Scale = scale
}

func (c *Controller) toggleLanes() {
	c.data.Lock()
	defer c.data.Unlock()
	c.data.PackLanes = !c.data.PackLanes
}

// reload drops any cached records of the provider and fetches anew.
func (c *Controller) reload() {
	if r, ok := c.provider.(interface{ Reload() }); ok {
		r.Reload()
	}
	c.fetch()
}

func (c *Controller) toggleLog() {
	c.data.Lock()
	defer c.data.Unlock()
	c.data.ShowLog = !c.data.ShowLog
}

func (c *Controller) toggleHelp() {
	c.data.Lock()
	defer c.data.Unlock()
	c.data.ShowHelp = !c.data.ShowHelp
	if c.data.ShowHelp {
		c.inputProcessor.Apply(c.helpProcessor)
	} else {
		c.inputProcessor.Pop()
	}
}

func (c *Controller) quit() {
	c.controllerEvents <- controllerEventExit
}

// handleEvent processes a single terminal event.
func (c *Controller) handleEvent(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		c.data.SetKeyboardMode()
		key := input.KeyFromEvent(e)
		if !c.inputProcessor.ProcessInput(key) {
			log.Warn().Str("key", key.ToDebugString()).Msg("could not apply key input")
		}

	case *tcell.EventMouse:
		c.data.SetMouseCursor(e.Position())
		switch e.Buttons() {
		case tcell.WheelUp:
			c.shiftWindow(-1)
		case tcell.WheelDown:
			c.shiftWindow(1)
		}

	case *tcell.EventResize:
		c.screen.NeedsSync()
	}
}

type controllerEvent int

const (
	_ controllerEvent = iota
	controllerEventExit
	controllerEventRender
)

// Empties all render events from the channel.
// Returns true, if an exit event was encountered so the caller
// knows to exit.
func emptyRenderEvents(c chan controllerEvent) bool {
	for {
		select {
		case bufferedEvent := <-c:
			switch bufferedEvent {
			case controllerEventRender:
				{
					// dump extra render events
				}
			case controllerEventExit:
				return true
			}
		default:
			return false
		}
	}
}

// Run runs the controller until the user quits.
func (c *Controller) Run() {
	log.Info().Msg("salonplan grid started")

	c.fetch()

	var wg sync.WaitGroup

	// Run the main render loop, that renders or exits when prompted accordingly
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer c.screen.Fini()
		c.render()
		for controllerEvent := range c.controllerEvents {
			switch controllerEvent {
			case controllerEventRender:
				// empty all further render events before rendering
				exitEventEncounteredOnEmpty := emptyRenderEvents(c.controllerEvents)
				// exit if an exit event was coming up
				if exitEventEncounteredOnEmpty {
					return
				}
				c.render()

			case controllerEventExit:
				return

			default:
				log.Error().Interface("event", controllerEvent).Msgf("unhandled controller event")
			}
		}
	}()

	// Run the time tracking loop, that updates at the start of every minute so
	// the current-time indicator moves
	go func() {
		for {
			now := time.Now()
			next := now.Truncate(time.Minute).Add(time.Minute)
			time.Sleep(time.Until(next))
			c.requestRender()
		}
	}()

	// Run the event tracking loop, that waits for and processes events and pings
	// for a redraw after each event.
	go func() {
		events := c.screen.GetEventPollable()
		for {
			ev := events.PollEvent()
			if ev == nil {
				// screen finalized
				return
			}
			c.handleEvent(ev)
			c.requestRender()
		}
	}()

	wg.Wait()
}
