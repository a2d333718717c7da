package inspect

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"mediumcheck/internal/logging"
	"mediumcheck/internal/resolver"
)

const (
	DefaultDebounce      = 220 * time.Millisecond
	DefaultCacheTTL      = 5 * time.Minute
	DefaultToggleKey     = "F8"
	DefaultManualKey     = "F9"
	DefaultMaxQueryChars = 220
	DefaultAncestorDepth = 6
	DefaultTooltipItems  = 8
	// DefaultTooltipOffset shifts the tooltip away from the pointer.
	DefaultTooltipOffset = 16
	// DefaultViewportMargin keeps the tooltip origin this far from the
	// right and bottom viewport edges.
	DefaultViewportMargin = 60

	eventBuffer = 64
)

// Options tunes a Controller. Zero values select the defaults.
type Options struct {
	Debounce       time.Duration
	CacheTTL       time.Duration
	ToggleKey      string
	ManualKey      string
	MaxQueryChars  int
	AncestorDepth  int
	TooltipItems   int
	TooltipOffset  int
	ViewportMargin int

	Scheduler Scheduler
	Now       func() time.Time
	// Spawn runs a lookup off the loop. Defaults to a new goroutine.
	Spawn  func(func())
	Logger *slog.Logger
}

func (o *Options) applyDefaults() {
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if strings.TrimSpace(o.ToggleKey) == "" {
		o.ToggleKey = DefaultToggleKey
	}
	if strings.TrimSpace(o.ManualKey) == "" {
		o.ManualKey = DefaultManualKey
	}
	if o.MaxQueryChars <= 0 {
		o.MaxQueryChars = DefaultMaxQueryChars
	}
	if o.AncestorDepth <= 0 {
		o.AncestorDepth = DefaultAncestorDepth
	}
	if o.TooltipItems <= 0 {
		o.TooltipItems = DefaultTooltipItems
	}
	if o.TooltipOffset <= 0 {
		o.TooltipOffset = DefaultTooltipOffset
	}
	if o.ViewportMargin <= 0 {
		o.ViewportMargin = DefaultViewportMargin
	}
	if o.Scheduler == nil {
		o.Scheduler = realScheduler{}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Spawn == nil {
		o.Spawn = func(f func()) { go f() }
	}
}

// Controller owns the inspection state for one page.
type Controller struct {
	host    Host
	checker Checker
	opts    Options
	logger  *slog.Logger

	events    chan func()
	quit      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once

	// Owned by the Run goroutine.
	runCtx     context.Context
	inspecting bool
	lastNode   Node
	hasLast    bool
	pointer    Point
	seq        uint64
	timer      Timer
	overlay    Overlay
	tooltip    Tooltip
	tipVisible bool
	cache      *statusCache
}

// New creates a controller drawing on host and resolving text with checker.
func New(host Host, checker Checker, opts Options) (*Controller, error) {
	if host == nil {
		return nil, errors.New("inspect: host required")
	}
	if checker == nil {
		return nil, errors.New("inspect: checker required")
	}
	opts.applyDefaults()
	return &Controller{
		host:    host,
		checker: checker,
		opts:    opts,
		logger:  logging.NewComponentLogger(opts.Logger, "inspect"),
		events:  make(chan func(), eventBuffer),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
		runCtx:  context.Background(),
		cache:   newStatusCache(opts.CacheTTL, opts.Now),
	}, nil
}

// Run processes events until ctx is cancelled or Close is called, then removes
// the UI and stops pending timers. Run must be called once.
func (c *Controller) Run(ctx context.Context) error {
	c.runCtx = ctx
	defer close(c.stopped)
	defer c.teardown()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.quit:
			return nil
		case fn := <-c.events:
			fn()
		}
	}
}

// Close stops the loop. It is safe to call more than once.
func (c *Controller) Close() {
	c.closeOnce.Do(func() { close(c.quit) })
}

// Done is closed after Run has returned and the UI is removed.
func (c *Controller) Done() <-chan struct{} {
	return c.stopped
}

// PointerMove reports a pointer position.
func (c *Controller) PointerMove(x, y int) {
	c.post(func() { c.handleMove(Point{X: x, Y: y}) })
}

// KeyDown reports a key press. Auto-repeated presses are ignored.
func (c *Controller) KeyDown(key string, repeat bool) {
	if repeat {
		return
	}
	c.post(func() { c.handleKey(key) })
}

func (c *Controller) post(fn func()) bool {
	select {
	case <-c.stopped:
		return false
	case <-c.quit:
		return false
	default:
	}
	select {
	case c.events <- fn:
		return true
	case <-c.stopped:
		return false
	case <-c.quit:
		return false
	}
}

func (c *Controller) handleKey(key string) {
	key = strings.TrimSpace(key)
	switch {
	case strings.EqualFold(key, c.opts.ToggleKey):
		c.toggle()
	case strings.EqualFold(key, c.opts.ManualKey):
		c.manual()
	}
}

func (c *Controller) toggle() {
	c.inspecting = !c.inspecting
	// Responses issued under the previous mode are no longer wanted.
	c.seq++
	if c.inspecting {
		c.ensureUI()
		c.showTip(modeOnText)
		c.overlay.SetState(StateLoading)
		c.overlay.SetBadge(badgeLoad, StateLoading)
		c.logger.Debug("inspect mode on")
		return
	}
	c.hideUI()
	c.logger.Debug("inspect mode off")
}

func (c *Controller) manual() {
	text, ok := c.host.Prompt(promptText)
	if !ok {
		return
	}
	query := strings.TrimSpace(text)
	if query == "" {
		return
	}
	c.ensureUI()
	c.lastNode, c.hasLast = nil, false
	c.schedule(nil, query, true)
}

func (c *Controller) handleMove(p Point) {
	c.pointer = p
	if !c.inspecting {
		return
	}
	c.moveTip()

	node, ok := c.host.NodeAt(p)
	if !ok || node == nil {
		return
	}
	if c.hasLast && c.lastNode == node {
		return
	}
	c.lastNode, c.hasLast = node, true
	c.showOverlayFor(node)

	query := extractQuery(c.host, node, c.opts.AncestorDepth, c.opts.MaxQueryChars)
	c.overlay.SetState(StateLoading)
	c.overlay.SetBadge(badgeLoad, StateLoading)

	if query == "" {
		c.cancelPending()
		c.showTip(noTextText)
		c.overlay.SetState(StateMissing)
		c.overlay.SetBadge(badgeMissed, StateMissing)
		return
	}
	c.schedule(node, query, false)
}

// cancelPending stops the debounce timer and invalidates in-flight lookups.
func (c *Controller) cancelPending() {
	c.stopTimer()
	c.seq++
}

func (c *Controller) schedule(node Node, query string, manual bool) {
	c.cancelPending()
	seq := c.seq

	if cached, ok := c.cache.get(query); ok {
		c.logger.Debug("cache hit", logging.String(logging.FieldQuery, query))
		c.render(query, cached, manual)
		return
	}

	if !manual {
		c.showTip(pendingText(query))
	}
	c.timer = c.opts.Scheduler.AfterFunc(c.opts.Debounce, func() {
		c.post(func() { c.fire(node, query, seq, manual) })
	})
}

func (c *Controller) fire(node Node, query string, seq uint64, manual bool) {
	if seq != c.seq {
		return
	}
	c.timer = nil
	if !c.inspecting && !manual {
		return
	}
	if !manual && (!c.hasLast || c.lastNode != node) {
		return
	}
	if query == "" {
		return
	}
	c.runCheck(query, seq, manual)
}

func (c *Controller) runCheck(query string, seq uint64, manual bool) {
	if cached, ok := c.cache.get(query); ok {
		c.render(query, cached, manual)
		return
	}

	if manual {
		c.overlay.Hide()
	} else {
		c.overlay.SetState(StateLoading)
		c.overlay.SetBadge(badgeLoad, StateLoading)
	}
	c.showTip(pendingText(query))

	ctx := c.runCtx
	c.logger.Debug("lookup issued", logging.String(logging.FieldQuery, query), logging.Uint64("seq", seq), logging.Bool("manual", manual))
	c.opts.Spawn(func() {
		status := c.checker.Check(ctx, query)
		c.post(func() { c.complete(query, seq, manual, status) })
	})
}

func (c *Controller) complete(query string, seq uint64, manual bool, status resolver.MediumStatus) {
	if seq != c.seq {
		c.logger.Debug("stale lookup dropped", logging.Uint64("seq", seq), logging.Uint64("current", c.seq))
		return
	}
	if !c.inspecting && !manual {
		return
	}
	if status.OK {
		c.cache.put(query, status)
	}
	c.render(query, status, manual)
}

func (c *Controller) render(query string, status resolver.MediumStatus, manual bool) {
	c.ensureUI()
	if manual {
		c.overlay.Hide()
	} else {
		found := status.OK && status.Found
		if found {
			c.overlay.SetState(StateFound)
			c.overlay.SetBadge(badgeFound(status.Total), StateFound)
		} else {
			c.overlay.SetState(StateMissing)
			c.overlay.SetBadge(badgeMissed, StateMissing)
		}
	}
	c.showTip(tooltipText(query, status, c.opts.TooltipItems))
}

func (c *Controller) ensureUI() {
	if c.overlay != nil {
		return
	}
	c.overlay = c.host.NewOverlay()
	c.tooltip = c.host.NewTooltip()
}

func (c *Controller) showOverlayFor(node Node) {
	c.ensureUI()
	r, ok := c.host.Bounds(node)
	if !ok || r.Empty() {
		c.overlay.Hide()
		return
	}
	c.overlay.Place(Rect{X: max(0, r.X), Y: max(0, r.Y), Width: r.Width, Height: r.Height})
}

func (c *Controller) showTip(text string) {
	c.ensureUI()
	c.tooltip.Show(text, c.tipPosition())
	c.tipVisible = true
}

func (c *Controller) moveTip() {
	if c.tooltip == nil || !c.tipVisible {
		return
	}
	c.tooltip.Move(c.tipPosition())
}

func (c *Controller) tipPosition() Point {
	vp := c.host.Viewport()
	return Point{
		X: min(c.pointer.X+c.opts.TooltipOffset, vp.Width-c.opts.ViewportMargin),
		Y: min(c.pointer.Y+c.opts.TooltipOffset, vp.Height-c.opts.ViewportMargin),
	}
}

func (c *Controller) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) hideUI() {
	if c.overlay != nil {
		c.overlay.Hide()
	}
	if c.tooltip != nil {
		c.tooltip.Hide()
	}
	c.tipVisible = false
	c.lastNode, c.hasLast = nil, false
	c.stopTimer()
}

func (c *Controller) teardown() {
	c.stopTimer()
	c.seq++
	if c.overlay != nil {
		c.overlay.Remove()
		c.overlay = nil
	}
	if c.tooltip != nil {
		c.tooltip.Remove()
		c.tooltip = nil
	}
	c.tipVisible = false
	c.inspecting = false
	c.lastNode, c.hasLast = nil, false
}
