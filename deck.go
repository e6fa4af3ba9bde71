package main

import (
	"sync"
	"time"
)

// DefaultSettleDelay is how long a page turn takes before the display
// state catches up with the logical page.
const DefaultSettleDelay = 400 * time.Millisecond

// Phase is the deck's transition state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAdvancing
	PhaseRetreating
)

func (p Phase) String() string {
	switch p {
	case PhaseAdvancing:
		return "advancing"
	case PhaseRetreating:
		return "retreating"
	default:
		return "idle"
	}
}

// Timer is a pending scheduled callback
type Timer interface {
	Stop() bool
}

// Scheduler runs a callback after a delay
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// realScheduler schedules on the Go runtime timers
type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// DeckState is a snapshot of the navigation state
type DeckState struct {
	CurrentPage    int    `json:"current_page"`
	DisplayedImage int    `json:"displayed_image"`
	Flipped        []bool `json:"flipped"`
	ZOrder         []int  `json:"z_order"`
	Stack          []int  `json:"stack"`
	Phase          string `json:"phase"`
	Animating      bool   `json:"animating"`
	PageCount      int    `json:"page_count"`
}

// Command is a navigation command bound to keys
type Command string

const (
	CommandAdvance Command = "advance"
	CommandRetreat Command = "retreat"
)

// KeyBindings maps key names (as reported by KeyboardEvent.key) to commands
type KeyBindings struct {
	Advance []string `yaml:"advance" json:"advance"`
	Retreat []string `yaml:"retreat" json:"retreat"`
}

// DefaultKeyBindings binds the arrow keys: right/up advance, left/down retreat
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Advance: []string{"ArrowRight", "ArrowUp"},
		Retreat: []string{"ArrowLeft", "ArrowDown"},
	}
}

// Lookup returns the command bound to key
func (kb KeyBindings) Lookup(key string) (Command, bool) {
	for _, k := range kb.Advance {
		if k == key {
			return CommandAdvance, true
		}
	}
	for _, k := range kb.Retreat {
		if k == key {
			return CommandRetreat, true
		}
	}
	return "", false
}

// Deck is the page-flip state machine. Navigation commands are mutually
// exclusive: while a turn is settling, further commands are dropped.
//
// At rest Flipped[i] is true exactly for i < CurrentPage and DisplayedImage
// equals CurrentPage. During a turn the display state lags (advance) or
// the z-order lags (retreat) until the settle callback runs.
type Deck struct {
	mu sync.Mutex

	pages       []Page
	settleDelay time.Duration
	scheduler   Scheduler

	currentPage    int
	displayedImage int
	flipped        []bool
	zOrder         []int
	zCounter       int
	phase          Phase
	pending        Timer
	turnSeq        int

	keys      KeyBindings
	mounted   bool
	mountSeq  int
	listeners []func(DeckState)
}

// NewDeck creates a deck over pages. A nil scheduler uses real timers and a
// non-positive delay uses DefaultSettleDelay.
func NewDeck(pages []Page, settleDelay time.Duration, scheduler Scheduler) *Deck {
	if scheduler == nil {
		scheduler = realScheduler{}
	}
	if settleDelay <= 0 {
		settleDelay = DefaultSettleDelay
	}
	return &Deck{
		pages:       pages,
		settleDelay: settleDelay,
		scheduler:   scheduler,
		flipped:     make([]bool, len(pages)),
		zOrder:      make([]int, len(pages)),
		zCounter:    1,
	}
}

// Len returns the number of pages
func (d *Deck) Len() int {
	return len(d.pages)
}

// Pages returns the deck's pages in display order
func (d *Deck) Pages() []Page {
	out := make([]Page, len(d.pages))
	copy(out, d.pages)
	return out
}

// Page returns page i
func (d *Deck) Page(i int) (Page, bool) {
	if i < 0 || i >= len(d.pages) {
		return Page{}, false
	}
	return d.pages[i], true
}

// IndexOf returns the index of the first page of the given kind, or -1
func (d *Deck) IndexOf(kind PageKind) int {
	for i, p := range d.pages {
		if p.Kind == kind {
			return i
		}
	}
	return -1
}

// Current returns the current page
func (d *Deck) Current() Page {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.pages) == 0 {
		return Page{}
	}
	return d.pages[d.currentPage]
}

// Advance turns the current page forward. It returns false when the deck is
// on its last page or a turn is still settling.
func (d *Deck) Advance() bool {
	d.mu.Lock()
	if d.phase != PhaseIdle || d.currentPage >= len(d.pages)-1 {
		d.mu.Unlock()
		return false
	}

	turned := d.currentPage
	d.flipped[turned] = true
	d.zCounter++
	d.zOrder[turned] = d.zCounter
	d.currentPage++
	d.phase = PhaseAdvancing
	seq := d.beginTurnLocked()
	state := d.snapshotLocked()
	d.mu.Unlock()

	d.notify(state)
	d.schedule(seq, func() {
		// image swaps once the turning page covers the left panel
		d.displayedImage = d.currentPage
	})
	return true
}

// Retreat turns back to the previous page. It returns false on the first
// page or while a turn is still settling.
func (d *Deck) Retreat() bool {
	d.mu.Lock()
	if d.phase != PhaseIdle || d.currentPage <= 0 {
		d.mu.Unlock()
		return false
	}

	unturned := d.currentPage - 1
	d.displayedImage = unturned
	d.flipped[unturned] = false
	d.currentPage = unturned
	d.phase = PhaseRetreating
	seq := d.beginTurnLocked()
	state := d.snapshotLocked()
	d.mu.Unlock()

	d.notify(state)
	d.schedule(seq, func() {
		d.zOrder[unturned] = 0
	})
	return true
}

func (d *Deck) beginTurnLocked() int {
	d.turnSeq++
	return d.turnSeq
}

// schedule arms the settle callback for turn seq. The lock is not held
// while the scheduler runs, so a scheduler may fire inline. settle runs
// with the lock held, and only if seq is still the live turn.
func (d *Deck) schedule(seq int, settle func()) {
	t := d.scheduler.AfterFunc(d.settleDelay, func() {
		d.mu.Lock()
		if d.turnSeq != seq || d.phase == PhaseIdle {
			d.mu.Unlock()
			return
		}
		settle()
		d.phase = PhaseIdle
		d.pending = nil
		state := d.snapshotLocked()
		d.mu.Unlock()
		d.notify(state)
	})

	d.mu.Lock()
	defer d.mu.Unlock()
	switch {
	case d.turnSeq != seq:
		// superseded or closed before the timer was stored
		t.Stop()
	case d.phase != PhaseIdle:
		d.pending = t
	}
}

// Dispatch runs a navigation command
func (d *Deck) Dispatch(cmd Command) bool {
	switch cmd {
	case CommandAdvance:
		return d.Advance()
	case CommandRetreat:
		return d.Retreat()
	}
	return false
}

// Mount attaches key bindings for the deck's mounted lifetime. The returned
// func detaches them; detaching twice, or after a later Mount, is harmless.
func (d *Deck) Mount(keys KeyBindings) (detach func()) {
	d.mu.Lock()
	d.keys = keys
	d.mounted = true
	d.mountSeq++
	seq := d.mountSeq
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.mountSeq == seq {
			d.mounted = false
		}
	}
}

// Binding returns the command bound to key. Nothing is bound while the
// deck is not mounted.
func (d *Deck) Binding(key string) (Command, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.mounted {
		return "", false
	}
	return d.keys.Lookup(key)
}

// HandleKey dispatches the command bound to key. Unbound keys and keys
// pressed while the deck is not mounted are ignored.
func (d *Deck) HandleKey(key string) bool {
	cmd, ok := d.Binding(key)
	if !ok {
		return false
	}
	return d.Dispatch(cmd)
}

// Subscribe registers a listener called after every state change
func (d *Deck) Subscribe(fn func(DeckState)) {
	d.mu.Lock()
	d.listeners = append(d.listeners, fn)
	d.mu.Unlock()
}

// Close unmounts the deck: keys are detached and a pending settle callback
// is cancelled, leaving the deck in whatever state it had reached.
func (d *Deck) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mounted = false
	d.turnSeq++
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
	d.listeners = nil
}

// State returns a copy of the navigation state
func (d *Deck) State() DeckState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

func (d *Deck) snapshotLocked() DeckState {
	flipped := make([]bool, len(d.flipped))
	copy(flipped, d.flipped)
	zOrder := make([]int, len(d.zOrder))
	copy(zOrder, d.zOrder)
	return DeckState{
		Stack:          stackOrder(flipped, zOrder),
		CurrentPage:    d.currentPage,
		DisplayedImage: d.displayedImage,
		Flipped:        flipped,
		ZOrder:         zOrder,
		Phase:          d.phase.String(),
		Animating:      d.phase != PhaseIdle,
		PageCount:      len(d.pages),
	}
}

// stackOrder gives each page's paint order. Resting pages stack with the
// earliest on top. A page holding a z-order (turned, or still turning back)
// sits above every resting page, the latest turn highest.
func stackOrder(flipped []bool, zOrder []int) []int {
	n := len(flipped)
	stack := make([]int, n)
	for i := range stack {
		if flipped[i] || zOrder[i] > 0 {
			stack[i] = n + zOrder[i]
		} else {
			stack[i] = n - i
		}
	}
	return stack
}

func (d *Deck) notify(state DeckState) {
	d.mu.Lock()
	listeners := make([]func(DeckState), len(d.listeners))
	copy(listeners, d.listeners)
	d.mu.Unlock()
	for _, fn := range listeners {
		fn(state)
	}
}
