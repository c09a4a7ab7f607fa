package testdrop

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/testdrop/pkg/config"
	"github.com/arthur-debert/testdrop/pkg/errors"
	"github.com/arthur-debert/testdrop/pkg/logging"
)

// TestDrop tracks the release state of the items it creates.
type TestDrop struct {
	drops   int
	dropped []bool

	closed       bool
	trackCallers bool
	sites        map[int]string
	logger       zerolog.Logger
}

// Option configures a TestDrop.
type Option func(*TestDrop)

// WithLogger sets the logger used for registry events.
// Items are logged at debug level and failures at error level just before
// the panic.
func WithLogger(logger zerolog.Logger) Option {
	return func(td *TestDrop) { td.logger = logger }
}

// WithCallerTracking records the call site of each item's first release.
// Double-release failures then report it under the "first_drop" detail.
func WithCallerTracking(enabled bool) Option {
	return func(td *TestDrop) { td.trackCallers = enabled }
}

// WithConfig applies loaded settings. A nil config is ignored.
func WithConfig(cfg *config.Config) Option {
	return func(td *TestDrop) {
		if cfg == nil {
			return
		}
		level, err := logging.ParseLevel(cfg.Log.Level)
		if err != nil {
			panic(errors.Wrap(err, errors.ErrConfigValid, "invalid log.level").
				WithDetail("level", cfg.Log.Level))
		}
		td.logger = logging.GetLogger("testdrop").Level(level)
		td.trackCallers = cfg.Track.Callers
	}
}

// New creates a TestDrop with no tracked items.
func New(opts ...Option) *TestDrop {
	td := &TestDrop{
		sites:  make(map[int]string),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(td)
	}
	return td
}

// NewItem creates a new Item and returns its id along with it.
// Ids count up from 0 in creation order and are never reused, so the id can
// be passed to AssertDrop and AssertNoDrop at any later point.
func (td *TestDrop) NewItem() (int, *Item) {
	id := td.NumTrackedItems()
	if td.closed {
		td.fail(errors.Newf(errors.ErrRegistryClosed,
			"cannot track item %d, registry is closed", id).WithDetail("id", id))
	}
	td.dropped = append(td.dropped, false)
	td.logger.Debug().Int("id", id).Msg("Item tracked")
	return id, &Item{id: id, parent: td}
}

// NumTrackedItems returns the number of tracked items.
func (td *TestDrop) NumTrackedItems() int {
	return len(td.dropped)
}

// NumDroppedItems returns the number of items released so far.
func (td *TestDrop) NumDroppedItems() int {
	return td.drops
}

// IsDropped reports whether the item with the given id was released.
// It panics if id was never handed out by this TestDrop.
func (td *TestDrop) IsDropped(id int) bool {
	td.checkRange(id)
	return td.dropped[id]
}

// AssertDrop panics unless the item was released.
func (td *TestDrop) AssertDrop(id int) {
	if !td.IsDropped(id) {
		td.fail(errors.Newf(errors.ErrNotDropped,
			"%d should be dropped, but was not", id).WithDetail("id", id))
	}
}

// AssertNoDrop panics if the item was released.
func (td *TestDrop) AssertNoDrop(id int) {
	if td.IsDropped(id) {
		td.fail(errors.Newf(errors.ErrUnexpectedDrop,
			"%d should not be dropped, but was", id).WithDetail("id", id))
	}
}

// Close ends the registry's lifetime. Releasing or creating items afterwards
// panics with REGISTRY_CLOSED; queries and assertions keep working.
func (td *TestDrop) Close() {
	if td.closed {
		return
	}
	td.closed = true
	td.logger.Debug().
		Int("tracked", td.NumTrackedItems()).
		Int("dropped", td.NumDroppedItems()).
		Msg("Registry closed")
}

// Closed reports whether Close was called.
func (td *TestDrop) Closed() bool {
	return td.closed
}

func (td *TestDrop) String() string {
	return fmt.Sprintf("TestDrop{tracked: %d, dropped: %d}", td.NumTrackedItems(), td.NumDroppedItems())
}

// addDrop is the only path that flips a slot. It is reached from
// Item.Release; site is the caller of Release when caller tracking is on.
func (td *TestDrop) addDrop(id int, site string) {
	if td.closed {
		td.fail(errors.Newf(errors.ErrRegistryClosed,
			"%d was released after its registry was closed", id).WithDetail("id", id))
	}
	if td.IsDropped(id) {
		err := errors.Newf(errors.ErrDoubleDrop, "%d is already dropped", id).WithDetail("id", id)
		if first, ok := td.sites[id]; ok {
			err.WithDetail("first_drop", first)
		}
		td.fail(err)
	}
	td.dropped[id] = true
	td.drops++
	if site != "" {
		td.sites[id] = site
	}
	td.logger.Debug().Int("id", id).Int("dropped", td.drops).Msg("Item dropped")
}

func (td *TestDrop) checkRange(id int) {
	if id < 0 || id >= len(td.dropped) {
		td.fail(errors.Newf(errors.ErrOutOfRange,
			"item %d is out of range (tracked items: %d)", id, len(td.dropped)).
			WithDetail("id", id).
			WithDetail("tracked", len(td.dropped)))
	}
}

func (td *TestDrop) fail(err *errors.DropError) {
	td.logger.Error().
		Str("code", string(err.Code)).
		Fields(err.Details).
		Msg(err.Message)
	panic(err)
}
