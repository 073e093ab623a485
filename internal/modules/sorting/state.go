package sorting

import (
	"fmt"
	"maps"
)

// ViewID identifies a sortable table.
type ViewID string

const (
	ViewPurchases      ViewID = "buys"
	ViewSales          ViewID = "sales"
	ViewDividends      ViewID = "divs"
	ViewHoldings       ViewID = "port"
	ViewGlobalHoldings ViewID = "global-port"
)

// Views lists every sortable view.
var Views = []ViewID{ViewPurchases, ViewSales, ViewDividends, ViewHoldings, ViewGlobalHoldings}

// Defaults returns the startup configuration: chronological tables newest
// first, holdings tables by cost descending.
func Defaults() map[ViewID]Config {
	return map[ViewID]Config{
		ViewPurchases:      {Key: DateKey, Direction: Desc},
		ViewSales:          {Key: DateKey, Direction: Desc},
		ViewDividends:      {Key: DateKey, Direction: Desc},
		ViewHoldings:       {Key: "total_cost", Direction: Desc},
		ViewGlobalHoldings: {Key: "total_cost", Direction: Desc},
	}
}

// Indicator is what a column header shows.
type Indicator struct {
	Active    bool      `json:"active"`
	Direction Direction `json:"dir,omitempty"`
}

// State maps each view to its current sort. Toggle is its only mutator.
// State is not safe for concurrent use; its owner serializes access.
type State struct {
	configs map[ViewID]Config
}

// NewState returns a state initialized with Defaults.
func NewState() *State {
	return &State{configs: Defaults()}
}

// Config returns the current sort of a view.
func (s *State) Config(view ViewID) (Config, error) {
	c, ok := s.configs[view]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownView, view)
	}
	return c, nil
}

// Toggle applies a user sort action: the same key flips the direction, a new
// key becomes active in descending order. It returns the resulting config.
func (s *State) Toggle(view ViewID, key string) (Config, error) {
	c, err := s.Config(view)
	if err != nil {
		return Config{}, err
	}
	if c.Key == key {
		c.Direction = c.Direction.Flip()
	} else {
		c = Config{Key: key, Direction: Desc}
	}
	s.configs[view] = c
	return c, nil
}

// Indicator reports whether column is the active sort key of view and, if so,
// in which direction.
func (s *State) Indicator(view ViewID, column string) Indicator {
	c, ok := s.configs[view]
	if !ok || c.Key != column {
		return Indicator{}
	}
	return Indicator{Active: true, Direction: c.Direction}
}

// Snapshot returns a copy of every view's config.
func (s *State) Snapshot() map[ViewID]Config {
	return maps.Clone(s.configs)
}
