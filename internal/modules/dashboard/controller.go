package dashboard

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/aristath/taxboard/internal/domain"
	"github.com/aristath/taxboard/internal/modules/sorting"
)

// Controller owns one dashboard's scope and sort state and renders into a
// Sink. SelectScope, SelectChartPoint and ToggleSort are its only mutators.
// Calls are serialized: a render completes before the next intent observes
// the sort state.
type Controller struct {
	mu     sync.Mutex
	ledger *domain.Ledger
	scope  Scope
	sorts  *sorting.State
	sink   Sink
	log    zerolog.Logger
}

// NewController creates a controller in the global scope. Nothing is rendered
// until Render or an intent is called.
func NewController(ledger *domain.Ledger, sink Sink, log zerolog.Logger) *Controller {
	return &Controller{
		ledger: ledger,
		scope:  Global(),
		sorts:  sorting.NewState(),
		sink:   sink,
		log:    log.With().Str("component", "dashboard").Logger(),
	}
}

// Render fully rebuilds the active scope.
func (c *Controller) Render() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderScope()
}

// SelectScope moves to scope s and renders it.
func (c *Controller) SelectScope(s Scope) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectScope(s)
}

// SelectChartPoint moves to the year of the index-th point of the global
// year-over-year chart.
func (c *Controller) SelectChartPoint(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ledger == nil {
		return ErrNoLedger
	}
	labels := c.ledger.YearLabels()
	if index < 0 || index >= len(labels) {
		return fmt.Errorf("%w: chart point %d", ErrUnknownYear, index)
	}
	return c.selectScope(Year(labels[index]))
}

func (c *Controller) selectScope(s Scope) error {
	if c.ledger == nil {
		return ErrNoLedger
	}
	if s.IsGlobal() {
		s = Global()
	} else if !c.ledger.HasYear(s.Year) {
		return fmt.Errorf("%w: %q", ErrUnknownYear, s.Year)
	}
	c.log.Debug().Str("from", c.scope.String()).Str("to", s.String()).Msg("Scope changed")
	c.scope = s
	return c.renderScope()
}

// ToggleSort applies a sort action to a view. The view is re-rendered when it
// belongs to the active scope.
func (c *Controller) ToggleSort(view sorting.ViewID, key string) (sorting.Config, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cfg, err := c.sorts.Toggle(view, key)
	if err != nil {
		return sorting.Config{}, err
	}
	c.log.Debug().Str("view", string(view)).Str("sort", cfg.String()).Msg("Sort toggled")

	if c.ledger == nil || !c.scope.Shows(view) {
		return cfg, nil
	}
	return cfg, c.renderView(view)
}

// ReplaceLedger binds the controller to a new ledger and re-renders. A year
// scope whose year is gone falls back to the global scope.
func (c *Controller) ReplaceLedger(l *domain.Ledger) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ledger = l
	if !c.scope.IsGlobal() && !l.HasYear(c.scope.Year) {
		c.log.Info().Str("year", c.scope.Year).Msg("Year no longer in ledger, returning to global scope")
		c.scope = Global()
	}
	return c.renderScope()
}

// Ledger returns the ledger the controller is bound to.
func (c *Controller) Ledger() *domain.Ledger {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger
}

// Scope returns the active scope.
func (c *Controller) Scope() Scope {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scope
}

// DownloadYear returns the year whose report can be downloaded, if a year is
// on screen.
func (c *Controller) DownloadYear() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scope.IsGlobal() {
		return "", false
	}
	return c.scope.Year, true
}

// Indicator reports the header state of a column.
func (c *Controller) Indicator(view sorting.ViewID, column string) sorting.Indicator {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sorts.Indicator(view, column)
}

// Sorts returns the sort config of every view.
func (c *Controller) Sorts() map[sorting.ViewID]sorting.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sorts.Snapshot()
}

func (c *Controller) renderScope() error {
	if c.ledger == nil {
		return ErrNoLedger
	}

	c.sink.Begin(c.scope)
	c.sink.RenderPicker(BuildYearPicker(c.ledger, c.scope.Year))

	if c.scope.IsGlobal() {
		c.sink.RenderGlobalKPIs(BuildGlobalKPIs(c.ledger.Global))
		c.sink.RenderYearChart(BuildYearChart(c.ledger))
		if err := c.renderView(sorting.ViewGlobalHoldings); err != nil {
			return err
		}
		c.sink.RenderConcentration(BuildConcentration(c.ledger.Global.CurrentPortfolio))
		return nil
	}

	d, ok := c.ledger.Year(c.scope.Year)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownYear, c.scope.Year)
	}
	c.sink.RenderDownload(DownloadPath(c.scope.Year))
	c.sink.RenderYearKPIs(BuildYearKPIs(c.scope.Year, d))
	for _, v := range c.scope.Views() {
		if err := c.renderView(v); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) renderView(view sorting.ViewID) error {
	cfg, err := c.sorts.Config(view)
	if err != nil {
		return err
	}

	if view == sorting.ViewGlobalHoldings {
		c.sink.RenderHoldings(buildTable(view, cfg, c.ledger.Global.CurrentPortfolio))
		return nil
	}

	d, ok := c.ledger.Year(c.scope.Year)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownYear, c.scope.Year)
	}
	switch view {
	case sorting.ViewPurchases:
		c.sink.RenderPurchases(buildTable(view, cfg, d.Purchases))
	case sorting.ViewSales:
		sorted := sorting.Sort(d.Sales, cfg)
		c.sink.RenderSales(Table[SaleRow]{View: view, Sort: cfg, Rows: BuildSaleRows(sorted)})
	case sorting.ViewDividends:
		c.sink.RenderDividends(buildTable(view, cfg, d.Dividends))
	case sorting.ViewHoldings:
		c.sink.RenderHoldings(buildTable(view, cfg, d.Portfolio))
	}
	return nil
}
