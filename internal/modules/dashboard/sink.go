package dashboard

import (
	"sync"

	"github.com/aristath/taxboard/internal/domain"
	"github.com/aristath/taxboard/internal/modules/sorting"
)

// Sink receives the output of a render. Begin opens a full render of a scope;
// a sort toggle re-sends only the affected table.
type Sink interface {
	Begin(scope Scope)
	RenderPicker(YearPicker)
	RenderGlobalKPIs(GlobalKPIs)
	RenderYearChart([]YearPoint)
	RenderConcentration(Concentration)
	RenderYearKPIs(YearKPIs)
	RenderPurchases(Table[domain.Purchase])
	RenderSales(Table[SaleRow])
	RenderDividends(Table[domain.Dividend])
	RenderHoldings(Table[domain.Position])
	RenderDownload(path string)
}

// Frame is everything the sinks received for the current scope.
type Frame struct {
	Revision       uint64                            `json:"revision"`
	Scope          Scope                             `json:"scope"`
	Picker         YearPicker                        `json:"picker"`
	GlobalKPIs     *GlobalKPIs                       `json:"global_kpis,omitempty"`
	YearChart      []YearPoint                       `json:"year_chart,omitempty"`
	Concentration  *Concentration                    `json:"concentration,omitempty"`
	YearKPIs       *YearKPIs                         `json:"year_kpis,omitempty"`
	Purchases      *Table[domain.Purchase]           `json:"purchases,omitempty"`
	Sales          *Table[SaleRow]                   `json:"sales,omitempty"`
	Dividends      *Table[domain.Dividend]           `json:"dividends,omitempty"`
	Holdings       *Table[domain.Position]           `json:"holdings,omitempty"`
	GlobalHoldings *Table[domain.Position]           `json:"global_holdings,omitempty"`
	Sorts          map[sorting.ViewID]sorting.Config `json:"sorts"`
	Download       string                            `json:"download,omitempty"`
}

// Recorder is a Sink that keeps the latest Frame.
type Recorder struct {
	mu    sync.RWMutex
	frame Frame
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{frame: Frame{Sorts: make(map[sorting.ViewID]sorting.Config)}}
}

// Frame returns a copy of the recorded frame.
func (r *Recorder) Frame() Frame {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f := r.frame
	f.Sorts = make(map[sorting.ViewID]sorting.Config, len(r.frame.Sorts))
	for k, v := range r.frame.Sorts {
		f.Sorts[k] = v
	}
	return f
}

func (r *Recorder) Begin(scope Scope) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frame = Frame{
		Revision: r.frame.Revision + 1,
		Scope:    scope,
		Sorts:    make(map[sorting.ViewID]sorting.Config),
	}
}

func (r *Recorder) update(fn func(f *Frame)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.frame)
}

func (r *Recorder) RenderPicker(p YearPicker) {
	r.update(func(f *Frame) { f.Picker = p })
}

func (r *Recorder) RenderGlobalKPIs(k GlobalKPIs) {
	r.update(func(f *Frame) { f.GlobalKPIs = &k })
}

func (r *Recorder) RenderYearChart(points []YearPoint) {
	r.update(func(f *Frame) { f.YearChart = points })
}

func (r *Recorder) RenderConcentration(c Concentration) {
	r.update(func(f *Frame) { f.Concentration = &c })
}

func (r *Recorder) RenderYearKPIs(k YearKPIs) {
	r.update(func(f *Frame) { f.YearKPIs = &k })
}

func (r *Recorder) RenderPurchases(t Table[domain.Purchase]) {
	r.update(func(f *Frame) {
		f.Purchases = &t
		f.Sorts[t.View] = t.Sort
	})
}

func (r *Recorder) RenderSales(t Table[SaleRow]) {
	r.update(func(f *Frame) {
		f.Sales = &t
		f.Sorts[t.View] = t.Sort
	})
}

func (r *Recorder) RenderDividends(t Table[domain.Dividend]) {
	r.update(func(f *Frame) {
		f.Dividends = &t
		f.Sorts[t.View] = t.Sort
	})
}

func (r *Recorder) RenderHoldings(t Table[domain.Position]) {
	r.update(func(f *Frame) {
		if t.View == sorting.ViewGlobalHoldings {
			f.GlobalHoldings = &t
		} else {
			f.Holdings = &t
		}
		f.Sorts[t.View] = t.Sort
	})
}


func (r *Recorder) RenderDownload(path string) {
	r.update(func(f *Frame) { f.Download = path })
}
