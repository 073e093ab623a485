// Package dashboard drives what the dashboard shows: the active scope, the
// per-view sort state and the rows handed to the rendering sinks.
package dashboard

import (
	"errors"
	"fmt"

	"github.com/aristath/taxboard/internal/domain"
	"github.com/aristath/taxboard/internal/modules/sorting"
)

var (
	// ErrUnknownYear is returned when a year is not part of the ledger.
	ErrUnknownYear = errors.New("unknown year")
	// ErrNoLedger is returned when there is no ledger to render.
	ErrNoLedger = domain.ErrNoLedger
)

// ScopeKind distinguishes the two dashboard scopes.
type ScopeKind string

const (
	ScopeGlobal ScopeKind = "global"
	ScopeYear   ScopeKind = "year"
)

// Scope is the subset of the ledger on screen: the global aggregate or one
// fiscal year.
type Scope struct {
	Kind ScopeKind `json:"kind"`
	Year string    `json:"year,omitempty"`
}

// Global returns the global scope.
func Global() Scope { return Scope{Kind: ScopeGlobal} }

// Year returns the scope of fiscal year y.
func Year(y string) Scope { return Scope{Kind: ScopeYear, Year: y} }

// IsGlobal reports whether s is the global scope.
func (s Scope) IsGlobal() bool { return s.Kind != ScopeYear }

func (s Scope) String() string {
	if s.IsGlobal() {
		return string(ScopeGlobal)
	}
	return fmt.Sprintf("%s(%s)", ScopeYear, s.Year)
}

// Views returns the sortable views shown in the scope.
func (s Scope) Views() []sorting.ViewID {
	if s.IsGlobal() {
		return []sorting.ViewID{sorting.ViewGlobalHoldings}
	}
	return []sorting.ViewID{sorting.ViewPurchases, sorting.ViewSales, sorting.ViewDividends, sorting.ViewHoldings}
}

// Shows reports whether view belongs to the scope.
func (s Scope) Shows(view sorting.ViewID) bool {
	for _, v := range s.Views() {
		if v == view {
			return true
		}
	}
	return false
}

// DownloadPath is the report download target of a year.
func DownloadPath(year string) string {
	return "/download/" + year
}
