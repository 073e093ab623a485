package handlers

import (
	"errors"
	"fmt"

	"github.com/aristath/taxboard/internal/modules/dashboard"
	"github.com/aristath/taxboard/internal/modules/sessions"
	"github.com/aristath/taxboard/internal/modules/sorting"
)

// Intent types accepted over the websocket. HTTP routes imply the type.
const (
	IntentFrame      = "frame"
	IntentScope      = "scope"
	IntentChartPoint = "chart-point"
	IntentSort       = "sort"
)

// ErrInvalidIntent is returned for malformed intents.
var ErrInvalidIntent = errors.New("invalid intent")

// Intent is a user action on a session's dashboard.
type Intent struct {
	Type  string `json:"type,omitempty"`
	Scope string `json:"scope,omitempty"`
	Year  string `json:"year,omitempty"`
	Index *int   `json:"index,omitempty"`
	View  string `json:"view,omitempty"`
	Key   string `json:"key,omitempty"`
}

// Apply runs the intent against the session's controller.
func (i Intent) Apply(sess *sessions.Session) error {
	switch i.Type {
	case IntentFrame:
		return nil
	case IntentScope:
		scope, err := i.scope()
		if err != nil {
			return err
		}
		return sess.Controller.SelectScope(scope)
	case IntentChartPoint:
		if i.Index == nil {
			return fmt.Errorf("%w: index is required", ErrInvalidIntent)
		}
		return sess.Controller.SelectChartPoint(*i.Index)
	case IntentSort:
		if i.View == "" || i.Key == "" {
			return fmt.Errorf("%w: view and key are required", ErrInvalidIntent)
		}
		_, err := sess.Controller.ToggleSort(sorting.ViewID(i.View), i.Key)
		return err
	}
	return fmt.Errorf("%w: unknown type %q", ErrInvalidIntent, i.Type)
}

func (i Intent) scope() (dashboard.Scope, error) {
	switch dashboard.ScopeKind(i.Scope) {
	case dashboard.ScopeGlobal:
		return dashboard.Global(), nil
	case dashboard.ScopeYear:
		if i.Year == "" {
			return dashboard.Scope{}, fmt.Errorf("%w: year is required", ErrInvalidIntent)
		}
		return dashboard.Year(i.Year), nil
	}
	return dashboard.Scope{}, fmt.Errorf("%w: unknown scope %q", ErrInvalidIntent, i.Scope)
}
