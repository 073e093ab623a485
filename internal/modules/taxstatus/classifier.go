// Package taxstatus decides the tax-loss eligibility of a sale and the fixed
// text shown for it.
package taxstatus

import (
	"fmt"

	"github.com/aristath/taxboard/internal/domain"
)

// Status is the single tax status of a sale. Exactly one applies.
type Status string

const (
	StatusNone           Status = "none"
	StatusBlockedActive  Status = "blocked_active"
	StatusBlockedExpired Status = "blocked_expired"
	StatusRepurchaseRisk Status = "repurchase_risk"
	StatusConsolidated   Status = "consolidated"
	StatusCodedNote      Status = "coded_note"
)

// Tone is the visual family of a badge.
type Tone string

const (
	ToneNone    Tone = ""
	ToneDanger  Tone = "danger"
	ToneWarning Tone = "warning"
	ToneInfo    Tone = "info"
	ToneSuccess Tone = "success"
)

// PnLStyle is how the realized pnl figure of a sale row is drawn.
type PnLStyle string

const (
	PnLGain       PnLStyle = "gain"
	PnLLoss       PnLStyle = "loss"
	PnLStruck     PnLStyle = "struck"
	PnLCautionary PnLStyle = "caution"
)

// Annotation is the classifier's verdict for one sale.
type Annotation struct {
	Status      Status          `json:"status"`
	Badge       string          `json:"badge,omitempty"`
	Explanation string          `json:"explanation,omitempty"`
	Tone        Tone            `json:"tone,omitempty"`
	PnLStyle    PnLStyle        `json:"pnl_style"`
	Date        string          `json:"date,omitempty"`
	Code        domain.NoteCode `json:"code,omitempty"`
}

// Classify maps a sale to its status. Rules are evaluated in precedence order
// and the first match wins; a sale matching none of them is StatusNone.
func Classify(s domain.Sale) Annotation {
	a := classify(s)
	a.PnLStyle = pnlStyle(s)
	return a
}

func classify(s domain.Sale) Annotation {
	switch {
	case s.Blocked && s.BlockedStatus.IsActive():
		return Annotation{
			Status:      StatusBlockedActive,
			Badge:       fmt.Sprintf("BLOQUEADO (Hasta %s)", s.UnlockDate),
			Explanation: Explain(domain.NoteBlocked),
			Tone:        ToneDanger,
			Date:        s.UnlockDate,
		}
	case s.Blocked:
		return Annotation{
			Status:      StatusBlockedExpired,
			Badge:       fmt.Sprintf("DESBLOQUEADO (%s)", s.UnlockDate),
			Explanation: fmt.Sprintf("Bloqueo expirado el %s. Ya puedes compensar esta pérdida.", s.UnlockDate),
			Tone:        ToneWarning,
			Date:        s.UnlockDate,
		}
	case s.WashSaleRisk:
		return Annotation{
			Status: StatusRepurchaseRisk,
			Badge:  fmt.Sprintf("RIESGO RECOMPRA (Hasta %s)", s.RepurchaseSafeDate),
			Explanation: fmt.Sprintf("Pérdida deducible actualmente. PRECAUCIÓN: Si recompras este valor antes del %s, "+
				"esta pérdida pasará a estar BLOQUEADA.", s.RepurchaseSafeDate),
			Tone: ToneInfo,
			Date: s.RepurchaseSafeDate,
		}
	case s.LossConsolidated:
		return Annotation{
			Status: StatusConsolidated,
			Badge:  "DEDUCIBLE",
			Explanation: fmt.Sprintf("Pérdida firme. Superaste el periodo de 2 meses (%s) sin realizar recompras "+
				"que bloquearan esta pérdida.", s.RepurchaseSafeDate),
			Tone: ToneSuccess,
			Date: s.RepurchaseSafeDate,
		}
	case !s.Note.IsZero():
		explanation := Explain(s.Note.Code)
		if explanation == "" {
			explanation = s.Note.Text
		}
		return Annotation{
			Status:      StatusCodedNote,
			Badge:       s.Note.Label(),
			Explanation: explanation,
			Tone:        ToneInfo,
			Code:        s.Note.Code,
		}
	}
	return Annotation{Status: StatusNone}
}

// pnlStyle follows the block state first, then the sign of the result.
func pnlStyle(s domain.Sale) PnLStyle {
	switch {
	case s.Blocked && s.BlockedStatus.IsActive():
		return PnLStruck
	case s.Blocked:
		return PnLCautionary
	case s.PnL >= 0:
		return PnLGain
	default:
		return PnLLoss
	}
}
