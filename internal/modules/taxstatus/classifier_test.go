package taxstatus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/taxboard/internal/domain"
)

func TestClassify_BlockedActive(t *testing.T) {
	a := Classify(domain.Sale{
		Blocked:       true,
		BlockedStatus: domain.BlockActive,
		UnlockDate:    "01-06-2024",
		PnL:           -120,
	})

	assert.Equal(t, StatusBlockedActive, a.Status)
	assert.Equal(t, "BLOQUEADO (Hasta 01-06-2024)", a.Badge)
	assert.Contains(t, a.Explanation, "Pérdida bloqueada temporalmente")
	assert.Equal(t, PnLStruck, a.PnLStyle)
	assert.Equal(t, ToneDanger, a.Tone)
	assert.Equal(t, "01-06-2024", a.Date)
}

func TestClassify_BlockedExpired(t *testing.T) {
	for _, status := range []domain.BlockedStatus{domain.BlockExpired, domain.BlockReleased, ""} {
		t.Run(string(status), func(t *testing.T) {
			a := Classify(domain.Sale{Blocked: true, BlockedStatus: status, UnlockDate: "01-06-2024", PnL: -50})

			assert.Equal(t, StatusBlockedExpired, a.Status)
			assert.Equal(t, "DESBLOQUEADO (01-06-2024)", a.Badge)
			assert.Equal(t, "Bloqueo expirado el 01-06-2024. Ya puedes compensar esta pérdida.", a.Explanation)
			assert.Equal(t, PnLCautionary, a.PnLStyle)
		})
	}
}

func TestClassify_RepurchaseRisk(t *testing.T) {
	a := Classify(domain.Sale{WashSaleRisk: true, RepurchaseSafeDate: "20-05-2024", PnL: -10})

	assert.Equal(t, StatusRepurchaseRisk, a.Status)
	assert.Equal(t, "RIESGO RECOMPRA (Hasta 20-05-2024)", a.Badge)
	assert.Equal(t, "Pérdida deducible actualmente. PRECAUCIÓN: Si recompras este valor antes del 20-05-2024, "+
		"esta pérdida pasará a estar BLOQUEADA.", a.Explanation)
	assert.Equal(t, PnLLoss, a.PnLStyle)
}

func TestClassify_Consolidated(t *testing.T) {
	a := Classify(domain.Sale{LossConsolidated: true, RepurchaseSafeDate: "15-03-2024", PnL: -30})

	assert.Equal(t, StatusConsolidated, a.Status)
	assert.Equal(t, "DEDUCIBLE", a.Badge)
	assert.Equal(t, "Pérdida firme. Superaste el periodo de 2 meses (15-03-2024) sin realizar recompras "+
		"que bloquearan esta pérdida.", a.Explanation)
	assert.Equal(t, ToneSuccess, a.Tone)
}

func TestClassify_Precedence(t *testing.T) {
	tests := []struct {
		name string
		sale domain.Sale
		want Status
	}{
		{
			name: "active block beats risk",
			sale: domain.Sale{Blocked: true, BlockedStatus: domain.BlockActive, WashSaleRisk: true},
			want: StatusBlockedActive,
		},
		{
			name: "expired block beats consolidated",
			sale: domain.Sale{Blocked: true, BlockedStatus: domain.BlockExpired, LossConsolidated: true},
			want: StatusBlockedExpired,
		},
		{
			name: "risk beats consolidated",
			sale: domain.Sale{WashSaleRisk: true, LossConsolidated: true},
			want: StatusRepurchaseRisk,
		},
		{
			name: "consolidated beats note",
			sale: domain.Sale{LossConsolidated: true, Note: domain.ParseNote("OPA")},
			want: StatusConsolidated,
		},
		{
			name: "note alone",
			sale: domain.Sale{Note: domain.ParseNote("CANJE")},
			want: StatusCodedNote,
		},
		{
			name: "nothing",
			sale: domain.Sale{PnL: 10},
			want: StatusNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.sale).Status)
		})
	}
}

func TestClassify_CodedNotes(t *testing.T) {
	tests := []struct {
		note        string
		label       string
		explanation string
	}{
		{"OPA", "OPA", Explain(domain.NoteTakeover)},
		{"DERECHOS", "DERECHOS", Explain(domain.NoteRights)},
		{"CANJE ISIN", "CANJE ISIN", Explain(domain.NoteExchange)},
		{"BLOQ", "BLOQ", Explain(domain.NoteBlocked)},
		{"⚠️ NO ADQ acción X", "acción X", Explain(domain.NoteNoAcquisition)},
		{"texto libre", "texto libre", "texto libre"},
	}

	for _, tt := range tests {
		t.Run(tt.note, func(t *testing.T) {
			a := Classify(domain.Sale{Note: domain.ParseNote(tt.note)})

			assert.Equal(t, StatusCodedNote, a.Status)
			assert.Equal(t, tt.label, a.Badge)
			assert.Equal(t, tt.explanation, a.Explanation)
			assert.NotEmpty(t, a.Explanation)
		})
	}
}

func TestClassify_NoneHasNoBadge(t *testing.T) {
	a := Classify(domain.Sale{PnL: -1})

	assert.Equal(t, StatusNone, a.Status)
	assert.Empty(t, a.Badge)
	assert.Empty(t, a.Explanation)
	assert.Equal(t, PnLLoss, a.PnLStyle)

	assert.Equal(t, PnLGain, Classify(domain.Sale{PnL: 0}).PnLStyle)
}

func TestExplain_NoAcquisitionText(t *testing.T) {
	assert.Equal(t, "Advertencia de Datos: No se encontró la compra original de estas acciones en el "+
		"historial proporcionado (coste asumido 0).", Explain(domain.NoteNoAcquisition))
	assert.Empty(t, Explain(domain.NoteUnknown))
	assert.Empty(t, Explain(domain.NoteNone))
}
