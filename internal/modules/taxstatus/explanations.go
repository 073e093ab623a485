package taxstatus

import "github.com/aristath/taxboard/internal/domain"

var explanations = map[domain.NoteCode]string{
	domain.NoteBlocked: "Pérdida bloqueada temporalmente: Has comprado las mismas acciones 2 meses antes o después " +
		"de la venta con pérdidas. No puedes deducirla hasta vender las acciones recompradas.",
	domain.NoteTakeover: "OPA, Fusión o Liquidación: Salida de acciones compensada con entrada de efectivo en cuenta, " +
		"no como operación de mercado.",
	domain.NoteRights: "Venta de Derechos: Ingreso por venta de derechos de suscripción preferente en ampliaciones " +
		"de capital.",
	domain.NoteExchange: "Canje/Split Inverso: Salida de acciones antiguas por cambio de ISIN o reorganización, " +
		"sin flujo de efectivo.",
	domain.NoteNoAcquisition: "Advertencia de Datos: No se encontró la compra original de estas acciones en el " +
		"historial proporcionado (coste asumido 0).",
}

// Explain returns the fixed explanation of a note code, or "" for codes that
// carry none (NoteNone, NoteUnknown).
func Explain(code domain.NoteCode) string {
	return explanations[code]
}
