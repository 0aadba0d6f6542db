// Package projections contains the dashboard assemblers: pure functions
// turning already-fetched raw rows plus an explicit now into immutable
// snapshot view models. No I/O happens here — fetching belongs to the
// storage adapter, rendering to the presentation layer.
package projections

import (
	"traindesk/internal/application/aggregate"
	"traindesk/internal/domain/account"
	"traindesk/internal/domain/client"
	"traindesk/internal/domain/dashboard"
	"traindesk/internal/domain/invoice"
	"traindesk/internal/domain/session"
	"traindesk/internal/domain/wallet"
)

// Category declarations shared by the assemblers. Declaration order is
// the distribution tie-break order.

var statusCategories = []aggregate.Category{
	{Key: account.StatusActive, Label: "Ativos", Tone: dashboard.TonePositive},
	{Key: account.StatusPending, Label: "Pendentes", Tone: dashboard.ToneInfo},
	{Key: account.StatusSuspended, Label: "Suspensos", Tone: dashboard.ToneWarning},
	{Key: account.StatusInactive, Label: "Inativos", Tone: dashboard.ToneNeutral},
	{Key: account.StatusUnknown, Label: "Sem estado", Tone: dashboard.ToneNeutral},
}

var riskCategories = []aggregate.Category{
	{Key: client.RiskCritical, Label: "Crítico", Tone: dashboard.ToneDanger},
	{Key: client.RiskWatch, Label: "Em observação", Tone: dashboard.ToneWarning},
	{Key: client.RiskHealthy, Label: "Saudável", Tone: dashboard.TonePositive},
}

var engagementCategories = []aggregate.Category{
	{Key: client.TierElevada, Label: "Elevada", Tone: dashboard.TonePositive},
	{Key: client.TierModerada, Label: "Moderada", Tone: dashboard.TonePrimary},
	{Key: client.TierBaixa, Label: "Baixa", Tone: dashboard.ToneWarning},
	{Key: client.TierDesconhecida, Label: "Desconhecida", Tone: dashboard.ToneNeutral},
}

var invoiceCategories = []aggregate.Category{
	{Key: invoice.StatusPaid, Label: "Pagas", Tone: dashboard.TonePositive},
	{Key: invoice.StatusPending, Label: "Pendentes", Tone: dashboard.ToneInfo},
	{Key: invoice.StatusOverdue, Label: "Vencidas", Tone: dashboard.ToneDanger},
	{Key: invoice.StatusVoid, Label: "Anuladas", Tone: dashboard.ToneNeutral},
	{Key: invoice.StatusUnknown, Label: "Sem estado", Tone: dashboard.ToneNeutral},
}

var sessionCategories = []aggregate.Category{
	{Key: session.StatusCompleted, Label: "Concluídas", Tone: dashboard.TonePositive},
	{Key: session.StatusScheduled, Label: "Agendadas", Tone: dashboard.TonePrimary},
	{Key: session.StatusCancelled, Label: "Canceladas", Tone: dashboard.ToneWarning},
	{Key: session.StatusNoShow, Label: "Faltas", Tone: dashboard.ToneDanger},
	{Key: session.StatusUnknown, Label: "Sem estado", Tone: dashboard.ToneNeutral},
}

// walletCategories mirrors the declared band order in the wallet domain.
func walletCategories() []aggregate.Category {
	cats := make([]aggregate.Category, 0, len(wallet.Bands))
	for _, b := range wallet.Bands {
		cats = append(cats, aggregate.Category{Key: b.Key, Label: b.Label, Tone: b.Tone})
	}
	return cats
}
