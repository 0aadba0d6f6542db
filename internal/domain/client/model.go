package client

import (
	"time"

	"traindesk/internal/domain/account"
)

// Churn-risk categories.
const (
	RiskHealthy  = "healthy"
	RiskWatch    = "watch"
	RiskCritical = "critical"
)

// Engagement tiers, labelled the way the dashboards present them.
const (
	TierElevada      = "elevada"
	TierModerada     = "moderada"
	TierBaixa        = "baixa"
	TierDesconhecida = "desconhecida"
)

// Classification thresholds. Fixed at compile time so classification is
// deterministic and independent of dataset size.
const (
	RiskCriticalMin = 0.7
	RiskWatchMin    = 0.4

	TierElevadaMin  = 0.7
	TierModeradaMin = 0.4
)

// Client holds the canonical shape of one client-roster row. Optional
// fields are nil when the source row had no usable value.
type Client struct {
	ID                 string
	Name               string
	Email              string
	RawStatus          string // free-form source value, pre-classification
	Active             *bool
	TrainerID          string
	TrainerName        string
	RiskScore          *float64 // 0..1 churn-risk score
	EngagementScore    *float64 // 0..1
	WalletBalance      *float64
	SpendLast30Days    *float64
	SessionsLast30Days *float64
	SessionsScheduled  *float64
	CreatedAt          *time.Time
	LastActiveAt       *time.Time
	NextSessionAt      *time.Time
	Tags               []string
}

// ClassifyRisk maps a churn-risk score onto a risk category. A missing or
// unusable score defaults to healthy so display is never blocked.
// POST: Returns RiskCritical, RiskWatch or RiskHealthy
func ClassifyRisk(score *float64) string {
	if score == nil {
		return RiskHealthy
	}
	switch {
	case *score >= RiskCriticalMin:
		return RiskCritical
	case *score >= RiskWatchMin:
		return RiskWatch
	default:
		return RiskHealthy
	}
}

// ClassifyEngagement maps an engagement score onto a tier. Unlike risk,
// a missing score is surfaced as its own tier rather than hidden.
func ClassifyEngagement(score *float64) string {
	if score == nil {
		return TierDesconhecida
	}
	switch {
	case *score >= TierElevadaMin:
		return TierElevada
	case *score >= TierModeradaMin:
		return TierModerada
	default:
		return TierBaixa
	}
}

// Status returns the canonical account-status category for the client.
// INVARIANT: the receiver is not mutated
func (c Client) Status() string {
	return account.ClassifyStatus(c.RawStatus, c.Active)
}

// RiskLevel returns the canonical churn-risk category for the client.
func (c Client) RiskLevel() string {
	return ClassifyRisk(c.RiskScore)
}

// EngagementTier returns the canonical engagement tier for the client.
func (c Client) EngagementTier() string {
	return ClassifyEngagement(c.EngagementScore)
}
