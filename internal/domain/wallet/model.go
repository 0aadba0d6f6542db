package wallet

import (
	"time"

	"traindesk/internal/domain/dashboard"
)

// Band keys for client wallet balances.
const (
	BandAlto     = "alto"     // comfortable credit
	BandMedio    = "medio"    // working credit
	BandBaixo    = "baixo"    // near zero
	BandNegativo = "negativo" // small debt
	BandCritico  = "critico"  // serious debt
)

// Band boundaries in euros. A balance of exactly 100 is alto, exactly 0
// is baixo, exactly -25 is still negativo.
const (
	bandAltoMin     = 100.0
	bandMedioMin    = 25.0
	bandBaixoMin    = 0.0
	bandNegativoMin = -25.0
)

// Band describes one balance band for display.
type Band struct {
	Key   string
	Label string
	Tone  dashboard.Tone
}

// Bands declares the five balance bands in display order. The order here
// is also the distribution tie-break order.
var Bands = []Band{
	{Key: BandAlto, Label: "≥ €100", Tone: dashboard.TonePositive},
	{Key: BandMedio, Label: "€25–99", Tone: dashboard.TonePrimary},
	{Key: BandBaixo, Label: "€0–24", Tone: dashboard.ToneNeutral},
	{Key: BandNegativo, Label: "−€25…−€1", Tone: dashboard.ToneWarning},
	{Key: BandCritico, Label: "< −€25", Tone: dashboard.ToneDanger},
}

// Entry holds the canonical shape of one wallet-ledger row.
type Entry struct {
	ID         string
	ClientID   string
	ClientName string
	Kind       string // topup, charge, adjustment, refund
	Amount     *float64
	Balance    *float64 // running balance after the entry
	CreatedAt  *time.Time
}

// ClassifyBand maps a balance onto a band key. A missing balance reads
// as zero and lands in the neutral near-zero band.
// POST: Returns one of the five declared band keys
func ClassifyBand(balance *float64) string {
	v := 0.0
	if balance != nil {
		v = *balance
	}
	switch {
	case v >= bandAltoMin:
		return BandAlto
	case v >= bandMedioMin:
		return BandMedio
	case v >= bandBaixoMin:
		return BandBaixo
	case v >= bandNegativoMin:
		return BandNegativo
	default:
		return BandCritico
	}
}

// BandOf returns the full band declaration for a balance.
func BandOf(balance *float64) Band {
	key := ClassifyBand(balance)
	for _, b := range Bands {
		if b.Key == key {
			return b
		}
	}
	// Unreachable: ClassifyBand only returns declared keys.
	return Bands[2]
}
