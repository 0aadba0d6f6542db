package wallet

import (
	"testing"

	"traindesk/internal/domain/dashboard"
)

func balancePtr(v float64) *float64 { return &v }

// TestClassifyBand_Boundaries verifies the five band boundaries.
func TestClassifyBand_Boundaries(t *testing.T) {
	cases := []struct {
		balance *float64
		want    string
	}{
		{balancePtr(250), BandAlto},
		{balancePtr(100), BandAlto},
		{balancePtr(99.99), BandMedio},
		{balancePtr(25), BandMedio},
		{balancePtr(24.5), BandBaixo},
		{balancePtr(0), BandBaixo},
		{balancePtr(-1), BandNegativo},
		{balancePtr(-25), BandNegativo},
		{balancePtr(-25.01), BandCritico},
		{nil, BandBaixo}, // missing balance reads as zero
	}
	for _, c := range cases {
		if got := ClassifyBand(c.balance); got != c.want {
			t.Errorf("ClassifyBand(%v): expected %q, got %q", c.balance, c.want, got)
		}
	}
}

// TestBandOf_Tones verifies each band carries its documented tone.
func TestBandOf_Tones(t *testing.T) {
	cases := []struct {
		balance float64
		tone    dashboard.Tone
	}{
		{150, dashboard.TonePositive},
		{50, dashboard.TonePrimary},
		{10, dashboard.ToneNeutral},
		{-10, dashboard.ToneWarning},
		{-80, dashboard.ToneDanger},
	}
	for _, c := range cases {
		b := BandOf(balancePtr(c.balance))
		if b.Tone != c.tone {
			t.Errorf("BandOf(%v): expected tone %q, got %q", c.balance, c.tone, b.Tone)
		}
	}
}
