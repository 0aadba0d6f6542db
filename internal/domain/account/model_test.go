package account

import "testing"

func boolPtr(b bool) *bool { return &b }

// TestClassifyStatus_ExplicitStringWins verifies the status string takes
// priority over the active flag.
func TestClassifyStatus_ExplicitStringWins(t *testing.T) {
	got := ClassifyStatus("Suspended", boolPtr(true))
	if got != StatusSuspended {
		t.Errorf("expected %q, got %q", StatusSuspended, got)
	}
}

// TestClassifyStatus_Aliases verifies the alias table covers the source
// vocabulary, case-insensitively.
func TestClassifyStatus_Aliases(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"active", StatusActive},
		{"ATIVO", StatusActive},
		{"enabled", StatusActive},
		{"Pendente", StatusPending},
		{"trial", StatusPending},
		{"blocked", StatusSuspended},
		{"archived", StatusInactive},
		{"cancelled", StatusInactive},
	}
	for _, c := range cases {
		if got := ClassifyStatus(c.raw, nil); got != c.want {
			t.Errorf("ClassifyStatus(%q): expected %q, got %q", c.raw, c.want, got)
		}
	}
}

// TestClassifyStatus_FlagFallback verifies the boolean fallback when the
// string is absent or unrecognised.
func TestClassifyStatus_FlagFallback(t *testing.T) {
	if got := ClassifyStatus("", boolPtr(true)); got != StatusActive {
		t.Errorf("expected active from true flag, got %q", got)
	}
	if got := ClassifyStatus("???", boolPtr(false)); got != StatusInactive {
		t.Errorf("expected inactive from false flag, got %q", got)
	}
	if got := ClassifyStatus("", nil); got != StatusUnknown {
		t.Errorf("expected unknown with no signal, got %q", got)
	}
}

// TestClassifyRole_DefaultsToClient verifies unrecognised roles fall back
// to the least-privileged view.
func TestClassifyRole_DefaultsToClient(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"admin", RoleAdmin},
		{"Owner", RoleAdmin},
		{"coach", RoleTrainer},
		{"PT", RoleTrainer},
		{"client", RoleClient},
		{"", RoleClient},
		{"whatever", RoleClient},
	}
	for _, c := range cases {
		if got := ClassifyRole(c.raw); got != c.want {
			t.Errorf("ClassifyRole(%q): expected %q, got %q", c.raw, c.want, got)
		}
	}
}
