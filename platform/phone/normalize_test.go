package phone

import "testing"

func TestNormalizeE164_USNumber(t *testing.T) {
	got := NormalizeE164("(212) 555-0134")
	if got != "+12125550134" {
		t.Fatalf("expected +12125550134, got %q", got)
	}
}

func TestNormalizeE164_AlreadyE164(t *testing.T) {
	got := NormalizeE164("+12125550134")
	if got != "+12125550134" {
		t.Fatalf("expected +12125550134, got %q", got)
	}
}

func TestNormalizeE164_InvalidFallsBackToTrimmedInput(t *testing.T) {
	got := NormalizeE164("  not-a-number  ")
	if got != "not-a-number" {
		t.Fatalf("expected trimmed input back, got %q", got)
	}
}

func TestNormalizeE164_Empty(t *testing.T) {
	if got := NormalizeE164("   "); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
