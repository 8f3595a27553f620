package survey

import "testing"

func TestFingerprintDeterministic(t *testing.T) {
	ua := "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)"

	a := Fingerprint(ua, 390, 844)
	b := Fingerprint(ua, 390, 844)
	if a != b {
		t.Fatalf("same inputs produced %q and %q", a, b)
	}
	if len(a) != 8 {
		t.Fatalf("expected 8 hex chars, got %q", a)
	}
}

func TestFingerprintVariesWithInputs(t *testing.T) {
	ua := "Mozilla/5.0 (X11; Linux x86_64)"

	base := Fingerprint(ua, 1920, 1080)
	if Fingerprint(ua, 1920, 1200) == base {
		t.Fatal("height change did not alter fingerprint")
	}
	if Fingerprint(ua+" Firefox/130.0", 1920, 1080) == base {
		t.Fatal("user agent change did not alter fingerprint")
	}
}

func TestFingerprintSeparatorAmbiguity(t *testing.T) {
	// The separator keeps "12" + "34x56" distinct from "123" + "4x56".
	if Fingerprint("ua12", 34, 56) == Fingerprint("ua123", 4, 56) {
		t.Fatal("distinct inputs collided through concatenation")
	}
}
