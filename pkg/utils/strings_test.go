package utils

import "testing"

func TestIsBlank(t *testing.T) {
	if !IsBlank("") || !IsBlank("   ") || !IsBlank("\t\n") {
		t.Fatalf("whitespace-only strings are blank")
	}
	if IsBlank(" x ") {
		t.Fatalf("non-empty string is not blank")
	}
}

func TestContainsFold(t *testing.T) {
	if !ContainsFold("Maruti Swift", "swift") {
		t.Fatalf("expected case-insensitive match")
	}
	if !ContainsFold("KA", "ka") {
		t.Fatalf("expected match on full string")
	}
	if ContainsFold("Honda", "swift") {
		t.Fatalf("unexpected match")
	}
}
