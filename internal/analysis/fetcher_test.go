package analysis

import "testing"

func TestBuildSearchQueryBase(t *testing.T) {
	regions := NewRegionTable([]string{"tata"})
	got := buildSearchQuery("Apple", regions)
	want := `"Apple" OR "Apple stock" OR "Apple shares"`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBuildSearchQueryRegionVariants(t *testing.T) {
	regions := NewRegionTable(nil)
	got := buildSearchQuery("Tata Motors", regions)
	want := `"Tata Motors" OR "Tata Motors stock" OR "Tata Motors shares"` +
		` OR "Tata Motors India" OR "Tata Motors NSE" OR "Tata Motors BSE"`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRegionTableOverrideAndDefault(t *testing.T) {
	custom := NewRegionTable([]string{" Vale ", ""})
	if !custom.Matches("Vale SA") {
		t.Fatal("expected custom entry to match")
	}
	if custom.Matches("Infosys") {
		t.Fatal("custom table must replace the default list")
	}

	def := NewRegionTable(nil)
	if !def.Matches("Infosys Ltd") {
		t.Fatal("expected default list to match Infosys")
	}
	if def.Matches("Apple") {
		t.Fatal("unexpected match for Apple")
	}
}
