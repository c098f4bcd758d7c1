package extract

import (
	"reflect"
	"testing"
)

func TestTrims_BrandPatterns(t *testing.T) {
	text := "The Silverado lineup includes WT, LT, Trail Boss, Z71 and ZR2 trims."
	got := Trims("Chevrolet", text)

	want := []string{"WT", "LT", "Trail Boss", "Z71", "ZR2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Trims = %v, want %v", got, want)
	}
}

func TestTrims_DedupePreservesFirstSeenOrder(t *testing.T) {
	text := "LT models start here. The LT adds more. Trail Boss tops the LT."
	got := Trims("Chevrolet", text)

	want := []string{"LT", "Trail Boss"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Trims = %v, want %v", got, want)
	}
}

func TestTrims_GenericFallbackForUnknownBrand(t *testing.T) {
	text := "Available in SE, Limited and Platinum grades."
	got := Trims("Rivian", text)

	want := []string{"SE", "Limited", "Platinum"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Trims (generic patterns) = %v, want %v", got, want)
	}
}

func TestTrims_ManualChecklistFallback(t *testing.T) {
	// No pattern hit (no word-boundary-delimited trim token), but the
	// checklist substring scan still finds trail boss.
	text := "thetrail boss packagez71offroad"
	got := Trims("Chevrolet", text)

	if len(got) == 0 {
		t.Fatal("manual checklist found nothing")
	}
	for _, trim := range got {
		switch trim {
		case "WT", "LT", "Trail Boss", "Z71", "ZR2":
		default:
			t.Errorf("unexpected manual trim %q", trim)
		}
	}
}

func TestTrims_EmptyText(t *testing.T) {
	if got := Trims("Chevrolet", ""); len(got) != 0 {
		t.Errorf("Trims on empty text = %v, want none", got)
	}
}

func TestPrices_NormalizationAndDedup(t *testing.T) {
	text := "Starting at $36,800. As shown $52,300. Also $36,800 for the base."
	got := Prices(text)

	want := []string{"$36,800", "$52,300"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Prices = %v, want %v", got, want)
	}
}

func TestPrices_PatternVariants(t *testing.T) {
	text := "MSRP $28,400 or from $25,000; 31,500 as shown"
	got := Prices(text)

	for _, want := range []string{"$28,400", "$25,000", "$31,500"} {
		found := false
		for _, p := range got {
			if p == want {
				found = true
			}
		}
		if !found {
			t.Errorf("Prices = %v, missing %v", got, want)
		}
	}
}

func TestVariants_PositionalPairing(t *testing.T) {
	// Trims [WT, LT, Z71] in extractor order, two deduplicated prices:
	// pairing is strictly positional and the third variant gets "".
	text := "WT from $10,000 and LT from $20,000 and Z71"
	got := Variants("Chevrolet", text)

	if len(got) != 3 {
		t.Fatalf("Variants returned %d entries, want 3: %+v", len(got), got)
	}
	wantPrices := []string{"$10,000", "$20,000", ""}
	wantNames := []string{"WT", "LT", "Z71"}
	for i := range got {
		if got[i].Name != wantNames[i] {
			t.Errorf("variant %d name = %q, want %q", i, got[i].Name, wantNames[i])
		}
		if got[i].Price != wantPrices[i] {
			t.Errorf("variant %d price = %q, want %q", i, got[i].Price, wantPrices[i])
		}
	}
}

func TestVariants_FeatureCap(t *testing.T) {
	text := "LT trim. engine one. engine two. engine three. engine four. engine five. engine six. towing capacity included."
	got := Variants("Chevrolet", text)

	for _, v := range got {
		if len(v.Features) > 5 {
			t.Errorf("variant %q has %d features, cap is 5", v.Name, len(v.Features))
		}
	}
}

func TestVariants_UniqueNames(t *testing.T) {
	text := "LT and LT and LT, starting at $30,000"
	got := Variants("Chevrolet", text)

	seen := map[string]bool{}
	for _, v := range got {
		if seen[v.Name] {
			t.Errorf("duplicate variant name %q", v.Name)
		}
		seen[v.Name] = true
	}
}

func TestDedupe(t *testing.T) {
	got := dedupe([]string{"a", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dedupe = %v, want %v", got, want)
	}
}
