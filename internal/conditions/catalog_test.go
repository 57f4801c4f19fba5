package conditions

import "testing"

func TestDescribeCoversAllModelClasses(t *testing.T) {
	classes := []string{
		"Actinic Keratosis", "Basal Cell Carcinoma", "Dermato Fibroma", "Melanoma", "Nevus",
		"Pigmented Benign Keratosis", "Seborrheic Keratosis", "Squamous Cell Carcinoma", "Vascular Lesion",
		"Eczema", "Atopic Dermatitis", "Psoriasis", "Tinea Ringworm Candidiasis",
		"Warts Molluscum", "Acne/Pimples",
	}

	if len(Labels()) != len(classes) {
		t.Fatalf("expected %d catalog entries, got %d", len(classes), len(Labels()))
	}

	for _, class := range classes {
		description, ok := Describe(class)
		if !ok {
			t.Errorf("missing description for %q", class)
			continue
		}
		if description == "" {
			t.Errorf("empty description for %q", class)
		}
	}
}

func TestDescribeUnknownLabel(t *testing.T) {
	if _, ok := Describe("Sunburn"); ok {
		t.Fatal("expected unknown label to miss the catalog")
	}
}
