package extract

import (
	"reflect"
	"testing"
)

func TestCategory(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Classic Zip Hoodie", "Hoodies & Sweatshirts"},
		{"Waxed Field Jacket", "Jackets & Coats"},
		{"Summer Midi Dress", "Dresses"},
		{"Oxford Button-Down Shirt", "Shirts & Tops"},
		{"Slim Fit Chino Pants", "Pants & Bottoms"},
		{"Trail Running Sneaker", "Footwear"},
		{"Wool Beanie", "Accessories"},
		{"Gift Card", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Category(tt.name); got != tt.want {
				t.Errorf("Category(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

// A name hitting two tables resolves to the earlier one.
func TestCategoryPriority(t *testing.T) {
	if got := Category("Hoodie Jacket Hybrid"); got != "Hoodies & Sweatshirts" {
		t.Errorf("expected hoodie table to win, got %q", got)
	}
	if got := Category("Jacket with Knit Sweater Lining"); got != "Hoodies & Sweatshirts" {
		t.Errorf("expected sweater keyword to win over jacket, got %q", got)
	}
}

func TestColors(t *testing.T) {
	got := Colors("Navy Blue Crewneck")
	want := []string{"blue", "navy"}
	// Order follows the term list, not the name.
	if len(got) != 2 {
		t.Fatalf("Colors = %v, want two entries", got)
	}
	seen := map[string]bool{}
	for _, c := range got {
		seen[c] = true
	}
	for _, w := range want {
		if !seen[w] {
			t.Errorf("Colors missing %q in %v", w, got)
		}
	}

	if got := Colors("Plain Crewneck"); len(got) != 0 {
		t.Errorf("expected no colors, got %v", got)
	}
}

func TestSizes(t *testing.T) {
	got := Sizes("Basic Tee (M)")
	if !reflect.DeepEqual(got, []string{"m"}) {
		t.Errorf("Sizes = %v, want [m]", got)
	}

	// Single-letter sizes must not match inside words.
	if got := Sizes("Small Batch Roast"); !reflect.DeepEqual(got, []string{"small"}) {
		t.Errorf("Sizes = %v, want [small]", got)
	}
	if got := Sizes("Modern Lamp"); len(got) != 0 {
		t.Errorf("expected no sizes from substrings, got %v", got)
	}
}
