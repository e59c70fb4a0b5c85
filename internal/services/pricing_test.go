package services

import (
	"math"
	"testing"

	"github.com/saeid-a/KickoffCoachWeb/internal/models"
)

func TestComputePriceFormula(t *testing.T) {
	for _, price := range []int{0, 5, 10, 25} {
		loc := &models.Location{ID: 1, Name: "Field", Price: price}
		for n := 1; n <= 6; n++ {
			want := 40 + price + 10*(n-1)
			if got := ComputePrice(loc, n); got != want {
				t.Fatalf("ComputePrice(price=%d, n=%d) = %d, want %d", price, n, got, want)
			}
		}
	}
}

func TestComputePriceSingleChildHasNoSurcharge(t *testing.T) {
	loc := &models.Location{Price: 5}
	if got := ComputePrice(loc, 1); got != 45 {
		t.Fatalf("expected 45, got %d", got)
	}
}

func TestComputePriceClampsZeroChildren(t *testing.T) {
	loc := &models.Location{Price: 10}
	if got := ComputePrice(loc, 0); got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}
	if got := ComputePrice(loc, -3); got != 50 {
		t.Fatalf("expected 50 for negative count, got %d", got)
	}
}

func TestComputePriceWithoutLocation(t *testing.T) {
	if got := ComputePrice(nil, 2); got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}
}

func TestComputePriceIsMonotonic(t *testing.T) {
	prev := -1
	for price := 0; price <= 20; price++ {
		got := ComputePrice(&models.Location{Price: price}, 2)
		if got < prev {
			t.Fatalf("price decreased at location price %d", price)
		}
		prev = got
	}

	prev = -1
	loc := &models.Location{Price: 5}
	counts := []int{0, 1, 2, 10, MaxQuoteChildren, 1 << 40, math.MaxInt / 10, math.MaxInt/5 + 1, math.MaxInt - 1, math.MaxInt}
	for _, n := range counts {
		got := ComputePrice(loc, n)
		if got < prev {
			t.Fatalf("price decreased at child count %d: %d < %d", n, got, prev)
		}
		prev = got
	}
}

func TestComputePriceSaturates(t *testing.T) {
	loc := &models.Location{Price: 10}
	if got := ComputePrice(loc, math.MaxInt/5); got != math.MaxInt {
		t.Fatalf("expected saturation at math.MaxInt, got %d", got)
	}
	if got := ComputePrice(loc, 3); got != 70 {
		t.Fatalf("expected 70, got %d", got)
	}
}

func TestComputePriceThreeChildrenAtHannoverEstates(t *testing.T) {
	loc := models.FindLocationByID(3)
	if got := ComputePrice(loc, 3); got != 70 {
		t.Fatalf("expected 70, got %d", got)
	}
}
