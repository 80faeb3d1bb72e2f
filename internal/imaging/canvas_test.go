package imaging

import (
	"image"
	"image/color"
	"testing"
)

var (
	testBackground = color.NRGBA{240, 248, 255, 255}
	testBorder     = color.NRGBA{100, 100, 100, 255}
)

func TestNewCanvas(t *testing.T) {
	img := NewCanvas(80, 45, testBackground)

	if img.Bounds() != image.Rect(0, 0, 80, 45) {
		t.Fatalf("bounds: got %v, want 80x45 at origin", img.Bounds())
	}
	for _, p := range []image.Point{{0, 0}, {79, 44}, {40, 22}} {
		if got := img.NRGBAAt(p.X, p.Y); got != testBackground {
			t.Errorf("pixel %v: got %v, want %v", p, got, testBackground)
		}
	}
}

func TestBorderRect(t *testing.T) {
	got := BorderRect(800, 450, 10)
	want := image.Rect(10, 10, 791, 441)
	if got != want {
		t.Errorf("BorderRect: got %v, want %v", got, want)
	}
	if inner := InnerRect(got, 3); inner != image.Rect(13, 13, 788, 438) {
		t.Errorf("InnerRect: got %v", inner)
	}
}

func TestDrawBorder(t *testing.T) {
	img := NewCanvas(100, 60, testBackground)
	outer := BorderRect(100, 60, 10)
	DrawBorder(img, outer, 3, testBorder)

	tests := []struct {
		name string
		x, y int
		want color.NRGBA
	}{
		{"outside corner", 5, 5, testBackground},
		{"top-left outer", 10, 10, testBorder},
		{"top edge inner row", 50, 12, testBorder},
		{"below top edge", 50, 13, testBackground},
		{"left edge", 11, 30, testBorder},
		{"inside left edge", 13, 30, testBackground},
		{"right outer column", 90, 30, testBorder},
		{"inside right edge", 87, 30, testBackground},
		{"right inner column", 88, 30, testBorder},
		{"bottom outer row", 50, 50, testBorder},
		{"past right edge", 91, 30, testBackground},
		{"center", 50, 30, testBackground},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := img.NRGBAAt(tt.x, tt.y); got != tt.want {
				t.Errorf("pixel (%d,%d): got %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestDrawBorder_ZeroStroke(t *testing.T) {
	img := NewCanvas(40, 40, testBackground)
	DrawBorder(img, BorderRect(40, 40, 5), 0, testBorder)

	if got := img.NRGBAAt(5, 5); got != testBackground {
		t.Errorf("zero stroke should draw nothing, got %v", got)
	}
}

func TestDrawBorder_ThickFillsRect(t *testing.T) {
	img := NewCanvas(20, 20, testBackground)
	DrawBorder(img, image.Rect(2, 2, 8, 8), 4, testBorder)

	if got := img.NRGBAAt(5, 5); got != testBorder {
		t.Errorf("stroke wider than half the rect should fill it, got %v", got)
	}
}
