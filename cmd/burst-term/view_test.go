package main

import (
	"testing"

	"burst/internal/device"
)

func TestCellToTexel(t *testing.T) {
	cases := []struct {
		cx, cy, cols, rows, w, h int
		x, y                     int
	}{
		{0, 0, 80, 24, 256, 1, 1, 0},
		{79, 23, 80, 24, 256, 1, 254, 0},
		{0, 0, 256, 2, 256, 2, 0, 0},
		{255, 1, 256, 2, 256, 2, 255, 1},
		{5, 3, 512, 8, 256, 4, 2, 1},
	}
	for _, c := range cases {
		x, y := cellToTexel(c.cx, c.cy, c.cols, c.rows, c.w, c.h)
		if x != c.x || y != c.y {
			t.Fatalf("cell (%d,%d) of %dx%d over %dx%d = (%d,%d), expected (%d,%d)",
				c.cx, c.cy, c.cols, c.rows, c.w, c.h, x, y, c.x, c.y)
		}
	}
}

func TestStateViewBlit(t *testing.T) {
	dev := device.NewCPU(1)
	tex, err := dev.NewTexture(4, 2)
	if err != nil {
		t.Fatalf("texture: %v", err)
	}
	defer tex.Release()

	var v stateView
	if _, ok := v.texel(0, 0, 4, 2); ok {
		t.Fatal("empty view must not report texels")
	}
	if err := v.Blit(tex); err != nil {
		t.Fatalf("blit: %v", err)
	}
	if v.w != 4 || v.h != 2 || len(v.texels) != 4*2*4 {
		t.Fatalf("view %dx%d with %d floats", v.w, v.h, len(v.texels))
	}
	if _, ok := v.texel(3, 1, 4, 2); !ok {
		t.Fatal("expected a texel after blit")
	}
	v.Release()
	if _, ok := v.texel(0, 0, 4, 2); ok {
		t.Fatal("released view must not report texels")
	}
}
