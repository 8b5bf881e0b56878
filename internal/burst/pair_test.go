package burst

import (
	"errors"
	"testing"

	"burst/internal/device"
)

func TestPairSwapExchangesRoles(t *testing.T) {
	dev := newFakeDevice()
	var p Pair
	if err := p.Allocate(dev, 8, 2); err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if w, h := p.Size(); w != 8 || h != 2 {
		t.Fatalf("size %dx%d", w, h)
	}
	r, w := p.Read(), p.Write()
	if id(r) != 0 || id(w) != 1 {
		t.Fatalf("initial roles read=%d write=%d", id(r), id(w))
	}
	p.Swap()
	if p.Read() != w || p.Write() != r {
		t.Fatal("swap did not exchange roles")
	}
	p.Swap()
	if p.Read() != r || p.Write() != w {
		t.Fatal("second swap did not restore roles")
	}
}

func TestPairReleaseIsIdempotent(t *testing.T) {
	dev := newFakeDevice()
	var p Pair
	p.Release()
	if p.Allocated() {
		t.Fatal("zero pair reported allocated")
	}
	if err := p.Allocate(dev, 4, 4); err != nil {
		t.Fatalf("allocate: %v", err)
	}
	p.Release()
	p.Release()
	if dev.doubleFree != 0 || p.Allocated() {
		t.Fatal("release must free once and leave the pair empty")
	}
	if w, h := p.Size(); w != 0 || h != 0 {
		t.Fatalf("released pair reports size %dx%d", w, h)
	}
}

func TestPairAllocateReplacesPrevious(t *testing.T) {
	dev := newFakeDevice()
	var p Pair
	_ = p.Allocate(dev, 4, 4)
	_ = p.Allocate(dev, 4, 8)
	if dev.live() != 2 || len(dev.textures) != 4 {
		t.Fatalf("live %d created %d", dev.live(), len(dev.textures))
	}
	if id(p.Write()) != 3 {
		t.Fatalf("write role should start on the second new texture, got %d", id(p.Write()))
	}
}

func TestPairAllocateFailureReleasesFirst(t *testing.T) {
	dev := newFakeDevice()
	dev.failAllocs[1] = true
	var p Pair
	err := p.Allocate(dev, 4, 4)
	if !errors.Is(err, errFakeAlloc) {
		t.Fatalf("expected allocation error, got %v", err)
	}
	if p.Allocated() || dev.live() != 0 {
		t.Fatal("failed allocation must not leave textures behind")
	}
}

func TestPairWithCPUDevice(t *testing.T) {
	var p Pair
	if err := p.Allocate(device.NewCPU(1), 16, 3); err != nil {
		t.Fatalf("allocate: %v", err)
	}
	defer p.Release()
	if p.Read() == p.Write() {
		t.Fatal("pair textures must be distinct")
	}
}
