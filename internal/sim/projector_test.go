package sim

import (
	"errors"
	"math"
	"testing"
)

func readyViewport(w, h int) *MercatorViewport {
	vp := NewMercatorViewport(DefaultCenter, DefaultZoom)
	vp.Resize(w, h)
	return vp
}

func TestMercator_NotReadyBeforeResize(t *testing.T) {
	vp := NewMercatorViewport(DefaultCenter, DefaultZoom)
	if _, err := vp.Project(DefaultCenter); !errors.Is(err, ErrNotReady) {
		t.Fatalf("Project: expected ErrNotReady, got %v", err)
	}
	if _, err := vp.Unproject(Point{}); !errors.Is(err, ErrNotReady) {
		t.Fatalf("Unproject: expected ErrNotReady, got %v", err)
	}
	if _, err := vp.Bounds(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("Bounds: expected ErrNotReady, got %v", err)
	}
	vp.Resize(0, 100)
	select {
	case <-vp.Ready():
		t.Fatal("zero-width resize should not make the viewport ready")
	default:
	}
}

func TestMercator_ResizeTwice(t *testing.T) {
	vp := readyViewport(800, 600)
	vp.Resize(1024, 768)
	if w, h := vp.Size(); w != 1024 || h != 768 {
		t.Fatalf("expected 1024x768, got %dx%d", w, h)
	}
	p, err := vp.Project(DefaultCenter)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if math.Abs(p.X-512) > 1e-6 || math.Abs(p.Y-384) > 1e-6 {
		t.Fatalf("centre should follow the new size, got (%.4f,%.4f)", p.X, p.Y)
	}
}

func TestMercator_CentreProjectsToMiddle(t *testing.T) {
	vp := readyViewport(1280, 720)
	p, err := vp.Project(DefaultCenter)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if math.Abs(p.X-640) > 1e-6 || math.Abs(p.Y-360) > 1e-6 {
		t.Fatalf("expected (640,360), got (%.6f,%.6f)", p.X, p.Y)
	}
}

func TestMercator_RoundTrip(t *testing.T) {
	vp := readyViewport(1280, 720)
	for _, pt := range []Point{{0, 0}, {1280, 720}, {17.5, 603.25}, {640, 360}, {-50, 900}} {
		ll, err := vp.Unproject(pt)
		if err != nil {
			t.Fatalf("unproject: %v", err)
		}
		back, err := vp.Project(ll)
		if err != nil {
			t.Fatalf("project: %v", err)
		}
		if math.Abs(back.X-pt.X) > 1e-6 || math.Abs(back.Y-pt.Y) > 1e-6 {
			t.Fatalf("round trip %v -> %v -> %v", pt, ll, back)
		}
	}
}

func TestMercator_BoundsOrientation(t *testing.T) {
	vp := readyViewport(1280, 720)
	b, err := vp.Bounds()
	if err != nil {
		t.Fatalf("bounds: %v", err)
	}
	if b.SW.Lat >= b.NE.Lat || b.SW.Lng >= b.NE.Lng {
		t.Fatalf("SW should be below and left of NE: %+v", b)
	}
	if !b.Contains(DefaultCenter) {
		t.Fatalf("bounds %+v should contain the centre", b)
	}
	// At zoom 18 one screen pixel is 360/(256*2^18) degrees of longitude.
	wantLng := 1280 * 360 / (256 * math.Exp2(18))
	if got := b.NE.Lng - b.SW.Lng; math.Abs(got-wantLng) > 1e-9 {
		t.Fatalf("expected lng span %.9f, got %.9f", wantLng, got)
	}
}

func TestMercator_ZoomScale(t *testing.T) {
	vp := NewMercatorViewport(DefaultCenter, 3)
	if vp.ZoomScale() != 8 {
		t.Fatalf("expected 8, got %.2f", vp.ZoomScale())
	}
}

func TestMercator_ScreenYGrowsSouth(t *testing.T) {
	vp := readyViewport(1280, 720)
	north, _ := vp.Project(LatLng{Lat: DefaultCenter.Lat + 0.001, Lng: DefaultCenter.Lng})
	south, _ := vp.Project(LatLng{Lat: DefaultCenter.Lat - 0.001, Lng: DefaultCenter.Lng})
	if north.Y >= south.Y {
		t.Fatalf("north should be above south on screen: %.2f vs %.2f", north.Y, south.Y)
	}
}
