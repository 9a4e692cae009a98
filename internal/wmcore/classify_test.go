package wmcore

import (
	"testing"

	"github.com/ttwm/ttwm/internal/geom"
)

func TestClassifyIgnoresOverrideRedirectAndOwnTabBar(t *testing.T) {
	if d := Classify(ClassifyInput{OverrideRedirect: true}); d != DispositionIgnore {
		t.Fatalf("override-redirect: got %v, want DispositionIgnore", d)
	}
	if d := Classify(ClassifyInput{OwnTabBar: true}); d != DispositionIgnore {
		t.Fatalf("own tab bar: got %v, want DispositionIgnore", d)
	}
}

func TestClassifyFloatsDialogsAndTransients(t *testing.T) {
	if d := Classify(ClassifyInput{WindowType: TypeDialog}); d != DispositionFloat {
		t.Fatalf("dialog: got %v, want DispositionFloat", d)
	}
	if d := Classify(ClassifyInput{TransientFor: 42}); d != DispositionFloat {
		t.Fatalf("transient: got %v, want DispositionFloat", d)
	}
}

func TestClassifyFloatsFixedSizeWindows(t *testing.T) {
	in := ClassifyInput{MinW: 300, MaxW: 300, MinH: 200, MaxH: 200}
	if d := Classify(in); d != DispositionFloat {
		t.Fatalf("fixed-size: got %v, want DispositionFloat", d)
	}
}

func TestClassifyTilesOrdinaryWindows(t *testing.T) {
	if d := Classify(ClassifyInput{WindowType: TypeNormal}); d != DispositionTile {
		t.Fatalf("normal: got %v, want DispositionTile", d)
	}
}

func TestInitialFloatRectUsesRequestedWhenOnScreen(t *testing.T) {
	screen := geom.Rect{X: 0, Y: 0, W: 1920, H: 1080}
	focused := geom.Rect{X: 0, Y: 0, W: 960, H: 1080}
	requested := geom.Rect{X: 100, Y: 100, W: 400, H: 300}
	got := InitialFloatRect(requested, focused, screen)
	if got != requested {
		t.Fatalf("got %+v, want %+v", got, requested)
	}
}

func TestInitialFloatRectCentersOffScreenRequest(t *testing.T) {
	screen := geom.Rect{X: 0, Y: 0, W: 1920, H: 1080}
	focused := geom.Rect{X: 0, Y: 0, W: 960, H: 1080}
	requested := geom.Rect{X: -5000, Y: -5000, W: 400, H: 300}
	got := InitialFloatRect(requested, focused, screen)
	fx, fy := focused.Center()
	if got.X != fx-200 || got.Y != fy-150 {
		t.Fatalf("got %+v, want centered on focused frame %+v", got, focused)
	}
}

func TestClampToScreenPullsBackInBounds(t *testing.T) {
	screen := geom.Rect{X: 0, Y: 0, W: 1920, H: 1080}
	r := geom.Rect{X: 1800, Y: 1000, W: 400, H: 300}
	got := ClampToScreen(r, screen)
	if got.X+got.W > screen.X+screen.W || got.Y+got.H > screen.Y+screen.H {
		t.Fatalf("got %+v, still spills past screen %+v", got, screen)
	}
}

func TestClampToScreenShrinksOversizedRect(t *testing.T) {
	screen := geom.Rect{X: 0, Y: 0, W: 800, H: 600}
	r := geom.Rect{X: 0, Y: 0, W: 2000, H: 2000}
	got := ClampToScreen(r, screen)
	if got.W != screen.W || got.H != screen.H {
		t.Fatalf("got %+v, want shrunk to screen size %+v", got, screen)
	}
}
