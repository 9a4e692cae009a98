package wmcore

import (
	"testing"

	"github.com/ttwm/ttwm/internal/config"
)

func TestDispatchRunsBoundAction(t *testing.T) {
	r, _ := newTestReducer()
	mapTiled(r, 100, "a")
	mapTiled(r, 101, "b")

	if !r.Dispatch(config.ActionCycleTabForward) {
		t.Fatal("Dispatch(ActionCycleTabForward) should succeed")
	}
}

func TestDispatchUnknownActionReturnsFalse(t *testing.T) {
	r, _ := newTestReducer()
	if r.Dispatch(config.Action("not_a_real_action")) {
		t.Fatal("Dispatch should report unhandled for an unrecognised action")
	}
}

func TestQuitRequiresConfiguredStrikeCount(t *testing.T) {
	r, _ := newTestReducer()
	r.Config.General.QuitDebounceCount = 3
	r.Config.General.QuitDebounceMs = 5000

	if r.quitting {
		t.Fatal("should not start quitting")
	}
	r.Quit()
	if r.quitting {
		t.Fatal("first press should not trigger quit")
	}
	r.Quit()
	if r.quitting {
		t.Fatal("second press should not trigger quit")
	}
	r.Quit()
	if !r.quitting {
		t.Fatal("third press within the debounce window should trigger quit")
	}
}

func TestQuitSingleStrikeWhenDebounceCountIsOne(t *testing.T) {
	r, _ := newTestReducer()
	r.Config.General.QuitDebounceCount = 1

	r.Quit()
	if !r.quitting {
		t.Fatal("a single press should trigger quit when QuitDebounceCount is 1")
	}
}

func TestQuitImmediateSkipsDebounce(t *testing.T) {
	r, _ := newTestReducer()
	r.Config.General.QuitDebounceCount = 3
	r.Config.General.QuitDebounceMs = 5000
	// A client advertising WM_DELETE_WINDOW keeps beginShutdown waiting on
	// it instead of calling os.Exit inline, which would kill the test.
	r.HandleMapRequest(MapRequest{
		Window:    100,
		Protocols: ProtocolHints{DeleteWindow: true},
	})

	if !r.QuitImmediate() {
		t.Fatal("QuitImmediate should succeed on the first call")
	}
	if !r.quitting {
		t.Fatal("a single QuitImmediate call should trigger quit regardless of QuitDebounceCount")
	}
}

func TestQuitSendsDeleteWindowToEveryClient(t *testing.T) {
	r, backend := newTestReducer()
	r.Config.General.QuitDebounceCount = 1
	r.HandleMapRequest(MapRequest{
		Window:    100,
		Protocols: ProtocolHints{DeleteWindow: true},
	})
	r.HandleMapRequest(MapRequest{
		Window:    101,
		Protocols: ProtocolHints{DeleteWindow: false},
	})

	r.Quit()

	if len(backend.deleted) != 1 || backend.deleted[0] != 100 {
		t.Fatalf("deleted = %v, want [100] (only the client advertising WM_DELETE_WINDOW)", backend.deleted)
	}
}

func TestSendSyntheticMatchesWmClassSubstring(t *testing.T) {
	r, backend := newTestReducer()
	chord, err := config.ParseChord("Space")
	if err != nil {
		t.Fatal(err)
	}
	r.Config.ExecSynthetic["mpv"] = chord

	r.HandleMapRequest(MapRequest{Window: 100, Class: "mpv-player"})

	if !r.SendSynthetic() {
		t.Fatal("SendSynthetic should match the 'mpv' substring against the window's class")
	}
	if len(backend.synthetic) != 1 || backend.synthetic[0] != chord.Keysym {
		t.Fatalf("synthetic = %v, want [%v]", backend.synthetic, chord.Keysym)
	}
}

func TestSendSyntheticNoMatchReturnsFalse(t *testing.T) {
	r, _ := newTestReducer()
	r.HandleMapRequest(MapRequest{Window: 100, Class: "xterm"})
	if r.SendSynthetic() {
		t.Fatal("SendSynthetic should report unhandled when no class matches")
	}
}
