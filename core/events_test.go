package core

import "testing"

func TestEventBridge_ChannelsDisabledUntilRegistered(t *testing.T) {
	bridge := NewEventBridge()

	for _, channel := range []string{ChannelLog, ChannelNavigation, ChannelTokenRefresh, ChannelAuthFailure} {
		if bridge.Enabled(channel) {
			t.Fatalf("channel %q must start disabled", channel)
		}
	}

	// Emitting without a listener is a silent no-op.
	bridge.EmitLog(LogEvent{Level: LogLevelInfo, Message: "dropped"})
	bridge.EmitNavigation(NavigationRequest{Kind: NavigationKindRecord})
	bridge.EmitTokenRefresh(TokenRefreshEvent{RequestID: "req-1"})
	bridge.EmitAuthFailure(AuthFailureEvent{Error: "dropped"})

	bridge.OnLog(func(LogEvent) {})
	if !bridge.Enabled(ChannelLog) {
		t.Fatalf("log channel must enable after registration")
	}
	if bridge.Enabled(ChannelNavigation) {
		t.Fatalf("registration must not enable other channels")
	}
}

func TestEventBridge_DeliversInEmissionOrder(t *testing.T) {
	bridge := NewEventBridge()
	var got []string
	bridge.OnLog(func(event LogEvent) {
		got = append(got, event.Message)
	})

	bridge.EmitLog(LogEvent{Message: "first"})
	bridge.EmitLog(LogEvent{Message: "second"})
	bridge.EmitLog(LogEvent{Message: "third"})

	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestEventBridge_EmitNavigationNormalizes(t *testing.T) {
	bridge := NewEventBridge()
	var got NavigationRequest
	bridge.OnNavigation(func(request NavigationRequest) {
		got = request
	})

	bridge.EmitNavigation(NavigationRequest{
		Kind:     NavigationKind("teleport"),
		RecordID: "  001xx0000001  ",
	})

	if got.Kind != NavigationKindUnknown {
		t.Fatalf("unrecognized kind must map to unknown, got %q", got.Kind)
	}
	if got.RecordID != "001xx0000001" {
		t.Fatalf("record id must be trimmed, got %q", got.RecordID)
	}
}

func TestEventBridge_ListenerReplacement(t *testing.T) {
	bridge := NewEventBridge()
	var first, second int
	bridge.OnAuthFailure(func(AuthFailureEvent) { first++ })
	bridge.OnAuthFailure(func(AuthFailureEvent) { second++ })

	bridge.EmitAuthFailure(AuthFailureEvent{Error: "boom"})

	if first != 0 {
		t.Fatalf("replaced listener must not fire, got %d", first)
	}
	if second != 1 {
		t.Fatalf("active listener must fire once, got %d", second)
	}
}

func TestEventBridge_UnregisterByNil(t *testing.T) {
	bridge := NewEventBridge()
	bridge.OnTokenRefresh(func(TokenRefreshEvent) {
		t.Fatalf("unregistered listener must not fire")
	})
	bridge.OnTokenRefresh(nil)

	if bridge.Enabled(ChannelTokenRefresh) {
		t.Fatalf("nil registration must disable the channel")
	}
	bridge.EmitTokenRefresh(TokenRefreshEvent{RequestID: "req-1"})
}

func TestNavigationRequest_Normalize(t *testing.T) {
	cases := []struct {
		name string
		in   NavigationRequest
		want NavigationKind
	}{
		{name: "record", in: NavigationRequest{Kind: NavigationKindRecord}, want: NavigationKindRecord},
		{name: "link", in: NavigationRequest{Kind: NavigationKindLink}, want: NavigationKindLink},
		{name: "quick action", in: NavigationRequest{Kind: NavigationKindQuickAction}, want: NavigationKindQuickAction},
		{name: "page reference", in: NavigationRequest{Kind: NavigationKindPageReference}, want: NavigationKindPageReference},
		{name: "object home", in: NavigationRequest{Kind: NavigationKindObjectHome}, want: NavigationKindObjectHome},
		{name: "app", in: NavigationRequest{Kind: NavigationKindApp}, want: NavigationKindApp},
		{name: "padded", in: NavigationRequest{Kind: NavigationKind(" record ")}, want: NavigationKindRecord},
		{name: "empty", in: NavigationRequest{}, want: NavigationKindUnknown},
		{name: "garbage", in: NavigationRequest{Kind: NavigationKind("warp")}, want: NavigationKindUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Normalize().Kind; got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNavigationRequest_NormalizeCopiesPageReference(t *testing.T) {
	original := NavigationRequest{
		Kind:          NavigationKindPageReference,
		PageReference: map[string]any{"type": "standard__recordPage"},
	}

	normalized := original.Normalize()
	normalized.PageReference["type"] = "mutated"

	if original.PageReference["type"] != "standard__recordPage" {
		t.Fatalf("normalize must copy the page reference map")
	}
}
