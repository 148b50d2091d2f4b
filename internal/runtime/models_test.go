package runtime

import (
	"context"
	"errors"
	"testing"

	jsoncodec "github.com/drblury/msgmux/internal/runtime/jsoncodec"
)

func TestHandlersSnapshotCountsDispatches(t *testing.T) {
	boom := errors.New("boom")

	reg := NewBuilder().
		SetHandlerFunc("ok", func(msg *Message) error { return nil }).
		SetHandlerFunc("bad", func(msg *Message) error { return boom }).
		SetDefaultHandlerFunc(func(msg *Message) error { return nil }).
		MustBuild()

	ctx := context.Background()
	_ = reg.Dispatch(ctx, NewMessage("ok", nil))
	_ = reg.Dispatch(ctx, NewMessage("ok", nil))
	_ = reg.Dispatch(ctx, NewMessage("bad", nil))
	_ = reg.Dispatch(ctx, NewMessage("elsewhere", nil))

	infos := reg.Handlers()
	if len(infos) != 3 {
		t.Fatalf("expected 3 entries (2 specific + fallback), got %d", len(infos))
	}

	byType := map[string]HandlerInfo{}
	var fallback *HandlerInfo
	for i, info := range infos {
		if info.Default {
			fallback = &infos[i]
			continue
		}
		byType[info.MessageType] = info
	}

	if got := byType["ok"].Stats.MessagesProcessed; got != 2 {
		t.Fatalf("expected 2 processed for ok, got %d", got)
	}
	if got := byType["ok"].Stats.MessagesFailed; got != 0 {
		t.Fatalf("expected 0 failed for ok, got %d", got)
	}
	if got := byType["bad"].Stats.MessagesFailed; got != 1 {
		t.Fatalf("expected 1 failed for bad, got %d", got)
	}
	if byType["bad"].Stats.LastError == "" {
		t.Fatal("expected last error recorded for bad")
	}

	if fallback == nil {
		t.Fatal("expected fallback entry in snapshot")
	}
	if fallback.Stats.MessagesProcessed != 1 {
		t.Fatalf("expected 1 fallback dispatch, got %d", fallback.Stats.MessagesProcessed)
	}
}

func TestUnknownTypeDispatchTouchesNoStats(t *testing.T) {
	reg := NewBuilder().
		SetHandlerFunc("only", func(msg *Message) error { return nil }).
		MustBuild()

	_ = reg.Dispatch(context.Background(), NewMessage("other", nil))

	infos := reg.Handlers()
	if len(infos) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(infos))
	}
	if infos[0].Stats.MessagesProcessed != 0 {
		t.Fatal("unknown-type dispatch must not touch handler stats")
	}
}

func TestSnapshotJSONRoundTrips(t *testing.T) {
	reg := NewBuilder().
		SetHandlerFunc("ping", func(msg *Message) error { return nil }).
		MustBuild()

	if err := reg.Dispatch(context.Background(), NewMessage("ping", nil)); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	data, err := SnapshotJSON(reg)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	var decoded []HandlerInfo
	if err := jsoncodec.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(decoded) != 1 || decoded[0].MessageType != "ping" {
		t.Fatalf("unexpected snapshot: %#v", decoded)
	}
	if decoded[0].Stats.MessagesProcessed != 1 {
		t.Fatalf("expected 1 processed, got %d", decoded[0].Stats.MessagesProcessed)
	}
}
