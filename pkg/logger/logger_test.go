package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestForUserAddsUserID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Log
	Log = zap.New(core)
	t.Cleanup(func() { Log = prev })

	ForUser(42).Warn("update leaderboard cache failed")

	entries := logs.FilterField(zap.Uint("userID", 42)).All()
	if len(entries) != 1 || entries[0].Message != "update leaderboard cache failed" {
		t.Fatalf("entries=%+v", logs.All())
	}
}
