package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-redis/redis/v8"
)

var errCaptured = errors.New("captured")

// captureHook 记录命令参数并中止，不需要真实的 Redis
type captureHook struct {
	args [][]interface{}
}

func (h *captureHook) BeforeProcess(ctx context.Context, cmd redis.Cmder) (context.Context, error) {
	h.args = append(h.args, cmd.Args())
	return ctx, errCaptured
}

func (h *captureHook) AfterProcess(context.Context, redis.Cmder) error { return nil }

func (h *captureHook) BeforeProcessPipeline(ctx context.Context, _ []redis.Cmder) (context.Context, error) {
	return ctx, errCaptured
}

func (h *captureHook) AfterProcessPipeline(context.Context, []redis.Cmder) error { return nil }

func newCapturedRepo(t *testing.T) (*LeaderboardRepository, *captureHook) {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = rdb.Close() })
	hook := &captureHook{}
	rdb.AddHook(hook)
	return NewLeaderboardRepository(rdb), hook
}

func TestRaisePointsOnlyMovesScoreUp(t *testing.T) {
	repo, hook := newCapturedRepo(t)

	if err := repo.RaisePoints(context.Background(), 42, 120); !errors.Is(err, errCaptured) {
		t.Fatalf("err=%v", err)
	}
	got := fmt.Sprint(hook.args[0])
	want := fmt.Sprint([]interface{}{"zadd", leaderboardKey, "gt", float64(120), "42"})
	if got != want {
		t.Fatalf("args=%s, want %s", got, want)
	}
}

func TestSetPointsOverwrites(t *testing.T) {
	repo, hook := newCapturedRepo(t)

	if err := repo.SetPoints(context.Background(), 7, 30); !errors.Is(err, errCaptured) {
		t.Fatalf("err=%v", err)
	}
	for _, a := range hook.args[0] {
		if a == "gt" {
			t.Fatalf("warm write must overwrite, args=%v", hook.args[0])
		}
	}
}

func TestDisabledLeaderboardIsNoop(t *testing.T) {
	var repo *LeaderboardRepository
	if repo.Enabled() {
		t.Fatal("nil repo enabled")
	}
	if err := NewLeaderboardRepository(nil).RaisePoints(context.Background(), 1, 10); err != nil {
		t.Fatalf("RaisePoints without redis: %v", err)
	}
}
