package configwatcher

import (
	"career_coach_backend/pkg/logger"
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = time.Second

// WatchFile 监听单个文件的变更，防抖后调用 onChange，直到 ctx 取消。
// 监听所在目录，这样编辑器的原子替换（rename）也能被捕获。
func WatchFile(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()

		timer := time.NewTimer(debounce)
		if !timer.Stop() {
			<-timer.C
		}

		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != absPath {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				// 防抖处理
				timer.Reset(debounce)
			case <-timer.C:
				logger.Log.Info("watched file changed", zap.String("path", absPath))
				onChange()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Log.Error("file watcher error", zap.Error(err))
			}
		}
	}()

	return nil
}
