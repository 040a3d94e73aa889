package watcher

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Options 配置 Watch。
type Options struct {
	// Debounce 为合并窗口，0 表示 DefaultDebounceDuration。
	Debounce time.Duration
	Logger   *log.Logger
}

// Watch 监听 paths 中的文件，直到 ctx 结束。一个合并窗口内变化过的
// 每个文件都以其路径调用 onChange 一次。监听的是文件所在目录，这样编辑器“写临时文件再改名”的
// 保存方式也能被捕获。
func Watch(ctx context.Context, paths []string, opts Options, onChange func(path string)) error {
	if len(paths) == 0 {
		return fmt.Errorf("没有需要监听的文件")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建文件监听失败: %w", err)
	}
	defer fw.Close()

	targets := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("解析路径 %s 失败: %w", p, err)
		}
		targets[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("监听目录 %s 失败: %w", dir, err)
		}
		dirs[dir] = true
	}
	logger.Printf("开始监听 %d 个文件", len(targets))

	debouncer := NewDebouncer(opts.Debounce, func(names []string) {
		for _, name := range names {
			onChange(name)
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !targets[name] {
				continue
			}
			debouncer.Trigger(name)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Printf("文件监听出错: %v", err)
		}
	}
}
