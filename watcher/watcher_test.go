package watcher

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// recorder 收集每次 fire 交付的 key。
type recorder struct {
	mu    sync.Mutex
	fires [][]string
}

func (r *recorder) fire(keys []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fires = append(r.fires, keys)
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.fires...)
}

func TestDebouncerCoalesces(t *testing.T) {
	var r recorder
	d := NewDebouncer(30*time.Millisecond, r.fire)
	for _, key := range []string{"layout.bento", "data.json", "layout.bento", "layout.bento"} {
		d.Trigger(key)
	}
	time.Sleep(120 * time.Millisecond)

	fires := r.snapshot()
	if len(fires) != 1 {
		t.Fatalf("窗口内的多次触发应合并为一次，得到 %d 次", len(fires))
	}
	if got := strings.Join(fires[0], ","); got != "layout.bento,data.json" {
		t.Fatalf("应按首次出现顺序交付去重后的 key，得到 %q", got)
	}

	// 交付后重新开始收集。
	d.Trigger("data.json")
	time.Sleep(120 * time.Millisecond)
	fires = r.snapshot()
	if len(fires) != 2 || strings.Join(fires[1], ",") != "data.json" {
		t.Fatalf("第二个窗口应只交付新的 key，得到 %v", fires)
	}
}

func TestDebouncerRestartsWindow(t *testing.T) {
	var r recorder
	d := NewDebouncer(60*time.Millisecond, r.fire)
	d.Trigger("a")
	time.Sleep(40 * time.Millisecond)
	d.Trigger("b")
	time.Sleep(40 * time.Millisecond)
	if n := len(r.snapshot()); n != 0 {
		t.Fatalf("再次触发应重新计时，却已交付 %d 次", n)
	}
	time.Sleep(100 * time.Millisecond)
	if fires := r.snapshot(); len(fires) != 1 || len(fires[0]) != 2 {
		t.Fatalf("期望一次交付两个 key，得到 %v", fires)
	}
}

func TestDebouncerStop(t *testing.T) {
	var r recorder
	d := NewDebouncer(20*time.Millisecond, r.fire)
	d.Trigger("a")
	d.Stop()
	time.Sleep(80 * time.Millisecond)
	if n := len(r.snapshot()); n != 0 {
		t.Fatalf("Stop 后不应交付，得到 %d 次", n)
	}

	d.Trigger("b")
	time.Sleep(80 * time.Millisecond)
	if fires := r.snapshot(); len(fires) != 1 || strings.Join(fires[0], ",") != "b" {
		t.Fatalf("Stop 丢弃的 key 不应再出现，得到 %v", fires)
	}
}

func TestDebouncerDefaultWindow(t *testing.T) {
	var r recorder
	d := NewDebouncer(0, r.fire)
	defer d.Stop()
	d.Trigger("a")
	time.Sleep(DefaultDebounceDuration / 2)
	if n := len(r.snapshot()); n != 0 {
		t.Fatalf("window 为 0 时应使用默认窗口，却提前交付了 %d 次", n)
	}
}

func TestWatchReportsChanges(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "layout.bento")
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(target, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed := make(chan string, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{target}, Options{
			Debounce: 20 * time.Millisecond,
			Logger:   log.New(&bytes.Buffer{}, "", 0),
		}, func(path string) { changed <- path })
	}()

	// 等待监听建立后再写入。
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(other, []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(target, []byte{byte('b' + i)}, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case path := <-changed:
		if filepath.Base(path) != "layout.bento" {
			t.Fatalf("收到了非目标文件的变化: %s", path)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("超时未收到文件变化")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Watch 返回错误: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("取消后 Watch 未退出")
	}
}

func TestWatchRequiresPaths(t *testing.T) {
	if err := Watch(context.Background(), nil, Options{}, func(string) {}); err == nil {
		t.Fatalf("没有文件时应返回错误")
	}
}
