// Package watcher 提供文件监听与去抖动，布局文件变化时触发重新生成；
// 同一个 Debouncer 也用于“已复制”提示的延时复位。
package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration is the default debounce window.
const DefaultDebounceDuration = 200 * time.Millisecond

// Debouncer 收集窗口内触发过的 key，窗口安静下来后把它们一次交给 fire。
// 每次 Trigger 都重新开始计时。
type Debouncer struct {
	window time.Duration
	fire   func(keys []string)

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
	keys  []string
}

// NewDebouncer 创建去抖器，window 为 0 时使用 DefaultDebounceDuration。
func NewDebouncer(window time.Duration, fire func(keys []string)) *Debouncer {
	if window <= 0 {
		window = DefaultDebounceDuration
	}
	return &Debouncer{window: window, fire: fire}
}

// Trigger 记录 key 并重新开始计时。同一窗口内重复的 key 只保留第一次。
func (d *Debouncer) Trigger(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !contains(d.keys, key) {
		d.keys = append(d.keys, key)
	}
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() { d.flush(gen) })
}

// Stop 丢弃尚未交付的 key。
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	d.keys = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// flush 只交付最后一次 Trigger 的计时；Stop 返回 false 的旧计时器在这里被丢弃。
func (d *Debouncer) flush(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	keys := d.keys
	d.keys, d.timer = nil, nil
	d.mu.Unlock()
	d.fire(keys)
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
