// Package store 持有一个可变的网格配置快照，并把每次修改串行化为
// “旧快照 → 新快照”的替换。读者拿到的快照永远是完整且满足不变式的。
package store

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ByLCY/bento/codegen"
	"github.com/ByLCY/bento/grid"
	"github.com/ByLCY/bento/watcher"
)

// DefaultCopiedWindow 是“已复制”提示的持续时间。
const DefaultCopiedWindow = 2 * time.Second

// Option 配置 Store。
type Option func(*Store)

// WithClipboard 替换剪贴板实现，默认 SystemClipboard。
func WithClipboard(c Clipboard) Option {
	return func(s *Store) { s.clipboard = c }
}

// WithCopiedWindow 设置“已复制”提示的持续时间。
func WithCopiedWindow(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.window = d
		}
	}
}

// WithLogger 设置日志输出，默认 log.Default()。
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDiffLogging 在每次替换快照后记录变化明细。
func WithDiffLogging(enabled bool) Option {
	return func(s *Store) { s.diffLog = enabled }
}

// Store 是配置的唯一持有者。所有方法都是同步的，不做任何 I/O
// （CopyGeneratedCode 写剪贴板除外）。
type Store struct {
	mu          sync.Mutex
	cfg         *grid.Config
	selected    grid.CardID
	hasSelected bool
	copied      bool
	copiedAt    time.Time
	fullscreen  bool
	subscribers []func(*grid.Config)

	clipboard   Clipboard
	window      time.Duration
	copiedReset *watcher.Debouncer
	logger      *log.Logger
	diffLog     bool
}

// New 以 cfg 为初始快照创建 Store，cfg 为 nil 时使用演示配置。
// Store 会复制 cfg，调用方之后对 cfg 的修改不会影响 Store。
func New(cfg *grid.Config, opts ...Option) *Store {
	if cfg == nil {
		cfg = grid.Default()
	}
	s := &Store{
		cfg:       cfg.Clone(),
		clipboard: SystemClipboard{},
		window:    DefaultCopiedWindow,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.copiedReset = watcher.NewDebouncer(s.window, func([]string) { s.expireCopied(time.Now()) })
	return s
}

// Snapshot 返回当前快照。快照不可修改，需要修改时请 Clone。
func (s *Store) Snapshot() *grid.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Selected 返回当前选中的卡片。
func (s *Store) Selected() (grid.CardID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, s.hasSelected
}

// Copied reports whether the copied indicator is currently shown.
func (s *Store) Copied() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copied
}

// Fullscreen reports whether the fullscreen preview is on.
func (s *Store) Fullscreen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fullscreen
}

// Subscribe 注册快照替换后的回调。回调在锁外同步执行。
func (s *Store) Subscribe(fn func(*grid.Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Generate 对当前快照运行代码生成。
func (s *Store) Generate() codegen.Output {
	return codegen.Generate(s.Snapshot())
}

// update 用 fn 的结果替换快照；fn 返回同一指针表示未变化。
func (s *Store) update(fn func(*grid.Config) *grid.Config) *grid.Config {
	s.mu.Lock()
	prev := s.cfg
	next := fn(prev)
	if next == prev {
		s.mu.Unlock()
		return prev
	}
	s.cfg = next
	// 订阅者看到的选中卡片必须存在于新快照中。
	if s.hasSelected && next.Index(s.selected) < 0 {
		s.selected, s.hasSelected = 0, false
	}
	subscribers := append([]func(*grid.Config){}, s.subscribers...)
	s.mu.Unlock()

	if s.diffLog {
		for _, change := range grid.Diff(prev, next) {
			s.logger.Printf("[debug] %s", change)
		}
	}
	for _, fn := range subscribers {
		fn(next)
	}
	return next
}

// Replace 用外部载入的配置整体替换快照（例如重新读取 .bento 文件）。
// cfg 不满足不变式时保持原快照并返回错误。选中的卡片若已不存在则清除选中。
func (s *Store) Replace(cfg *grid.Config) error {
	if cfg == nil {
		return fmt.Errorf("配置不能为空")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	next := cfg.Clone()
	s.update(func(*grid.Config) *grid.Config { return next })
	return nil
}

// SetColumns 修改某一断点的列数。
func (s *Store) SetColumns(bp grid.Breakpoint, v int) *grid.Config {
	return s.update(func(c *grid.Config) *grid.Config { return SetColumns(c, bp, v) })
}

// SetGap 修改某一断点的间距。
func (s *Store) SetGap(bp grid.Breakpoint, v int) *grid.Config {
	return s.update(func(c *grid.Config) *grid.Config { return SetGap(c, bp, v) })
}

// SetRows 修改名义行数。
func (s *Store) SetRows(rows int) *grid.Config {
	return s.update(func(c *grid.Config) *grid.Config { return SetRows(c, rows) })
}

func (s *Store) SetCardStyle(id grid.CardID, patch StylePatch) *grid.Config {
	return s.update(func(c *grid.Config) *grid.Config { return SetCardStyle(c, id, patch) })
}

func (s *Store) SetCardSize(id grid.CardID, col, row SpanInput) *grid.Config {
	return s.update(func(c *grid.Config) *grid.Config { return SetCardSize(c, id, col, row) })
}

func (s *Store) SetCardContent(id grid.CardID, patch ContentPatch) *grid.Config {
	return s.update(func(c *grid.Config) *grid.Config { return SetCardContent(c, id, patch) })
}

func (s *Store) SetCardName(id grid.CardID, name string) *grid.Config {
	return s.update(func(c *grid.Config) *grid.Config { return SetCardName(c, id, name) })
}

// ReorderCards 把 source 移到 destination 的位置。
func (s *Store) ReorderCards(source, destination grid.CardID) *grid.Config {
	return s.update(func(c *grid.Config) *grid.Config { return ReorderCards(c, source, destination) })
}

func (s *Store) ApplyAnimationToAll(a grid.Animation, duration, delay float64) *grid.Config {
	return s.update(func(c *grid.Config) *grid.Config { return ApplyAnimationToAll(c, a, duration, delay) })
}

func (s *Store) ApplyHoverEffectToAll(e grid.HoverEffect, duration float64) *grid.Config {
	return s.update(func(c *grid.Config) *grid.Config { return ApplyHoverEffectToAll(c, e, duration) })
}

func (s *Store) ToggleExportMode() *grid.Config {
	return s.update(ToggleExportMode)
}

// ToggleFullscreenPreview 切换全屏预览标志，不影响配置。
func (s *Store) ToggleFullscreenPreview() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fullscreen = !s.fullscreen
	return s.fullscreen
}

// AddCard 追加一张默认卡片并返回它的 id。
func (s *Store) AddCard() grid.CardID {
	var id grid.CardID
	s.update(func(c *grid.Config) *grid.Config {
		next, newID := AddCard(c)
		id = newID
		return next
	})
	return id
}

// RemoveCard 删除卡片；若它正被选中则清除选中。
func (s *Store) RemoveCard(id grid.CardID) *grid.Config {
	return s.update(func(c *grid.Config) *grid.Config { return RemoveCard(c, id) })
}

// Select 选中一张卡片；未知 id 不改变当前选中。
func (s *Store) Select(id grid.CardID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.Index(id) < 0 {
		return
	}
	s.selected, s.hasSelected = id, true
}

// ClearSelection 清除选中。
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected, s.hasSelected = 0, false
}

// CopyGeneratedCode 生成代码并写入剪贴板，成功后在复制窗口内显示“已复制”。
// 再次复制会重新计时。写入失败时返回错误并清除“已复制”提示。
func (s *Store) CopyGeneratedCode() error {
	text := s.Generate().Combined()
	if err := s.clipboard.WriteAll(text); err != nil {
		s.copiedReset.Stop()
		s.mu.Lock()
		s.copied = false
		s.mu.Unlock()
		s.logger.Printf("写入剪贴板失败: %v", err)
		return fmt.Errorf("写入剪贴板失败: %w", err)
	}
	s.mu.Lock()
	s.copied = true
	s.copiedAt = time.Now()
	s.mu.Unlock()
	s.copiedReset.Trigger("copied")
	return nil
}

// expireCopied 只在最近一次复制已满一个窗口时清除提示，
// 迟到的旧计时不会清掉新一次复制。
func (s *Store) expireCopied(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.copied && now.Sub(s.copiedAt) >= s.window {
		s.copied = false
	}
}
