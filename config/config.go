// Package config 读取 bento.yaml。命令行参数在 main 中覆盖文件值。
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/bento/grid"
	"github.com/ByLCY/bento/layout"
	"github.com/ByLCY/bento/renderer"
)

// DefaultPath 是默认配置文件名。
const DefaultPath = "bento.yaml"

// AllBreakpoints 表示一次渲染三个断点。
const AllBreakpoints = "all"

// Config 是 bento.yaml 的内容。
type Config struct {
	Input        string          `yaml:"input"`       // .bento 文件，空表示演示配置
	Data         string          `yaml:"data"`        // ${path} 占位符使用的 JSON 数据
	Markup       string          `yaml:"markup"`      // 组件代码输出路径，空表示标准输出
	Stylesheet   string          `yaml:"stylesheet"`  // 样式表输出路径，空表示标准输出
	ExportMode   grid.ExportMode `yaml:"export_mode"` // 非空时覆盖文件里的导出模式
	Preview      Preview         `yaml:"preview"`
	LogFile      string          `yaml:"log_file"`
	LogMaxBytes  int64           `yaml:"log_max_bytes"`
	CopiedWindow time.Duration   `yaml:"copied_window"`
	Debounce     time.Duration   `yaml:"debounce"`
}

// Preview 配置预览渲染。
type Preview struct {
	Breakpoint string          `yaml:"breakpoint"` // sm | md | lg | all
	Format     renderer.Format `yaml:"format"`
	Path       string          `yaml:"path"` // all 时作为文件名前缀
	RowHeight  layout.Length   `yaml:"row_height"`
	Width      layout.Length   `yaml:"width"` // 0 表示按断点取默认宽度
	DPI        float64         `yaml:"dpi"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		ExportMode: "",
		Preview: Preview{
			Breakpoint: string(grid.LG),
			Format:     renderer.PDF,
			Path:       "preview.pdf",
			RowHeight:  layout.Length{Value: layout.DefaultRowHeight, Unit: layout.UnitPX},
			DPI:        192,
		},
		LogFile:      "",
		LogMaxBytes:  1 << 20,
		CopiedWindow: 2 * time.Second,
		Debounce:     200 * time.Millisecond,
	}
}

// ApplyDefaults 为零值字段补上默认值。
func (c *Config) ApplyDefaults() {
	def := Default()
	if c.Preview.Breakpoint == "" {
		c.Preview.Breakpoint = def.Preview.Breakpoint
	}
	if c.Preview.Format == "" {
		c.Preview.Format = renderer.FormatFromPath(c.Preview.Path)
	}
	if c.Preview.Path == "" {
		c.Preview.Path = "preview." + string(c.Preview.Format)
	}
	if c.Preview.RowHeight.IsZero() {
		c.Preview.RowHeight = def.Preview.RowHeight
	}
	if c.Preview.DPI <= 0 {
		c.Preview.DPI = def.Preview.DPI
	}
	if c.LogMaxBytes <= 0 {
		c.LogMaxBytes = def.LogMaxBytes
	}
	if c.CopiedWindow <= 0 {
		c.CopiedWindow = def.CopiedWindow
	}
	if c.Debounce <= 0 {
		c.Debounce = def.Debounce
	}
}

// Validate 检查取值范围，返回全部问题。
func (c Config) Validate() error {
	var problems []string
	if bp := c.Preview.Breakpoint; bp != AllBreakpoints {
		if _, err := grid.ParseBreakpoint(bp); err != nil {
			problems = append(problems, fmt.Sprintf("preview.breakpoint: %s 不是 sm、md、lg 或 all", bp))
		}
	}
	if _, err := renderer.ParseFormat(string(c.Preview.Format)); err != nil {
		problems = append(problems, "preview.format: "+err.Error())
	}
	if c.ExportMode != "" {
		if _, err := grid.ParseExportMode(string(c.ExportMode)); err != nil {
			problems = append(problems, "export_mode: "+err.Error())
		}
	}
	if c.Preview.RowHeight.ToPX() < 0 || c.Preview.Width.ToPX() < 0 {
		problems = append(problems, "preview: 行高与宽度不能为负数")
	}
	if len(problems) > 0 {
		return errors.New("配置无效:\n  " + strings.Join(problems, "\n  "))
	}
	return nil
}

// Breakpoints 返回需要渲染的断点列表。
func (p Preview) Breakpoints() []grid.Breakpoint {
	if p.Breakpoint == AllBreakpoints {
		return grid.Breakpoints[:]
	}
	bp, err := grid.ParseBreakpoint(p.Breakpoint)
	if err != nil {
		return []grid.Breakpoint{grid.LG}
	}
	return []grid.Breakpoint{bp}
}

// Load 读取 path 指向的配置。文件不存在时返回默认配置。
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("读取配置 %s 失败: %w", path, err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("解析配置 %s 失败: %w", path, err)
	}
	return cfg, nil
}

// Parse 从 r 解码配置，未知字段视为错误。
func Parse(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
