package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ByLCY/bento/grid"
	"github.com/ByLCY/bento/layout"
	"github.com/ByLCY/bento/renderer"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	def := Default()
	if cfg.Preview != def.Preview || cfg.CopiedWindow != 2*time.Second {
		t.Fatalf("缺少配置文件时应返回默认值: %+v", cfg)
	}
	if err := def.Validate(); err != nil {
		t.Fatalf("默认配置应合法: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bento.yaml")
	body := `
input: dashboard.bento
export_mode: plain
preview:
  breakpoint: all
  path: out/grid.svg
  row_height: 42mm
log_file: bento.log
copied_window: 500ms
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Input != "dashboard.bento" || cfg.ExportMode != grid.ExportPlain {
		t.Fatalf("字段解析不符: %+v", cfg)
	}
	if cfg.Preview.Format != renderer.SVG {
		t.Fatalf("格式应由扩展名推断为 svg，得到 %s", cfg.Preview.Format)
	}
	if cfg.Preview.RowHeight != (layout.Length{Value: 42, Unit: layout.UnitMM}) {
		t.Fatalf("行高解析不符: %+v", cfg.Preview.RowHeight)
	}
	if cfg.CopiedWindow != 500*time.Millisecond || cfg.Debounce != 200*time.Millisecond {
		t.Fatalf("时长解析不符: %v %v", cfg.CopiedWindow, cfg.Debounce)
	}
	if bps := cfg.Preview.Breakpoints(); len(bps) != 3 || bps[0] != grid.SM {
		t.Fatalf("all 应展开为三个断点: %v", bps)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"unknown field": "colour: red\n",
		"breakpoint":    "preview:\n  breakpoint: xl\n",
		"format":        "preview:\n  format: gif\n",
		"export":        "export_mode: fancy\n",
		"row height":    "preview:\n  row_height: tall\n",
	}
	for name, body := range cases {
		if _, err := Parse(strings.NewReader(body)); err == nil {
			t.Errorf("%s: 应报错", name)
		}
	}
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Preview.Path != "preview.pdf" || cfg.Preview.Format != renderer.PDF {
		t.Fatalf("空文档应得到默认预览设置: %+v", cfg.Preview)
	}
}

func TestRotateLogIfNeeded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bento.log")
	if err := os.WriteFile(path, []byte(strings.Repeat("x", 64)), 0o644); err != nil {
		t.Fatal(err)
	}
	RotateLogIfNeeded(path, 128)
	if _, err := os.Stat(path + ".old"); err == nil {
		t.Fatalf("未超过上限时不应轮转")
	}
	f, err := OpenLog(path, 32)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := os.Stat(path + ".old"); err != nil {
		t.Fatalf("超过上限时应轮转: %v", err)
	}
	if info, _ := f.Stat(); info.Size() != 0 {
		t.Fatalf("轮转后应得到新的空日志")
	}
}
