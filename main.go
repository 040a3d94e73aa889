package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/ByLCY/bento/codegen"
	"github.com/ByLCY/bento/config"
	"github.com/ByLCY/bento/dsl"
	"github.com/ByLCY/bento/grid"
	"github.com/ByLCY/bento/layout"
	"github.com/ByLCY/bento/renderer"
	canvasrenderer "github.com/ByLCY/bento/renderer/canvas"
	"github.com/ByLCY/bento/store"
	"github.com/ByLCY/bento/ui"
	"github.com/ByLCY/bento/watcher"
)

const usage = `用法: bento <命令> [参数]

命令:
  gen      生成组件代码与样式表
  preview  把网格渲染为 PDF/SVG/PNG 预览
  edit     打开终端网格编辑器
  watch    监听 .bento 文件并在变化时重新生成
  debug    输出模型与放置结果的调试 JSON

使用 bento <命令> -h 查看各命令参数。`

func main() {
	log.SetFlags(log.LstdFlags)
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	var err error
	switch cmd {
	case "gen":
		err = runGen(args)
	case "preview":
		err = runPreview(args)
	case "edit":
		err = runEdit(args)
	case "watch":
		err = runWatch(args)
	case "debug":
		err = runDebug(args)
	case "-h", "--help", "help":
		fmt.Println(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "未知命令 %q\n\n%s\n", cmd, usage)
		os.Exit(2)
	}
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("%s 失败: %v", cmd, err)
	}
}

// commonFlags 是所有子命令共享的参数，非空时覆盖配置文件。
type commonFlags struct {
	configPath string
	input      string
	data       string
	markup     string
	stylesheet string
	exportMode string
	verbose    bool
}

func newFlagSet(name string) (*flag.FlagSet, *commonFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	c := &commonFlags{}
	fs.StringVar(&c.configPath, "config", config.DefaultPath, "配置文件路径")
	fs.StringVar(&c.input, "in", "", ".bento 文件路径，留空使用演示网格")
	fs.StringVar(&c.data, "data", "", "绑定到 ${path} 占位符的 JSON 数据文件")
	fs.StringVar(&c.markup, "markup", "", "组件代码输出路径")
	fs.StringVar(&c.stylesheet, "stylesheet", "", "样式表输出路径")
	fs.StringVar(&c.exportMode, "export", "", "导出模式 library 或 plain")
	fs.BoolVar(&c.verbose, "v", false, "记录每次修改的变化明细")
	return fs, c
}

// env 是解析参数与配置后的运行环境。
type env struct {
	cfg     config.Config
	logger  *log.Logger
	verbose bool
	closeFn func()
}

func (e *env) close() {
	if e.closeFn != nil {
		e.closeFn()
	}
}

// setup 读取配置、应用命令行覆盖并打开日志。quiet 为真且未配置日志文件时丢弃日志。
func setup(c *commonFlags, quiet bool) (*env, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.input != "" {
		cfg.Input = c.input
	}
	if c.data != "" {
		cfg.Data = c.data
	}
	if c.markup != "" {
		cfg.Markup = c.markup
	}
	if c.stylesheet != "" {
		cfg.Stylesheet = c.stylesheet
	}
	if c.exportMode != "" {
		mode, err := grid.ParseExportMode(c.exportMode)
		if err != nil {
			return nil, err
		}
		cfg.ExportMode = mode
	}

	e := &env{cfg: cfg, logger: log.Default(), verbose: c.verbose}
	switch {
	case cfg.LogFile != "":
		f, err := config.OpenLog(cfg.LogFile, cfg.LogMaxBytes)
		if err != nil {
			return nil, err
		}
		log.SetOutput(f)
		e.closeFn = func() { _ = f.Close() }
	case quiet:
		log.SetOutput(io.Discard)
	}
	return e, nil
}

func (e *env) newStore(model *grid.Config) *store.Store {
	return store.New(model,
		store.WithLogger(e.logger),
		store.WithCopiedWindow(e.cfg.CopiedWindow),
		store.WithDiffLogging(e.verbose),
	)
}

// loadModel 解析 .bento 文件并构建网格配置；未指定文件时返回演示网格。
func loadModel(cfg config.Config, logger *log.Logger) (*grid.Config, error) {
	model := grid.Default()
	if cfg.Input != "" {
		var data any
		if cfg.Data != "" {
			raw, err := os.ReadFile(cfg.Data)
			if err != nil {
				return nil, fmt.Errorf("读取数据文件失败: %w", err)
			}
			if err := json.Unmarshal(raw, &data); err != nil {
				return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
			}
		}

		file, err := os.Open(cfg.Input)
		if err != nil {
			return nil, fmt.Errorf("无法打开 .bento 文件 %s: %w", cfg.Input, err)
		}
		defer file.Close()

		doc, err := dsl.Parse(cfg.Input, file)
		if err != nil {
			return nil, fmt.Errorf("解析 .bento 失败: %w", err)
		}
		model, err = grid.Build(doc, grid.BuildOptions{Data: data, Logger: logger})
		if err != nil {
			return nil, fmt.Errorf("构建网格失败: %w", err)
		}
	}
	if cfg.ExportMode != "" && cfg.ExportMode != model.ExportMode {
		model = model.Clone()
		model.ExportMode = cfg.ExportMode
	}
	return model, nil
}

// writeFiles 把生成结果写到配置的输出路径，返回是否写出了任何文件。
func writeFiles(cfg config.Config, out codegen.Output) (bool, error) {
	wrote := false
	for _, f := range []struct{ path, text string }{
		{cfg.Markup, out.Markup},
		{cfg.Stylesheet, out.Stylesheet},
	} {
		if f.path == "" {
			continue
		}
		if err := writeFile(f.path, []byte(f.text+"\n")); err != nil {
			return wrote, err
		}
		wrote = true
	}
	return wrote, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	return nil
}

// emit 写文件；未配置任何输出路径时打印到 stdout。
func emit(cfg config.Config, out codegen.Output, pretty bool) error {
	wrote, err := writeFiles(cfg, out)
	if err != nil || wrote {
		return err
	}
	fd := int(os.Stdout.Fd())
	if pretty && term.IsTerminal(fd) {
		width, _, _ := term.GetSize(fd)
		if rendered, err := ui.Highlight(out, width); err == nil {
			fmt.Print(rendered)
			return nil
		}
	}
	fmt.Println(out.Combined())
	return nil
}

func runGen(args []string) error {
	fs, common := newFlagSet("gen")
	pretty := fs.Bool("pretty", true, "终端输出时语法高亮")
	copyOut := fs.Bool("copy", false, "同时复制到剪贴板")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := setup(common, false)
	if err != nil {
		return err
	}
	defer e.close()

	model, err := loadModel(e.cfg, e.logger)
	if err != nil {
		return err
	}
	s := e.newStore(model)
	if err := emit(e.cfg, s.Generate(), *pretty); err != nil {
		return err
	}
	if *copyOut {
		if err := s.CopyGeneratedCode(); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "✓ Copied")
	}
	return nil
}

func runPreview(args []string) error {
	fs, common := newFlagSet("preview")
	bp := fs.String("breakpoint", "", "sm、md、lg 或 all")
	format := fs.String("format", "", "pdf、svg 或 png，留空按输出扩展名推断")
	out := fs.String("out", "", "预览输出路径，all 时作为文件名前缀")
	width := fs.String("width", "", "容器宽度，例如 1280px 或 300mm")
	dpi := fs.Float64("dpi", 0, "PNG 分辨率")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := setup(common, false)
	if err != nil {
		return err
	}
	defer e.close()

	p := &e.cfg.Preview
	if *bp != "" {
		p.Breakpoint = *bp
	}
	if *out != "" {
		p.Path = *out
		p.Format = renderer.FormatFromPath(*out)
	}
	if *format != "" {
		f, err := renderer.ParseFormat(*format)
		if err != nil {
			return err
		}
		p.Format = f
	}
	if *width != "" {
		w, err := layout.ParseLength(*width)
		if err != nil {
			return err
		}
		p.Width = w
	}
	if *dpi > 0 {
		p.DPI = *dpi
	}
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	model, err := loadModel(e.cfg, e.logger)
	if err != nil {
		return err
	}

	breakpoints := p.Breakpoints()
	paths := make([]string, len(breakpoints))
	var g errgroup.Group
	for i, b := range breakpoints {
		paths[i] = previewPath(p.Path, b, len(breakpoints) > 1)
		g.Go(func() error {
			return renderPreview(model, *p, b, paths[i])
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, path := range paths {
		fmt.Printf("已生成预览：%s\n", path)
	}
	return nil
}

// renderPreview 串联放置与渲染。
func renderPreview(model *grid.Config, p config.Preview, bp grid.Breakpoint, path string) error {
	r := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Format: p.Format, DPI: p.DPI})
	result, err := layout.Place(model, layout.Options{
		Breakpoint: bp,
		Width:      p.Width.ToPX(),
		RowHeight:  p.RowHeight.ToPX(),
		Typesetter: r,
	})
	if err != nil {
		return fmt.Errorf("%s 布局计算失败: %w", bp, err)
	}
	data, err := r.Render(result)
	if err != nil {
		return fmt.Errorf("%s 渲染失败: %w", bp, err)
	}
	return writeFile(path, data)
}

// previewPath 在渲染多个断点时为文件名加上断点后缀。
func previewPath(path string, bp grid.Breakpoint, multi bool) string {
	if !multi {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + string(bp) + ext
}

func runEdit(args []string) error {
	fs, common := newFlagSet("edit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	// 日志写到终端会破坏全屏界面
	e, err := setup(common, true)
	if err != nil {
		return err
	}
	defer e.close()

	model, err := loadModel(e.cfg, e.logger)
	if err != nil {
		return err
	}
	opts := ui.Options{
		CopiedWindow: e.cfg.CopiedWindow,
		Pretty:       term.IsTerminal(int(os.Stdout.Fd())),
	}
	if e.cfg.Markup != "" || e.cfg.Stylesheet != "" {
		cfg := e.cfg
		opts.Write = func(out codegen.Output) error {
			_, err := writeFiles(cfg, out)
			return err
		}
	}
	return ui.Run(e.newStore(model), opts)
}

func runWatch(args []string) error {
	fs, common := newFlagSet("watch")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := setup(common, false)
	if err != nil {
		return err
	}
	defer e.close()
	if e.cfg.Input == "" {
		return fmt.Errorf("watch 需要 -in 指定 .bento 文件")
	}

	model, err := loadModel(e.cfg, e.logger)
	if err != nil {
		return err
	}
	s := e.newStore(model)
	s.Subscribe(func(next *grid.Config) {
		if err := emit(e.cfg, codegen.Generate(next), false); err != nil {
			e.logger.Printf("写出生成结果失败: %v", err)
			return
		}
		e.logger.Printf("已重新生成 %d 张卡片", len(next.Cards))
	})
	if err := emit(e.cfg, s.Generate(), false); err != nil {
		return err
	}

	paths := []string{e.cfg.Input}
	if e.cfg.Data != "" {
		paths = append(paths, e.cfg.Data)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watcher.Watch(ctx, paths, watcher.Options{Debounce: e.cfg.Debounce, Logger: e.logger}, func(path string) {
		next, err := loadModel(e.cfg, e.logger)
		if err != nil {
			e.logger.Printf("重新载入 %s 失败: %v", path, err)
			return
		}
		if err := s.Replace(next); err != nil {
			e.logger.Printf("重新载入 %s 失败: %v", path, err)
		}
	})
}

func runDebug(args []string) error {
	fs, common := newFlagSet("debug")
	out := fs.String("out", "debug/layout.json", "调试 JSON 输出路径")
	bp := fs.String("breakpoint", config.AllBreakpoints, "sm、md、lg 或 all")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := setup(common, false)
	if err != nil {
		return err
	}
	defer e.close()
	e.cfg.Preview.Breakpoint = *bp
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	model, err := loadModel(e.cfg, e.logger)
	if err != nil {
		return err
	}
	r := canvasrenderer.NewRenderer(e.cfg.Preview.Format)
	var results []*layout.Result
	for _, b := range e.cfg.Preview.Breakpoints() {
		result, err := layout.Place(model, layout.Options{
			Breakpoint: b,
			Width:      e.cfg.Preview.Width.ToPX(),
			RowHeight:  e.cfg.Preview.RowHeight.ToPX(),
			Typesetter: r,
			Debug:      layout.DebugOptions{Occupancy: true},
		})
		if err != nil {
			return fmt.Errorf("%s 布局计算失败: %w", b, err)
		}
		results = append(results, result)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(*out, model, results...); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	fmt.Printf("已输出调试 JSON：%s\n", *out)
	return nil
}
