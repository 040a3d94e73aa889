package grid

import "log"

// BuildOptions 配置从布局文件构建网格配置的过程。
type BuildOptions struct {
	// Data 用于替换文本中的 ${path} 占位符，可为 nil。
	Data any
	// Logger 接收非致命的告警（例如 order 被重新编号），为 nil 时使用 log.Default()。
	Logger *log.Logger
}

func (o BuildOptions) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}
