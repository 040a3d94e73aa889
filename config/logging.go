package config

import (
	"fmt"
	"log"
	"os"
)

// RotateLogIfNeeded 在日志文件超过 maxBytes 时把它改名为 path.old。
func RotateLogIfNeeded(path string, maxBytes int64) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.Size() <= maxBytes {
		return
	}
	oldPath := path + ".old"
	_ = os.Remove(oldPath)
	if err := os.Rename(path, oldPath); err != nil {
		log.Printf("轮转日志 %s 失败: %v", path, err)
	}
}

// OpenLog 轮转后以追加方式打开日志文件。
func OpenLog(path string, maxBytes int64) (*os.File, error) {
	RotateLogIfNeeded(path, maxBytes)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("打开日志文件 %s 失败: %w", path, err)
	}
	return f, nil
}
