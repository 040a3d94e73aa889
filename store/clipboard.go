package store

import "github.com/atotto/clipboard"

// Clipboard 是宿主剪贴板的最小接口。
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard 使用系统剪贴板（pbcopy、xclip/xsel、wl-copy 或 Windows API）。
type SystemClipboard struct{}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Available reports whether a system clipboard utility was found.
func (SystemClipboard) Available() bool {
	return !clipboard.Unsupported
}
