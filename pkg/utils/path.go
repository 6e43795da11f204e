package utils

import (
	"os"
	"path/filepath"
)

// GetAbsPath 将相对于项目根目录的路径转换为绝对路径。
// 从当前工作目录向上查找 go.mod 以定位项目根，
// 找不到时退回到以当前工作目录为基准。
func GetAbsPath(relPath string) string {
	if filepath.IsAbs(relPath) {
		return relPath
	}

	wd, err := os.Getwd()
	if err != nil {
		return relPath
	}

	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, relPath)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return filepath.Join(wd, relPath)
}
