//go:build !linux && !darwin

package files

import (
	"io/fs"
	"time"
)

func accessTime(info fs.FileInfo) time.Time { return info.ModTime() }

func createTime(info fs.FileInfo) time.Time { return info.ModTime() }
