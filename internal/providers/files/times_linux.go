//go:build linux

package files

import (
	"io/fs"
	"syscall"
	"time"
)

// accessTime extracts the last access time from stat metadata.
func accessTime(info fs.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Atim.Sec, st.Atim.Nsec)
	}
	return info.ModTime()
}

// createTime extracts the inode change time, the closest Linux has to a
// creation timestamp.
func createTime(info fs.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	}
	return info.ModTime()
}
