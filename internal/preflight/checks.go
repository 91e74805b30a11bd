package preflight

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"
)

// CheckDirectory verifies that path is a directory vimdl can create and
// remove files in, and reports the space available to unprivileged writers.
func CheckDirectory(name, path string) Result {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return failed(name, path, "does not exist")
	case err != nil:
		return failed(name, path, fmt.Sprintf("stat: %v", err))
	case !info.IsDir():
		return failed(name, path, "is not a directory")
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return failed(name, path, fmt.Sprintf("insufficient permissions: %v", err))
	}

	free, err := availableBytes(path)
	if err != nil {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (writable, free space unknown)", path)}
	}
	return Result{
		Name:      name,
		Passed:    true,
		Detail:    fmt.Sprintf("%s (writable, %s free)", path, humanize.IBytes(free)),
		FreeBytes: free,
	}
}

func failed(name, path, reason string) Result {
	return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s)", path, reason)}
}

func availableBytes(path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, err
	}
	return uint64(st.Bavail) * uint64(st.Bsize), nil
}
