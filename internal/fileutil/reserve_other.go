//go:build !linux

package fileutil

import "os"

func reserve(*os.File, int64) error {
	return errReserveUnsupported
}
