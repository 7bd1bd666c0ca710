//go:build !unix

package headers

import "os"

// lockFile is a no-op where flock is unavailable; the lock file still marks the dir as in use.
func lockFile(*os.File) error {
	return nil
}

func unlockFile(*os.File) error {
	return nil
}
