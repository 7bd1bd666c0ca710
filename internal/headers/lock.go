package headers

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/conn-castle/electron-rebuild/internal/messages"
)

// LockFileName is created inside the headers dir to serialize concurrent jobs.
const LockFileName = ".electron-rebuild.lock"

var (
	lockFileFn   = lockFile
	unlockFileFn = unlockFile
	lockSleep    = time.Sleep
	osMkdirAll   = os.MkdirAll
)

var (
	lockWaitTimeout = 10 * time.Minute
	lockPollEvery   = 250 * time.Millisecond
)

// DirLock is an advisory lock on a headers dir.
// Installing and rebuilding never take it implicitly; callers sharing a headers dir
// across concurrent jobs hold it around the whole install + rebuild sequence.
type DirLock struct {
	file *os.File
}

// Lock creates dir if needed and acquires its exclusive advisory lock.
func Lock(dir string) (*DirLock, error) {
	if err := osMkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf(messages.HeadersCreateDirFmt, dir, err)
	}
	path := filepath.Join(dir, LockFileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.HeadersOpenLockFmt, path, err)
	}
	if err := lockFileFn(file); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf(messages.HeadersLockFmt, dir, err)
	}
	return &DirLock{file: file}, nil
}

// Release unlocks and closes the lock file.
func (l *DirLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := unlockFileFn(l.file); err != nil {
		_ = l.file.Close()
		return err
	}
	return l.file.Close()
}
