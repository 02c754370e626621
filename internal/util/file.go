package util

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/natefinch/atomic"
	"github.com/spf13/afero"
)

// ReadIntFromFile reads a file containing a single integer, surrounding whitespace is ignored.
func ReadIntFromFile(fs afero.Fs, path string) (value int, err error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return -1, err
	}
	text := strings.TrimSpace(string(data))
	if len(text) <= 0 {
		return -1, fmt.Errorf("file is empty: %s", path)
	}
	return strconv.Atoi(text)
}

// WriteStringToFile writes value to an already existing file using a single write call.
// sysfs attributes are never created, so a missing file is an error.
func WriteStringToFile(fs afero.Fs, path string, value string) (err error) {
	file, err := fs.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()

	n, err := file.Write([]byte(value))
	if err == nil && n < len(value) {
		err = io.ErrShortWrite
	}
	return err
}

// ExpandPath resolves a leading "~" to the home directory of the current user.
func ExpandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

// WritePidFile atomically replaces the file at path with the pid of this process.
func WritePidFile(path string) error {
	return atomic.WriteFile(ExpandPath(path), strings.NewReader(strconv.Itoa(os.Getpid())))
}

func RemovePidFile(path string) error {
	err := os.Remove(ExpandPath(path))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
