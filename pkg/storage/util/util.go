package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rainbow-disk/pkg/storage/consts"
)

func MkdirAll(dirs ...string) error {
	for _, d := range dirs {
		err := os.MkdirAll(d, consts.DefaultDirPerm)
		if err != nil {
			return err
		}
	}

	return nil
}

// CheckName accepts a single path element usable as a file or directory
// name.
func CheckName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || name != filepath.Clean(name) {
		return fmt.Errorf("invalid name %q", name)
	}
	return nil
}

// Join joins dir and a user supplied name, refusing names that leave dir.
func Join(dir, name string) (string, error) {
	if err := CheckName(name); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
