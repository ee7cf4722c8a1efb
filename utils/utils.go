package utils

import (
	"os"
	"regexp"
	"strings"
)

var unsafeFileChars = regexp.MustCompile(`[^\p{L}\p{N}._-]+`)

func FileExist(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}

// CreateDirIfNotExist creates dir along with any missing parents.
func CreateDirIfNotExist(dir string) error {
	if FileExist(dir) {
		return nil
	}

	return os.MkdirAll(dir, 0755)
}

// SafeFileName replaces runs of characters that are awkward in file and
// object names with "_", e.g. "GREEN CITY" becomes "GREEN_CITY".
func SafeFileName(name string) string {
	name = strings.Trim(unsafeFileChars.ReplaceAllString(name, "_"), "_")
	if name == "" {
		return "_"
	}
	return name
}
