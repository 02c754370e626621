// Package sysfs keeps configured sysfs paths working across reboots.
//
// The kernel numbers hwmon and thermal devices in probe order, so a path like
// /sys/devices/platform/coretemp.0/hwmon/hwmon2/temp1_input may be .../hwmon/hwmon3/...
// after the next boot. Everything around the numeric suffix is stable, which is what
// Resolve relies on.
package sysfs

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// MonitorDirs are the sysfs directory names whose numeric suffix is assigned at boot.
var MonitorDirs = []string{"hwmon", "thermal_zone", "cooling_device"}

const numericGlob = "[0-9]*"

var (
	ErrUnresolvable = errors.New("path does not contain a renumbered monitor directory")
	ErrNoMatch      = errors.New("no matching device found")
)

// the greedy prefix makes the last monitor directory in the path win
var monitorPathRegex = regexp.MustCompile(
	`^(.*/)(` + strings.Join(MonitorDirs, "|") + `)[0-9]+/(.+)$`,
)

// Pattern holds the stable segments of a path containing a renumbered monitor directory.
type Pattern struct {
	// Prefix is everything up to and including the slash before the monitor directory
	Prefix string
	// Monitor is the monitor directory name without its numeric suffix, e.g. "hwmon"
	Monitor string
	// Tail is everything after the monitor directory, without the leading slash
	Tail string
}

// ParsePattern captures the stable segments of the given path.
func ParsePattern(path string) (Pattern, bool) {
	match := monitorPathRegex.FindStringSubmatch(path)
	if match == nil {
		return Pattern{}, false
	}
	return Pattern{
		Prefix:  match[1],
		Monitor: match[2],
		Tail:    match[3],
	}, true
}

// Glob returns the wildcard path matching any numeric suffix of the monitor directory.
func (p Pattern) Glob() string {
	return p.Prefix + p.Monitor + numericGlob + "/" + p.Tail
}

// Resolve returns path unchanged if it exists. Otherwise the numeric suffix of the
// monitor directory is replaced by a wildcard and the first match in sorted order is returned.
func Resolve(fs afero.Fs, path string) (string, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	if exists {
		return path, nil
	}

	pattern, ok := ParsePattern(path)
	if !ok {
		return "", fmt.Errorf("%s: %w", path, ErrUnresolvable)
	}

	glob := pattern.Glob()
	matches, err := afero.Glob(fs, glob)
	if err != nil {
		return "", fmt.Errorf("%s: invalid pattern %s: %w", path, glob, err)
	}
	if len(matches) <= 0 {
		return "", fmt.Errorf("%s: %w for %s", path, ErrNoMatch, glob)
	}
	sort.Strings(matches)

	candidate := matches[0]
	if _, err := fs.Stat(candidate); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s: %w for %s", path, ErrNoMatch, glob)
		}
		return "", fmt.Errorf("%s: %w", candidate, err)
	}
	return candidate, nil
}
