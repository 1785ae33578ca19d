// Package envutil reads typed configuration from the environment. Blank values
// count as unset; unparsable values fall back to the default with a warning.
package envutil

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

// String returns the trimmed value of name, or def when unset or blank.
func String(name, def string, log *logger.Logger) string {
	return read(name, def, log, func(v string) (string, error) { return v, nil })
}

func Int(name string, def int, log *logger.Logger) int {
	return read(name, def, log, strconv.Atoi)
}

func Bool(name string, def bool, log *logger.Logger) bool {
	return read(name, def, log, parseBool)
}

// Duration accepts Go duration strings ("15s") or a bare integer number of seconds.
func Duration(name string, def time.Duration, log *logger.Logger) time.Duration {
	return read(name, def, log, parseDuration)
}

func read[T any](name string, def T, log *logger.Logger, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(name)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		if log != nil {
			log.Debug("Environment variable not found, using default", "env_var", name, "default", def)
		}
		return def
	}
	v, err := parse(raw)
	if err != nil {
		if log != nil {
			log.Warn("Environment variable could not be parsed, using default",
				"env_var", name, "provided", raw, "default", def, "error", err)
		}
		return def
	}
	return v
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("not a bool: %q", v)
}

func parseDuration(v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if n, aerr := strconv.Atoi(v); aerr == nil {
		d, err = time.Duration(n)*time.Second, nil
	}
	if err == nil && d < 0 {
		return 0, fmt.Errorf("negative duration %s", d)
	}
	return d, err
}
