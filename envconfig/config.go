// Package envconfig loads the settings taken from the environment.
package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/nihei9/fa/logutil"
)

var (
	// Set via FA_DEBUG in the environment. 1 enables debug logs, and 2 enables trace logs too.
	Debug int
	// Set via FA_EPSILON in the environment
	Epsilon rune
	// Set via FA_DEAD_STATE in the environment
	DeadState bool
)

const defaultEpsilon = 'ε'

type EnvVar struct {
	Name        string
	Value       any
	Description string
}

func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"FA_DEBUG":      {"FA_DEBUG", Debug, "Show debug logs (FA_DEBUG=1) or trace logs too (FA_DEBUG=2)"},
		"FA_EPSILON":    {"FA_EPSILON", string(Epsilon), "The character standing for the empty string in patterns (default \"ε\")"},
		"FA_DEAD_STATE": {"FA_DEAD_STATE", DeadState, "Add an explicit dead state when determinizing"},
	}
}

func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

// LogLevel returns the level FA_DEBUG selects.
func LogLevel() slog.Level {
	switch {
	case Debug >= 2:
		return logutil.LevelTrace
	case Debug == 1:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Clean quotes and spaces from the value
func clean(key string) string {
	return strings.Trim(os.Getenv(key), "\"' ")
}

func init() {
	LoadConfig()
}

func LoadConfig() {
	Debug = 0
	if debug := clean("FA_DEBUG"); debug != "" {
		if n, err := strconv.Atoi(debug); err == nil {
			Debug = n
		} else if b, err := strconv.ParseBool(debug); err == nil {
			if b {
				Debug = 1
			}
		} else {
			Debug = 1
		}
	}

	Epsilon = defaultEpsilon
	if eps := os.Getenv("FA_EPSILON"); eps != "" {
		r, size := utf8.DecodeRuneInString(eps)
		if r == utf8.RuneError || size != len(eps) {
			slog.Error("invalid setting, must be one character; ignoring", "FA_EPSILON", eps)
		} else {
			Epsilon = r
		}
	}

	DeadState = false
	if dead := clean("FA_DEAD_STATE"); dead != "" {
		d, err := strconv.ParseBool(dead)
		if err != nil {
			slog.Error("invalid setting, ignoring", "FA_DEAD_STATE", dead, "error", err)
		} else {
			DeadState = d
		}
	}
}
