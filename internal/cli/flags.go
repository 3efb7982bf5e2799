package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// flagValue extracts the value of a long flag, accepting both --key=value
// and --key value forms. i is advanced when the value was a separate arg.
func flagValue(args []string, i *int, arg string) (string, error) {
	if idx := strings.IndexByte(arg, '='); idx >= 0 {
		return arg[idx+1:], nil
	}
	if *i+1 >= len(args) {
		return "", fmt.Errorf("missing value for %s", arg)
	}
	*i++
	return args[*i], nil
}

func durationFlag(args []string, i *int, arg string) (time.Duration, error) {
	v, err := flagValue(args, i, arg)
	if err != nil {
		return 0, err
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q", flagName(arg), v)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", flagName(arg))
	}
	return d, nil
}

func intFlag(args []string, i *int, arg string) (int, error) {
	v, err := flagValue(args, i, arg)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q", flagName(arg), v)
	}
	return n, nil
}

func flagName(arg string) string {
	if idx := strings.IndexByte(arg, '='); idx >= 0 {
		return arg[:idx]
	}
	return arg
}

// isFlag reports whether arg looks like a long flag with the given name.
func isFlag(arg, name string) bool {
	return arg == name || strings.HasPrefix(arg, name+"=")
}
