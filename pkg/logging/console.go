// pkg/logging/console.go - level colors for the console mirror of the log.

package logging

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
)

func levelColor(level LogLevel) string {
	switch level {
	case LevelError:
		return colorRed
	case LevelWarn:
		return colorYellow
	case LevelDebug:
		return colorBlue
	default:
		return ""
	}
}

// colorize wraps line in the color of level. INFO stays uncolored.
func colorize(level LogLevel, line string) string {
	c := levelColor(level)
	if c == "" {
		return line
	}
	return c + line + colorReset
}
