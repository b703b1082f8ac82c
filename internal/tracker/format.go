package tracker

import "fmt"

// FormatMinutes formats a minute count compactly, e.g. "1h 30m", "2h", "45m".
func FormatMinutes(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}

	hours := minutes / 60
	rest := minutes % 60

	if hours > 0 {
		if rest > 0 {
			return fmt.Sprintf("%dh %dm", hours, rest)
		}
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dm", rest)
}

// FormatMinutesLong spells out hours and minutes, e.g. "1 hours 30 minutes".
func FormatMinutesLong(minutes int) string {
	if minutes <= 0 {
		return "0 minutes"
	}

	hours := minutes / 60
	rest := minutes % 60

	if hours > 0 {
		if rest > 0 {
			return fmt.Sprintf("%d hours %d minutes", hours, rest)
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return fmt.Sprintf("%d minutes", rest)
}
