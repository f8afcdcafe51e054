package game

import "fmt"

// FormatTime renders seconds as m:ss, e.g. 125 -> "2:05".
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// ComboLabel is the live combo display: "-" without a streak, "<n>x" otherwise.
func ComboLabel(combo int) string {
	if combo <= 0 {
		return "-"
	}
	return fmt.Sprintf("%dx", combo)
}

// BannerText is the transient combo announcement, or "" when hidden.
func BannerText(combo int) string {
	if combo <= 1 {
		return ""
	}
	return fmt.Sprintf("%dx COMBO!", combo)
}
