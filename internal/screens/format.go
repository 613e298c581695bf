package screens

import (
	"fmt"
	"sort"
	"strconv"
)

// FormatDate keeps the date part of a server timestamp.
func FormatDate(s string) string {
	if len(s) >= 10 {
		return s[:10]
	}
	return s
}

// FormatPercentage renders a 0..1 ratio with one decimal, e.g. 0.8567 → "85.7%".
func FormatPercentage(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

// FormatMetric renders a similarity metric with three decimals.
func FormatMetric(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

func percent2(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

func wholePercent(v float64) string {
	return strconv.Itoa(int(v*100)) + "%"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func okError(b bool) string {
	if b {
		return "OK"
	}
	return "Error"
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// mapLines renders a loosely typed server map as "key: value" lines.
func mapLines[V any](m map[string]V) []string {
	lines := make([]string, 0, len(m))
	for _, k := range sortedKeys(m) {
		lines = append(lines, kv(k, m[k]))
	}
	return lines
}
