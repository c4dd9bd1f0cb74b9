package prom

import "strings"

// sanitizeMetricName rewrites name into Prometheus's metric-name charset
// [a-zA-Z0-9_:]: invalid runes become '_' and a leading digit gains a '_'
// prefix. The empty name stays empty.
func sanitizeMetricName(name string) string {
	return sanitize(name, true)
}

// sanitizeLabelName rewrites name into Prometheus's label-name charset
// [a-zA-Z0-9_], which does not admit ':'.
func sanitizeLabelName(name string) string {
	return sanitize(name, false)
}

func sanitize(name string, allowColon bool) string {
	if name == "" {
		return name
	}

	var sb strings.Builder

	sb.Grow(len(name) + 1)

	for i, r := range name {
		if i == 0 && r >= '0' && r <= '9' {
			sb.WriteByte('_')
		}

		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '_',
			r == ':' && allowColon:
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}

	return sb.String()
}
