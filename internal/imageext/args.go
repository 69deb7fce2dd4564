package imageext

import (
	"github.com/hmans/sanityimage/internal/imagedata"
)

// ParseArgs converts resolved GraphQL arguments into imagedata.Args.
// Unknown or mistyped entries are ignored.
func ParseArgs(raw map[string]any) imagedata.Args {
	var args imagedata.Args

	if v, ok := raw["layout"].(string); ok {
		args.Layout = imagedata.Layout(v)
	}
	if v, ok := raw["placeholder"].(string); ok {
		args.Placeholder = imagedata.Placeholder(v)
	}
	if v, ok := raw["fit"].(string); ok {
		args.Fit = imagedata.Fit(v)
	}
	if v, ok := raw["sizes"].(string); ok {
		args.Sizes = v
	}
	if v, ok := raw["backgroundColor"].(string); ok {
		args.BackgroundColor = v
	}

	args.Width, _ = toInt(raw["width"])
	args.Height, _ = toInt(raw["height"])
	args.AspectRatio, _ = toFloat(raw["aspectRatio"])

	for _, item := range toList(raw["formats"]) {
		if s, ok := item.(string); ok {
			args.Formats = append(args.Formats, s)
		}
	}
	for _, item := range toList(raw["outputPixelDensities"]) {
		if f, ok := toFloat(item); ok {
			args.OutputPixelDensities = append(args.OutputPixelDensities, f)
		}
	}
	for _, item := range toList(raw["breakpoints"]) {
		if n, ok := toInt(item); ok {
			args.Breakpoints = append(args.Breakpoints, n)
		}
	}

	return args
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func toList(v any) []any {
	switch l := v.(type) {
	case []any:
		return l
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out
	}
	return nil
}
