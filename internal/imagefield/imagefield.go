// Package imagefield assembles gatsbyImageData-style GraphQL fields: a JSON
// result scalar plus the standard sizing arguments every image field accepts.
package imagefield

import (
	"encoding/json"
	"strconv"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// ImageDataType is the JSON scalar returned by image fields.
var ImageDataType = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "GatsbyImageData",
	Description: "Responsive image data consumed by gatsby-plugin-image.",
	Serialize:   serializeJSON,
	ParseValue: func(value any) any {
		return value
	},
	ParseLiteral: parseLiteral,
})

// ImageFormatType enumerates output formats an image may be converted to.
var ImageFormatType = graphql.NewEnum(graphql.EnumConfig{
	Name: "GatsbyImageFormat",
	Values: graphql.EnumValueConfigMap{
		"NO_CHANGE": &graphql.EnumValueConfig{Value: ""},
		"AUTO":      &graphql.EnumValueConfig{Value: "auto"},
		"JPG":       &graphql.EnumValueConfig{Value: "jpg"},
		"PNG":       &graphql.EnumValueConfig{Value: "png"},
		"WEBP":      &graphql.EnumValueConfig{Value: "webp"},
		"AVIF":      &graphql.EnumValueConfig{Value: "avif"},
	},
})

// StandardArgs returns the sizing arguments shared by every image field.
func StandardArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"width": {
			Type:        graphql.Int,
			Description: "The display width of the generated image for layout = FIXED, and the maximum display width for layout = CONSTRAINED. Ignored for FULL_WIDTH.",
		},
		"height": {
			Type:        graphql.Int,
			Description: "The display height of the generated image. If omitted it is calculated from the width and aspect ratio.",
		},
		"aspectRatio": {
			Type:        graphql.Float,
			Description: "Forces the image to the given aspect ratio, cropping as needed.",
		},
		"formats": {
			Type:        graphql.NewList(ImageFormatType),
			Description: "The image formats to generate. AUTO lets the CDN pick the best format for the browser.",
		},
		"outputPixelDensities": {
			Type:        graphql.NewList(graphql.Float),
			Description: "Pixel densities to generate for FIXED and CONSTRAINED layouts.",
		},
		"breakpoints": {
			Type:        graphql.NewList(graphql.Int),
			Description: "Widths to generate for FULL_WIDTH layouts.",
		},
		"sizes": {
			Type:        graphql.String,
			Description: "The \"sizes\" attribute passed to the <img> tag.",
		},
		"backgroundColor": {
			Type:        graphql.String,
			Description: "Background color applied to the wrapper, overriding the placeholder color.",
		},
	}
}

// FieldConfig returns an image field that resolves with resolve and accepts the
// standard arguments merged with args. Entries in args replace standard
// arguments of the same name.
func FieldConfig(resolve graphql.FieldResolveFn, args graphql.FieldConfigArgument) *graphql.Field {
	merged := StandardArgs()
	for name, arg := range args {
		merged[name] = arg
	}

	return &graphql.Field{
		Type:        ImageDataType,
		Args:        merged,
		Resolve:     resolve,
		Description: "Responsive image data for use with gatsby-plugin-image.",
	}
}

// serializeJSON turns Go values into plain JSON-compatible maps and slices.
func serializeJSON(value any) any {
	switch value.(type) {
	case nil, string, bool, int, int64, float64, map[string]any, []any:
		return value
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func parseLiteral(valueAST ast.Value) any {
	switch v := valueAST.(type) {
	case *ast.StringValue:
		return v.Value
	case *ast.BooleanValue:
		return v.Value
	case *ast.IntValue:
		n, err := strconv.ParseInt(v.Value, 10, 64)
		if err != nil {
			return nil
		}
		return n
	case *ast.FloatValue:
		f, err := strconv.ParseFloat(v.Value, 64)
		if err != nil {
			return nil
		}
		return f
	case *ast.ListValue:
		out := make([]any, 0, len(v.Values))
		for _, item := range v.Values {
			out = append(out, parseLiteral(item))
		}
		return out
	case *ast.ObjectValue:
		out := make(map[string]any, len(v.Fields))
		for _, field := range v.Fields {
			out[field.Name.Value] = parseLiteral(field.Value)
		}
		return out
	}
	return nil
}
