package imageext

import (
	"github.com/graphql-go/graphql"

	"github.com/hmans/sanityimage/internal/imagedata"
)

// EnumValue pairs a schema-visible name with its underlying value.
type EnumValue struct {
	Name  string
	Value string
}

// EnumDef is a named, ordered table of enum values.
type EnumDef struct {
	Name   string
	Values []EnumValue
}

// NameOf returns the schema name for an underlying value.
func (d EnumDef) NameOf(value string) (string, bool) {
	for _, v := range d.Values {
		if v.Value == value {
			return v.Name, true
		}
	}
	return "", false
}

var FitEnum = EnumDef{
	Name: "SanityImageFit",
	Values: []EnumValue{
		{"CLIP", string(imagedata.FitClip)},
		{"CROP", string(imagedata.FitCrop)},
		{"FILL", string(imagedata.FitFill)},
		{"FILLMAX", string(imagedata.FitFillMax)},
		{"MAX", string(imagedata.FitMax)},
		{"SCALE", string(imagedata.FitScale)},
		{"MIN", string(imagedata.FitMin)},
	},
}

var PlaceholderEnum = EnumDef{
	Name: "SanityGatsbyImagePlaceholder",
	Values: []EnumValue{
		{"DOMINANT_COLOR", string(imagedata.PlaceholderDominantColor)},
		{"BLURRED", string(imagedata.PlaceholderBlurred)},
		{"NONE", string(imagedata.PlaceholderNone)},
	},
}

var LayoutEnum = EnumDef{
	Name: "SanityGatsbyImageLayout",
	Values: []EnumValue{
		{"FIXED", string(imagedata.LayoutFixed)},
		{"FULL_WIDTH", string(imagedata.LayoutFullWidth)},
		{"CONSTRAINED", string(imagedata.LayoutConstrained)},
	},
}

// Enums lists every enum the extension registers.
var Enums = []EnumDef{FitEnum, PlaceholderEnum, LayoutEnum}

// GraphQL enum types. They are shared by every field map the cache builds.
var (
	FitType         = newEnumType(FitEnum)
	PlaceholderType = newEnumType(PlaceholderEnum)
	LayoutType      = newEnumType(LayoutEnum)
)

func newEnumType(def EnumDef) *graphql.Enum {
	values := make(graphql.EnumValueConfigMap, len(def.Values))
	for _, v := range def.Values {
		values[v.Name] = &graphql.EnumValueConfig{Value: v.Value}
	}
	return graphql.NewEnum(graphql.EnumConfig{
		Name:   def.Name,
		Values: values,
	})
}

const placeholderDescription = `Format of generated placeholder image, displayed while the main image loads.
BLURRED: a blurred, low resolution image, encoded as a base64 data URI.
DOMINANT_COLOR: a solid color, calculated from the dominant color of the image (default).
NONE: no placeholder.`

const layoutDescription = `The layout for the image.
CONSTRAINED: Resizes to fit its container, up to a maximum width, at which point it will remain fixed in size.
FIXED: A static image size, that does not resize according to the screen width
FULL_WIDTH: The image resizes to fit its container, even if that is larger than the source image.
Pass a value to "sizes" if the container is not the full width of the screen.`

// Arguments returns the enum-typed arguments added to the image field.
func Arguments() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"placeholder": {
			Type:         PlaceholderType,
			DefaultValue: string(imagedata.PlaceholderDominantColor),
			Description:  placeholderDescription,
		},
		"fit": {
			Type:         FitType,
			DefaultValue: string(imagedata.FitFill),
		},
		"layout": {
			Type:         LayoutType,
			DefaultValue: string(imagedata.LayoutConstrained),
			Description:  layoutDescription,
		},
	}
}
