package imagefield

import (
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldConfig_MergesArgs(t *testing.T) {
	extra := graphql.FieldConfigArgument{
		"fit":   {Type: graphql.String, DefaultValue: "fill"},
		"sizes": {Type: graphql.String, DefaultValue: "100vw"},
	}
	resolve := func(p graphql.ResolveParams) (any, error) { return "ok", nil }

	field := FieldConfig(resolve, extra)
	require.NotNil(t, field)

	assert.Equal(t, ImageDataType, field.Type)
	for _, name := range []string{"width", "height", "aspectRatio", "formats", "outputPixelDensities", "breakpoints", "backgroundColor", "fit", "sizes"} {
		assert.Contains(t, field.Args, name)
	}
	assert.Equal(t, "100vw", field.Args["sizes"].DefaultValue, "caller args override standard ones")

	got, err := field.Resolve(graphql.ResolveParams{})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestStandardArgs_FreshCopy(t *testing.T) {
	a := StandardArgs()
	delete(a, "width")

	b := StandardArgs()
	assert.Contains(t, b, "width")
}

func TestSerializeJSON(t *testing.T) {
	type payload struct {
		Width int    `json:"width"`
		Src   string `json:"src,omitempty"`
	}

	got := serializeJSON(&payload{Width: 10})
	assert.Equal(t, map[string]any{"width": float64(10)}, got)

	assert.Equal(t, "x", serializeJSON("x"))
	assert.Nil(t, serializeJSON(nil))
}

func TestParseLiteral(t *testing.T) {
	value := &ast.ObjectValue{
		Fields: []*ast.ObjectField{
			{Name: &ast.Name{Value: "w"}, Value: &ast.IntValue{Value: "10"}},
			{Name: &ast.Name{Value: "r"}, Value: &ast.FloatValue{Value: "1.5"}},
			{Name: &ast.Name{Value: "ok"}, Value: &ast.BooleanValue{Value: true}},
			{Name: &ast.Name{Value: "tags"}, Value: &ast.ListValue{Values: []ast.Value{&ast.StringValue{Value: "a"}}}},
		},
	}

	got := parseLiteral(value)
	assert.Equal(t, map[string]any{
		"w":    int64(10),
		"r":    1.5,
		"ok":   true,
		"tags": []any{"a"},
	}, got)
}
