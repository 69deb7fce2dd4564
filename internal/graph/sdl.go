package graph

import (
	"bytes"
	"sort"
	"strconv"
	"strings"

	"github.com/graphql-go/graphql"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

var builtinScalars = map[string]bool{
	"String":  true,
	"Int":     true,
	"Float":   true,
	"Boolean": true,
	"ID":      true,
}

// SDL returns the schema in GraphQL schema definition language.
func SDL(schema graphql.Schema) string {
	var buf bytes.Buffer
	f := formatter.NewFormatter(&buf, formatter.WithIndent("  "))
	f.FormatSchema(ToAST(schema))
	return buf.String()
}

// ToAST converts an executable schema into a gqlparser schema definition.
// Introspection types and built-in scalars are left out.
func ToAST(schema graphql.Schema) *ast.Schema {
	out := &ast.Schema{
		Types:      make(map[string]*ast.Definition),
		Directives: make(map[string]*ast.DirectiveDefinition),
	}

	for name, t := range schema.TypeMap() {
		if strings.HasPrefix(name, "__") || builtinScalars[name] {
			continue
		}
		if def := toDefinition(t); def != nil {
			out.Types[name] = def
		}
	}

	if q := schema.QueryType(); q != nil {
		out.Query = out.Types[q.Name()]
	}
	if m := schema.MutationType(); m != nil {
		out.Mutation = out.Types[m.Name()]
	}

	return out
}

func toDefinition(t graphql.Type) *ast.Definition {
	switch tt := t.(type) {
	case *graphql.Object:
		def := &ast.Definition{Kind: ast.Object, Name: tt.Name(), Description: tt.Description()}
		fields := tt.Fields()
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			def.Fields = append(def.Fields, toFieldDefinition(fields[name]))
		}
		return def

	case *graphql.Enum:
		def := &ast.Definition{Kind: ast.Enum, Name: tt.Name(), Description: tt.Description()}
		values := append([]*graphql.EnumValueDefinition(nil), tt.Values()...)
		sort.Slice(values, func(i, j int) bool { return values[i].Name < values[j].Name })
		for _, v := range values {
			def.EnumValues = append(def.EnumValues, &ast.EnumValueDefinition{Name: v.Name, Description: v.Description})
		}
		return def

	case *graphql.Scalar:
		return &ast.Definition{Kind: ast.Scalar, Name: tt.Name(), Description: tt.Description()}
	}

	return nil
}

func toFieldDefinition(f *graphql.FieldDefinition) *ast.FieldDefinition {
	field := &ast.FieldDefinition{
		Name:        f.Name,
		Description: f.Description,
		Type:        toType(f.Type),
	}

	args := append([]*graphql.Argument(nil), f.Args...)
	sort.Slice(args, func(i, j int) bool { return args[i].Name() < args[j].Name() })
	for _, arg := range args {
		field.Arguments = append(field.Arguments, &ast.ArgumentDefinition{
			Name:         arg.Name(),
			Description:  arg.Description(),
			Type:         toType(arg.Type),
			DefaultValue: toValue(arg.DefaultValue, arg.Type),
		})
	}

	return field
}

func toType(t graphql.Type) *ast.Type {
	switch tt := t.(type) {
	case *graphql.NonNull:
		inner := toType(tt.OfType)
		inner.NonNull = true
		return inner
	case *graphql.List:
		return ast.ListType(toType(tt.OfType), nil)
	default:
		return ast.NamedType(t.Name(), nil)
	}
}

// toValue renders an argument default. Enum defaults are printed by name.
func toValue(v any, t graphql.Type) *ast.Value {
	if v == nil {
		return nil
	}
	if nn, ok := t.(*graphql.NonNull); ok {
		t = nn.OfType
	}

	if enum, ok := t.(*graphql.Enum); ok {
		for _, ev := range enum.Values() {
			if ev.Value == v {
				return &ast.Value{Kind: ast.EnumValue, Raw: ev.Name}
			}
		}
		return nil
	}

	switch x := v.(type) {
	case string:
		return &ast.Value{Kind: ast.StringValue, Raw: x}
	case bool:
		return &ast.Value{Kind: ast.BooleanValue, Raw: strconv.FormatBool(x)}
	case int:
		return &ast.Value{Kind: ast.IntValue, Raw: strconv.Itoa(x)}
	case float64:
		return &ast.Value{Kind: ast.FloatValue, Raw: strconv.FormatFloat(x, 'f', -1, 64)}
	}
	return nil
}
