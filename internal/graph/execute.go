package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Execute runs a GraphQL query against schema.
// On success, it returns just the data portion of the response as JSON.
func Execute(ctx context.Context, schema graphql.Schema, query string, variables map[string]any, operationName string) ([]byte, error) {
	result := graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: variables,
		OperationName:  operationName,
		Context:        ctx,
	})

	if len(result.Errors) > 0 {
		return nil, FormatErrors(ToGQLErrors(result.Errors))
	}

	return json.Marshal(result.Data)
}

// ToGQLErrors converts executor errors into a gqlerror.List.
func ToGQLErrors(errs []gqlerrors.FormattedError) gqlerror.List {
	list := make(gqlerror.List, 0, len(errs))
	for _, e := range errs {
		gqlErr := &gqlerror.Error{
			Message:    e.Message,
			Extensions: e.Extensions,
		}
		for _, loc := range e.Locations {
			gqlErr.Locations = append(gqlErr.Locations, gqlerror.Location{Line: loc.Line, Column: loc.Column})
		}
		for _, elem := range e.Path {
			switch v := elem.(type) {
			case string:
				gqlErr.Path = append(gqlErr.Path, ast.PathName(v))
			case int:
				gqlErr.Path = append(gqlErr.Path, ast.PathIndex(v))
			}
		}
		list = append(list, gqlErr)
	}
	return list
}

// FormatErrors formats GraphQL errors into a single error.
func FormatErrors(errs gqlerror.List) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return fmt.Errorf("graphql: %s", errs[0].Message)
	}
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return fmt.Errorf("graphql errors:\n  %s", strings.Join(msgs, "\n  "))
}
