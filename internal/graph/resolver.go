package graph

import (
	"errors"

	"github.com/graphql-go/graphql"

	"github.com/hmans/sanityimage/internal/assetstore"
	"github.com/hmans/sanityimage/internal/config"
	"github.com/hmans/sanityimage/internal/imagedata"
	"github.com/hmans/sanityimage/internal/imageext"
)

// Resolver is the schema-assembly context. It carries the configuration,
// the image extension cache and the asset store explicitly.
type Resolver struct {
	Config     config.Config
	Extensions *imageext.Cache
	Assets     *assetstore.Store
}

// Location returns the content source images resolve against.
func (r *Resolver) Location() imagedata.Location {
	return imagedata.Location{ProjectID: r.Config.ProjectID, Dataset: r.Config.Dataset}
}

// Schema assembles the GraphQL schema.
func (r *Resolver) Schema() (graphql.Schema, error) {
	extension, err := r.Extensions.GetOrBuild(r.Config)
	if err != nil {
		return graphql.Schema{}, err
	}

	assetFields := r.assetFields()
	for name, field := range extension {
		assetFields[name] = field
	}
	assetType := graphql.NewObject(graphql.ObjectConfig{
		Name:        r.Config.TypePrefix + "SanityImageAsset",
		Description: "An image asset stored in the content lake.",
		Fields:      assetFields,
	})

	imageData := extension[imageext.FieldName]
	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"sanityImageAsset": &graphql.Field{
				Type:        assetType,
				Description: "Look up an image asset by ID or unique ID prefix.",
				Args: graphql.FieldConfigArgument{
					"id": {Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveAsset,
			},
			"allSanityImageAsset": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(assetType))),
				Description: "All known image assets, ordered by ID.",
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if r.Assets == nil {
						return []*imagedata.Asset{}, nil
					}
					return r.Assets.All(), nil
				},
			},
			"imageData": refField(imageData),
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
}

func (r *Resolver) resolveAsset(p graphql.ResolveParams) (any, error) {
	id, _ := p.Args["id"].(string)
	if r.Assets == nil {
		return nil, nil
	}

	a, err := r.Assets.Get(id)
	if errors.Is(err, assetstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *Resolver) assetFields() graphql.Fields {
	asset := func(p graphql.ResolveParams) *imagedata.Asset {
		a, _ := p.Source.(*imagedata.Asset)
		return a
	}
	dimensions := func(p graphql.ResolveParams) imagedata.Dimensions {
		if a := asset(p); a != nil && a.Metadata != nil {
			return a.Metadata.Dimensions
		}
		return imagedata.Dimensions{}
	}

	return graphql.Fields{
		"_id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return asset(p).ID, nil
			},
		},
		"url": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				a := asset(p)
				if a.URL != "" {
					return a.URL, nil
				}
				ref, err := imagedata.ParseAssetID(a.ID)
				if err != nil {
					return nil, err
				}
				return imagedata.SourceURL(ref, r.Location()), nil
			},
		},
		"extension": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return asset(p).Extension, nil
			},
		},
		"mimeType": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return asset(p).MimeType, nil
			},
		},
		"width": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return dimensions(p).Width, nil
			},
		},
		"height": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return dimensions(p).Height, nil
			},
		},
		"aspectRatio": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return dimensions(p).AspectRatio, nil
			},
		},
	}
}

// refField exposes an image field at the query root, resolving against a
// bare asset reference passed as the "ref" argument.
func refField(field *graphql.Field) *graphql.Field {
	args := make(graphql.FieldConfigArgument, len(field.Args)+1)
	for name, arg := range field.Args {
		args[name] = arg
	}
	args["ref"] = &graphql.ArgumentConfig{
		Type:        graphql.NewNonNull(graphql.String),
		Description: "An image asset ID, e.g. image-Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000-jpg.",
	}

	return &graphql.Field{
		Type:        field.Type,
		Description: "Responsive image data for an asset reference.",
		Args:        args,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			p.Source = p.Args["ref"]
			return field.Resolve(p)
		},
	}
}
