package resources

import "github.com/testersconnect/site/pkg/openapi"

type spec struct {
	Explore *openapi.Operation
	Find    *openapi.Operation
	List    *openapi.Operation
	Create  *openapi.Operation
}

var Spec = spec{
	Explore: &openapi.Operation{
		Summary:     "Explore resources",
		Description: "Published resources, newest first, narrowed by a case-insensitive search over title, description and tags. Category, stage and type filters apply unless filters=false. Facets describe the unfiltered set.",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("q", "string", "Search text", false),
			openapi.QueryParam("category", "string", "Category, or All", false),
			openapi.QueryParam("stage", "string", "Stage, or All", false),
			openapi.QueryParam("type", "string", "Type, or All", false),
			openapi.QueryParam("filters", "boolean", "Apply category, stage and type (default true)", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Filtered resources", "ResourceListing"),
			500: openapi.ResponseRef("ServerError"),
		},
	},
	Find: &openapi.Operation{
		Summary: "Find published resource",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("slug", "Resource slug"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Resource", "ResourceItem"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	List: &openapi.Operation{
		Summary:     "List all resources",
		Description: "Every resource including unpublished ones, newest first",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("All resources", "ResourceList"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create resource",
		Description: "Form submission. Files are checked before any upload; the PDF and cover are stored before the row is inserted and removed again if a later step fails. Success redirects to the admin listing with created=1.",
		RequestBody: openapi.RequestBodyMultipart(&openapi.Schema{
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"title":        {Type: "string"},
				"type":         {Type: "string", Enum: []any{"Guide", "Template", "Article", "Video"}},
				"description":  {Type: "string"},
				"category":     {Type: "string"},
				"stage":        {Type: "string"},
				"url":          {Type: "string"},
				"tags":         {Type: "string", Description: "Comma separated"},
				"is_published": {Type: "string", Description: `Published unless exactly "false"`},
				"pdf":          {Type: "string", Format: "binary", Description: "application/pdf"},
				"cover":        {Type: "string", Format: "binary", Description: "PNG, JPG or WEBP"},
			},
			Required: []string{"title", "type", "description"},
		}, true),
		Responses: map[int]*openapi.Response{
			303: {Description: "Created; Location is the admin listing with created=1"},
			400: openapi.ResponseRef("BadRequest"),
			500: openapi.ResponseRef("ServerError"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	str := &openapi.Schema{Type: "string"}
	facets := &openapi.Schema{Type: "array", Items: str}

	return map[string]*openapi.Schema{
		"Resource": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"title":        str,
				"slug":         str,
				"type":         str,
				"description":  str,
				"tags":         {Type: "array", Items: str},
				"url":          str,
				"category":     str,
				"stage":        str,
				"is_published": {Type: "boolean"},
				"cover_path":   str,
				"file_path":    str,
				"page_count":   {Type: "integer"},
				"created_at":   {Type: "string", Format: "date-time"},
				"cover_url":    str,
				"file_url":     str,
			},
		},
		"ResourceItem": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"ok":   {Type: "boolean"},
				"item": openapi.SchemaRef("Resource"),
			},
		},
		"ResourceList": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"ok":    {Type: "boolean"},
				"items": {Type: "array", Items: openapi.SchemaRef("Resource")},
			},
		},
		"ResourceListing": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"ok":    {Type: "boolean"},
				"items": {Type: "array", Items: openapi.SchemaRef("Resource")},
				"total": {Type: "integer"},
				"facets": {
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"categories": facets,
						"stages":     facets,
						"types":      facets,
					},
				},
			},
		},
	}
}
