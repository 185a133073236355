package reviews

import "github.com/testersconnect/site/pkg/openapi"

type spec struct {
	List   *openapi.Operation
	Create *openapi.Operation
}

var (
	one     = 1.0
	five    = 5.0
	nameMax = MaxName
	textMax = MaxComment
)

var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List reviews",
		Description: "Published reviews of one resource, newest first. The id is shape-checked before any query.",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("resource_id", "string", "Resource UUID", true),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Reviews", "ReviewList"),
			400: openapi.ResponseRef("BadRequest"),
			500: openapi.ResponseRef("ServerError"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Submit review",
		RequestBody: openapi.RequestBodyJSON("ReviewInput", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Created review", "ReviewItem"),
			400: openapi.ResponseRef("BadRequest"),
			500: openapi.ResponseRef("ServerError"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Review": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"resource_id": {Type: "string", Format: "uuid"},
				"name":        {Type: "string"},
				"rating":      {Type: "integer", Minimum: &one, Maximum: &five},
				"comment":     {Type: "string"},
				"created_at":  {Type: "string", Format: "date-time"},
			},
		},
		"ReviewInput": {
			Type:     "object",
			Required: []string{"resource_id", "name", "rating", "comment"},
			Properties: map[string]*openapi.Schema{
				"resource_id": {Type: "string", Format: "uuid"},
				"name":        {Type: "string", MaxLength: &nameMax},
				"rating":      {Type: "integer", Minimum: &one, Maximum: &five},
				"comment":     {Type: "string", MaxLength: &textMax},
			},
		},
		"ReviewItem": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"ok":     {Type: "boolean"},
				"review": openapi.SchemaRef("Review"),
			},
		},
		"ReviewList": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"ok":      {Type: "boolean"},
				"reviews": {Type: "array", Items: openapi.SchemaRef("Review")},
			},
		},
	}
}
