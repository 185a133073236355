package events

import "github.com/testersconnect/site/pkg/openapi"

type spec struct {
	Page        *openapi.Operation
	Published   *openapi.Operation
	Sidebar     *openapi.Operation
	Find        *openapi.Operation
	List        *openapi.Operation
	Create      *openapi.Operation
	Update      *openapi.Operation
	Delete      *openapi.Operation
	UploadCover *openapi.Operation
}

var viewParam = &openapi.Parameter{
	Name:        "view",
	In:          "query",
	Description: "Partition relative to today; anything but past means upcoming",
	Schema:      &openapi.Schema{Type: "string", Enum: []any{"upcoming", "past"}, Default: "upcoming"},
}

var Spec = spec{
	Page: &openapi.Operation{
		Summary:     "Page events",
		Description: "One page of published events in the upcoming (date >= today, soonest first) or past (date < today, most recent first) partition. Out-of-range inputs are clamped; a page past the end returns no items.",
		Parameters: []*openapi.Parameter{
			viewParam,
			openapi.QueryParam("page", "integer", "Page number, at least 1", false),
			openapi.QueryParam("pageSize", "integer", "Items per page, 1 to 50, default 6", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Event page", "EventPage"),
			500: openapi.ResponseRef("ServerError"),
		},
	},
	Published: &openapi.Operation{
		Summary:     "List published events",
		Description: "Every published event, newest event date first",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Published events", "EventList"),
			500: openapi.ResponseRef("ServerError"),
		},
	},
	Sidebar: &openapi.Operation{
		Summary: "Compact partition list",
		Parameters: []*openapi.Parameter{
			viewParam,
			openapi.QueryParam("limit", "integer", "Maximum items, 1 to 50, default 6", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Event summaries", "EventSummaryList"),
			500: openapi.ResponseRef("ServerError"),
		},
	},
	Find: &openapi.Operation{
		Summary: "Find published event",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("slug", "Event slug"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Event", "EventItem"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	List: &openapi.Operation{
		Summary:     "List all events",
		Description: "Every event including unpublished ones, newest event date first",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("All events", "EventList"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create event",
		Description: "Requires title, slug and event_date. Mode defaults to Online, tags to none, is_published to true.",
		RequestBody: openapi.RequestBodyJSON("EventInput", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Created event", "EventItem"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update event",
		Description: "Sparse update by slug. Only keys present in the body are written.",
		RequestBody: openapi.RequestBodyJSON("EventInput", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated event", "EventItem"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Delete: &openapi.Operation{
		Summary: "Delete event",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("slug", "string", "Event slug", true),
		},
		Responses: map[int]*openapi.Response{
			200: {Description: "Deleted, or nothing matched"},
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	UploadCover: &openapi.Operation{
		Summary:     "Upload event cover",
		Description: "Stores the image under {slug}/{unix-millis}-{filename} and returns its public URL for a later create or update.",
		RequestBody: openapi.RequestBodyMultipart(&openapi.Schema{
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"slug": {Type: "string"},
				"file": {Type: "string", Format: "binary", Description: "PNG, JPG or WEBP image"},
			},
			Required: []string{"slug", "file"},
		}, true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Stored cover", "CoverUpload"),
			400: openapi.ResponseRef("BadRequest"),
			500: openapi.ResponseRef("ServerError"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Event": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":              {Type: "string", Format: "uuid"},
				"title":           {Type: "string"},
				"slug":            {Type: "string"},
				"event_date":      {Type: "string", Format: "date"},
				"mode":            {Type: "string", Enum: []any{"Online", "In-person"}},
				"city":            {Type: "string"},
				"description":     {Type: "string"},
				"tags":            {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"is_published":    {Type: "boolean"},
				"cover_image_url": {Type: "string"},
				"register_url":    {Type: "string"},
				"event_type":      {Type: "string"},
				"created_at":      {Type: "string", Format: "date-time"},
				"updated_at":      {Type: "string", Format: "date-time"},
			},
		},
		"EventSummary": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":              {Type: "string", Format: "uuid"},
				"title":           {Type: "string"},
				"slug":            {Type: "string"},
				"event_date":      {Type: "string", Format: "date"},
				"cover_image_url": {Type: "string"},
				"register_url":    {Type: "string"},
			},
		},
		"EventInput": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"title":           {Type: "string"},
				"slug":            {Type: "string"},
				"event_date":      {Type: "string", Format: "date"},
				"mode":            {Type: "string", Enum: []any{"Online", "In-person"}, Default: "Online"},
				"city":            {Type: "string"},
				"description":     {Type: "string"},
				"tags":            {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"is_published":    {Type: "boolean", Default: true},
				"cover_image_url": {Type: "string"},
				"register_url":    {Type: "string"},
				"event_type":      {Type: "string"},
			},
		},
		"EventItem": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"ok":   {Type: "boolean"},
				"item": openapi.SchemaRef("Event"),
			},
		},
		"EventList": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"ok":    {Type: "boolean"},
				"items": {Type: "array", Items: openapi.SchemaRef("Event")},
			},
		},
		"EventSummaryList": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"ok":    {Type: "boolean"},
				"view":  {Type: "string"},
				"items": {Type: "array", Items: openapi.SchemaRef("EventSummary")},
			},
		},
		"EventPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"ok":         {Type: "boolean"},
				"view":       {Type: "string"},
				"items":      {Type: "array", Items: openapi.SchemaRef("Event")},
				"totalPages": {Type: "integer", Description: "At least 1"},
				"totalCount": {Type: "integer"},
				"page":       {Type: "integer"},
				"pageSize":   {Type: "integer"},
			},
		},
		"CoverUpload": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"ok":   {Type: "boolean"},
				"path": {Type: "string"},
				"url":  {Type: "string"},
			},
		},
	}
}
