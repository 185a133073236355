package learning

import "github.com/testersconnect/site/pkg/openapi"

type spec struct {
	Courses  *openapi.Operation
	Webinars *openapi.Operation
}

var Spec = spec{
	Courses: &openapi.Operation{
		Summary: "List courses",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Published courses, newest first", "CourseList"),
			500: openapi.ResponseRef("ServerError"),
		},
	},
	Webinars: &openapi.Operation{
		Summary: "List webinars",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Published webinars, newest first", "WebinarList"),
			500: openapi.ResponseRef("ServerError"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	str := &openapi.Schema{Type: "string"}
	tags := &openapi.Schema{Type: "array", Items: str}
	level := &openapi.Schema{Type: "string", Enum: []any{"Beginner", "Intermediate", "Advanced"}}

	return map[string]*openapi.Schema{
		"Course": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"title":       str,
				"slug":        str,
				"level":       level,
				"duration":    str,
				"description": str,
				"tags":        tags,
			},
		},
		"Webinar": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":              {Type: "string", Format: "uuid"},
				"title":           str,
				"slug":            str,
				"level":           level,
				"duration":        str,
				"description":     str,
				"tags":            tags,
				"webinar_date":    {Type: "string", Format: "date-time"},
				"mode":            str,
				"join_url":        str,
				"replay_url":      str,
				"cover_image_url": str,
			},
		},
		"CourseList": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"ok":    {Type: "boolean"},
				"items": {Type: "array", Items: openapi.SchemaRef("Course")},
			},
		},
		"WebinarList": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"ok":    {Type: "boolean"},
				"items": {Type: "array", Items: openapi.SchemaRef("Webinar")},
			},
		},
	}
}
