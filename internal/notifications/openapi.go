package notifications

import "github.com/testersconnect/site/pkg/openapi"

type spec struct {
	Contact   *openapi.Operation
	Subscribe *openapi.Operation
}

var Spec = spec{
	Contact: &openapi.Operation{
		Summary:     "Send contact message",
		Description: "Emails the message to the site admin and the sender. Submissions with company_site set are accepted and dropped.",
		RequestBody: openapi.RequestBodyJSON("ContactInput", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Accepted", "Ack"),
			400: openapi.ResponseRef("BadRequest"),
			500: openapi.ResponseRef("ServerError"),
		},
	},
	Subscribe: &openapi.Operation{
		Summary:     "Subscribe to newsletter",
		Description: "Sends the welcome email to the address.",
		RequestBody: openapi.RequestBodyJSON("SubscribeInput", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Subscribed", "SubscribeResult"),
			400: openapi.ResponseJSON("Missing email", "SubscribeError"),
			500: openapi.ResponseJSON("Delivery failed", "SubscribeError"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"ContactInput": {
			Type:     "object",
			Required: []string{"email", "message"},
			Properties: map[string]*openapi.Schema{
				"name":         {Type: "string"},
				"full_name":    {Type: "string"},
				"email":        {Type: "string", Format: "email"},
				"message":      {Type: "string"},
				"company_site": {Type: "string"},
			},
		},
		"Ack": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"ok": {Type: "boolean"},
			},
		},
		"SubscribeInput": {
			Type:     "object",
			Required: []string{"email"},
			Properties: map[string]*openapi.Schema{
				"email": {Type: "string", Format: "email"},
			},
		},
		"SubscribeResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"success": {Type: "boolean"},
			},
		},
		"SubscribeError": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"error": {Type: "string"},
			},
		},
	}
}
