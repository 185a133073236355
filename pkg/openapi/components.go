package openapi

// NewComponents returns the schemas and responses shared by every route group.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Failure": {
				Type:     "object",
				Required: []string{"ok"},
				Properties: map[string]*Schema{
					"ok":      {Type: "boolean", Example: false},
					"error":   {Type: "string"},
					"message": {Type: "string"},
				},
			},
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":     {Type: "integer", Description: "Page number, clamped to at least 1"},
					"pageSize": {Type: "integer", Description: "Items per page, clamped to the configured bounds"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest": {
				Description: "Invalid request",
				Content: map[string]*MediaType{
					"application/json": {Schema: SchemaRef("Failure")},
				},
			},
			"NotFound": {
				Description: "Resource not found",
				Content: map[string]*MediaType{
					"application/json": {Schema: SchemaRef("Failure")},
				},
			},
			"Conflict": {
				Description: "Resource conflict",
				Content: map[string]*MediaType{
					"application/json": {Schema: SchemaRef("Failure")},
				},
			},
			"ServerError": {
				Description: "Upstream failure",
				Content: map[string]*MediaType{
					"application/json": {Schema: SchemaRef("Failure")},
				},
			},
		},
	}
}

// AddSchemas merges schemas, replacing entries with the same name.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	for name, schema := range schemas {
		c.Schemas[name] = schema
	}
}
