// Package docs carries the OpenAPI document served at /api/openapi.json
// and rendered by the swagger UI.
package docs

import _ "embed"

//go:embed openapi.json
var OpenAPISpec []byte
