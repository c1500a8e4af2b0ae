// Package docs embute o documento OpenAPI 2.0 servido em /swagger/doc.json.
package docs

import _ "embed"

// SwaggerJSON é o documento gerado a partir das anotações dos handlers.
//
//go:embed swagger.json
var SwaggerJSON []byte
