// Package api embeds the OpenAPI document of the production service.
//
// types.go and server.go under internal/generated/servers are rendered from
// this document; spec.go there loads the embedded copy and is kept by hand.
package api

import _ "embed"

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.4.1 --config=types.cfg.yaml openapi.yaml
//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.4.1 --config=server.cfg.yaml openapi.yaml

//go:embed openapi.yaml
var OpenAPI []byte
