package servers

import (
	"fmt"
	"sync"

	"production/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

// GetSwagger returns the parsed OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		return nil, fmt.Errorf("error loading OpenAPI document: %w", err)
	}
	return swagger, nil
}

var (
	registerOnce sync.Once
	errRegister  error
)

// RegisterSwaggerDoc publishes the document to swag, where the Swagger UI
// handler reads it from. Only the first call registers.
func RegisterSwaggerDoc() error {
	registerOnce.Do(func() {
		errRegister = registerSwaggerDoc()
	})
	return errRegister
}

func registerSwaggerDoc() error {
	swagger, err := GetSwagger()
	if err != nil {
		return err
	}

	raw, err := swagger.MarshalJSON()
	if err != nil {
		return fmt.Errorf("error encoding OpenAPI document: %w", err)
	}

	swag.Register(swag.Name, &swag.Spec{
		Version:          swagger.Info.Version,
		Title:            swagger.Info.Title,
		Description:      swagger.Info.Description,
		InfoInstanceName: swag.Name,
		SwaggerTemplate:  string(raw),
		LeftDelim:        "{{",
		RightDelim:       "}}",
	})
	return nil
}
