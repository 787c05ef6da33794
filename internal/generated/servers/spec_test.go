package servers_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"production/internal/generated/servers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestGetSwagger_IsValid(t *testing.T) {
	swagger, err := servers.GetSwagger()
	require.NoError(t, err)

	require.NoError(t, swagger.Validate(t.Context()))
	assert.NotNil(t, swagger.Paths.Find("/api/production/orders/{id}/status"))
	assert.NotNil(t, swagger.Paths.Find("/api/production/queue"))
}

func TestRegisterSwaggerDoc(t *testing.T) {
	require.NoError(t, servers.RegisterSwaggerDoc())

	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))
	assert.Equal(t, "3.0.3", parsed["openapi"])
}

func TestServerInterface_MatchesDocument(t *testing.T) {
	swagger, err := servers.GetSwagger()
	require.NoError(t, err)

	var operations []string
	for _, item := range swagger.Paths.Map() {
		for _, op := range item.Operations() {
			operations = append(operations, op.OperationID)
		}
	}

	iface := reflect.TypeOf((*servers.ServerInterface)(nil)).Elem()
	require.Len(t, operations, iface.NumMethod(), "every operation has exactly one handler")
	for _, id := range operations {
		_, ok := iface.MethodByName(id)
		assert.True(t, ok, "ServerInterface is missing %s; regenerate with go generate ./api", id)
	}
}
