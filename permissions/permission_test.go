package permissions_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwheels/permissions"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	assert.False(t, data.Skip)
	assert.NotEmpty(t, data.Endpoints)
}

func TestFindPermissions(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name   string
		path   string
		method string
		skip   bool
		roles  []string
	}{
		{name: "public catalog", path: "/v1/cars", method: http.MethodGet, skip: true},
		{name: "admin car create", path: "/v1/cars", method: http.MethodPost, roles: []string{"admin"}},
		{name: "booking", path: "/v1/bookings", method: http.MethodPost, roles: []string{"admin", "user"}},
		{name: "user delete", path: "/v1/users/{id}", method: http.MethodDelete, roles: []string{"admin"}},
		{name: "invoice clear", path: "/v1/invoices", method: http.MethodDelete, roles: []string{"admin", "user"}},
		{name: "unknown route", path: "/v1/unknown", method: http.MethodGet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.skip, permission.Skip)
			assert.Equal(t, tt.roles, permission.Permissions)
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("rejects duplicate routes", func(t *testing.T) {
		_, err := permissions.Parse([]byte(`{"endpoints":[
			{"path":"/v1/cars","method":"GET","skip":true},
			{"path":"/v1/cars","method":"get"}
		]}`))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		_, err := permissions.Parse([]byte(`{"endpoints":[
			{"path":"/v1/cars","method":"POST","permissions":["owner"]}
		]}`))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "owner")
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		_, err := permissions.Parse([]byte(`{`))

		require.Error(t, err)
	})
}

func TestPermissionAllows(t *testing.T) {
	assert.True(t, permissions.Permission{Skip: true}.Allows(""))
	assert.True(t, permissions.Permission{}.Allows("user"))
	assert.True(t, permissions.Permission{Permissions: []string{"admin"}}.Allows("admin"))
	assert.False(t, permissions.Permission{Permissions: []string{"admin"}}.Allows("user"))
}
