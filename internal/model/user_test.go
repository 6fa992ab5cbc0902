package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndCheckPassword(t *testing.T) {
	u := &User{}
	require.NoError(t, u.SetPassword("kape123"))

	assert.NotEqual(t, "kape123", u.Password, "password must be stored hashed")
	assert.True(t, u.CheckPassword("kape123"))
	assert.False(t, u.CheckPassword("wrong"))
	assert.False(t, u.CheckPassword(""))
}

func TestGetPrivilegeCodes(t *testing.T) {
	u := &User{Privileges: []Privilege{
		{Code: "menu:view"},
		{Code: "order:create"},
	}}

	assert.Equal(t, []string{"menu:view", "order:create"}, u.GetPrivilegeCodes())
	assert.True(t, u.HasPrivilege("order:create"))
	assert.False(t, u.HasPrivilege("user:delete"))
}
