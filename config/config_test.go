package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	c := map[string]string{"PORT": "9090", "EMPTY": ""}

	assert.Equal(t, "9090", GetString(c, "PORT", "8080"))
	assert.Equal(t, "", GetString(c, "EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetString(c, "MISSING", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))
}

func TestGetInt(t *testing.T) {
	c := map[string]string{"TIMEOUT": "30", "BAD": "thirty"}

	assert.Equal(t, 30, GetInt(c, "TIMEOUT", 180))
	assert.Equal(t, 180, GetInt(c, "BAD", 180))
	assert.Equal(t, 180, GetInt(c, "MISSING", 180))
	assert.Equal(t, 180, GetInt(nil, "TIMEOUT", 180))
}

func TestGetBool(t *testing.T) {
	c := map[string]string{"ON": "true", "OFF": "0", "BAD": "maybe"}

	assert.True(t, GetBool(c, "ON", false))
	assert.False(t, GetBool(c, "OFF", true))
	assert.True(t, GetBool(c, "BAD", true))
	assert.False(t, GetBool(c, "MISSING", false))
	assert.True(t, GetBool(nil, "ON", true))
}

func TestSplit(t *testing.T) {
	key, value := split("DATABASE_URL=postgres://localhost/blog")
	assert.Equal(t, "DATABASE_URL", key)
	assert.Equal(t, "postgres://localhost/blog", value)

	key, value = split("FLAG=a=b")
	assert.Equal(t, "FLAG", key)
	assert.Equal(t, "a=b", value)

	key, value = split("NOVALUE")
	assert.Equal(t, "NOVALUE", key)
	assert.Equal(t, "", value)
}
