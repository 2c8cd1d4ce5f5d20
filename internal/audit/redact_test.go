package audit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-admin/internal/models"
)

func TestRedactNestedKeys(t *testing.T) {
	in := map[string]any{
		"username": "jdoe",
		"password": "secret",
		"profile": map[string]any{
			"hashed_password": "$2a$10$abc",
			"devices": []any{
				map[string]any{"password": "pin", "name": "tablet"},
				"plain",
			},
		},
	}

	got := Redact(in)

	want := map[string]any{
		"username": "jdoe",
		"password": RedactionMarker,
		"profile": map[string]any{
			"hashed_password": RedactionMarker,
			"devices": []any{
				map[string]any{"password": RedactionMarker, "name": "tablet"},
				"plain",
			},
		},
	}
	assert.Equal(t, want, got)
}

func TestRedactLeavesInputUntouched(t *testing.T) {
	inner := map[string]any{"password": "x"}
	in := map[string]any{"nested": inner, "list": []any{inner}}

	_ = Redact(in)

	assert.Equal(t, "x", inner["password"])
	assert.Equal(t, "x", in["list"].([]any)[0].(map[string]any)["password"])
}

func TestRedactScalarsPassThrough(t *testing.T) {
	for _, v := range []any{nil, "password", 42.5, true, json.Number("7")} {
		assert.Equal(t, v, Redact(v))
	}
}

func TestRedactNullSensitiveValue(t *testing.T) {
	got := Redact(map[string]any{"password": nil})
	assert.Equal(t, map[string]any{"password": RedactionMarker}, got)
}

func TestRedactPreservesArrayShape(t *testing.T) {
	in := []any{1.0, nil, []any{"a"}, map[string]any{}}
	got := Redact(in).([]any)
	require.Len(t, got, 4)
	assert.Equal(t, in, got)
}

// Matching is exact: keys outside the denylist are logged verbatim.
func TestRedactDenylistIsExact(t *testing.T) {
	got := Redact(map[string]any{"Password": "a", "password_hint": "b", "token": "c"})
	assert.Equal(t, map[string]any{"Password": "a", "password_hint": "b", "token": "c"}, got)
}

func TestNormalizeStructUsesJSONTags(t *testing.T) {
	staff := models.Staff{
		ID:             3,
		FirstName:      "Jane",
		LastName:       "Doe",
		Username:       "jane",
		HashedPassword: "$2a$10$hash",
	}

	norm, err := Normalize(staff)
	require.NoError(t, err)

	m := Redact(norm).(map[string]any)
	assert.Equal(t, RedactionMarker, m["hashed_password"])
	assert.Equal(t, "Jane", m["first_name"])
	assert.Equal(t, json.Number("3"), m["staff_id"])
}

func TestNormalizeTypedNilPointer(t *testing.T) {
	var c *models.Client

	norm, err := Normalize(c)
	require.NoError(t, err)
	assert.Nil(t, norm)
}

func TestNormalizeRejectsUnencodable(t *testing.T) {
	_, err := Normalize(map[string]any{"ch": make(chan int)})
	assert.Error(t, err)
}
