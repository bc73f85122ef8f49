package services

import (
	"net/http"
	"testing"

	"gposync/internal/gpodder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceService_UpdateAndList(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := t.Context()
	user := createUser(t, svc, "alice", "pw")

	devices, err := svc.Devices.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, devices)

	require.NoError(t, svc.Devices.Update(ctx, user.ID, "phone", map[string]any{
		"caption":       "My Phone",
		"type":          "mobile",
		"subscriptions": float64(12),
	}))
	require.NoError(t, svc.Devices.Update(ctx, user.ID, "laptop.home", map[string]any{}))
	require.NoError(t, svc.Devices.Update(ctx, user.ID, "phone", map[string]any{
		"caption": nil,
		"extra":   map[string]any{"a": "b"},
	}))

	devices, err = svc.Devices.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, devices, 2)

	phone := devices[0]
	assert.Equal(t, "phone", phone["id"])
	assert.Equal(t, "", phone["caption"], "null removed the caption")
	assert.Equal(t, "mobile", phone["type"])
	assert.EqualValues(t, 0, phone["subscriptions"])
	assert.Equal(t, map[string]any{"a": "b"}, phone["extra"])

	laptop := devices[1]
	assert.Equal(t, "laptop.home", laptop["id"])
	assert.Equal(t, "other", laptop["type"])
}

func TestDeviceService_InvalidID(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := t.Context()
	user := createUser(t, svc, "alice", "pw")

	for _, id := range []string{"", "a b", "dev/1", "dev:1", "ü"} {
		err := svc.Devices.Update(ctx, user.ID, id, nil)
		var gerr *gpodder.Error
		require.ErrorAs(t, err, &gerr, id)
		assert.Equal(t, http.StatusBadRequest, gerr.Code)
	}
}
