package services

import (
	"net/http"
	"testing"
	"time"

	"gposync/internal/gpodder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpisodeService_IngestAndSince(t *testing.T) {
	svc, _, clock := setup(t)
	ctx := t.Context()
	user := createUser(t, svc, "alice", "pw")

	ts, err := svc.Episodes.Ingest(ctx, user.ID, []map[string]any{
		{"podcast": "http://a/f", "episode": "http://a/f/e1", "action": "PLAY", "position": float64(120), "started": float64(0)},
		{"podcast": "http://a/f", "episode": "http://a/f/e2", "action": "download", "timestamp": "2023-01-02T03:04:05"},
	})
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Unix(), ts)

	changes, err := svc.Episodes.Since(ctx, user.ID, 0, "")
	require.NoError(t, err)
	require.Len(t, changes.Actions, 2)

	first := changes.Actions[0]
	assert.Equal(t, "http://a/f", first["podcast"])
	assert.Equal(t, "http://a/f/e1", first["episode"])
	assert.Equal(t, "play", first["action"])
	assert.EqualValues(t, 120, first["position"])
	assert.Equal(t, clock.Now().UTC().Format(time.RFC3339), first["timestamp"])

	second := changes.Actions[1]
	assert.Equal(t, "download", second["action"])
	assert.Equal(t, "2023-01-02T03:04:05Z", second["timestamp"])

	// the client timestamp puts the second action before the batch time
	changes, err = svc.Episodes.Since(ctx, user.ID, clock.Now().Unix(), "")
	require.NoError(t, err)
	require.Len(t, changes.Actions, 1)
	assert.Equal(t, "http://a/f/e1", changes.Actions[0]["episode"])
}

func TestEpisodeService_AutoSubscribes(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := t.Context()
	user := createUser(t, svc, "alice", "pw")

	_, err := svc.Episodes.Ingest(ctx, user.ID, []map[string]any{
		{"podcast": "http://new/feed", "episode": "http://new/feed/1.mp3", "action": "new"},
		{"podcast": "http://new/feed", "episode": "http://new/feed/2.mp3", "action": "new"},
	})
	require.NoError(t, err)

	urls, err := svc.Subscriptions.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://new/feed"}, urls)
}

func TestEpisodeService_PodcastFilter(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := t.Context()
	user := createUser(t, svc, "alice", "pw")
	other := createUser(t, svc, "bob", "pw")

	_, err := svc.Episodes.Ingest(ctx, user.ID, []map[string]any{
		{"podcast": "http://a/f", "episode": "http://a/f/1", "action": "play"},
		{"podcast": "http://b/f", "episode": "http://b/f/1", "action": "play"},
	})
	require.NoError(t, err)
	_, err = svc.Episodes.Ingest(ctx, other.ID, []map[string]any{
		{"podcast": "http://a/f", "episode": "http://a/f/9", "action": "play"},
	})
	require.NoError(t, err)

	changes, err := svc.Episodes.Since(ctx, user.ID, 0, "http://b/f")
	require.NoError(t, err)
	require.Len(t, changes.Actions, 1)
	assert.Equal(t, "http://b/f/1", changes.Actions[0]["episode"])

	changes, err = svc.Episodes.Since(ctx, other.ID, 0, "")
	require.NoError(t, err)
	require.Len(t, changes.Actions, 1)
	assert.Equal(t, "http://a/f/9", changes.Actions[0]["episode"])
}

func TestEpisodeService_RejectsBatch(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := t.Context()
	user := createUser(t, svc, "alice", "pw")

	tests := []struct {
		name   string
		action map[string]any
	}{
		{"missing podcast", map[string]any{"episode": "http://a/f/1", "action": "play"}},
		{"missing episode", map[string]any{"podcast": "http://a/f", "action": "play"}},
		{"missing action", map[string]any{"podcast": "http://a/f", "episode": "http://a/f/1"}},
		{"non-string action", map[string]any{"podcast": "http://a/f", "episode": "http://a/f/1", "action": 3}},
		{"bad podcast url", map[string]any{"podcast": "feed", "episode": "http://a/f/1", "action": "play"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Episodes.Ingest(ctx, user.ID, []map[string]any{
				{"podcast": "http://ok/f", "episode": "http://ok/f/1", "action": "play"},
				tt.action,
			})
			var gerr *gpodder.Error
			require.ErrorAs(t, err, &gerr)
			assert.Equal(t, http.StatusBadRequest, gerr.Code)
		})
	}

	// the valid first action was rolled back each time
	changes, err := svc.Episodes.Since(ctx, user.ID, 0, "")
	require.NoError(t, err)
	assert.Empty(t, changes.Actions)
	urls, err := svc.Subscriptions.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestActionTime(t *testing.T) {
	const fallback = int64(42)
	tests := []struct {
		in   any
		want int64
	}{
		{"2023-01-02T03:04:05Z", 1672628645},
		{"2023-01-02T03:04:05.250Z", 1672628645},
		{"2023-01-02T05:04:05+02:00", 1672628645},
		{"2023-01-02T03:04:05", 1672628645},
		{"2023-01-02 03:04:05", 1672628645},
		{"yesterday", fallback},
		{"", fallback},
		{float64(1672628645), fallback},
		{nil, fallback},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, actionTime(tt.in, fallback), "%v", tt.in)
	}
}
