package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresenceService(t *testing.T) {
	ctx := context.Background()

	t.Run("touch makes a student visible", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		svc := NewPresenceService(rdb, 30)

		svc.Touch(ctx, 1, 2)
		svc.Touch(ctx, 3, 2)

		live, err := svc.Live(ctx)
		require.NoError(t, err)
		require.Len(t, live, 2)

		seen := map[uint]uint{}
		for _, s := range live {
			seen[s.StudentID] = s.ExamID
			assert.WithinDuration(t, time.Now(), s.LastSeen, time.Minute)
		}
		assert.Equal(t, uint(2), seen[1])
		assert.Equal(t, uint(2), seen[3])
	})

	t.Run("repeated touch keeps one entry per student", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		svc := NewPresenceService(rdb, 30)

		svc.Touch(ctx, 7, 1)
		svc.Touch(ctx, 7, 1)
		svc.Touch(ctx, 7, 1)

		live, err := svc.Live(ctx)
		require.NoError(t, err)
		assert.Len(t, live, 1)
	})

	t.Run("entries expire after the ttl", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		svc := NewPresenceService(rdb, 10)

		svc.Touch(ctx, 5, 1)
		mr.FastForward(11 * time.Second)

		live, err := svc.Live(ctx)
		require.NoError(t, err)
		assert.Empty(t, live)
	})

	t.Run("disabled redis is a no-op", func(t *testing.T) {
		svc := NewPresenceService(nil, 30)

		svc.Touch(ctx, 1, 1)
		live, err := svc.Live(ctx)
		require.NoError(t, err)
		assert.Empty(t, live)
	})
}
