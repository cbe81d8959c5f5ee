package memcache_fx

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"go.uber.org/fx"

	mem "vanplan/pkg/memcache"
)

var Module = fx.Provide(provideConversationStore)

func provideConversationStore(lc fx.Lifecycle) mem.ConversationStore {
	ttl := time.Duration(envMinutes("SESSION_TTL_MINUTES", 120)) * time.Minute
	store := mem.NewConversations(ttl, 10*time.Minute)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			store.Stop()
			return nil
		},
	})

	return store
}

func envMinutes(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		log.Printf("Ignoring invalid %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return minutes
}
