// Package redis connects to Redis with github.com/redis/go-redis/v9.
//
// Connect retries the initial PING so the service can start alongside a
// Redis container that is still booting; Healthcheck wraps PING for readiness
// probes. The client is used by store.RedisPersister to keep the session
// snapshot across restarts.
package redis
