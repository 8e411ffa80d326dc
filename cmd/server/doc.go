// Command server serves the workspace billing module over HTTP.
//
// Configuration comes from the environment (see Config); a .env file in the
// working directory is loaded first. With REDIS_URL set, the session store is
// persisted to Redis and restored on start. SEED_FILE points to a YAML file
// used when nothing was restored.
package main
