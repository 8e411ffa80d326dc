// Package config loads typed configuration from environment variables.
//
// Struct fields are tagged for github.com/caarlos0/env/v11; an optional .env
// file in the working directory is applied first through
// github.com/joho/godotenv. Structs implementing Validator are checked after
// parsing.
package config
