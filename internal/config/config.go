package config // package config loads application configuration from environment variables

import (
	"log"     // log reports configuration errors and halts execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time expresses token lifetimes as durations
)

// Auth groups the token-issuing settings. The struct is built once at
// startup and injected into the token issuer; nothing reads these values
// from the environment after Load returns. Access and refresh secrets must
// differ so a leaked refresh secret cannot forge access tokens.
type Auth struct {
	Secret        string        // secret signing access tokens
	RefreshSecret string        // secret signing refresh tokens
	AccessTTL     time.Duration // lifetime of access tokens
	RefreshTTL    time.Duration // lifetime of refresh tokens
	BcryptCost    int           // bcrypt cost for password hashing
}

// S3 holds the settings for the icon/file storage backend. The endpoint is
// optional and allows pointing at a MinIO instance in development.
type S3 struct {
	Region    string // bucket region
	Bucket    string // bucket receiving uploads
	AccessKey string // static access key id
	SecretKey string // static secret key
	Endpoint  string // custom base endpoint (empty = AWS default)
}

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The types reflect how the values are used in
// the application: strings for identifiers and secrets, durations for
// token lifetimes.
type Config struct {
	Env    string // application environment (e.g. "dev", "prod")
	Port   string // HTTP port to listen on
	DBUser string // database username
	DBPass string // database password (optional)
	DBHost string // database host address
	DBPort string // database port number
	DBName string // database name
	Auth   Auth   // token issuing settings
	S3     S3     // file storage settings
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:    must("APP_ENV"),      // environment (dev/test/prod)
		Port:   must("APP_PORT"),     // port to bind the HTTP server
		DBUser: must("DB_USER"),      // database user
		DBPass: os.Getenv("DB_PASS"), // database password (empty allowed)
		DBHost: must("DB_HOST"),      // database host
		DBPort: must("DB_PORT"),      // database port
		DBName: must("DB_NAME"),      // database name
		Auth: Auth{
			Secret:        must("AUTH_JWT_SECRET"),     // access token secret
			RefreshSecret: must("AUTH_REFRESH_SECRET"), // refresh token secret
			// TTLs come in as plain integers (minutes/days) and are widened to
			// durations here so nothing downstream does unit math.
			AccessTTL:  time.Duration(mustInt("ACCESS_TOKEN_TTL_MIN")) * time.Minute,
			RefreshTTL: time.Duration(mustInt("REFRESH_TOKEN_TTL_DAYS")) * 24 * time.Hour,
			BcryptCost: mustInt("BCRYPT_COST"), // bcrypt cost factor
		},
		S3: S3{
			Region:    os.Getenv("S3_REGION"),     // empty disables the files endpoint
			Bucket:    os.Getenv("S3_BUCKET"),     // target bucket
			AccessKey: os.Getenv("S3_ACCESS_KEY"), // static credentials
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Endpoint:  os.Getenv("S3_ENDPOINT"), // optional MinIO/base endpoint
		},
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
