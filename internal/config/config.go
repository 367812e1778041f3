package config // package config loads application configuration from environment variables

import (
	"log"     // log reports configuration errors and halts execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Database settings point at the MySQL instance
// backing the six record collections; the remaining fields tune domain
// behaviour (tax, demo fallbacks) and the simulated external integrations.
type Config struct {
	Env           string  // application environment (e.g. "dev", "prod")
	Port          string  // HTTP port to listen on
	DBUser        string  // database username
	DBPass        string  // database password (optional)
	DBHost        string  // database host address
	DBPort        string  // database port number
	DBName        string  // database name
	TaxRate       float64 // fraction of the order amount charged as tax
	SampleData    bool    // serve fixed sample payloads when a collection is empty
	GatewayRate   float64 // success probability of the simulated payment gateway
	NotifyRate    float64 // success probability of the simulated email delivery
	SeedOnStartup bool    // populate empty collections with demo data at boot
	QueueURL      string  // AMQP broker URL for notification events (empty uses the default)
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message. Behavioural knobs
// default to the values the studio demo expects.
func Load() Config {
	return Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		DBUser:        must("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"), // empty allowed
		DBHost:        must("DB_HOST"),
		DBPort:        must("DB_PORT"),
		DBName:        must("DB_NAME"),
		TaxRate:       envFloat("ORDER_TAX_RATE", 0.10),
		SampleData:    envBool("SAMPLE_DATA_FALLBACK", true),
		GatewayRate:   envFloat("GATEWAY_SUCCESS_RATE", 0.95),
		NotifyRate:    envFloat("NOTIFY_SUCCESS_RATE", 0.95),
		SeedOnStartup: envBool("SEED_ON_STARTUP", false),
		QueueURL:      os.Getenv("RABBITMQ_URL"),
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

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("invalid float for %s: %q", key, v)
	}
	return f
}
