package types

const (
	StoreDriverBadger   = "badger"
	StoreDriverPostgres = "postgres"
)

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Storage
	StoreDriver string `envconfig:"STORE_DRIVER" default:"badger"`
	DataDir     string `envconfig:"DATA_DIR" default:"./data"`
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// Reference data, empty means the embedded catalog
	TaxonomyFile string `envconfig:"TAXONOMY_FILE"`

	// Denominator of the monthly incident rate
	SessionsPerMonth int `envconfig:"SESSIONS_PER_MONTH" default:"1000"`

	// Report archive, disabled when the bucket is empty
	ReportBucket string `envconfig:"REPORT_BUCKET"`
	ReportPrefix string `envconfig:"REPORT_PREFIX" default:"reports"`

	// Flash cookie keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
