package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	DBDriver          string        `envconfig:"DB_DRIVER" default:"postgres"`
	DBDSN             string        `envconfig:"DB_DSN"`
	DBHost            string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort            string        `envconfig:"DB_PORT" default:"5432"`
	DBUser            string        `envconfig:"DB_USER" default:"postgres"`
	DBPassword        string        `envconfig:"DB_PASSWORD"`
	DBName            string        `envconfig:"DB_NAME" default:"commissions"`
	DBSslMode         string        `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	DBMaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	DBConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`

	RedisURL      string `envconfig:"REDIS_URL"`
	RedisPoolSize int    `envconfig:"REDIS_POOL_SIZE" default:"10"`

	// PromoCodes seeds the static validator used when Redis is not configured,
	// as CODE:percent pairs separated by commas.
	PromoCodes string `envconfig:"PROMO_CODES"`

	AutoCompleteAfter time.Duration `envconfig:"AUTO_COMPLETE_AFTER" default:"336h"`

	AutoCompleteSweepEnabled   bool   `envconfig:"AUTO_COMPLETE_SWEEP_ENABLED" default:"false"`
	AutoCompleteSweepSchedule  string `envconfig:"AUTO_COMPLETE_SWEEP_SCHEDULE" default:"0 */10 * * * *"`
	AutoCompleteSweepBatchSize int    `envconfig:"AUTO_COMPLETE_SWEEP_BATCH_SIZE" default:"100"`

	TalentAssignmentEnabled  bool   `envconfig:"TALENT_ASSIGNMENT_ENABLED" default:"false"`
	TalentAssignmentSchedule string `envconfig:"TALENT_ASSIGNMENT_SCHEDULE" default:"*/30 * * * * *"`

	// CatalogVersion overrides the label stamped on certificates.
	CatalogVersion string `envconfig:"CATALOG_VERSION"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errList []error
	if c.DBDriver != DBDriverPostgres && c.DBDriver != DBDriverSQLite {
		errList = append(errList, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DBDriverPostgres, DBDriverSQLite, c.DBDriver))
	}
	if c.DBDriver == DBDriverSQLite && c.DBDSN == "" {
		errList = append(errList, errors.New("DB_DSN is required for the sqlite driver"))
	}
	if c.AutoCompleteAfter <= 0 {
		errList = append(errList, fmt.Errorf("AUTO_COMPLETE_AFTER must be positive, got %s", c.AutoCompleteAfter))
	}
	if c.AutoCompleteSweepBatchSize <= 0 {
		errList = append(errList, fmt.Errorf("AUTO_COMPLETE_SWEEP_BATCH_SIZE must be positive, got %d", c.AutoCompleteSweepBatchSize))
	}
	return errors.Join(errList...)
}

// PostgresDSN returns DB_DSN when set and otherwise builds one from the parts.
func (c Config) PostgresDSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
