package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type App struct {
	Name string
	Env  string
}

type HTTP struct {
	Port               string
	ReadTimeoutSec     int
	WriteTimeoutSec    int
	IdleTimeoutSec     int
	ShutdownTimeoutSec int
}

type DB struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type JWT struct {
	Secret   string
	Issuer   string
	Audience string
	TTLHours int
}

type Session struct {
	CookieName string
	TTLMinutes int
	Secure     bool
}

type Kafka struct {
	Brokers         []string
	PollIntervalSec int
	BatchSize       int
	RetryBackoffSec int
}

type Seed struct {
	AdminPassword string
}

type Config struct {
	App     App
	HTTP    HTTP
	DB      DB
	Redis   Redis
	JWT     JWT
	Session Session
	Kafka   Kafka
	Seed    Seed
}

func (j JWT) TTL() time.Duration {
	return time.Duration(j.TTLHours) * time.Hour
}

func (s Session) TTL() time.Duration {
	return time.Duration(s.TTLMinutes) * time.Minute
}

// Load reads the optional yaml config file and applies APP_* env overrides.
// A missing file is fine; env plus defaults is enough for containers.
func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = "./configs/config.yaml"
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "staffhub")
	v.SetDefault("app.env", "development")
	v.SetDefault("http.port", "3000")
	v.SetDefault("http.readtimeoutsec", 5)
	v.SetDefault("http.writetimeoutsec", 10)
	v.SetDefault("http.idletimeoutsec", 60)
	v.SetDefault("http.shutdowntimeoutsec", 10)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.name", "staffhub")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.issuer", "staffhub")
	v.SetDefault("jwt.audience", "staffhub-api")
	v.SetDefault("jwt.ttlhours", 24)
	v.SetDefault("session.cookiename", "staffhub_session")
	v.SetDefault("session.ttlminutes", 30)
	v.SetDefault("session.secure", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.pollintervalsec", 3)
	v.SetDefault("kafka.batchsize", 50)
	v.SetDefault("kafka.retrybackoffsec", 30)
	v.SetDefault("seed.adminpassword", "Admin@123")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("read config %s: %v (continuing with env/defaults)", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	return &c
}
