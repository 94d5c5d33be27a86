package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"LandWatch-App/internal/domain/model"
)

// Config 環境変数から読み込んだアプリケーション設定
type Config struct {
	Port string

	DatabaseURL        string
	SupabaseURL        string
	SupabaseAnonKey    string
	FirestoreProjectID string
	FirestoreCredFile  string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	WRS2GridFile   string
	LandsatDataDir string
	LandsatMTLFile string

	TLEBaseURL        string
	TLECacheTTL       time.Duration
	TrackedSatellites []int
	TrackerInterval   time.Duration
	PassWindow        time.Duration
	PassStep          time.Duration
	MinElevationDeg   float64

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	LogLevel  string
	LogFormat string
	LogFile   string
}

// Load .envファイル（存在すれば）と環境変数から設定を読み込む
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv getenv関数から設定を構築
func FromEnv(getenv func(string) string) (*Config, error) {
	p := parser{getenv: getenv}

	cfg := &Config{
		Port:               p.str("PORT", "8080"),
		DatabaseURL:        p.str("DATABASE_URL", ""),
		SupabaseURL:        p.str("SUPABASE_URL", ""),
		SupabaseAnonKey:    p.str("SUPABASE_ANON_KEY", ""),
		FirestoreProjectID: p.str("FIRESTORE_PROJECT_ID", ""),
		FirestoreCredFile:  p.str("GOOGLE_APPLICATION_CREDENTIALS", ""),
		JWTSecret:          p.str("JWT_SECRET", ""),
		AccessTokenTTL:     p.duration("ACCESS_TOKEN_TTL", 5*time.Minute),
		RefreshTokenTTL:    p.duration("REFRESH_TOKEN_TTL", 24*time.Hour),
		WRS2GridFile:       p.str("WRS2_GRID_FILE", "data/wrs2_descending.geojson"),
		LandsatDataDir:     p.str("LANDSAT_DATA_DIR", "ls_data/temperature"),
		LandsatMTLFile:     p.str("LANDSAT_MTL_FILE", "LC08_L2SP_186025_20240924_20240928_02_T1_MTL.txt"),
		TLEBaseURL:         p.str("TLE_BASE_URL", "https://celestrak.org/NORAD/elements/gp.php"),
		TLECacheTTL:        p.duration("TLE_CACHE_TTL", 2*time.Hour),
		TrackedSatellites:  p.intList("TRACKED_SATELLITES", model.DefaultTrackedSatellites),
		TrackerInterval:    p.duration("TRACKER_INTERVAL", time.Second),
		PassWindow:         p.duration("PASS_WINDOW", 72*time.Hour),
		PassStep:           p.duration("PASS_STEP", 30*time.Second),
		MinElevationDeg:    p.number("MIN_ELEVATION_DEG", 10),
		SMTPHost:           p.str("SMTP_HOST", ""),
		SMTPPort:           p.integer("SMTP_PORT", 587),
		SMTPUser:           p.str("SMTP_USER", ""),
		SMTPPassword:       p.str("SMTP_PASSWORD", ""),
		SMTPFrom:           p.str("SMTP_FROM", ""),
		LogLevel:           p.str("LOG_LEVEL", "info"),
		LogFormat:          p.str("LOG_FORMAT", "text"),
		LogFile:            p.str("LOG_FILE", ""),
	}
	if p.err != nil {
		return nil, p.err
	}

	// 従来のSupabase接続情報からDSNを組み立てる
	if cfg.DatabaseURL == "" && cfg.SupabaseURL != "" {
		if password := getenv("SUPABASE_DB_PASSWORD"); password != "" {
			host := strings.TrimPrefix(strings.TrimPrefix(cfg.SupabaseURL, "https://"), "http://")
			cfg.DatabaseURL = fmt.Sprintf(
				"host=db.%s port=6543 user=postgres password=%s dbname=postgres sslmode=require",
				host, password,
			)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL（またはSUPABASE_URLとSUPABASE_DB_PASSWORD）環境変数が設定されていません")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET環境変数が設定されていません")
	}
	if c.TrackerInterval <= 0 || c.PassStep <= 0 {
		return fmt.Errorf("TRACKER_INTERVALとPASS_STEPは正の値である必要があります")
	}
	if len(c.TrackedSatellites) == 0 {
		return fmt.Errorf("TRACKED_SATELLITESが空です")
	}
	return nil
}

// SMTPEnabled SMTP送信の設定がそろっているか
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

type parser struct {
	getenv func(string) string
	err    error
}

func (p *parser) str(key, def string) string {
	if v := strings.TrimSpace(p.getenv(key)); v != "" {
		return v
	}
	return def
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(p.getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return d
}

func (p *parser) integer(key string, def int) int {
	v := strings.TrimSpace(p.getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return n
}

func (p *parser) number(key string, def float64) float64 {
	v := strings.TrimSpace(p.getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return f
}

func (p *parser) intList(key string, def []int) []int {
	v := strings.TrimSpace(p.getenv(key))
	if v == "" {
		return append([]int(nil), def...)
	}
	var out []int
	for _, part := range strings.Split(v, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			p.fail(key, v, err)
			return def
		}
		out = append(out, n)
	}
	return out
}

func (p *parser) fail(key, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("環境変数 %s の値が不正です (%q): %w", key, value, err)
	}
}
