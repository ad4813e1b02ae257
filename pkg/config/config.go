package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Numbering NumberingConfig
	Company   CompanyConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	Driver      string // postgres | memory
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// UsesMemory indica si el almacenamiento es el driver en memoria.
func (c DBConfig) UsesMemory() bool {
	return strings.EqualFold(c.Driver, "memory")
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host          string
	Port          int
	BodyLimitMB   int
	LoginPerMin   int
	PublicBaseURL string // prefijo para las URLs de PDFs servidos desde /uploads
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig conexión a Redis. Vacío = sin caché ni idempotencia.
type RedisConfig struct {
	URL string
}

// Enabled indica si hay Redis configurado.
func (c RedisConfig) Enabled() bool { return c.URL != "" }

// StorageConfig directorio local donde se guardan los PDFs.
type StorageConfig struct {
	UploadsDir string
}

// NumberingConfig pisos iniciales de los correlativos (semilla única, nunca rebaja un contador existente).
type NumberingConfig struct {
	NotaFloor       int64
	CotizacionFloor int64
}

// CompanyConfig datos del emisor impresos en los PDFs.
type CompanyConfig struct {
	Name    string
	RUT     string
	Giro    string
	Address string
	Phone   string
	Email   string
	Bank    string // cuenta para transferencias, impresa al pie
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, REDIS_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "rasiva-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Driver:      getString(v, "STORAGE_DRIVER", "postgres"),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "rasiva"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 720),
			Issuer:     getString(v, "JWT_ISSUER", "rasiva-api"),
		},
		HTTP: HTTPConfig{
			Host:          getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:          getInt(v, "HTTP_PORT", 8080),
			BodyLimitMB:   getInt(v, "HTTP_BODY_LIMIT_MB", 20),
			LoginPerMin:   getInt(v, "HTTP_LOGIN_PER_MINUTE", 10),
			PublicBaseURL: strings.TrimRight(getString(v, "PUBLIC_BASE_URL", ""), "/"),
		},
		Redis: RedisConfig{
			URL: getString(v, "REDIS_URL", ""),
		},
		Storage: StorageConfig{
			UploadsDir: getString(v, "UPLOADS_DIR", "./uploads"),
		},
		Numbering: NumberingConfig{
			NotaFloor:       int64(getInt(v, "NUMBERING_NOTA_FLOOR", 20000)),
			CotizacionFloor: int64(getInt(v, "NUMBERING_COTIZACION_FLOOR", 0)),
		},
		Company: CompanyConfig{
			Name:    getString(v, "COMPANY_NAME", "Comercial Rasiva"),
			RUT:     getString(v, "COMPANY_RUT", ""),
			Giro:    getString(v, "COMPANY_GIRO", "Venta de materiales de construcción"),
			Address: getString(v, "COMPANY_ADDRESS", ""),
			Phone:   getString(v, "COMPANY_PHONE", ""),
			Email:   getString(v, "COMPANY_EMAIL", ""),
			Bank:    getString(v, "COMPANY_BANK_ACCOUNT", ""),
		},
	}

	if !cfg.DB.UsesMemory() && !strings.EqualFold(cfg.DB.Driver, "postgres") {
		return nil, fmt.Errorf("config: STORAGE_DRIVER desconocido %q", cfg.DB.Driver)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
