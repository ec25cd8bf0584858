package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	HTTP     HTTPConfig
	JWT      JWTConfig
	Sunat    SunatConfig
	Politica PoliticaConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
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

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// SunatConfig configuración del PSE de facturación electrónica (APISUNAT).
// URL apunta al endpoint de documentos (ej. https://back.apisunat.com/documents).
type SunatConfig struct {
	URL            string
	Token          string
	TimeoutSeconds int
	Activa         bool // facturación electrónica habilitada (series oficiales + envío al PSE)
}

// Timeout devuelve el timeout de red para llamadas al PSE.
func (c SunatConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PoliticaConfig políticas operativas del negocio.
type PoliticaConfig struct {
	PermitirStockNegativo bool // permitir SALIDA que deje stock < 0
	RequiereCajaAbierta   bool // exigir sesión de caja abierta para registrar movimientos
	IGVPorcentaje         int  // 18 = IGV 18%
	DiasDevolucion        int  // ventana máxima de devolución en días
	DiasCreditoDefault    int  // plazo por defecto de ventas a crédito
}

// IGVFactor devuelve 1 + IGV (ej. 1.18) para derivar valores sin impuesto.
func (c PoliticaConfig) IGVFactor() decimal.Decimal {
	return decimal.NewFromInt(100 + int64(c.IGVPorcentaje)).Div(decimal.NewFromInt(100))
}

// IGVRate devuelve el porcentaje del IGV como decimal (ej. 18).
func (c PoliticaConfig) IGVRate() decimal.Decimal {
	return decimal.NewFromInt(int64(c.IGVPorcentaje))
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo .env).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, SUNAT_TOKEN, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "libreria-pos"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "libreria_pos"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 120),
			Issuer:     getString(v, "JWT_ISSUER", "libreria-pos"),
		},
		Sunat: SunatConfig{
			URL:            getString(v, "SUNAT_URL", ""),
			Token:          getString(v, "SUNAT_TOKEN", ""),
			TimeoutSeconds: getInt(v, "SUNAT_TIMEOUT_SECONDS", 30),
			Activa:         getBool(v, "SUNAT_ACTIVA", false),
		},
		Politica: PoliticaConfig{
			PermitirStockNegativo: getBool(v, "POLITICA_STOCK_NEGATIVO", false),
			RequiereCajaAbierta:   getBool(v, "POLITICA_CAJA_ABIERTA", true),
			IGVPorcentaje:         getInt(v, "POLITICA_IGV_PORCENTAJE", 18),
			DiasDevolucion:        getInt(v, "POLITICA_DIAS_DEVOLUCION", 30),
			DiasCreditoDefault:    getInt(v, "POLITICA_DIAS_CREDITO", 7),
		},
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
		return v.GetInt(key)
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
