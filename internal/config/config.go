package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	MinIO    MinIOConfig
	Render   RenderConfig
}

type AppConfig struct {
	Port string
	Env  string
	// URL publik frontend, dipakai membentuk link verifikasi di QR code
	PublicURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	Secret          string
	ExpireHours     int
	RefreshExpHours int
}

type MinIOConfig struct {
	Endpoint string
	User     string
	Password string
	Bucket   string
	UseSSL   bool
}

type RenderConfig struct {
	// Direktori font TTF opsional, fallback ke font bawaan kalau kosong
	FontsDir      string
	PreviewScale  float64
	DownloadScale float64
}

func Load() *Config {
	// Load .env jika ada (development), di production pakai env variable langsung
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment variables")
	}

	jwtExpire, _ := strconv.Atoi(getEnv("JWT_EXPIRE_HOURS", "24"))
	jwtRefreshExpire, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRE_HOURS", "168"))
	minioSSL, _ := strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))
	previewScale, _ := strconv.ParseFloat(getEnv("RENDER_PREVIEW_SCALE", "0.5"), 64)
	downloadScale, _ := strconv.ParseFloat(getEnv("RENDER_DOWNLOAD_SCALE", "2"), 64)

	return &Config{
		App: AppConfig{
			Port:      getEnv("APP_PORT", "8080"),
			Env:       getEnv("APP_ENV", "development"),
			PublicURL: getEnv("APP_URL", ""),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "certitrust_user"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "certitrust_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", "change-this-secret"),
			ExpireHours:     jwtExpire,
			RefreshExpHours: jwtRefreshExpire,
		},
		MinIO: MinIOConfig{
			Endpoint: getEnv("MINIO_ENDPOINT", "localhost:9000"),
			User:     getEnv("MINIO_USER", "minioadmin"),
			Password: getEnv("MINIO_PASSWORD", "minioadmin123"),
			Bucket:   getEnv("MINIO_BUCKET", "certitrust-assets"),
			UseSSL:   minioSSL,
		},
		Render: RenderConfig{
			FontsDir:      getEnv("FONTS_DIR", ""),
			PreviewScale:  previewScale,
			DownloadScale: downloadScale,
		},
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
