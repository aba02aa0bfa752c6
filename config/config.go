package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the service
type Config struct {
	ServerPort     string
	GinMode        string
	AllowedOrigins string

	DatabasePath string

	// OCR provider selection: "vision" (default) or "tesseract"
	OCREngine         string
	VisionAPIKey      string
	VisionEndpoint    string
	TesseractDataPath string

	SendGridAPIKey string
	MailFrom       string
	MailFromName   string

	CronBypassToken string
	ReminderWindow  int // days ahead covered by the due-date digest

	MaxFileSize int64
}

// Load reads configuration from environment variables.
// A .env file is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "release"),
		AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),

		DatabasePath: getEnv("DATABASE_PATH", "evtax.db"),

		OCREngine:         getEnv("OCR_ENGINE", "vision"),
		VisionAPIKey:      getEnv("GOOGLE_VISION_API_KEY", ""),
		VisionEndpoint:    getEnv("GOOGLE_VISION_ENDPOINT", "https://vision.googleapis.com/v1/images:annotate"),
		TesseractDataPath: getEnv("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata/"),

		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		MailFrom:       getEnv("MAIL_FROM", "no-reply@watercharging.com"),
		MailFromName:   getEnv("MAIL_FROM_NAME", "EV Tax Management"),

		CronBypassToken: getEnv("CRON_BYPASS_TOKEN", ""),
		ReminderWindow:  getEnvAsInt("REMINDER_WINDOW_DAYS", 3),

		MaxFileSize: 10 * 1024 * 1024, // 10 MB
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}
