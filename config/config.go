package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port         string
	JWTKey       string
	SaltRound    int
	ClientOrigin string

	// Media store (S3-compatible host)
	MediaEndpoint  string
	MediaAccessKey string
	MediaSecretKey string
	MediaBucket    string
	MediaUseSSL    bool

	// Payment provider
	PaymentApiURL    string
	PaymentKeyID     string
	PaymentKeySecret string
	PaymentCurrency  string

	// Email
	SendgridApiKey string
	EmailSender    string
	AppName        string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:         getEnv("PORT", "5000"),
		JWTKey:       getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound:    getEnvInt("SALT_ROUND", 10),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),

		MediaEndpoint:  getEnv("MEDIA_ENDPOINT", "localhost:9000"),
		MediaAccessKey: getEnv("MEDIA_ACCESS_KEY", "minioadmin"),
		MediaSecretKey: getEnv("MEDIA_SECRET_KEY", "minioadmin"),
		MediaBucket:    getEnv("MEDIA_BUCKET", "lms-media"),
		MediaUseSSL:    getEnvBool("MEDIA_USE_SSL", false),

		PaymentApiURL:    getEnv("PAYMENT_API_URL", "https://api.sandbox.credpay.io/v1/"),
		PaymentKeyID:     getEnv("PAYMENT_KEY_ID", "defaultSecret"),
		PaymentKeySecret: getEnv("PAYMENT_KEY_SECRET", "defaultSecret"),
		PaymentCurrency:  getEnv("PAYMENT_CURRENCY", "USD"),

		SendgridApiKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@lms.local"),
		AppName:        getEnv("APP_NAME", "LMS"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.PaymentKeyID == "defaultSecret" || AppConfig.PaymentKeySecret == "defaultSecret" {
		log.Println("Warning: Using default payment provider credentials. Update them in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

// getEnvBool retrieves an environment variable as a bool or returns the default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return boolValue
}
