package config

import "os"

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
}

type Config struct {
	FacebookAppID          string
	FacebookAppSecret      string
	FacebookRedirectURI    string
	InstagramClientID      string
	InstagramClientSecret  string
	InstagramRedirectURI   string
	GoogleClientID         string
	GoogleClientSecret     string
	GoogleRedirectURI      string
	GoogleLoginRedirectURI string
	GenerationURL          string
	GenerationAPIKey       string
	PostgresURI            string
	RedisURI               string
	FrontendURL            string
	R2                     R2
	SecretKey              string
	CookieName             string
}

func LoadConfig() *Config {
	return &Config{
		FacebookAppID:          getEnv("FACEBOOK_APP_ID", ""),
		FacebookAppSecret:      getEnv("FACEBOOK_APP_SECRET", ""),
		FacebookRedirectURI:    getEnv("FACEBOOK_REDIRECT_URI", ""),
		InstagramClientID:      getEnv("INSTAGRAM_CLIENT_ID", ""),
		InstagramClientSecret:  getEnv("INSTAGRAM_CLIENT_SECRET", ""),
		InstagramRedirectURI:   getEnv("INSTAGRAM_REDIRECT_URI", ""),
		GoogleClientID:         getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:     getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:      getEnv("GOOGLE_REDIRECT_URI", ""),
		GoogleLoginRedirectURI: getEnv("GOOGLE_LOGIN_REDIRECT_URI", "http://localhost:3000/login/callback"),
		GenerationURL:          getEnv("GENERATION_URL", ""),
		GenerationAPIKey:       getEnv("GENERATION_API_KEY", ""),
		PostgresURI:            getEnv("POSTGRES_URI", ""),
		RedisURI:               getEnv("REDIS_URI", ""),
		FrontendURL:            getEnv("FRONTEND_URL", "http://localhost:5173"),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
		},
		SecretKey:  getEnv("SECRET_KEY", ""),
		CookieName: getEnv("COOKIE_NAME", "lotcast_session"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
