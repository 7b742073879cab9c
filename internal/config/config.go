package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          int
	MediaPath     string
	DataPath      string
	DBPath        string
	SubtitlePath  string
	OutputPath    string
	JWTSecret     string
	AdminUsername string
	AdminPassword string
	CORSOrigins   []string

	// External service credentials
	OpenAIKey string
	DeepLKey  string

	// Pipeline defaults, overridable per job
	WhisperModel   string
	TranslateModel string
	SourceLang     string
	TargetLang     string
	ChunkSeconds   int
	BatchSize      int

	// Burn-in rendering
	FontsDir string
	FontName string
}

func Load() *Config {
	// Load .env if present; real environment wins over file values
	godotenv.Load()

	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	dataPath := getEnv("DATA_PATH", "/data")

	// JWT secret: require explicit setting or generate random
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			log.Fatalf("Failed to generate random JWT secret: %v", err)
		}
		jwtSecret = hex.EncodeToString(b)
		log.Println("WARNING: JWT_SECRET not set, using random secret. Sessions will not survive restarts. Set JWT_SECRET env var for persistent sessions.")
	}

	// CORS origins: comma-separated list or "*" (default)
	corsOrigins := []string{"*"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		corsOrigins = make([]string, 0, len(origins))
		for _, o := range origins {
			o = strings.TrimSpace(o)
			if o != "" {
				corsOrigins = append(corsOrigins, o)
			}
		}
	}

	return &Config{
		Port:          port,
		MediaPath:     getEnv("MEDIA_PATH", "/media"),
		DataPath:      dataPath,
		DBPath:        getEnv("DB_PATH", dataPath+"/captioner.db"),
		SubtitlePath:  getEnv("SUBTITLE_PATH", dataPath+"/subtitles"),
		OutputPath:    getEnv("OUTPUT_PATH", dataPath+"/output"),
		JWTSecret:     jwtSecret,
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),
		CORSOrigins:   corsOrigins,

		OpenAIKey: os.Getenv("OPENAI_API_KEY"),
		DeepLKey:  os.Getenv("DEEPL_API_KEY"),

		WhisperModel:   getEnv("WHISPER_MODEL", "whisper-1"),
		TranslateModel: getEnv("TRANSLATE_MODEL", "gpt-4o-mini"),
		SourceLang:     getEnv("SOURCE_LANG", "ja"),
		TargetLang:     getEnv("TARGET_LANG", "zh-TW"),
		ChunkSeconds:   getIntEnv("CHUNK_SECONDS", 600),
		BatchSize:      getIntEnv("TRANSLATE_BATCH_SIZE", 60),

		FontsDir: os.Getenv("FONTS_DIR"),
		FontName: getEnv("FONT_NAME", "Noto Sans CJK TC"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
