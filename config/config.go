package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	BIND_ADDRESS = "0.0.0.0:3001"
	TLS_DOMAINS  = "" // e.g. "example.com,example2.com"
	DEBUG_MODE   = true
	CORS_ORIGINS = "*" // comma separated
	// Uploaded images are written here and served back under /images/<name>
	IMAGES_DIR = "public/images"
	TMP_DIR    = "/tmp" // Local copies of S3 objects (captioning needs a file on disk)
	// S3 is used for image storage if S3_BUCKET is set
	S3_BUCKET      = ""
	S3_PREFIX      = "images"
	S3_REGION      = "us-east-1"
	S3_ENDPOINT    = ""
	S3_CREDENTIALS = "" // "key:secret"
	S3_SSE         = ""
	MYSQL_DSN      = "" // MySQL catalog will be used if this is set
	SQLITE_FILE    = "" // SQLite catalog will be used if MYSQL_DSN is not configured and this is set
	SEED_PHOTOS    = true
	// Similarity (graph RAG) service
	SIMILARITY_API_URL = "http://localhost:7500"
	SIMILARITY_TIMEOUT = 30 // seconds
	// Captioning service, descriptions are generated only when the key is set
	CAPTION_API_KEY    = ""
	CAPTION_API_URL    = "https://api.openai.com/v1"
	CAPTION_MODEL      = "gpt-4o-mini"
	CAPTION_MAX_TOKENS = 150
	CAPTION_MAX_SIDE   = 1024 // pixels, bigger images are downscaled before sending
	CAPTION_TIMEOUT    = 60   // seconds
	// Knowledge graph updates after each upload (best effort)
	GRAPH_UPDATES    = false
	GRAPH_QUEUE_SIZE = 100
)

func init() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Cannot load .env file: %v", err)
	}
	Read()
}

// Read (re)loads all settings from the environment
func Read() {
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("CORS_ORIGINS", &CORS_ORIGINS)
	readEnvString("IMAGES_DIR", &IMAGES_DIR)
	readEnvString("TMP_DIR", &TMP_DIR)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_PREFIX", &S3_PREFIX)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvString("S3_CREDENTIALS", &S3_CREDENTIALS)
	readEnvString("S3_SSE", &S3_SSE)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvBool("SEED_PHOTOS", &SEED_PHOTOS)
	readEnvString("FLASK_API_URL", &SIMILARITY_API_URL) // older name
	readEnvString("SIMILARITY_API_URL", &SIMILARITY_API_URL)
	readEnvInt("SIMILARITY_TIMEOUT", &SIMILARITY_TIMEOUT)
	readEnvString("OPENAI_API_KEY", &CAPTION_API_KEY)
	readEnvString("CAPTION_API_KEY", &CAPTION_API_KEY)
	readEnvString("CAPTION_API_URL", &CAPTION_API_URL)
	readEnvString("CAPTION_MODEL", &CAPTION_MODEL)
	readEnvInt("CAPTION_MAX_TOKENS", &CAPTION_MAX_TOKENS)
	readEnvInt("CAPTION_MAX_SIDE", &CAPTION_MAX_SIDE)
	readEnvInt("CAPTION_TIMEOUT", &CAPTION_TIMEOUT)
	readEnvBool("GRAPH_UPDATES", &GRAPH_UPDATES)
	readEnvInt("GRAPH_QUEUE_SIZE", &GRAPH_QUEUE_SIZE)
}

// CorsOrigins splits CORS_ORIGINS into a list, ignoring empty entries. Nothing configured means any origin.
func CorsOrigins() (result []string) {
	for _, o := range strings.Split(CORS_ORIGINS, ",") {
		if o = strings.TrimSpace(o); o != "" {
			result = append(result, o)
		}
	}
	if len(result) == 0 {
		return []string{"*"}
	}
	return
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
