package config

import (
	"fmt"
	"os"
	"strings"
)

// Storage backend selectors.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// AppConfig gathers everything the server needs to run.
type AppConfig struct {
	ListenAddr     string
	Port           string
	GinMode        string
	StorageBackend string
	DataDir        string
	DatabasePath   string
	PublicDir      string
	UploadDir      string
	UploadURLPath  string
	AssetBaseURL   string
	DeployMode     string
	SessionSecret  string
	AdminEmail     string
	AdminPassword  string
	AllowedOrigins string
}

// Load reads the application configuration from environment variables,
// falling back to safe defaults for anything unset.
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "4444"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	backend := strings.ToLower(strings.TrimSpace(os.Getenv("STORAGE_BACKEND")))
	switch backend {
	case BackendMemory, BackendFile, BackendSQLite:
	default:
		backend = BackendFile
	}

	dataDir := strings.TrimSpace(os.Getenv("DATA_DIR"))
	if dataDir == "" {
		dataDir = "data"
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "dentodent.db"
	}

	publicDir := strings.TrimSpace(os.Getenv("PUBLIC_DIR"))
	if publicDir == "" {
		publicDir = "public"
	}

	uploadDir := strings.TrimSpace(os.Getenv("UPLOAD_DIR"))
	if uploadDir == "" {
		uploadDir = "public/assets/uploads"
	}

	uploadURLPath := strings.TrimSpace(os.Getenv("UPLOAD_URL_PATH"))
	if uploadURLPath == "" {
		uploadURLPath = "/assets/uploads"
	}

	assetBaseURL := strings.TrimSpace(os.Getenv("ASSET_BASE_URL"))
	if assetBaseURL == "" {
		assetBaseURL = "https://api.dentodentdentalclinic.com"
	}

	deployMode := strings.TrimSpace(os.Getenv("DEPLOY_MODE"))
	if deployMode == "" {
		deployMode = "development"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "dentodent-dev-secret"
	}

	adminEmail := strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))
	if adminEmail == "" {
		adminEmail = "admin@dentodent.com"
	}

	adminPassword := strings.TrimSpace(os.Getenv("ADMIN_PASSWORD"))
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	allowedOrigins := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS"))
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}

	return AppConfig{
		ListenAddr:     listenAddr,
		Port:           port,
		GinMode:        ginMode,
		StorageBackend: backend,
		DataDir:        dataDir,
		DatabasePath:   databasePath,
		PublicDir:      publicDir,
		UploadDir:      uploadDir,
		UploadURLPath:  uploadURLPath,
		AssetBaseURL:   assetBaseURL,
		DeployMode:     deployMode,
		SessionSecret:  sessionSecret,
		AdminEmail:     adminEmail,
		AdminPassword:  adminPassword,
		AllowedOrigins: allowedOrigins,
	}
}
