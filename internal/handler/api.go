package handler

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/dentodent/content-api/internal/assets"
	"github.com/dentodent/content-api/internal/config"
	"github.com/dentodent/content-api/internal/service"
	"github.com/dentodent/content-api/internal/store"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	store     store.Store
	contents  *service.ContentService
	media     *service.MediaService
	banners   *service.BannerService
	adminUser string
	adminHash []byte
	uploadDir string
	uploadURL string
}

// NewAPI constructs a handler set over the configured storage backend.
func NewAPI(st store.Store, cfg config.AppConfig) *API {
	resolver := assets.Context{Mode: cfg.DeployMode, BaseURL: cfg.AssetBaseURL}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	return &API{
		store:     st,
		contents:  service.NewContentService(st),
		media:     service.NewMediaService(st, resolver),
		banners:   service.NewBannerService(st, resolver),
		adminUser: cfg.AdminEmail,
		adminHash: hash,
		uploadDir: cfg.UploadDir,
		uploadURL: cfg.UploadURLPath,
	}
}
