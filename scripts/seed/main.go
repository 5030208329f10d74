// Seeds the configured storage backend with demo clinic content so a fresh
// checkout has something to render.
package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/dentodent/content-api/internal/config"
	"github.com/dentodent/content-api/internal/content"
	"github.com/dentodent/content-api/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("failed to open %s storage: %v", cfg.StorageBackend, err)
	}

	fmt.Println("seeding demo content...")
	seedSections(st)
	seedBanners(st)
	seedMedia(st)
	fmt.Println("done")
}

func openStore(cfg config.AppConfig) (store.Store, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return store.NewMemory(), nil
	case config.BackendSQLite:
		return store.OpenSQLite(cfg.DatabasePath)
	default:
		return store.NewFile(cfg.DataDir, cfg.PublicDir)
	}
}

func seedSections(st store.Store) {
	sections := map[string]content.Record{
		"hero": {
			"heading":    "Your smile, our priority",
			"subheading": "Family and cosmetic dentistry in the heart of town",
			"cta_label":  "Book an appointment",
			"cta_url":    "/contact",
		},
		"services": {
			"title": "Our Services",
			"items": []any{
				map[string]any{"name": "General Checkup", "description": "Routine exams and cleaning"},
				map[string]any{"name": "Teeth Whitening", "description": "In-office and take-home options"},
				map[string]any{"name": "Orthodontics", "description": "Braces and clear aligners"},
			},
		},
		"contact": {
			"phone":   "+1 (555) 010-0000",
			"email":   "hello@dentodent.example",
			"address": "12 Molar Street",
			"hours":   "Mon-Fri 9:00-18:00",
		},
	}

	for id, data := range sections {
		if _, err := st.PutSection(id, data); err != nil {
			log.Fatalf("failed to seed section %s: %v", id, err)
		}
		fmt.Printf("  section %s\n", id)
	}
}

func seedBanners(st store.Store) {
	banners := []content.Record{
		{
			"title":         "Free first consultation",
			"subtitle":      "New patients welcome",
			"image_url":     "/assets/uploads/banner-consultation.jpg",
			"link_url":      "/contact",
			"link_label":    "Book now",
			"display_order": 1,
			"is_active":     true,
			"position":      "homepage",
		},
		{
			"title":         "Summer whitening offer",
			"image_url":     "/assets/uploads/banner-whitening.jpg",
			"display_order": 2,
			"is_active":     true,
			"position":      "homepage",
		},
	}

	for _, rec := range banners {
		created, err := st.CreateBanner(rec)
		if err != nil {
			log.Fatalf("failed to seed banner: %v", err)
		}
		fmt.Printf("  banner %v (%v)\n", created["id"], created["title"])
	}
}

func seedMedia(st store.Store) {
	items := []content.Record{
		{
			"title":    "Reception area",
			"url":      "/assets/uploads/reception.jpg",
			"category": "clinic",
			"alt_text": "Clinic reception area",
		},
		{
			"title":    "Treatment room",
			"url":      "/assets/uploads/treatment-room.jpg",
			"category": "clinic",
			"alt_text": "Modern treatment room",
		},
	}

	for _, rec := range items {
		created, err := st.CreateMedia(rec)
		if err != nil {
			log.Fatalf("failed to seed media: %v", err)
		}
		fmt.Printf("  media %v (%v)\n", created["id"], created["title"])
	}
}
