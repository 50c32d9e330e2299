package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"storefront/internal/domain/entities"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type productStore interface {
	Put(ctx context.Context, p entities.Product) error
}

type seedProduct struct {
	ID             string `yaml:"id"`
	Title          string `yaml:"title"`
	Slug           string `yaml:"slug"`
	SKU            string `yaml:"sku"`
	Description    string `yaml:"description"`
	Price          string `yaml:"price"`
	InventoryCount int    `yaml:"inventory_count"`
	Status         string `yaml:"status"`
	ImageURL       string `yaml:"image_url"`
}

type seedFile struct {
	Products []seedProduct `yaml:"products"`
}

func loadSeed(path string) ([]entities.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseSeed(data, time.Now().UTC())
}

func parseSeed(data []byte, now time.Time) ([]entities.Product, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	out := make([]entities.Product, 0, len(f.Products))
	for i, sp := range f.Products {
		if strings.TrimSpace(sp.Title) == "" {
			return nil, fmt.Errorf("product %d: title is required", i+1)
		}
		price, err := decimal.NewFromString(sp.Price)
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("product %d: invalid price %q", i+1, sp.Price)
		}
		if sp.InventoryCount < 0 {
			return nil, fmt.Errorf("product %d: inventory_count must be >= 0", i+1)
		}

		status := entities.ProductStatus(strings.ToLower(sp.Status))
		switch status {
		case "":
			status = entities.ProductStatusActive
		case entities.ProductStatusActive, entities.ProductStatusDraft, entities.ProductStatusArchived:
		default:
			return nil, fmt.Errorf("product %d: unknown status %q", i+1, sp.Status)
		}

		id := sp.ID
		if id == "" {
			id = uuid.NewString()
		}
		out = append(out, entities.Product{
			ID:             id,
			Title:          sp.Title,
			Slug:           sp.Slug,
			SKU:            sp.SKU,
			Description:    sp.Description,
			Price:          price,
			InventoryCount: sp.InventoryCount,
			Status:         status,
			ImageURL:       sp.ImageURL,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}
	return out, nil
}

func seedProducts(ctx context.Context, store productStore, products []entities.Product) (int, error) {
	for i, p := range products {
		if err := store.Put(ctx, p); err != nil {
			return i, fmt.Errorf("put %s: %w", p.ID, err)
		}
	}
	return len(products), nil
}
