package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStore struct {
	puts []entities.Product
	err  error
}

func (s *recordingStore) Put(_ context.Context, p entities.Product) error {
	if s.err != nil {
		return s.err
	}
	s.puts = append(s.puts, p)
	return nil
}

var seedNow = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func TestParseSeed(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		products, err := parseSeed([]byte(`
products:
  - id: wm-1
    title: Washing Machine
    price: "399.99"
    inventory_count: 3
  - title: Fridge
    price: "12"
    status: Draft
`), seedNow)
		require.NoError(t, err)
		require.Len(t, products, 2)

		assert.Equal(t, "wm-1", products[0].ID)
		assert.Equal(t, entities.ProductStatusActive, products[0].Status)
		assert.Equal(t, "399.99", products[0].Price.StringFixed(2))
		assert.Equal(t, seedNow, products[0].CreatedAt)

		assert.NotEmpty(t, products[1].ID)
		assert.Equal(t, entities.ProductStatusDraft, products[1].Status)
	})

	for name, body := range map[string]string{
		"missing title":  "products:\n  - price: \"1\"\n",
		"bad price":      "products:\n  - title: X\n    price: abc\n",
		"negative stock": "products:\n  - title: X\n    price: \"1\"\n    inventory_count: -1\n",
		"unknown status": "products:\n  - title: X\n    price: \"1\"\n    status: sold\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parseSeed([]byte(body), seedNow)
			assert.Error(t, err)
		})
	}
}

func TestSeedProducts(t *testing.T) {
	products := []entities.Product{{ID: "a"}, {ID: "b"}}

	s := &recordingStore{}
	n, err := seedProducts(context.Background(), s, products)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, s.puts, 2)

	n, err = seedProducts(context.Background(), &recordingStore{err: errors.New("down")}, products)
	assert.Error(t, err)
	assert.Equal(t, 0, n)
}
