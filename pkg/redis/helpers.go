package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sokomart/backend/pkg/models"
)

const productTTL = 24 * time.Hour

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

// CacheProduct stores a single product keyed by its hex id. Only publicly
// visible products belong here; callers enforce that.
func (c *Cache) CacheProduct(ctx context.Context, product *models.Product) error {
	productJSON, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product %s: %w", product.ID.Hex(), err)
	}

	if err := c.client.Set(ctx, productKey(product.ID.Hex()), productJSON, productTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache product %s: %w", product.ID.Hex(), err)
	}

	return nil
}

// GetProduct returns the cached product or an error on any miss.
func (c *Cache) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	productJSON, err := c.client.Get(ctx, productKey(id)).Result()
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal([]byte(productJSON), &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	return &product, nil
}

// InvalidateProduct drops the cache entry after any mutation (edit, soft
// delete, review decision) so stale review state never reaches the
// storefront.
func (c *Cache) InvalidateProduct(ctx context.Context, id string) error {
	return c.client.Del(ctx, productKey(id)).Err()
}
