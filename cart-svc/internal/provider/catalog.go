package provider

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/http"
	"net/url"
	"strings"

	"overcooked-cart/cart-svc/internal/domain"

	"golang.org/x/sync/errgroup"
)

const (
	MinPrice    = 30
	PriceSpread = 40
	DefaultArea = "International"
	maxParallel = 8
)

type meal struct {
	ID           string `json:"idMeal"`
	Name         string `json:"strMeal"`
	Category     string `json:"strCategory"`
	Area         string `json:"strArea"`
	Thumbnail    string `json:"strMealThumb"`
	Instructions string `json:"strInstructions"`
}

type mealsResponse struct {
	Meals []meal `json:"meals"`
}

// CatalogClient reads dishes from a TheMealDB-compatible API.
type CatalogClient struct {
	BaseURL string
	Client  HTTPClient
}

func NewCatalogClient(baseURL string, client HTTPClient) *CatalogClient {
	return &CatalogClient{BaseURL: strings.TrimRight(baseURL, "/"), Client: client}
}

// Random fetches count random dishes in parallel. One failed fetch fails
// the whole menu. Duplicates are dropped, keeping the first occurrence.
func (c *CatalogClient) Random(ctx context.Context, count int) ([]domain.DishRecord, error) {
	if count < 1 {
		return []domain.DishRecord{}, nil
	}

	results := make([]domain.DishRecord, count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			dish, err := c.fetchOne(gctx, c.BaseURL+"/random.php")
			if err != nil {
				return err
			}
			results[i] = dish
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, count)
	dishes := make([]domain.DishRecord, 0, count)
	for _, dish := range results {
		if _, dup := seen[dish.ID]; dup {
			continue
		}
		seen[dish.ID] = struct{}{}
		dishes = append(dishes, dish)
	}
	return dishes, nil
}

func (c *CatalogClient) Lookup(ctx context.Context, id string) (domain.DishRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.DishRecord{}, fmt.Errorf("%w: dish id is required", domain.ErrValidation)
	}
	return c.fetchOne(ctx, c.BaseURL+"/lookup.php?i="+url.QueryEscape(id))
}

func (c *CatalogClient) fetchOne(ctx context.Context, rawURL string) (domain.DishRecord, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return domain.DishRecord{}, fmt.Errorf("%w: %w", domain.ErrFetchFailure, err)
	}

	var payload mealsResponse
	if _, err := doJSON(ctx, c.Client, req, &payload); err != nil {
		return domain.DishRecord{}, err
	}
	if len(payload.Meals) == 0 {
		return domain.DishRecord{}, domain.ErrDishNotFound
	}
	m := payload.Meals[0]
	if m.ID == "" {
		return domain.DishRecord{}, fmt.Errorf("%w: meal without id", domain.ErrFetchFailure)
	}
	return toDish(m), nil
}

func toDish(m meal) domain.DishRecord {
	area := strings.TrimSpace(m.Area)
	if area == "" {
		area = DefaultArea
	}
	return domain.DishRecord{
		ID:          m.ID,
		Name:        m.Name,
		UnitPrice:   PriceFor(m.ID),
		ImageURL:    m.Thumbnail,
		Category:    m.Category,
		Area:        area,
		Description: m.Instructions,
	}
}

// PriceFor gives every dish a stable price in [MinPrice, MinPrice+PriceSpread).
// The catalog carries no prices of its own.
func PriceFor(id string) int {
	h := fnv.New32a()
	h.Write([]byte(id))
	return MinPrice + int(h.Sum32()%PriceSpread)
}
