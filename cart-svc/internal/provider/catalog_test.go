package provider_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"overcooked-cart/cart-svc/internal/domain"
	"overcooked-cart/cart-svc/internal/mocks"
	"overcooked-cart/cart-svc/internal/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const shakshukaJSON = `{"meals":[{"idMeal":"52963","strMeal":"Shakshuka","strCategory":"Vegetarian","strArea":"Egyptian","strMealThumb":"https://img/52963.jpg","strInstructions":"Crack the eggs."}]}`

func TestPriceFor(t *testing.T) {
	for _, id := range []string{"52772", "52963", "53005", "", "x"} {
		price := provider.PriceFor(id)
		assert.GreaterOrEqual(t, price, provider.MinPrice)
		assert.Less(t, price, provider.MinPrice+provider.PriceSpread)
		assert.Equal(t, price, provider.PriceFor(id), "price for %q is stable", id)
	}
}

func TestCatalogClient_Lookup(t *testing.T) {
	type testCase struct {
		name     string
		status   int
		body     string
		wantErr  error
		wantArea string
	}

	tests := []testCase{
		{name: "found", status: http.StatusOK, body: shakshukaJSON, wantArea: "Egyptian"},
		{name: "missing area", status: http.StatusOK, body: `{"meals":[{"idMeal":"1","strMeal":"Stew"}]}`, wantArea: provider.DefaultArea},
		{name: "not found", status: http.StatusOK, body: `{"meals":null}`, wantErr: domain.ErrDishNotFound},
		{name: "server error", status: http.StatusInternalServerError, body: `{"message":"down"}`, wantErr: domain.ErrFetchFailure},
		{name: "garbage", status: http.StatusOK, body: `<html>`, wantErr: domain.ErrFetchFailure},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/lookup.php", r.URL.Path)
				assert.NotEmpty(t, r.URL.Query().Get("i"))
				w.WriteHeader(testCase.status)
				fmt.Fprint(w, testCase.body)
			}))
			defer srv.Close()

			client := provider.NewCatalogClient(srv.URL+"/", srv.Client())
			dish, err := client.Lookup(context.Background(), "52963")

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantArea, dish.Area)
			assert.Equal(t, provider.PriceFor(dish.ID), dish.UnitPrice)
		})
	}
}

func TestCatalogClient_LookupMapsFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, shakshukaJSON)
	}))
	defer srv.Close()

	dish, err := provider.NewCatalogClient(srv.URL, srv.Client()).Lookup(context.Background(), "52963")

	require.NoError(t, err)
	assert.Equal(t, domain.DishRecord{
		ID:          "52963",
		Name:        "Shakshuka",
		UnitPrice:   provider.PriceFor("52963"),
		ImageURL:    "https://img/52963.jpg",
		Category:    "Vegetarian",
		Area:        "Egyptian",
		Description: "Crack the eggs.",
	}, dish)
}

func TestCatalogClient_LookupRequiresID(t *testing.T) {
	client := provider.NewCatalogClient("http://catalog.invalid", mocks.NewHTTPClient(t))

	_, err := client.Lookup(context.Background(), "  ")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCatalogClient_RandomDropsDuplicates(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/random.php", r.URL.Path)
		n := atomic.AddInt32(&calls, 1)
		// Two distinct dishes, served alternately.
		fmt.Fprintf(w, `{"meals":[{"idMeal":"%d","strMeal":"Dish %d"}]}`, n%2, n%2)
	}))
	defer srv.Close()

	dishes, err := provider.NewCatalogClient(srv.URL, srv.Client()).Random(context.Background(), 6)

	require.NoError(t, err)
	assert.Equal(t, int32(6), atomic.LoadInt32(&calls))
	assert.Len(t, dishes, 2)
	assert.NotEqual(t, dishes[0].ID, dishes[1].ID)
}

func TestCatalogClient_RandomFailsAsAWhole(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, shakshukaJSON)
	}))
	defer srv.Close()

	dishes, err := provider.NewCatalogClient(srv.URL, srv.Client()).Random(context.Background(), 4)

	assert.ErrorIs(t, err, domain.ErrFetchFailure)
	assert.Nil(t, dishes)
}

func TestCatalogClient_RandomZero(t *testing.T) {
	dishes, err := provider.NewCatalogClient("http://catalog.invalid", mocks.NewHTTPClient(t)).Random(context.Background(), 0)

	require.NoError(t, err)
	assert.Empty(t, dishes)
}

func TestCatalogClient_TransportError(t *testing.T) {
	httpClient := mocks.NewHTTPClient(t)
	httpClient.On("Do", mock.AnythingOfType("*http.Request")).Return(nil, errors.New("dial tcp: connection refused")).Once()

	_, err := provider.NewCatalogClient("http://catalog.invalid", httpClient).Lookup(context.Background(), "52963")

	assert.ErrorIs(t, err, domain.ErrFetchFailure)
	assert.True(t, domain.Retryable(err))
}
