package chi

import (
	"context"
	"net/http"
	"testing"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/shopgrid/prodsearch/internal/domain/product"
	enhanceuc "github.com/shopgrid/prodsearch/internal/usecase/enhance"
	healthuc "github.com/shopgrid/prodsearch/internal/usecase/health"
	searchuc "github.com/shopgrid/prodsearch/internal/usecase/search"
	shopperuc "github.com/shopgrid/prodsearch/internal/usecase/shopper"
)

// mockIndex backs the search service in handler tests.
type mockIndex struct {
	products []product.Product
	err      error
}

func (m *mockIndex) Query(context.Context, string, int) ([]product.Product, error) {
	return m.products, m.err
}

type mockPinger struct{ err error }

func (m *mockPinger) Ping(context.Context) error { return m.err }

func fptr(f float64) *float64 { return &f }

// newTestHandler wires a full HTTP handler over a mock index. The
// enhancer runs without a model, so expansion always uses the keyword
// fallback classifier.
func newTestHandler(t *testing.T, idx *mockIndex, pinger *mockPinger) http.Handler {
	t.Helper()

	searchSvc := searchuc.New(idx)
	enhanceSvc := enhanceuc.New(nil)
	shopperSvc := shopperuc.New(enhanceSvc, searchSvc, 6)
	healthSvc := healthuc.New(pinger, nil, nil)

	server := NewServer(searchSvc, enhanceSvc, shopperSvc, healthSvc, "", zap.NewNop())

	r := chirouter.NewRouter()
	server.Register(r)
	return r
}
