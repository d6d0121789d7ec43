package integration

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"resty.dev/v3"
)

// TestAPIKey protects the admin routes of test servers.
const TestAPIKey = "test-api-key"

// TestMessagingLink is the phone number checkout links point to.
const TestMessagingLink = "905488417908"

// TestProducts is the catalog every test server starts with.
var TestProducts = []model.Product{
	{ID: "1", Name: "Chocolate Cake", Price: 25.50, Image: "/images/chocolate-cake.jpg", Description: "Rich dark chocolate sponge", Category: "Cakes"},
	{ID: "2", Name: "Apple Pie", Price: 12.25, Image: "/images/apple-pie.jpg", Description: "Cinnamon apples in butter pastry", Category: "Pies"},
	{ID: "3", Name: "Sourdough Loaf", Price: 6.00, Image: "/images/sourdough.jpg", Description: "Two-day fermented loaf", Category: "Bread"},
	{ID: "4", Name: "Carrot Cake", Price: 22.00, Image: "/images/carrot-cake.jpg", Description: "Walnuts and cream cheese frosting", Category: "Cakes"},
}

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// CleanupDB removes every persisted cart.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), "DELETE FROM carts"); err != nil {
		t.Logf("failed to clean table carts: %v", err)
	}
}

// WriteCatalog writes products as a JSON catalog document and returns its path.
func WriteCatalog(t *testing.T, products []model.Product) string {
	t.Helper()

	data, err := json.Marshal(products)
	if err != nil {
		t.Fatalf("failed to encode catalog: %v", err)
	}

	path := filepath.Join(t.TempDir(), "products.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}
	return path
}

// TestServer is a running storefront API backed by a real repository.
type TestServer struct {
	Server *httptest.Server
	Client *resty.Client
	Carts  service.CartService
}

// NewTestServer wires the full application over repo, loading the catalog
// from catalogPath, and serves it on a local port.
func NewTestServer(t *testing.T, repo repository.CartRepository, catalogPath string) *TestServer {
	t.Helper()

	logger := zerolog.Nop()
	ctx := context.Background()

	products, err := catalog.New(ctx, &catalog.Config{Locations: []string{catalogPath}}, catalog.NewFileLoader(logger), logger)
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	carts := service.NewCartService(repo, products, time.Minute, logger)
	co := checkout.New(checkout.Options{
		MessagingLink:  TestMessagingLink,
		CurrencySymbol: "TL",
	}, logger)

	mux := router.New(router.Handlers{
		Product:  handler.NewProductHandler(service.NewProductService(products, logger), logger),
		Cart:     handler.NewCartHandler(carts, logger),
		Checkout: handler.NewCheckoutHandler(service.NewCheckoutService(carts, products, co, logger), logger),
	}, router.Options{
		APIKey:  TestAPIKey,
		Session: middleware.SessionOptions{CookieName: "cart_id"},
	}, logger)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		carts.Close()
	})

	client := resty.New().
		SetBaseURL(server.URL).
		SetTimeout(5*time.Second).
		SetHeader("Content-Type", "application/json")

	return &TestServer{
		Server: server,
		Client: client,
		Carts:  carts,
	}
}

// Session returns a request bound to the cart session id.
func (s *TestServer) Session(id string) *resty.Request {
	return s.Client.R().SetHeader(middleware.HeaderCartID, id)
}

// Decode unmarshals a response body into dst.
func Decode(t *testing.T, resp *resty.Response, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal([]byte(resp.String()), dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", resp.String(), err)
	}
}
