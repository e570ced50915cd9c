package client

import (
	"context"
	"net"
	"testing"

	"menuboard/internal/config"
	"menuboard/internal/editor"
	"menuboard/internal/models"
	"menuboard/internal/server"
	"menuboard/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startServer serves the API on a random local port and returns its base URL.
func startServer(t *testing.T) string {
	t.Helper()

	db := testutil.NewTestDB(t)
	_, rdb := testutil.NewTestRedis(t)
	cfg := &config.Config{
		JWTSecret:         "client-test-secret-0123456789abcdef0123456789",
		SessionTTLHours:   1,
		PublicBaseURL:     "https://menu.test",
		DefaultTableCount: 10,
	}
	s, err := server.NewServerWithDeps(cfg, db, rdb, nil)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	s.SetupRoutes(app)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return "http://" + ln.Addr().String()
}

func registerOwner(t *testing.T, baseURL string) {
	t.Helper()

	a := fiber.Post(baseURL + "/api/register").JSON(fiber.Map{
		"username":       "casa-pepe",
		"email":          "pepe@example.com",
		"password":       "Secreto123",
		"restaurantName": "Casa Pepe",
	})
	code, body, errs := a.Bytes()
	require.Empty(t, errs)
	require.Equal(t, fiber.StatusOK, code, string(body))
}

func TestClient_EditorFlow(t *testing.T) {
	baseURL := startServer(t)
	registerOwner(t, baseURL)
	ctx := context.Background()

	c := New(baseURL)
	account, err := c.Login(ctx, "pepe@example.com", "Secreto123")
	require.NoError(t, err)
	assert.Equal(t, "casa-pepe", account.Username)
	assert.NotEmpty(t, c.Token())

	dash, err := c.Dashboard(ctx)
	require.NoError(t, err)
	assert.Empty(t, dash.Menus)

	categories, err := editor.EnsureDefaultCategories(ctx, c, dash.Profile.Categories)
	require.NoError(t, err)
	assert.Equal(t, []string{"appetizers", "main course", "desserts", "beverages", "sides"}, categories)

	categories, name, err := editor.AddCategory(ctx, c, categories, " Pizzas ")
	require.NoError(t, err)
	assert.Equal(t, "pizzas", name)
	assert.Contains(t, categories, "pizzas")

	form := editor.NewForm(&models.Profile{Categories: categories})
	form.Name = "Pizza"
	form.Price = 24000
	form.Category = name
	form.Images.Add("https://img.test/pizza.jpg")
	created, err := form.Save(ctx, c)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "casa-pepe", created.RestaurantID)
	assert.Equal(t, []string{"https://img.test/pizza.jpg"}, created.Image)

	list := editor.NewList(c, []models.MenuItem{*created})
	require.NoError(t, list.ToggleHidden(ctx, created.ID))
	assert.True(t, list.Items()[0].Hidden)

	edit := editor.EditForm(list.Items()[0])
	edit.Price = 26000
	updated, err := edit.Save(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, 26000.0, updated.Price)
	assert.True(t, updated.Hidden)

	list.RequestDelete(created.ID)
	require.NoError(t, list.ConfirmDelete(ctx))
	assert.True(t, list.Empty())

	_, err = c.UpdateMenuItem(ctx, editor.MenuItemInput{ID: created.ID, Name: "Ghost", Price: 1, Category: "pizzas"})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
	assert.Equal(t, "Menu item not found", err.(*models.AppError).Message)
}

func TestClient_Unauthenticated(t *testing.T) {
	baseURL := startServer(t)
	c := New(baseURL)

	_, err := c.CreateMenuItem(context.Background(), editor.MenuItemInput{Name: "Pizza", Price: 1, Category: "mains"})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeUnauthorized))
	assert.Equal(t, "Authentication Required", err.(*models.AppError).Message)
}

func TestClient_LogoutRevokesToken(t *testing.T) {
	baseURL := startServer(t)
	registerOwner(t, baseURL)
	ctx := context.Background()

	c := New(baseURL)
	_, err := c.Login(ctx, "casa-pepe", "Secreto123")
	require.NoError(t, err)
	token := c.Token()

	require.NoError(t, c.Logout(ctx))
	assert.Empty(t, c.Token())

	c.SetToken(token)
	_, err = c.Dashboard(ctx)
	require.Error(t, err)
	assert.Equal(t, "Token has been revoked", err.(*models.AppError).Message)
}

func TestClient_CreateTables(t *testing.T) {
	baseURL := startServer(t)
	registerOwner(t, baseURL)

	tables, err := New(baseURL).CreateTables(context.Background(), "casa-pepe", 0)
	require.NoError(t, err)
	assert.Len(t, tables, 10)

	_, err = New(baseURL).CreateTables(context.Background(), "", 3)
	assert.True(t, models.IsCode(err, models.CodeValidation))
}

func TestClient_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New("http://127.0.0.1:1").Dashboard(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
