package server

import (
	"net/http"
	"testing"

	"menuboard/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuItem_CreateDeleteUpdateScenario(t *testing.T) {
	env := newTestEnv(t, "")
	token := env.registerAndLogin(t, "casa-pepe")

	status, body := env.do(t, http.MethodPost, "/api/admin/menu", fiber.Map{
		"name":         "Pizza",
		"price":        24000,
		"category":     "mains",
		"restaurantID": "someone-else",
	}, token)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, float64(200), body["status"])
	assert.Equal(t, "Menu item created successfully", body["message"])

	data := body["data"].(map[string]any)
	id := data["_id"].(string)
	assert.NotEmpty(t, id)
	assert.Equal(t, float64(24000), data["price"])
	assert.Equal(t, []any{}, data["image"])
	assert.Equal(t, false, data["hidden"])
	assert.Equal(t, "casa-pepe", data["restaurantID"])
	assert.Equal(t, "spicy", data["foodType"])
	assert.Equal(t, "veg", data["veg"])

	status, body = env.do(t, http.MethodDelete, "/api/admin/menu", fiber.Map{"_id": id}, token)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Menu item deleted successfully", body["message"])

	status, body = env.do(t, http.MethodPut, "/api/admin/menu", fiber.Map{"_id": id, "name": "Pizza 2"}, token)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, float64(404), body["status"])
	assert.Equal(t, "Menu item not found", body["message"])
}

func TestMenuItem_CreateValidation(t *testing.T) {
	env := newTestEnv(t, "")
	token := env.registerAndLogin(t, "casa-pepe")

	for _, payload := range []fiber.Map{
		{"price": 10, "category": "mains"},
		{"name": "Pizza", "category": "mains"},
		{"name": "Pizza", "price": 0, "category": "mains"},
		{"name": "Pizza", "price": 10},
	} {
		status, body := env.do(t, http.MethodPost, "/api/admin/menu", payload, token)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Name, Price and Category are required", body["message"])
	}

	status, body := env.do(t, http.MethodPut, "/api/admin/menu", fiber.Map{"name": "x"}, token)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Menu Item ID is required", body["message"])
}

func TestMenuItem_ImageNormalizationAndCategoryRegistration(t *testing.T) {
	env := newTestEnv(t, "")
	token := env.registerAndLogin(t, "casa-pepe")

	status, body := env.do(t, http.MethodPost, "/api/admin/menu", fiber.Map{
		"name":     "Limonada",
		"price":    6500,
		"category": " Bebidas ",
		"image":    " https://img.test/limonada.jpg ",
	}, token)
	require.Equal(t, http.StatusOK, status, body)
	data := body["data"].(map[string]any)
	assert.Equal(t, []any{"https://img.test/limonada.jpg"}, data["image"])
	assert.Equal(t, "bebidas", data["category"])

	var profile models.Profile
	require.NoError(t, env.db.Where("restaurant_id = ?", "casa-pepe").First(&profile).Error)
	assert.Equal(t, []string{"bebidas"}, profile.Categories)

	id := data["_id"].(string)
	status, body = env.do(t, http.MethodPut, "/api/admin/menu", fiber.Map{"_id": id, "image": nil}, token)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, []any{}, body["data"].(map[string]any)["image"])
}

func TestMenuItem_UpdateOmittedVersusEmptyFields(t *testing.T) {
	env := newTestEnv(t, "")
	token := env.registerAndLogin(t, "casa-pepe")

	status, body := env.do(t, http.MethodPost, "/api/admin/menu", fiber.Map{
		"name":        "Pizza",
		"description": "Mozzarella y albahaca",
		"price":       24000,
		"taxPercent":  8,
		"category":    "mains",
		"image":       []string{"https://img.test/pizza.jpg"},
	}, token)
	require.Equal(t, http.StatusOK, status, body)
	id := body["data"].(map[string]any)["_id"].(string)

	status, body = env.do(t, http.MethodPut, "/api/admin/menu", fiber.Map{"_id": id, "price": 26000}, token)
	require.Equal(t, http.StatusOK, status, body)
	data := body["data"].(map[string]any)
	assert.Equal(t, 26000.0, data["price"])
	assert.Equal(t, "Mozzarella y albahaca", data["description"])
	assert.Equal(t, 8.0, data["taxPercent"])
	assert.Equal(t, "mains", data["category"])
	assert.Equal(t, []any{"https://img.test/pizza.jpg"}, data["image"])

	status, body = env.do(t, http.MethodPut, "/api/admin/menu", fiber.Map{
		"_id":         id,
		"description": "",
		"image":       []string{},
		"name":        "",
		"price":       0,
	}, token)
	require.Equal(t, http.StatusOK, status, body)
	data = body["data"].(map[string]any)
	assert.Equal(t, "", data["description"])
	assert.Equal(t, []any{}, data["image"])
	assert.Equal(t, "Pizza", data["name"])
	assert.Equal(t, 26000.0, data["price"])
}

func TestMenuItem_ScopedToSession(t *testing.T) {
	env := newTestEnv(t, "")
	owner := env.registerAndLogin(t, "casa-pepe")
	other := env.registerAndLogin(t, "la-otra")

	status, body := env.do(t, http.MethodPost, "/api/admin/menu", fiber.Map{
		"name": "Pizza", "price": 24000, "category": "mains",
	}, owner)
	require.Equal(t, http.StatusOK, status, body)
	id := body["data"].(map[string]any)["_id"].(string)

	status, _ = env.do(t, http.MethodPut, "/api/admin/menu", fiber.Map{"_id": id, "price": 1}, other)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = env.do(t, http.MethodDelete, "/api/admin/menu", fiber.Map{"_id": id}, other)
	assert.Equal(t, http.StatusNotFound, status)

	var item models.MenuItem
	require.NoError(t, env.db.First(&item, "id = ?", id).Error)
	assert.Equal(t, 24000.0, item.Price)
}

func TestMenuItem_HiddenAndPublicMenu(t *testing.T) {
	env := newTestEnv(t, "")
	token := env.registerAndLogin(t, "casa-pepe")

	create := func(name, category string) string {
		status, body := env.do(t, http.MethodPost, "/api/admin/menu", fiber.Map{
			"name": name, "price": 10000, "category": category,
		}, token)
		require.Equal(t, http.StatusOK, status, body)
		return body["data"].(map[string]any)["_id"].(string)
	}
	create("Pizza", "mains")
	flan := create("Flan", "postres")

	status, body := env.do(t, http.MethodPost, "/api/admin/menu/hidden", fiber.Map{"itemId": flan, "hidden": true}, token)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, true, body["data"].(map[string]any)["hidden"])

	status, body = env.do(t, http.MethodGet, "/api/restaurants/casa-pepe/menu", nil, "")
	require.Equal(t, http.StatusOK, status, body)
	sections := body["sections"].([]any)
	require.Len(t, sections, 1)
	assert.Equal(t, "mains", sections[0].(map[string]any)["category"])

	status, body = env.do(t, http.MethodGet, "/api/admin/profile", nil, token)
	require.Equal(t, http.StatusOK, status, body)
	assert.Len(t, body["menus"].([]any), 2)

	status, _ = env.do(t, http.MethodGet, "/api/restaurants/ghost/menu", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestReplaceCategories(t *testing.T) {
	env := newTestEnv(t, "")
	token := env.registerAndLogin(t, "casa-pepe")

	for _, payload := range []fiber.Map{{}, {"categories": "mains"}, {"categories": nil}} {
		status, body := env.do(t, http.MethodPost, "/api/admin/categories", payload, token)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Categories array is required", body["message"])
	}

	status, body := env.do(t, http.MethodPost, "/api/admin/categories", fiber.Map{
		"categories": []string{" Entradas ", "", "POSTRES", "postres"},
	}, token)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Categories updated successfully", body["message"])
	first := body["categories"]
	assert.Equal(t, []any{"entradas", "postres"}, first)

	status, body = env.do(t, http.MethodPost, "/api/admin/categories", fiber.Map{"categories": first}, token)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, first, body["categories"])
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t, "")
	token := env.registerAndLogin(t, "casa-pepe")

	status, body := env.do(t, http.MethodPut, "/api/admin/profile", fiber.Map{
		"address":    "Calle 10",
		"themeColor": fiber.Map{"h": 12, "s": 80, "l": 40},
	}, token)
	require.Equal(t, http.StatusOK, status, body)
	profile := body["profile"].(map[string]any)
	assert.Equal(t, "Calle 10", profile["address"])
	assert.Equal(t, "Casa casa-pepe", profile["name"])
}
