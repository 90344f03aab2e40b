package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkoutPlans_CRUD(t *testing.T) {
	app, _ := newTestApp(t)
	token, user := registerUser(t, app, "lifter@example.com")

	status, body := doJSON(t, app, http.MethodPost, "/workoutplans", token, fiber.Map{
		"userId":    user,
		"title":     "Push day",
		"exercises": []string{"bench", "dips"},
		"deadline":  "2026-12-01",
		"status":    "Planned",
	})
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "Workout Plan created ✅", body["message"])
	plan := body["plan"].(map[string]any)
	id := int(plan["id"].(float64))

	status, body = doJSON(t, app, http.MethodPost, "/workoutplans", token, fiber.Map{"userId": user})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])

	status, body = doJSON(t, app, http.MethodPost, "/workoutplans", token, fiber.Map{
		"userId": user, "title": "Bad", "status": "Someday",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	_, body = doJSON(t, app, http.MethodGet, "/workoutplans", token, nil)
	assert.Equal(t, float64(1), body["count"])

	_, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/workoutplans/user/%d", user), token, nil)
	assert.Equal(t, float64(1), body["count"])
	_, body = doJSON(t, app, http.MethodGet, "/workoutplans/user/9999", token, nil)
	assert.Equal(t, float64(0), body["count"])

	status, body = doJSON(t, app, http.MethodPut, fmt.Sprintf("/workoutplans/%d", id), token, fiber.Map{
		"userId":    9999,
		"title":     "Push day v2",
		"exercises": []string{"ohp"},
		"status":    "In Progress",
	})
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "Workout Plan updated ✅", body["message"])
	updated := body["plan"].(map[string]any)
	assert.Equal(t, "Push day v2", updated["title"])
	assert.Equal(t, []any{"ohp"}, updated["exercises"])
	assert.Equal(t, "In Progress", updated["status"])
	assert.Equal(t, float64(user), updated["userId"])

	status, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/workoutplans/%d", id), token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Push day v2", body["plan"].(map[string]any)["title"])

	status, body = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/workoutplans/%d", id), token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Workout Plan deleted ✅", body["message"])

	status, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/workoutplans/%d", id), token, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Workout Plan not found", body["error"])

	status, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/workoutplans/%d", id), token, nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestMealPlans_CRUD(t *testing.T) {
	app, _ := newTestApp(t)
	token, user := registerUser(t, app, "chef@example.com")

	status, body := doJSON(t, app, http.MethodPost, "/mealplans", token, fiber.Map{
		"userId": user,
		"title":  "Cut",
		"topics": []string{"protein", "fibre"},
	})
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "Meal Plan created ✅", body["message"])
	id := int(body["plan"].(map[string]any)["id"].(float64))

	status, body = doJSON(t, app, http.MethodPut, fmt.Sprintf("/mealplans/%d", id), token, fiber.Map{
		"title": "Bulk", "topics": []string{"carbs"}, "description": "more rice",
	})
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "Meal Plan updated ✅", body["message"])
	assert.Equal(t, []any{"carbs"}, body["plan"].(map[string]any)["topics"])

	status, body = doJSON(t, app, http.MethodPut, "/mealplans/9999", token, fiber.Map{"title": "x"})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Meal Plan not found", body["error"])

	_, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/mealplans/user/%d", user), token, nil)
	assert.Equal(t, float64(1), body["count"])

	status, body = doJSON(t, app, http.MethodGet, "/mealplans/user/zero", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid user ID", body["error"])
}
