package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ruggero-R/EzSupply/internal/docstore"
	"github.com/Ruggero-R/EzSupply/internal/store"
)

const testJWTSecret = "test-secret"

func setupTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	db := docstore.NewTestStore(t)

	items := &store.Items{DB: db}
	categories := store.NewCategories(db, store.CategoryCacheTTL)
	users := store.NewUsers(db)

	router := NewRouter(items, categories, users, testJWTSecret)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	// Create a user.
	body, _ := json.Marshal(map[string]string{"username": "alice"})
	resp, err := http.Post(server.URL+"/api/users", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("create user request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create user failed: %d", resp.StatusCode)
	}

	// Select it to get a token.
	body, _ = json.Marshal(map[string]string{"username": "alice"})
	resp, err = http.Post(server.URL+"/api/session", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("session request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("session failed: %d", resp.StatusCode)
	}

	var sessionResp map[string]string
	json.NewDecoder(resp.Body).Decode(&sessionResp)
	token := sessionResp["token"]
	if token == "" {
		t.Fatal("empty token from session")
	}

	return server, token
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func TestSessionEndpoint(t *testing.T) {
	server, _ := setupTestServer(t)

	// Matching is case-insensitive.
	body, _ := json.Marshal(map[string]string{"username": "ALICE"})
	resp, _ := http.Post(server.URL+"/api/session", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for case-insensitive match, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Unknown username.
	body, _ = json.Marshal(map[string]string{"username": "nobody"})
	resp, _ = http.Post(server.URL+"/api/session", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown user, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestUnauthorizedRequest(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, _ := http.Get(server.URL + "/api/items")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ := authRequest("GET", server.URL+"/api/items", "garbage-token", nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad token, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestDuplicateUser(t *testing.T) {
	server, _ := setupTestServer(t)

	body, _ := json.Marshal(map[string]string{"username": "Alice"})
	resp, _ := http.Post(server.URL+"/api/users", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate username, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestItemsAPIFlow(t *testing.T) {
	server, token := setupTestServer(t)

	// Create item.
	req, _ := authRequest("POST", server.URL+"/api/items", token, map[string]any{
		"name":          "Dish Soap",
		"unit":          "bottles",
		"min_threshold": 2,
		"batches":       []map[string]any{{"quantity": 3}},
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var created map[string]any
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	id, _ := created["id"].(string)
	if id == "" {
		t.Fatal("expected item id in response")
	}
	if created["total_quantity"] != 3.0 {
		t.Errorf("expected total_quantity 3, got %v", created["total_quantity"])
	}
	if created["below_threshold"] != false {
		t.Errorf("expected below_threshold false, got %v", created["below_threshold"])
	}
	if created["updated_by"] != "alice" {
		t.Errorf("expected updated_by 'alice', got %v", created["updated_by"])
	}

	// Get item.
	req, _ = authRequest("GET", server.URL+"/api/items/"+id, token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var got map[string]any
	json.NewDecoder(resp.Body).Decode(&got)
	resp.Body.Close()
	if got["name"] != "Dish Soap" {
		t.Errorf("expected name 'Dish Soap', got %v", got["name"])
	}

	// Update to empty batches, dropping below threshold.
	req, _ = authRequest("PUT", server.URL+"/api/items/"+id, token, map[string]any{
		"name":          "Dish Soap",
		"unit":          "bottles",
		"min_threshold": 2,
		"batches":       []map[string]any{},
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var updated map[string]any
	json.NewDecoder(resp.Body).Decode(&updated)
	resp.Body.Close()
	if updated["below_threshold"] != true {
		t.Errorf("expected below_threshold true after update, got %v", updated["below_threshold"])
	}

	// Restock filter should now include it.
	req, _ = authRequest("GET", server.URL+"/api/items?restock=true", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	var restock []map[string]any
	json.NewDecoder(resp.Body).Decode(&restock)
	resp.Body.Close()
	if len(restock) != 1 {
		t.Errorf("expected 1 item needing restock, got %d", len(restock))
	}

	// Delete.
	req, _ = authRequest("DELETE", server.URL+"/api/items/"+id, token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Gone for good.
	req, _ = authRequest("GET", server.URL+"/api/items/"+id, token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestItemValidation(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/items", token, map[string]any{
		"unit": "bottles",
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for missing name, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCategoriesAPIFlow(t *testing.T) {
	server, token := setupTestServer(t)

	// Create with an icon.
	req, _ := authRequest("POST", server.URL+"/api/categories", token, map[string]any{
		"name": "Cleaning",
		"icon": "spray-bottle",
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created map[string]any
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	id, _ := created["id"].(string)
	if id == "" {
		t.Fatal("expected category id in response")
	}

	// Rename and drop the icon.
	req, _ = authRequest("PUT", server.URL+"/api/categories/"+id, token, map[string]any{
		"name": "Household",
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// List reflects the update.
	req, _ = authRequest("GET", server.URL+"/api/categories", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	var categories []map[string]any
	json.NewDecoder(resp.Body).Decode(&categories)
	resp.Body.Close()

	if len(categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(categories))
	}
	if categories[0]["name"] != "Household" {
		t.Errorf("expected renamed category, got %v", categories[0]["name"])
	}
}
