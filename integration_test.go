package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskhub/backend/internal/config"
	"taskhub/backend/internal/directory"
	"taskhub/backend/internal/handlers"
	"taskhub/backend/internal/models"
	"taskhub/backend/internal/repositories"
	"taskhub/backend/internal/server"
	"taskhub/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func buildApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&models.Task{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	cfg := &config.Config{}
	repo := repositories.NewTaskRepository(db, 0)
	taskHandler := handlers.NewTaskHandler(services.NewTaskService(repo, false))
	userHandler := handlers.NewUserHandler(directory.NewStaticClient([]string{"u1", "u2"}))

	return server.NewRouter(cfg, taskHandler, userHandler)
}

func authHeader(t *testing.T, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub})
	signed, err := token.SignedString([]byte("integration"))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return "Bearer " + signed
}

func doRequest(router *gin.Engine, method, path, auth string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, path, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", auth)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// Full lifecycle: create, read back, delete, read again.
func TestTaskLifecycle(t *testing.T) {
	router := buildApp(t)
	auth := authHeader(t, "u1")

	w := doRequest(router, "POST", "/tasks", auth, []byte(`{"name":"Buy milk"}`))
	if w.Code != http.StatusCreated {
		t.Fatalf("POST: expected status %d, got %d (%s)", http.StatusCreated, w.Code, w.Body.String())
	}

	var created models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to unmarshal create response: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Expected non-empty id")
	}
	if created.UserID != "u1" {
		t.Errorf("Expected userId u1, got %s", created.UserID)
	}
	if created.Status != models.StatusInProgress {
		t.Errorf("Expected default status, got %s", created.Status)
	}
	if created.Priority != models.PriorityMedium {
		t.Errorf("Expected priority medium, got %s", created.Priority)
	}

	w = doRequest(router, "GET", "/tasks/"+created.ID, auth, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET: expected status %d, got %d", http.StatusOK, w.Code)
	}
	var fetched models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("Failed to unmarshal get response: %v", err)
	}
	if fetched.ID != created.ID || fetched.Name != "Buy milk" {
		t.Errorf("GET returned a different record: %+v", fetched)
	}

	w = doRequest(router, "DELETE", "/tasks/"+created.ID, auth, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("DELETE: expected status %d, got %d", http.StatusNoContent, w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("DELETE: expected empty body, got %q", w.Body.String())
	}

	w = doRequest(router, "GET", "/tasks/"+created.ID, auth, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("GET after delete: expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestUpdateClearsOmittedFields(t *testing.T) {
	router := buildApp(t)
	auth := authHeader(t, "u1")

	w := doRequest(router, "POST", "/tasks", auth, []byte(`{"name":"report","description":"with numbers","priority":"high"}`))
	if w.Code != http.StatusCreated {
		t.Fatalf("POST: expected status %d, got %d", http.StatusCreated, w.Code)
	}
	var created models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	// PUT with only name: the other mutable fields must come back cleared.
	w = doRequest(router, "PUT", "/tasks/"+created.ID, auth, []byte(`{"name":"report v2"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("PUT: expected status %d, got %d (%s)", http.StatusOK, w.Code, w.Body.String())
	}
	var updated models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if updated.Name != "report v2" {
		t.Errorf("Expected new name, got %s", updated.Name)
	}
	if updated.Description != "" {
		t.Errorf("Expected description cleared, got %q", updated.Description)
	}
	if updated.Priority != "" {
		t.Errorf("Expected priority cleared, got %q", updated.Priority)
	}
	if updated.ID != created.ID || updated.UserID != "u1" {
		t.Errorf("Immutable fields changed: %+v", updated)
	}
}

func TestListPaginationEndToEnd(t *testing.T) {
	router := buildApp(t)
	auth := authHeader(t, "u1")

	for i := 0; i < 5; i++ {
		w := doRequest(router, "POST", "/tasks", auth, []byte(`{"name":"task"}`))
		if w.Code != http.StatusCreated {
			t.Fatalf("POST %d: expected 201, got %d", i, w.Code)
		}
	}

	seen := make(map[string]bool)
	path := "/tasks?limit=2"
	for {
		w := doRequest(router, "GET", path, auth, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("GET: expected 200, got %d", w.Code)
		}
		var page struct {
			Tasks     []models.Task `json:"tasks"`
			NextToken string        `json:"nextToken"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
			t.Fatalf("Failed to unmarshal page: %v", err)
		}
		if len(page.Tasks) > 2 {
			t.Fatalf("Page exceeded limit: %d", len(page.Tasks))
		}
		for _, task := range page.Tasks {
			if seen[task.ID] {
				t.Fatalf("Task %s repeated across pages", task.ID)
			}
			seen[task.ID] = true
		}
		if page.NextToken == "" {
			break
		}
		path = "/tasks?limit=2&nextToken=" + page.NextToken
	}

	if len(seen) != 5 {
		t.Errorf("Expected 5 distinct tasks across pages, got %d", len(seen))
	}
}

func TestListUsersEndToEnd(t *testing.T) {
	router := buildApp(t)
	auth := authHeader(t, "u1")

	w := doRequest(router, "GET", "/users?username=u&limit=1", auth, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /users: expected 200, got %d", w.Code)
	}

	var response struct {
		Users     []string `json:"users"`
		NextToken string   `json:"nextToken"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if len(response.Users) != 1 || response.Users[0] != "u1" {
		t.Errorf("Expected first page [u1], got %v", response.Users)
	}
	if response.NextToken == "" {
		t.Error("Expected a continuation token")
	}
}
