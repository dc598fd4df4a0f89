package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"anonboard/internal/db"
	"anonboard/internal/middleware"
	"anonboard/internal/models"
	"anonboard/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const moderatorUA = "Mozilla/5.0 modtoken-7f3a"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	// Roster and audit sink for the whole test binary; the singletons
	// read these on first use.
	dir, err := os.MkdirTemp("", "handlers-test")
	if err != nil {
		panic(err)
	}

	rosterPath := filepath.Join(dir, "moderators.txt")
	if err := os.WriteFile(rosterPath, []byte("modtoken-7f3a,Alice\n"), 0644); err != nil {
		panic(err)
	}
	os.Setenv("MODERATORS_FILE", rosterPath)
	os.Setenv("ACTIVITY_LOG_FILE", filepath.Join(dir, "safety_logs.txt"))

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func setupTest(t *testing.T) *gin.Engine {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	db.DB = conn

	r := gin.New()
	r.Use(middleware.ResolveIdentity())

	postHandler := NewPostHandler()
	commentHandler := NewCommentHandler()
	voteHandler := NewVoteHandler()

	r.GET("/posts", postHandler.List)
	r.POST("/posts", postHandler.Create)
	r.GET("/posts/:id/comments", commentHandler.List)
	r.POST("/posts/:id/comments", commentHandler.Create)
	r.POST("/posts/:id/like", voteHandler.Like)
	r.POST("/posts/:id/dislike", voteHandler.Dislike)

	moderated := r.Group("/")
	moderated.Use(middleware.ModeratorRequired())
	{
		moderated.DELETE("/posts/:id", postHandler.Delete)
		moderated.DELETE("/comments/:id", commentHandler.Delete)
	}
	return r
}

func doJSON(r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePostValidation(t *testing.T) {
	r := setupTest(t)

	w := doJSON(r, "POST", "/posts", `{"anon_name":"","content":"hi"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty anon_name, got %d", w.Code)
	}

	w = doJSON(r, "POST", "/posts", `{"anon_name":"bob","content":"hi"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad JSON: %v", err)
	}
	if resp["uuid"] == "" || resp["message"] != "Post created" {
		t.Errorf("Unexpected response: %v", resp)
	}
}

// Moderator viewers see the badge on every author name, including
// non-moderator authors. Anonymous viewers never see it.
func TestBadgeShownToModeratorViewers(t *testing.T) {
	r := setupTest(t)
	if _, err := services.CreatePost("bob", "hi"); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	w := doJSON(r, "GET", "/posts", "", map[string]string{"User-Agent": moderatorUA})
	var posts []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &posts); err != nil {
		t.Fatalf("Bad JSON: %v", err)
	}
	name := posts[0]["anon_name"].(string)
	if !strings.HasPrefix(name, `<i class="fas fa-user-shield blue-moderator-icon"></i> `) {
		t.Errorf("Expected badge prefix for moderator viewer, got %q", name)
	}
	if !strings.HasSuffix(name, "bob") {
		t.Errorf("Expected author name preserved, got %q", name)
	}

	w = doJSON(r, "GET", "/posts", "", map[string]string{"User-Agent": "plain-browser"})
	if err := json.Unmarshal(w.Body.Bytes(), &posts); err != nil {
		t.Fatalf("Bad JSON: %v", err)
	}
	if posts[0]["anon_name"] != "bob" {
		t.Errorf("Expected plain name for anonymous viewer, got %q", posts[0]["anon_name"])
	}
}

func TestLikeEndpoint(t *testing.T) {
	r := setupTest(t)
	post, err := services.CreatePost("bob", "hi")
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	path := fmt.Sprintf("/posts/%d/like", post.ID)

	w := doJSON(r, "POST", path, "", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without Anon-Name header, got %d", w.Code)
	}

	w = doJSON(r, "POST", path, "", map[string]string{"Anon-Name": "carol"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]float64
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["likes"] != 1 {
		t.Errorf("Expected likes=1, got %v", resp)
	}

	w = doJSON(r, "POST", path, "", map[string]string{"Anon-Name": "carol"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 on repeat like, got %d", w.Code)
	}
	var msg map[string]string
	json.Unmarshal(w.Body.Bytes(), &msg)
	if msg["message"] != "Already liked" {
		t.Errorf("Expected 'Already liked', got %q", msg["message"])
	}

	// Same caller switching to dislike is an override, not a rejection
	w = doJSON(r, "POST", fmt.Sprintf("/posts/%d/dislike", post.ID), "", map[string]string{"Anon-Name": "carol"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on override, got %d: %s", w.Code, w.Body.String())
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["dislikes"] != 1 {
		t.Errorf("Expected dislikes=1 after override, got %v", resp)
	}
}

func TestDeletePostAuthorization(t *testing.T) {
	r := setupTest(t)
	post, err := services.CreatePost("bob", "hi")
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	path := fmt.Sprintf("/posts/%d", post.ID)

	w := doJSON(r, "DELETE", path, "", map[string]string{"User-Agent": "plain-browser"})
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for non-moderator, got %d", w.Code)
	}
	var count int64
	db.DB.Model(&models.Post{}).Count(&count)
	if count != 1 {
		t.Errorf("Post must survive an unauthorized delete, count=%d", count)
	}

	w = doJSON(r, "DELETE", path, "", map[string]string{"User-Agent": moderatorUA})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for moderator, got %d: %s", w.Code, w.Body.String())
	}
	db.DB.Model(&models.Post{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected post deleted, count=%d", count)
	}

	w = doJSON(r, "DELETE", path, "", map[string]string{"User-Agent": moderatorUA})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 on second delete, got %d", w.Code)
	}
}

// The delete handlers enforce authorization themselves, so a route wired
// without the ModeratorRequired gate still rejects anonymous callers.
func TestDeleteHandlerEnforcesAuthorization(t *testing.T) {
	setupTest(t)
	post, err := services.CreatePost("bob", "hi")
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	r := gin.New()
	r.Use(middleware.ResolveIdentity())
	r.DELETE("/posts/:id", NewPostHandler().Delete)

	w := doJSON(r, "DELETE", fmt.Sprintf("/posts/%d", post.ID), "", map[string]string{"User-Agent": "plain-browser"})
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 from the handler's own check, got %d", w.Code)
	}
	var count int64
	db.DB.Model(&models.Post{}).Count(&count)
	if count != 1 {
		t.Errorf("Post must survive an unauthorized delete, count=%d", count)
	}
}

func TestCommentEndpoints(t *testing.T) {
	r := setupTest(t)
	post, err := services.CreatePost("bob", "hi")
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	w := doJSON(r, "POST", "/posts/no-such-token/comments", `{"anon_name":"carol","content":"hey"}`, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown post token, got %d", w.Code)
	}

	w = doJSON(r, "POST", "/posts/"+post.UUID+"/comments", `{"anon_name":"carol","content":"hey"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(r, "GET", "/posts/"+post.UUID+"/comments", "", nil)
	var comments []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &comments); err != nil {
		t.Fatalf("Bad JSON: %v", err)
	}
	if len(comments) != 1 || comments[0]["anon_name"] != "carol" || comments[0]["content"] != "hey" {
		t.Errorf("Unexpected comments: %v", comments)
	}
}
