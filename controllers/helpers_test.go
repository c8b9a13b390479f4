// file: controllers/helpers_test.go
package controllers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"go-hb-scoreboard/models"
	"go-hb-scoreboard/store"
)

// setupTestRouter creates a gin engine with session middleware, matching the
// setup in main.go minus the routes.
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	cookieStore := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("testsession", cookieStore))
	return router
}

func newTestStore() *store.Store {
	return store.New(store.NewMemoryStorage())
}

// setSession sets the given key/value pairs via a throwaway route and returns
// the session cookie for subsequent test requests.
func setSession(router *gin.Engine, route string, data map[string]interface{}) *http.Cookie {
	router.GET(route, func(c *gin.Context) {
		session := sessions.Default(c)
		for key, value := range data {
			session.Set(key, value)
		}
		if err := session.Save(); err != nil {
			c.String(http.StatusInternalServerError, "session save failed")
			return
		}
		c.String(http.StatusOK, "session set")
	})

	req, _ := http.NewRequest("GET", route, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.Name == "testsession" {
			return ck
		}
	}
	return nil
}

// doJSON performs a request with an optional JSON body and session cookie.
func doJSON(router *gin.Engine, method, url, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, _ := http.NewRequest(method, url, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedCompetition(t *testing.T, s *store.Store, name string) models.Competition {
	t.Helper()
	comp, err := s.CreateCompetition(models.Competition{Name: name})
	if err != nil {
		t.Fatalf("failed to seed competition: %v", err)
	}
	return comp
}
