package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/BloggingApp/feed-service/internal/cache"
	"github.com/BloggingApp/feed-service/internal/config"
	"github.com/BloggingApp/feed-service/internal/dto"
	"github.com/BloggingApp/feed-service/internal/metrics"
	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/repository/memory"
	"github.com/BloggingApp/feed-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

type testUser struct {
	id       uuid.UUID
	username string
	role     string
}

func newTestUser(username string, role string) testUser {
	return testUser{id: uuid.New(), username: username, role: role}
}

func (u testUser) token(t *testing.T) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       u.id.String(),
		"username": u.username,
		"role":     u.role,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	registry := prometheus.NewRegistry()
	appMetrics := metrics.New(registry)
	listing := cache.NewListing(cache.GlobalListing, cache.NewMemoryStore(time.Now), 20*time.Second, cache.WithMetrics(appMetrics))

	services := service.New(service.Deps{
		Logger:  zap.NewNop(),
		Repo:    memory.New(),
		Listing: listing,
		Metrics: appMetrics,
	})

	h := New(zap.NewNop(), services, appMetrics, Config{
		Auth: config.AuthConfig{
			AccessSecret: testSecret,
			LoginURL:     "/auth/login/",
		},
		Gatherer: registry,
	})

	return h.InitRoutes()
}

func doRequest(t *testing.T, r http.Handler, method string, target string, body string, contentType string, user *testUser) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if user != nil {
		req.Header.Set("Authorization", "Bearer "+user.token(t))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(t *testing.T, r http.Handler, target string, values url.Values, user *testUser) *httptest.ResponseRecorder {
	return doRequest(t, r, http.MethodPost, target, values.Encode(), "application/x-www-form-urlencoded", user)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func createPost(t *testing.T, r http.Handler, user testUser, text string) model.Post {
	t.Helper()

	w := postForm(t, r, "/api/v1/posts", url.Values{"text": {text}}, &user)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[model.Post](t, w)
}

func TestCreatePost_RedirectsAnonymousToLogin(t *testing.T) {
	r := newTestRouter(t)

	w := postForm(t, r, "/api/v1/posts", url.Values{"text": {"hello"}}, nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=%2Fapi%2Fv1%2Fposts", w.Header().Get("Location"))
}

func TestCreatePost_InvalidTokenRedirects(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/follow", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
}

func TestCreatePost_ThenVisibleOnProfile(t *testing.T) {
	r := newTestRouter(t)
	leo := newTestUser("leo", "user")

	created := createPost(t, r, leo, "New world order")
	assert.Equal(t, leo.id, created.AuthorID)

	w := doRequest(t, r, http.MethodGet, "/api/v1/users/leo/posts", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decode[dto.Profile](t, w)
	require.Len(t, profile.Page.Items, 1)
	assert.Equal(t, "New world order", profile.Page.Items[0].Post.Text)
	assert.Equal(t, 1, profile.PostsCount)
}

func TestCreatePost_ValidationError(t *testing.T) {
	r := newTestRouter(t)
	leo := newTestUser("leo", "user")

	w := postForm(t, r, "/api/v1/posts", url.Values{"text": {""}}, &leo)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[dto.FieldErrorResponse](t, w)
	assert.False(t, body.Ok)
	assert.Equal(t, "text", body.Field)
}

func TestCreatePost_BlankGroupMeansNone(t *testing.T) {
	r := newTestRouter(t)
	leo := newTestUser("leo", "user")

	w := postForm(t, r, "/api/v1/posts", url.Values{"text": {"hi"}, "group": {""}}, &leo)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Nil(t, decode[model.Post](t, w).GroupID)
}

func TestCreatePost_ImageWithoutMediaStorage(t *testing.T) {
	r := newTestRouter(t)
	leo := newTestUser("leo", "user")

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("text", "with image"))
	part, err := writer.CreateFormFile("image", "cat.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	w := doRequest(t, r, http.MethodPost, "/api/v1/posts", body.String(), writer.FormDataContentType(), &leo)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestEditPost(t *testing.T) {
	r := newTestRouter(t)
	leo := newTestUser("leo", "user")
	ann := newTestUser("ann", "user")
	created := createPost(t, r, leo, "New world order")
	target := "/api/v1/users/leo/posts/" + itoa(created.ID)

	w := doRequest(t, r, http.MethodPatch, target, `{"text":"hijacked"}`, "application/json", &ann)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, r, http.MethodPatch, target, `{"text":"Alabama is not Russia"}`, "application/json", &leo)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, r, http.MethodGet, target, "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	single := decode[dto.SinglePost](t, w)
	assert.Equal(t, "Alabama is not Russia", single.Post.Post.Text)
	assert.Equal(t, 1, single.PostsCount)
}

func TestSinglePost_Errors(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/users/leo/posts/abc", "", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/v1/users/leo/posts/1", "", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGroupPosts_NotFound(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/groups/not_exist/posts", "", "", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decode[dto.BasicResponse](t, w)
	assert.False(t, body.Ok)
}

func TestGroups_AdminFlow(t *testing.T) {
	r := newTestRouter(t)
	admin := newTestUser("root", "admin")
	leo := newTestUser("leo", "user")
	groupJSON := `{"title":"First group","slug":"first_group2"}`

	w := doRequest(t, r, http.MethodPost, "/api/v1/admin/groups", groupJSON, "application/json", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/v1/admin/groups", groupJSON, "application/json", &leo)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/v1/admin/groups", groupJSON, "application/json", &admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	group := decode[model.Group](t, w)

	w = doRequest(t, r, http.MethodPost, "/api/v1/admin/groups", groupJSON, "application/json", &admin)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = postForm(t, r, "/api/v1/posts", url.Values{"text": {"grouped"}, "group": {itoa(group.ID)}}, &leo)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(t, r, http.MethodGet, "/api/v1/groups/first_group2/posts", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	groupPosts := decode[dto.GroupPosts](t, w)
	require.Len(t, groupPosts.Page.Items, 1)
	assert.Equal(t, "grouped", groupPosts.Page.Items[0].Post.Text)

	w = doRequest(t, r, http.MethodGet, "/api/v1/groups", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Group](t, w), 1)

	w = doRequest(t, r, http.MethodDelete, "/api/v1/admin/groups/first_group2", "", "", &admin)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/v1/groups/first_group2/posts", "", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGlobalFeed_CacheAndClear(t *testing.T) {
	r := newTestRouter(t)
	leo := newTestUser("leo", "user")
	admin := newTestUser("root", "mod")
	createPost(t, r, leo, "first")

	w := doRequest(t, r, http.MethodGet, "/api/v1/posts", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[model.Page[*model.FullPost]](t, w).Items, 1)

	createPost(t, r, leo, "second")

	w = doRequest(t, r, http.MethodGet, "/api/v1/posts?page=1", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[model.Page[*model.FullPost]](t, w).Items, 1)

	w = doRequest(t, r, http.MethodPost, "/api/v1/admin/cache/clear", "", "", &admin)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/v1/posts?page=1", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[model.Page[*model.FullPost]](t, w)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "second", page.Items[0].Post.Text)
}

func TestFollow(t *testing.T) {
	r := newTestRouter(t)
	a := newTestUser("a", "user")
	b := newTestUser("b", "user")
	c := newTestUser("c", "user")
	createPost(t, r, b, "from b")
	createPost(t, r, c, "from c")

	w := doRequest(t, r, http.MethodPost, "/api/v1/users/a/follow", "", "", &a)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/v1/users/b/follow", "", "", &a)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/v1/follow", "", "", &a)
	require.Equal(t, http.StatusOK, w.Code)
	feed := decode[model.Page[*model.FullPost]](t, w)
	require.Len(t, feed.Items, 1)
	assert.Equal(t, "from b", feed.Items[0].Post.Text)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/b/posts", nil)
	req.Header.Set("Authorization", "Bearer "+a.token(t))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode[dto.Profile](t, rec)
	assert.True(t, profile.IsFollowing)
	assert.Equal(t, 1, profile.Followers)

	w = doRequest(t, r, http.MethodPost, "/api/v1/users/b/unfollow", "", "", &a)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/v1/users/nobody/follow", "", "", &a)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestComments(t *testing.T) {
	r := newTestRouter(t)
	leo := newTestUser("leo", "user")
	ann := newTestUser("ann", "user")
	created := createPost(t, r, leo, "discuss")
	target := "/api/v1/users/leo/posts/" + itoa(created.ID) + "/comments"

	w := postForm(t, r, target, url.Values{"text": {"hi"}}, nil)
	assert.Equal(t, http.StatusFound, w.Code)

	w = postForm(t, r, target, url.Values{"text": {"hi"}}, &ann)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(t, r, http.MethodGet, target, "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	comments := decode[[]model.FullComment](t, w)
	require.Len(t, comments, 1)
	assert.Equal(t, "ann", comments[0].Author.Username)
}

func TestAdminDeletePost(t *testing.T) {
	r := newTestRouter(t)
	leo := newTestUser("leo", "user")
	admin := newTestUser("root", "admin")
	created := createPost(t, r, leo, "spam")

	w := doRequest(t, r, http.MethodDelete, "/api/v1/admin/posts/"+itoa(created.ID), "", "", &admin)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodDelete, "/api/v1/admin/posts/"+itoa(created.ID), "", "", &admin)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/nothing-here", "", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, decode[dto.BasicResponse](t, w).Ok)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	doRequest(t, r, http.MethodGet, "/api/v1/posts", "", "", nil)

	w := doRequest(t, r, http.MethodGet, "/metrics", "", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "blog_http_request_duration_seconds")
	assert.Contains(t, w.Body.String(), "blog_listing_cache_events_total")
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
