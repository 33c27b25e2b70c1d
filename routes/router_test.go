package routes

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"blog/models"
	"blog/store"
)

func TestMain(m *testing.M) {
	os.Setenv("GIN_MODE", "test")
	os.Setenv("TEMPLATES_GLOB", "../templates/*.html")
	os.Setenv("STATIC_DIR", "../static")
	os.Setenv("RATE_LIMIT_PER_MINUTE", "100000")
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}))

	ts := httptest.NewServer(SetupRouter(db))
	t.Cleanup(ts.Close)
	return ts, store.New(db)
}

// newClient returns an HTTP client that keeps cookies but does not
// follow redirects, so Location headers stay observable.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postForm(t *testing.T, client *http.Client, url string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(url, form)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, client *http.Client, url string) *http.Response {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func register(t *testing.T, client *http.Client, ts *httptest.Server, email, password, name string) *http.Response {
	t.Helper()
	return postForm(t, client, ts.URL+"/register", url.Values{
		"email":    {email},
		"password": {password},
		"name":     {name},
	})
}

func createPost(t *testing.T, client *http.Client, ts *httptest.Server, title string) *http.Response {
	t.Helper()
	return postForm(t, client, ts.URL+"/new-post", url.Values{
		"title":    {title},
		"subtitle": {"A subtitle"},
		"img_url":  {"https://example.com/img.png"},
		"body":     {"<p>Some content</p>"},
	})
}

func TestRegisterCreatesUserAndAuthenticates(t *testing.T) {
	ts, st := newTestServer(t)
	client := newClient(t)

	resp := register(t, client, ts, "a@x.com", "pw", "A")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	user, err := st.UserByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "A", user.Name)
	assert.NotEqual(t, "pw", user.PasswordHash)

	// the first user is the admin, and the session was established
	resp = get(t, client, ts.URL+"/new-post")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterDuplicateEmailRedirectsToLogin(t *testing.T) {
	ts, st := newTestServer(t)

	register(t, newClient(t), ts, "a@x.com", "pw", "A")

	resp := register(t, newClient(t), ts, "a@x.com", "other", "B")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	user, err := st.UserByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "A", user.Name)
}

func TestRegisterValidationRerendersForm(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postForm(t, newClient(t), ts.URL+"/register", url.Values{
		"email": {"a@x.com"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	page := body(t, resp)
	assert.Contains(t, page, "This field is required.")
	assert.Contains(t, page, "a@x.com")
}

func TestLogin(t *testing.T) {
	ts, _ := newTestServer(t)
	register(t, newClient(t), ts, "a@x.com", "pw", "A")

	t.Run("unknown email", func(t *testing.T) {
		client := newClient(t)
		resp := postForm(t, client, ts.URL+"/login", url.Values{
			"email": {"nobody@x.com"}, "password": {"pw"},
		})
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
		assert.Equal(t, http.StatusForbidden, get(t, client, ts.URL+"/new-post").StatusCode)
	})

	t.Run("wrong password", func(t *testing.T) {
		client := newClient(t)
		resp := postForm(t, client, ts.URL+"/login", url.Values{
			"email": {"a@x.com"}, "password": {"wrong"},
		})
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
		assert.Equal(t, http.StatusForbidden, get(t, client, ts.URL+"/new-post").StatusCode)
	})

	t.Run("success", func(t *testing.T) {
		client := newClient(t)
		resp := postForm(t, client, ts.URL+"/login", url.Values{
			"email": {"a@x.com"}, "password": {"pw"},
		})
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
		assert.Equal(t, http.StatusOK, get(t, client, ts.URL+"/new-post").StatusCode)
	})
}

func TestLogoutClearsSession(t *testing.T) {
	ts, _ := newTestServer(t)
	client := newClient(t)
	register(t, client, ts, "a@x.com", "pw", "A")

	resp := get(t, client, ts.URL+"/logout")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	assert.Equal(t, http.StatusForbidden, get(t, client, ts.URL+"/new-post").StatusCode)

	// logout is idempotent
	resp = get(t, client, ts.URL+"/logout")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestAdminRoutesRejectEveryoneButUserOne(t *testing.T) {
	ts, _ := newTestServer(t)
	admin := newClient(t)
	register(t, admin, ts, "a@x.com", "pw", "A")
	other := newClient(t)
	register(t, other, ts, "b@x.com", "pw", "B")

	for _, path := range []string{"/new-post", "/edit-post/1", "/delete/1"} {
		assert.Equal(t, http.StatusForbidden, get(t, newClient(t), ts.URL+path).StatusCode, "anonymous %s", path)
		assert.Equal(t, http.StatusForbidden, get(t, other, ts.URL+path).StatusCode, "second user %s", path)
	}

	assert.Equal(t, http.StatusOK, get(t, admin, ts.URL+"/new-post").StatusCode)
}

func TestPostLifecycle(t *testing.T) {
	ts, st := newTestServer(t)
	admin := newClient(t)
	register(t, admin, ts, "a@x.com", "pw", "A")

	resp := createPost(t, admin, ts, "First Post")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	post, err := st.PostByID(1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), post.UserID)
	assert.Equal(t, time.Now().Format(models.DateLayout), post.Date)

	// duplicate title is rejected by the persistence layer
	resp = createPost(t, admin, ts, "First Post")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// edit keeps the original date and redirects to the post
	resp = postForm(t, admin, ts.URL+"/edit-post/1", url.Values{
		"title":    {"First Post"},
		"subtitle": {"Edited subtitle"},
		"img_url":  {"https://example.com/other.png"},
		"body":     {"<p>Edited</p>"},
	})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/post/1", resp.Header.Get("Location"))

	edited, err := st.PostByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Edited subtitle", edited.Subtitle)
	assert.Equal(t, post.Date, edited.Date)

	page := body(t, get(t, admin, ts.URL+"/post/1"))
	assert.Contains(t, page, "Edited subtitle")

	// delete and verify the post is gone
	resp = get(t, admin, ts.URL+"/delete/1")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, http.StatusNotFound, get(t, admin, ts.URL+"/post/1").StatusCode)
}

func TestCommentFlow(t *testing.T) {
	ts, st := newTestServer(t)
	admin := newClient(t)
	register(t, admin, ts, "a@x.com", "pw", "A")
	createPost(t, admin, ts, "First Post")

	// anonymous commenters are sent to the login page
	resp := postForm(t, newClient(t), ts.URL+"/post/1", url.Values{"comment_text": {"hi"}})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	reader := newClient(t)
	register(t, reader, ts, "b@x.com", "pw", "B")
	resp = postForm(t, reader, ts.URL+"/post/1", url.Values{"comment_text": {"nice post"}})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/post/1", resp.Header.Get("Location"))

	comments, err := st.CommentsByPost(1)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, uint(2), comments[0].UserID)
	assert.Equal(t, "b@x.com", comments[0].User.Email)

	// the commenter is still not an admin
	assert.Equal(t, http.StatusForbidden, get(t, reader, ts.URL+"/new-post").StatusCode)

	// an empty comment re-renders the post page
	resp = postForm(t, reader, ts.URL+"/post/1", url.Values{"comment_text": {""}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUnknownPostIsNotFound(t *testing.T) {
	ts, _ := newTestServer(t)
	admin := newClient(t)
	register(t, admin, ts, "a@x.com", "pw", "A")

	assert.Equal(t, http.StatusNotFound, get(t, newClient(t), ts.URL+"/post/99").StatusCode)
	assert.Equal(t, http.StatusNotFound, get(t, newClient(t), ts.URL+"/post/abc").StatusCode)
	assert.Equal(t, http.StatusNotFound, get(t, admin, ts.URL+"/edit-post/99").StatusCode)
	assert.Equal(t, http.StatusNotFound, get(t, admin, ts.URL+"/delete/99").StatusCode)
	assert.Equal(t, http.StatusNotFound, get(t, newClient(t), ts.URL+"/nowhere").StatusCode)
}

func TestHomeListsPosts(t *testing.T) {
	ts, _ := newTestServer(t)
	admin := newClient(t)
	register(t, admin, ts, "a@x.com", "pw", "A")
	createPost(t, admin, ts, "Hello World")

	page := body(t, get(t, newClient(t), ts.URL+"/"))
	assert.Contains(t, page, "Hello World")
	assert.Contains(t, page, "A subtitle")
}

func TestContactMissingFieldSkipsSend(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postForm(t, newClient(t), ts.URL+"/contact", url.Values{
		"name":    {"A"},
		"email":   {"a@x.com"},
		"phone":   {""},
		"message": {"hello"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Please complete the form.")
}

func TestFlashNoticeShownOnce(t *testing.T) {
	ts, _ := newTestServer(t)
	register(t, newClient(t), ts, "a@x.com", "pw", "A")

	client := newClient(t)
	register(t, client, ts, "a@x.com", "pw", "B")

	page := body(t, get(t, client, ts.URL+"/login"))
	assert.Contains(t, page, "log in instead")

	page = body(t, get(t, client, ts.URL+"/login"))
	assert.NotContains(t, page, "log in instead")
}
