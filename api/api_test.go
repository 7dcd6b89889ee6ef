package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toqaosama/portfolio-backend/config"
	"github.com/toqaosama/portfolio-backend/database"
	"github.com/toqaosama/portfolio-backend/database/dbtest"
	"github.com/toqaosama/portfolio-backend/models"
	"github.com/toqaosama/portfolio-backend/realtime"
	"github.com/toqaosama/portfolio-backend/services"
	"github.com/toqaosama/portfolio-backend/site"
	"github.com/toqaosama/portfolio-backend/storage"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type memoryBucket struct {
	keys []string
}

func (b *memoryBucket) Upload(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	if strings.HasSuffix(key, "broken.png") {
		return errors.New("connection reset")
	}
	if _, err := io.ReadAll(body); err != nil {
		return err
	}
	b.keys = append(b.keys, key)
	return nil
}

func (b *memoryBucket) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type testEnv struct {
	router   *chi.Mux
	contacts *dbtest.Table[models.ContactMessageRow]
	projects *dbtest.Table[models.ProjectRow]
	bucket   *memoryBucket
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		contacts: dbtest.NewTable[models.ContactMessageRow](),
		projects: dbtest.NewTable[models.ProjectRow](),
		bucket:   &memoryBucket{},
	}
	db := database.FromTables(database.Tables{
		Projects:        env.projects,
		Skills:          dbtest.NewTable[models.SkillRow](),
		Experiences:     dbtest.NewTable[models.ExperienceRow](),
		ContactMessages: env.contacts,
		AdminUsers:      dbtest.NewTable[models.AdminUser](),
	})
	broker := realtime.NewBroker()
	db.ContactMessageRepo().UsePublisher(broker)

	settings := config.Settings{
		Env: "test",
		Auth: config.AuthSettings{
			JWTSecret:   testSecret,
			TokenTTL:    time.Hour,
			AllowSignup: true,
		},
		Site: config.SiteSettings{
			Content:              config.ContentStatic,
			PageSize:             6,
			ContactRatePerMinute: 60,
			ContactBurst:         3,
		},
	}

	s, err := site.New(site.StaticSource{}, settings.Site.PageSize)
	require.NoError(t, err)

	deps := Dependencies{
		Database: db,
		Site:     s,
		Contact:  services.NewContactService(db.ContactMessageRepo(), nil),
		Auth:     services.NewAuthService(db.AdminUserRepo(), settings.Auth),
		Uploader: storage.NewUploader(env.bucket),
		Broker:   broker,
	}
	env.router = newRouter(deps, withSettings(settings), withStartupTime(time.Now()))
	return env
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target string, body any) *http.Request {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withToken(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// signIn creates the dashboard account and returns its session token.
func (e *testEnv) signIn(t *testing.T) string {
	t.Helper()
	creds := services.Credentials{Email: "owner@example.com", Password: "correct horse"}

	rec := e.do(jsonRequest(http.MethodPost, "/api/auth/signup", creds))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = e.do(jsonRequest(http.MethodPost, "/api/auth/signin", creds))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var session services.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

func TestPageRendersStaticContent(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Toqa Osama")
	assert.NotContains(t, rec.Body.String(), `hx-get="/sections/projects"`)
}

func TestUnknownSectionIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/sections/blog", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSectionFragment(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/sections/skills", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<html")
}

func TestPublicProjectsAreJSON(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/projects", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var projects []models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &projects))
	assert.Empty(t, projects)
}

func TestAdminRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/admin/projects", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(withToken(httptest.NewRequest(http.MethodGet, "/api/admin/projects", nil), "not-a-token"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/auth/user", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDashboardRedirectsWithoutSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestSignInSetsSessionCookie(t *testing.T) {
	env := newTestEnv(t)
	token := env.signIn(t)

	rec := env.do(jsonRequest(http.MethodPost, "/api/auth/signin", services.Credentials{Email: "owner@example.com", Password: "correct horse"}))
	require.Equal(t, http.StatusOK, rec.Code)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: cookie.Value})
	rec = env.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	var user services.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "owner@example.com", user.Email)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
	rec = env.do(req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "owner@example.com")
}

func TestSignInRejectsBadPassword(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t)

	rec := env.do(jsonRequest(http.MethodPost, "/api/auth/signin", services.Credentials{Email: "owner@example.com", Password: "wrong password"}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestProjectCRUD(t *testing.T) {
	env := newTestEnv(t)
	token := env.signIn(t)

	rec := env.do(withToken(jsonRequest(http.MethodPost, "/api/admin/projects", map[string]any{
		"title":        "Store",
		"technologies": "Shopify, Liquid",
		"category":     "SHOPIFY",
	}), token))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Store", created.Title)
	assert.Equal(t, []string{"Shopify", "Liquid"}, created.Technologies)
	assert.Equal(t, "shopify", created.Category)

	rec = env.do(withToken(httptest.NewRequest(http.MethodGet, "/api/admin/project/"+created.ID.String(), nil), token))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(withToken(jsonRequest(http.MethodPut, "/api/admin/project/"+created.ID.String(), map[string]any{
		"title":    "Store v2",
		"live_url": "null",
	}), token))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Store v2", updated.Title)
	assert.Empty(t, updated.LiveURL)

	rec = env.do(withToken(httptest.NewRequest(http.MethodDelete, "/api/admin/project/"+created.ID.String(), nil), token))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(withToken(httptest.NewRequest(http.MethodGet, "/api/admin/project/"+created.ID.String(), nil), token))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProjectValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.signIn(t)

	rec := env.do(withToken(jsonRequest(http.MethodPost, "/api/admin/projects", map[string]any{"title": ""}), token))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := withToken(httptest.NewRequest(http.MethodPost, "/api/admin/projects", strings.NewReader("{")), token)
	rec = env.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(withToken(httptest.NewRequest(http.MethodGet, "/api/admin/project/not-a-uuid", nil), token))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadProjectImagesReportsFailures(t *testing.T) {
	env := newTestEnv(t)
	token := env.signIn(t)

	rec := env.do(withToken(jsonRequest(http.MethodPost, "/api/admin/projects", map[string]any{
		"title":  "Gallery",
		"images": []string{"https://cdn.example.com/first.png"},
	}), token))
	require.Equal(t, http.StatusCreated, rec.Code)
	var project models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &project))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range []struct{ name, contentType string }{
		{"cover.png", "image/png"},
		{"notes.txt", "text/plain"},
		{"broken.png", "image/png"},
		{"detail.jpg", "image/jpeg"},
	} {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="files"; filename="`+f.name+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("data"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := withToken(httptest.NewRequest(http.MethodPost, "/api/admin/project/"+project.ID.String()+"/images", &body), token)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec = env.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ImageUploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.URLs, 2)
	assert.Contains(t, resp.URLs[0], "cover.png")
	assert.Contains(t, resp.URLs[1], "detail.jpg")
	require.Len(t, resp.Failures, 2)
	assert.Equal(t, "notes.txt", resp.Failures[0].Name)
	assert.True(t, resp.Failures[0].Skipped)
	assert.Equal(t, storage.NotAnImageMessage, resp.Failures[0].Message)
	assert.Equal(t, "broken.png", resp.Failures[1].Name)
	assert.False(t, resp.Failures[1].Skipped)

	want := append([]string{"https://cdn.example.com/first.png"}, resp.URLs...)
	assert.Equal(t, want, resp.Project.Images)

	rec = env.do(withToken(httptest.NewRequest(http.MethodGet, "/api/auth/user", nil), token))
	require.Equal(t, http.StatusOK, rec.Code)
	var user services.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	require.Len(t, env.bucket.keys, 2)
	for _, key := range env.bucket.keys {
		assert.True(t, strings.HasPrefix(key, user.ID.String()+"/"), key)
		assert.False(t, strings.HasPrefix(key, project.ID.String()), key)
	}
}

func TestContactSavedEvenWhenEmailFails(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(jsonRequest(http.MethodPost, "/api/contact", models.ContactSubmission{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Hello",
		Message: "Let's talk.",
	}))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var outcome services.ContactOutcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	assert.Equal(t, services.StateSaved, outcome.State)
	assert.Equal(t, services.EmailFailed, outcome.Email)
	assert.Len(t, env.contacts.Rows(), 1)
}

func TestContactRejectsInvalidSubmission(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(jsonRequest(http.MethodPost, "/api/contact", models.ContactSubmission{Name: "Ada", Email: "nope"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, env.contacts.Rows())
}

func TestContactFormAnswersWithFragment(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader("name=Ada&email=bad&message=hi"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := env.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Check the form")
	assert.Empty(t, env.contacts.Rows())
}

func TestContactIsRateLimited(t *testing.T) {
	env := newTestEnv(t)
	sub := models.ContactSubmission{Name: "Ada", Email: "ada@example.com", Message: "hi"}

	for i := 0; i < 3; i++ {
		rec := env.do(jsonRequest(http.MethodPost, "/api/contact", sub))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := env.do(jsonRequest(http.MethodPost, "/api/contact", sub))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Len(t, env.contacts.Rows(), 3)

	other := jsonRequest(http.MethodPost, "/api/contact", sub)
	other.RemoteAddr = "198.51.100.7:4000"
	assert.Equal(t, http.StatusCreated, env.do(other).Code)
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "configured", health.Store)
	assert.Equal(t, "static", health.Content)
}

func TestStaticAssets(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/site.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
}

func TestContactStream(t *testing.T) {
	env := newTestEnv(t)
	token := env.signIn(t)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/admin/contacts/stream", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	next := func() string {
		require.True(t, lines.Scan(), "stream ended early")
		return lines.Text()
	}

	assert.Equal(t, "event: snapshot", next())
	assert.Equal(t, "data: []", next())
	assert.Equal(t, "", next())

	payload, _ := json.Marshal(models.ContactSubmission{Name: "Ada", Email: "ada@example.com", Message: "hi"})
	post, err := http.Post(srv.URL+"/api/contact", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	post.Body.Close()
	require.Equal(t, http.StatusCreated, post.StatusCode)

	assert.Equal(t, "event: insert", next())
	data := strings.TrimPrefix(next(), "data: ")
	var msg models.ContactMessage
	require.NoError(t, json.Unmarshal([]byte(data), &msg))
	assert.Equal(t, "ada@example.com", msg.Email)
}

func TestUploadRequiresMultipart(t *testing.T) {
	env := newTestEnv(t)
	token := env.signIn(t)

	rec := env.do(withToken(jsonRequest(http.MethodPost, "/api/admin/uploads", map[string]string{"file": "x"}), token))

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Empty(t, env.bucket.keys)
}
