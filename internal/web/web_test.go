package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	authservice "kitserver/auth/service"
	"kitserver/auth/storage/mem"
	"kitserver/internal/config"
	"kitserver/internal/domain"
	"kitserver/internal/logger"
	"kitserver/internal/service"
	"kitserver/internal/storage"
	"kitserver/internal/web/webpath"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKitStorage struct {
	kits map[uuid.UUID]domain.ModelKit
}

func (m *memKitStorage) ListKits(_ context.Context) ([]domain.ModelKit, error) {
	list := make([]domain.ModelKit, 0, len(m.kits))
	for _, kit := range m.kits {
		list = append(list, kit)
	}
	return list, nil
}

func (m *memKitStorage) GetKit(_ context.Context, id uuid.UUID) (domain.ModelKit, error) {
	kit, ok := m.kits[id]
	if !ok {
		return domain.ModelKit{}, storage.ErrKitNotFound
	}
	return kit, nil
}

func (m *memKitStorage) CreateKit(_ context.Context, kit domain.ModelKit) error {
	m.kits[kit.ID] = kit
	return nil
}

func (m *memKitStorage) DeleteKit(_ context.Context, id uuid.UUID) error {
	delete(m.kits, id)
	return nil
}

func newTestServer(t *testing.T) (*Server, *authservice.Service) {
	t.Helper()
	st := mem.New()
	auth, err := authservice.New(context.Background(), logger.New(), authservice.Config{
		SessionTTL:    "10m",
		AdminNickname: "root",
		AdminPassword: "rootpw",
		BcryptCost:    4,
	}, st, st)
	require.NoError(t, err)
	kitService := service.New(&memKitStorage{kits: make(map[uuid.UUID]domain.ModelKit)}, nil)
	server, err := New(logger.New(), config.Server{}, kitService, auth, nil)
	require.NoError(t, err)
	return server, auth
}

func sessionCookieFor(t *testing.T, auth *authservice.Service, nickname, password string) *http.Cookie {
	t.Helper()
	ctx := context.Background()
	user, err := auth.SignIn(ctx, nickname, password)
	require.NoError(t, err)
	session, err := auth.StartSession(ctx, user.ID)
	require.NoError(t, err)
	return &http.Cookie{Name: authservice.SessionCookieName, Value: session.Token.String()}
}

func formRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestPublicIndex(t *testing.T) {
	t.Parallel()
	server, _ := newTestServer(t)

	resp, err := server.app.Test(httptest.NewRequest(http.MethodGet, webpath.Home, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestKitsRedirectAnonymous(t *testing.T) {
	t.Parallel()
	server, _ := newTestServer(t)

	resp, err := server.app.Test(httptest.NewRequest(http.MethodGet, webpath.Kits, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, webpath.Login, resp.Header.Get("Location"))
}

func TestAdminRoleGate(t *testing.T) {
	t.Parallel()
	server, auth := newTestServer(t)

	_, err := auth.SignUp(context.Background(), "alice", "pw123", "")
	require.NoError(t, err)

	tests := []struct {
		name     string
		nickname string
		password string
		want     int
	}{
		{name: "plain user", nickname: "alice", password: "pw123", want: http.StatusForbidden},
		{name: "admin", nickname: "root", password: "rootpw", want: http.StatusOK},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, webpath.Admin, nil)
			req.AddCookie(sessionCookieFor(t, auth, tt.nickname, tt.password))
			resp, err := server.app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAdminRedirectsAnonymous(t *testing.T) {
	t.Parallel()
	server, _ := newTestServer(t)

	resp, err := server.app.Test(httptest.NewRequest(http.MethodGet, webpath.Admin, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, webpath.Login, resp.Header.Get("Location"))
}

func TestSignupFlow(t *testing.T) {
	t.Parallel()
	server, _ := newTestServer(t)

	resp, err := server.app.Test(formRequest(webpath.Signup, url.Values{
		"nickname":        {"bob"},
		"full_name":       {"Bob B."},
		"password":        {"secret"},
		"password-repeat": {"secret"},
	}), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, webpath.Kits, resp.Header.Get("Location"))

	var session *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == authservice.SessionCookieName {
			session = cookie
		}
	}
	require.NotNil(t, session)

	req := httptest.NewRequest(http.MethodGet, webpath.Kits, nil)
	req.AddCookie(session)
	resp, err = server.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSignupDuplicateNickname(t *testing.T) {
	t.Parallel()
	server, auth := newTestServer(t)

	_, err := auth.SignUp(context.Background(), "alice", "pw123", "")
	require.NoError(t, err)

	resp, err := server.app.Test(formRequest(webpath.Signup, url.Values{
		"nickname":        {"alice"},
		"password":        {"other"},
		"password-repeat": {"other"},
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), authservice.ErrNicknameTaken.Error())
}

func TestSignInWrongPassword(t *testing.T) {
	t.Parallel()
	server, auth := newTestServer(t)

	_, err := auth.SignUp(context.Background(), "alice", "pw123", "")
	require.NoError(t, err)

	resp, err := server.app.Test(formRequest(webpath.Login, url.Values{
		"nickname": {"alice"},
		"password": {"wrong"},
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), authservice.ErrInvalidCredentials.Error())
}

func TestLogoutDestroysSession(t *testing.T) {
	t.Parallel()
	server, auth := newTestServer(t)

	_, err := auth.SignUp(context.Background(), "alice", "pw123", "")
	require.NoError(t, err)
	cookie := sessionCookieFor(t, auth, "alice", "pw123")

	req := httptest.NewRequest(http.MethodGet, webpath.Logout, nil)
	req.AddCookie(cookie)
	resp, err := server.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, webpath.Home, resp.Header.Get("Location"))

	req = httptest.NewRequest(http.MethodGet, webpath.Kits, nil)
	req.AddCookie(cookie)
	resp, err = server.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, webpath.Login, resp.Header.Get("Location"))
}

func TestDeleteKitOwnership(t *testing.T) {
	t.Parallel()
	server, auth := newTestServer(t)
	ctx := context.Background()

	alice, err := auth.SignUp(ctx, "alice", "pw123", "")
	require.NoError(t, err)
	_, err = auth.SignUp(ctx, "bob", "pw456", "")
	require.NoError(t, err)

	kit, err := server.kitService.CreateKit(ctx, domain.ModelKit{
		Name:    "RX-78-2",
		Scale:   "1/144",
		OwnerID: alice.ID,
	})
	require.NoError(t, err)

	req := formRequest(webpath.Kits+"/"+kit.ID.String()+"/delete", url.Values{})
	req.AddCookie(sessionCookieFor(t, auth, "bob", "pw456"))
	resp, err := server.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = formRequest(webpath.Kits+"/"+kit.ID.String()+"/delete", url.Values{})
	req.AddCookie(sessionCookieFor(t, auth, "alice", "pw123"))
	resp, err = server.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestViewBindingAnonymousOnGarbageCookie(t *testing.T) {
	t.Parallel()
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, webpath.Home, nil)
	req.AddCookie(&http.Cookie{Name: authservice.SessionCookieName, Value: "garbage"})
	resp, err := server.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Sign in")
}
