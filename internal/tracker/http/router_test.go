package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	trackerhttp "github.com/uptrack/uptrack/internal/tracker/http"
	"github.com/uptrack/uptrack/internal/tracker/service"
	"github.com/uptrack/uptrack/internal/tracker/storage"
	"github.com/uptrack/uptrack/internal/tracker/store/drivers/sqlite"
	"github.com/uptrack/uptrack/pkg/cryptox"
	"github.com/uptrack/uptrack/pkg/jwtx"
	"github.com/uptrack/uptrack/pkg/slogx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "http-test-*")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

const testSecret = "0123456789abcdef0123456789abcdef"

type testServer struct {
	*httptest.Server
	uploadDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	uploadDir := t.TempDir()
	files, err := storage.NewLocal(uploadDir)
	require.NoError(t, err)

	signer, err := jwtx.NewSignerHS256([]byte(testSecret))
	require.NoError(t, err)
	verifier := jwtx.NewCommonHS256([]byte(testSecret), "uptrack-test")

	logger := slogx.New(slogx.Config{Service: "uptrack", Env: "test", Level: "error", Format: "json"})

	router := trackerhttp.NewRouter(verifier, "test", st, files, uploadDir, logger)
	router.AuthService = &service.AuthService{
		Store:    st,
		Signer:   signer,
		Verifier: verifier,
		Issuer:   "uptrack-test",
	}
	router.UserService = &service.UserService{Store: st}
	router.UploadService = &service.UploadService{Store: st, Files: files}
	router.StatsService = &service.StatsService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, uploadDir: uploadDir}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (*nethttp.Response, map[string]json.RawMessage) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := nethttp.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var envelope map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func (ts *testServer) register(t *testing.T, name, email, password, role string) (token, userID string) {
	t.Helper()

	resp, envelope := ts.do(t, nethttp.MethodPost, "/v1/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password, "role": role,
	})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	require.NoError(t, json.Unmarshal(envelope["token"], &token))
	var user trackerhttp.UserPayload
	require.NoError(t, json.Unmarshal(envelope["user"], &user))
	return token, user.ID
}

func (ts *testServer) uploadFile(t *testing.T, token, fileName, contents string) (*nethttp.Response, map[string]json.RawMessage) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(contents))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := nethttp.NewRequest(nethttp.MethodPost, ts.URL+"/v1/uploads", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var envelope map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func TestAuthEndpoints(t *testing.T) {
	t.Run("register login verify round trip", func(t *testing.T) {
		ts := newTestServer(t)

		token, userID := ts.register(t, "Alice", "alice@x.com", "pw1", "")
		require.NotEmpty(t, token)
		require.NotEmpty(t, userID)

		resp, envelope := ts.do(t, nethttp.MethodPost, "/v1/auth/login", "", map[string]string{
			"email": "alice@x.com", "password": "pw1",
		})
		require.Equal(t, nethttp.StatusOK, resp.StatusCode)

		var loginToken string
		require.NoError(t, json.Unmarshal(envelope["token"], &loginToken))

		resp, envelope = ts.do(t, nethttp.MethodPost, "/v1/auth/verify", loginToken, nil)
		require.Equal(t, nethttp.StatusOK, resp.StatusCode)

		var user trackerhttp.UserPayload
		require.NoError(t, json.Unmarshal(envelope["user"], &user))
		require.Equal(t, userID, user.ID)
		require.Equal(t, "user", user.Role)
	})

	t.Run("bad credentials yield the failure envelope", func(t *testing.T) {
		ts := newTestServer(t)
		ts.register(t, "Alice", "alice@x.com", "pw1", "")

		resp, envelope := ts.do(t, nethttp.MethodPost, "/v1/auth/login", "", map[string]string{
			"email": "alice@x.com", "password": "wrong",
		})
		require.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)

		var success bool
		require.NoError(t, json.Unmarshal(envelope["success"], &success))
		require.False(t, success)
		require.Contains(t, string(envelope["error"]), "invalid credentials")
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		ts := newTestServer(t)
		ts.register(t, "Alice", "alice@x.com", "pw1", "")

		resp, _ := ts.do(t, nethttp.MethodPost, "/v1/auth/register", "", map[string]string{
			"name": "Imposter", "email": "ALICE@X.COM", "password": "pw2",
		})
		require.Equal(t, nethttp.StatusConflict, resp.StatusCode)
	})

	t.Run("login attempts are rate limited", func(t *testing.T) {
		ts := newTestServer(t)

		var last int
		for range 6 {
			resp, _ := ts.do(t, nethttp.MethodPost, "/v1/auth/login", "", map[string]string{
				"email": "ghost@x.com", "password": "guess",
			})
			last = resp.StatusCode
		}
		require.Equal(t, nethttp.StatusTooManyRequests, last)
	})
}

func TestUploadEndpoints(t *testing.T) {
	t.Run("submit then read back", func(t *testing.T) {
		ts := newTestServer(t)
		token, userID := ts.register(t, "Alice", "alice@x.com", "pw1", "")

		resp, envelope := ts.uploadFile(t, token, "sales.csv", "a,b\n1,2\n")
		require.Equal(t, nethttp.StatusCreated, resp.StatusCode)

		var up trackerhttp.UploadPayload
		require.NoError(t, json.Unmarshal(envelope["upload"], &up))
		require.Equal(t, userID, up.UserID)
		require.Equal(t, "completed", up.Status)

		resp, envelope = ts.do(t, nethttp.MethodGet, "/v1/uploads/history/"+userID, token, nil)
		require.Equal(t, nethttp.StatusOK, resp.StatusCode)

		var count int
		require.NoError(t, json.Unmarshal(envelope["count"], &count))
		require.Equal(t, 1, count)

		resp, envelope = ts.do(t, nethttp.MethodGet, "/v1/uploads/"+up.ID, token, nil)
		require.Equal(t, nethttp.StatusOK, resp.StatusCode)

		resp, envelope = ts.do(t, nethttp.MethodGet, "/v1/users/"+userID+"/stats", token, nil)
		require.Equal(t, nethttp.StatusOK, resp.StatusCode)
		require.Contains(t, string(envelope["stats"]), `"totalUploads":1`)
	})

	t.Run("rejected extension purges the stored bytes", func(t *testing.T) {
		ts := newTestServer(t)
		token, _ := ts.register(t, "Alice", "alice@x.com", "pw1", "")

		resp, _ := ts.uploadFile(t, token, "data.exe", "MZ")
		require.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

		entries, err := os.ReadDir(ts.uploadDir)
		require.NoError(t, err)
		require.Empty(t, entries)
	})

	t.Run("delete removes record and bytes", func(t *testing.T) {
		ts := newTestServer(t)
		token, _ := ts.register(t, "Alice", "alice@x.com", "pw1", "")

		resp, envelope := ts.uploadFile(t, token, "gone.csv", "x,y\n")
		require.Equal(t, nethttp.StatusCreated, resp.StatusCode)

		var up trackerhttp.UploadPayload
		require.NoError(t, json.Unmarshal(envelope["upload"], &up))

		resp, _ = ts.do(t, nethttp.MethodDelete, "/v1/uploads/"+up.ID, token, nil)
		require.Equal(t, nethttp.StatusOK, resp.StatusCode)

		resp, _ = ts.do(t, nethttp.MethodGet, "/v1/uploads/"+up.ID, token, nil)
		require.Equal(t, nethttp.StatusNotFound, resp.StatusCode)

		entries, err := os.ReadDir(ts.uploadDir)
		require.NoError(t, err)
		require.Empty(t, entries)
	})

	t.Run("requests without a token are rejected", func(t *testing.T) {
		ts := newTestServer(t)

		resp, _ := ts.do(t, nethttp.MethodGet, "/v1/uploads", "", nil)
		require.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	})
}

func TestAdminEndpoints(t *testing.T) {
	t.Run("system stats require the admin role", func(t *testing.T) {
		ts := newTestServer(t)
		userToken, _ := ts.register(t, "Alice", "alice@x.com", "pw1", "")
		adminToken, _ := ts.register(t, "Root", "root@x.com", "pw2", "admin")

		resp, _ := ts.do(t, nethttp.MethodGet, "/v1/stats/system", userToken, nil)
		require.Equal(t, nethttp.StatusForbidden, resp.StatusCode)

		resp, envelope := ts.do(t, nethttp.MethodGet, "/v1/stats/system", adminToken, nil)
		require.Equal(t, nethttp.StatusOK, resp.StatusCode)
		require.Contains(t, string(envelope["stats"]), `"totalUsers":2`)
	})

	t.Run("user listing and deletion are admin only", func(t *testing.T) {
		ts := newTestServer(t)
		userToken, userID := ts.register(t, "Alice", "alice@x.com", "pw1", "")
		adminToken, _ := ts.register(t, "Root", "root@x.com", "pw2", "admin")

		resp, _ := ts.do(t, nethttp.MethodGet, "/v1/users", userToken, nil)
		require.Equal(t, nethttp.StatusForbidden, resp.StatusCode)

		resp, envelope := ts.do(t, nethttp.MethodGet, "/v1/users", adminToken, nil)
		require.Equal(t, nethttp.StatusOK, resp.StatusCode)

		var count int
		require.NoError(t, json.Unmarshal(envelope["count"], &count))
		require.Equal(t, 2, count)

		resp, _ = ts.do(t, nethttp.MethodDelete, "/v1/users/"+userID, userToken, nil)
		require.Equal(t, nethttp.StatusForbidden, resp.StatusCode)

		resp, _ = ts.do(t, nethttp.MethodDelete, "/v1/users/"+userID, adminToken, nil)
		require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	})

	t.Run("role changes flow through the update endpoint", func(t *testing.T) {
		ts := newTestServer(t)
		userToken, userID := ts.register(t, "Alice", "alice@x.com", "pw1", "")
		adminToken, _ := ts.register(t, "Root", "root@x.com", "pw2", "admin")

		resp, _ := ts.do(t, nethttp.MethodPut, "/v1/users/"+userID, userToken, map[string]string{
			"role": "admin",
		})
		require.Equal(t, nethttp.StatusForbidden, resp.StatusCode)

		resp, envelope := ts.do(t, nethttp.MethodPut, "/v1/users/"+userID, adminToken, map[string]string{
			"role": "editor",
		})
		require.Equal(t, nethttp.StatusOK, resp.StatusCode)

		var user trackerhttp.UserPayload
		require.NoError(t, json.Unmarshal(envelope["user"], &user))
		require.Equal(t, "editor", user.Role)
	})
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t)

	resp, envelope := ts.do(t, nethttp.MethodGet, "/livez", "", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.Contains(t, string(envelope["status"]), "ok")

	resp, envelope = ts.do(t, nethttp.MethodGet, "/readyz", "", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.Contains(t, string(envelope["checks"]), `"database":"ok"`)
}
