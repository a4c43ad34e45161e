package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"varboard/internal/model"
	"varboard/internal/session"
)

type recordedRequest struct {
	Method        string
	Path          string
	EscapedPath   string
	Authorization string
	ContentType   string
	Body          string
}

type backendStub struct {
	mu       sync.Mutex
	requests []recordedRequest
	reply    map[string]func(w http.ResponseWriter)
}

func newBackendStub(t *testing.T) (*backendStub, *httptest.Server) {
	stub := &backendStub{reply: map[string]func(w http.ResponseWriter){}}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		stub.mu.Lock()
		stub.requests = append(stub.requests, recordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			EscapedPath:   r.URL.EscapedPath(),
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			Body:          string(raw),
		})
		reply := stub.reply[r.Method+" "+r.URL.Path]
		stub.mu.Unlock()

		if reply == nil {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
			return
		}
		reply(w)
	}))
	t.Cleanup(server.Close)
	return stub, server
}

func (s *backendStub) on(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reply[method+" "+path] = func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (s *backendStub) last() recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[len(s.requests)-1]
}

func (s *backendStub) all() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordedRequest(nil), s.requests...)
}

func newTestClient(t *testing.T, baseURL string, store session.CredentialStore) *Client {
	sess, err := session.Open(context.Background(), store)
	require.NoError(t, err)
	return New(sess, WithBaseURL(baseURL+"/api"))
}

func loggedInClient(t *testing.T, baseURL string) *Client {
	store := session.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), "tok-123", session.MaxAge))
	return newTestClient(t, baseURL, store)
}

func TestNew_Defaults(t *testing.T) {
	c := New(nil)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, "http://localhost:8080/api", c.baseURL)
}

func TestLogin_PersistsCookieOnSuccess(t *testing.T) {
	stub, server := newBackendStub(t)
	stub.on(http.MethodPost, "/api/login", http.StatusOK, `{"token":"jwt-abc"}`)

	cookiePath := filepath.Join(t.TempDir(), "cookies")
	c := newTestClient(t, server.URL, session.NewCookieStore(cookiePath))

	token, err := c.Login(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", token)
	assert.Equal(t, "jwt-abc", c.Session().Token())

	req := stub.last()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Empty(t, req.Authorization)
	assert.Equal(t, "application/json", req.ContentType)
	assert.JSONEq(t, `{"username":"alice","password":"pw1"}`, req.Body)

	raw, err := os.ReadFile(cookiePath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "jwt=jwt-abc")
	assert.Contains(t, string(raw), "Max-Age=2592000")
}

func TestLogin_WithoutTokenNeverWritesCookie(t *testing.T) {
	stub, server := newBackendStub(t)
	stub.on(http.MethodPost, "/api/login", http.StatusUnauthorized, `{"error":"invalid credentials"}`)

	cookiePath := filepath.Join(t.TempDir(), "cookies")
	c := newTestClient(t, server.URL, session.NewCookieStore(cookiePath))

	_, err := c.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrLoginFailed)
	assert.False(t, c.Session().Authenticated())

	_, statErr := os.Stat(cookiePath)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestRegister_LogsInImplicitly(t *testing.T) {
	stub, server := newBackendStub(t)
	stub.on(http.MethodPost, "/api/register", http.StatusCreated, `{"status":"ok"}`)
	stub.on(http.MethodPost, "/api/login", http.StatusOK, `{"token":"fresh"}`)

	c := newTestClient(t, server.URL, session.NewMemoryStore())

	token, err := c.Register(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "fresh", token)

	reqs := stub.all()
	require.Len(t, reqs, 2)
	assert.Equal(t, "/api/register", reqs[0].Path)
	assert.JSONEq(t, `{"username":"alice","password":"pw1"}`, reqs[0].Body)
	assert.Equal(t, "/api/login", reqs[1].Path)
}

func TestRegister_FailedRegistrationStillAttemptsLogin(t *testing.T) {
	stub, server := newBackendStub(t)
	stub.on(http.MethodPost, "/api/register", http.StatusBadRequest, `{"error":"UNIQUE constraint failed"}`)
	stub.on(http.MethodPost, "/api/login", http.StatusUnauthorized, `{"error":"invalid credentials"}`)

	c := newTestClient(t, server.URL, session.NewMemoryStore())

	_, err := c.Register(context.Background(), "alice", "pw1")
	assert.ErrorIs(t, err, ErrLoginFailed)
	assert.Len(t, stub.all(), 2)
}

func TestLoadProjects_EmptyBodies(t *testing.T) {
	for name, body := range map[string]string{"null": "null", "empty": "", "blank": "  \n"} {
		t.Run(name, func(t *testing.T) {
			stub, server := newBackendStub(t)
			stub.on(http.MethodGet, "/api/projects", http.StatusOK, body)

			projects, err := loggedInClient(t, server.URL).LoadProjects(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, projects)
			assert.Empty(t, projects)
		})
	}
}

func TestLoadProjects_DecodesListWithBearer(t *testing.T) {
	stub, server := newBackendStub(t)
	stub.on(http.MethodGet, "/api/projects", http.StatusOK, `[{"id":1,"name":"Foo"},{"id":2,"name":"Bar"}]`)

	projects, err := loggedInClient(t, server.URL).LoadProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, uint(1), projects[0].ID)
	assert.Equal(t, "Bar", projects[1].Name)
	assert.Equal(t, "Bearer tok-123", stub.last().Authorization)
}

func TestLoadProjects_ErrorObjectIsDecodeError(t *testing.T) {
	stub, server := newBackendStub(t)
	stub.on(http.MethodGet, "/api/projects", http.StatusUnauthorized, `{"error":"no token found"}`)

	_, err := loggedInClient(t, server.URL).LoadProjects(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode projects failed")
}

func TestLoadProject_MissingCollectionsAreEmpty(t *testing.T) {
	for name, body := range map[string]string{
		"no tables":    `{"id": 4, "name": "Tasks", "token": "p-tok"}`,
		"null tables":  `{"id": 4, "name": "Tasks", "tables": null}`,
		"no variables": `{"id": 4, "name": "Tasks", "tables": [{"id": 9, "name": "env", "variables": null}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			stub, server := newBackendStub(t)
			stub.on(http.MethodGet, "/api/projects/4", http.StatusOK, body)

			project, err := loggedInClient(t, server.URL).LoadProject(context.Background(), 4)
			require.NoError(t, err)
			assert.NotNil(t, project.Tables)
			for _, table := range project.Tables {
				assert.NotNil(t, table.Variables)
				assert.Empty(t, table.Variables)
			}
		})
	}
}

func TestLoadProject_DecodesNestedTree(t *testing.T) {
	stub, server := newBackendStub(t)
	stub.on(http.MethodGet, "/api/projects/4", http.StatusOK, `{
		"id": 4, "name": "Tasks", "token": "p-tok",
		"tables": [{"id": 9, "name": "env", "variables": [{"name": "debug", "type": "bool", "value": "true"}]}]
	}`)

	project, err := loggedInClient(t, server.URL).LoadProject(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Tasks", project.Name)
	assert.Equal(t, "p-tok", project.Token)
	require.Len(t, project.Tables, 1)
	v := project.Tables[0].FindVariable("debug")
	require.NotNil(t, v)
	assert.Equal(t, model.TypeBool, v.Type)
}

func TestMutations_RequestShapes(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name   string
		call   func(c *Client) error
		method string
		path   string
		body   string
	}{
		{"create project", func(c *Client) error { return c.CreateProject(ctx, "Foo") }, http.MethodPost, "/api/projects", `{"name":"Foo"}`},
		{"update project", func(c *Client) error { return c.UpdateProject(ctx, 3, "Bar") }, http.MethodPut, "/api/projects/3", `{"name":"Bar"}`},
		{"delete project", func(c *Client) error { return c.DeleteProject(ctx, 3) }, http.MethodDelete, "/api/projects/3", ""},
		{"create table", func(c *Client) error { return c.CreateTable(ctx, 3, "env") }, http.MethodPost, "/api/projects/3/tables", `{"name":"env"}`},
		{"rename table", func(c *Client) error { return c.UpdateTableName(ctx, 3, 5, "cfg") }, http.MethodPut, "/api/projects/3/tables/5", `{"name":"cfg"}`},
		{"delete table", func(c *Client) error { return c.DeleteTable(ctx, 3, 5) }, http.MethodDelete, "/api/projects/3/tables/5", ""},
		{"new var", func(c *Client) error { return c.NewVar(ctx, 3, 5, "port", model.TypeString) }, http.MethodPost, "/api/projects/3/tables/5/variables", `{"name":"port","type":"string","value":""}`},
		{"set var", func(c *Client) error { return c.SetVariable(ctx, 3, 5, model.TypeInt, "port") }, http.MethodPut, "/api/projects/3/tables/5/variables/port", `{"new_type":"int"}`},
		{"delete var", func(c *Client) error { return c.DeleteVariable(ctx, "port", 3, 5) }, http.MethodDelete, "/api/projects/3/tables/5/variables/port", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub, server := newBackendStub(t)
			require.NoError(t, tc.call(loggedInClient(t, server.URL)))

			req := stub.last()
			assert.Equal(t, tc.method, req.Method)
			assert.Equal(t, tc.path, req.Path)
			assert.Equal(t, "Bearer tok-123", req.Authorization)
			if tc.body == "" {
				assert.Empty(t, req.Body)
				assert.Empty(t, req.ContentType)
				return
			}
			assert.Equal(t, "application/json", req.ContentType)
			assert.JSONEq(t, tc.body, req.Body)
		})
	}
}

func TestSetVariable_SendsOnlyNewType(t *testing.T) {
	stub, server := newBackendStub(t)

	err := loggedInClient(t, server.URL).SetVariable(context.Background(), 1, 2, model.TypeFloat, "ratio")
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stub.last().Body), &body))
	assert.Equal(t, map[string]interface{}{"new_type": "float"}, body)
}

func TestVariablePath_EscapesName(t *testing.T) {
	stub, server := newBackendStub(t)

	require.NoError(t, loggedInClient(t, server.URL).DeleteVariable(context.Background(), "my var/x", 1, 2))
	assert.Equal(t, "/api/projects/1/tables/2/variables/my%20var%2Fx", stub.last().EscapedPath)
}

func TestMutations_IgnoreErrorStatus(t *testing.T) {
	stub, server := newBackendStub(t)
	stub.on(http.MethodDelete, "/api/projects/1", http.StatusInternalServerError, `{"error":"boom"}`)

	assert.NoError(t, loggedInClient(t, server.URL).DeleteProject(context.Background(), 1))
}

func TestMutations_ReturnTransportErrors(t *testing.T) {
	_, server := newBackendStub(t)
	c := loggedInClient(t, server.URL)
	server.Close()

	err := c.CreateProject(context.Background(), "Foo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POST /api/projects failed")
}

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestWithTransport_Substitution(t *testing.T) {
	var seen *http.Request
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		seen = req
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`[{"id":7,"name":"Offline"}]`)),
			Header:     http.Header{},
		}, nil
	})

	sess, err := session.Open(context.Background(), session.NewMemoryStore())
	require.NoError(t, err)
	c := New(sess, WithTransport(transport))

	projects, err := c.LoadProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "http://localhost:8080/api/projects", seen.URL.String())
	assert.Equal(t, "Bearer ", seen.Header.Get("Authorization"))
}

func TestGetValue(t *testing.T) {
	stub, server := newBackendStub(t)
	stub.on(http.MethodPost, "/api/access", http.StatusOK, `{"value":"8080","type":"int"}`)

	v, err := newTestClient(t, server.URL, session.NewMemoryStore()).GetValue(context.Background(), "p-tok", 5, "port")
	require.NoError(t, err)
	assert.Equal(t, "8080", v.Value)
	assert.Equal(t, model.TypeInt, v.Type)

	req := stub.last()
	assert.Empty(t, req.Authorization)
	assert.JSONEq(t, `{"token":"p-tok","action":"get","table":5,"variable":"port"}`, req.Body)
}

func TestGetValue_NotFound(t *testing.T) {
	stub, server := newBackendStub(t)
	stub.on(http.MethodPost, "/api/access", http.StatusNotFound, `{"error":"variable not found"}`)

	_, err := newTestClient(t, server.URL, session.NewMemoryStore()).GetValue(context.Background(), "p-tok", 5, "port")
	assert.ErrorIs(t, err, ErrVariableNotFound)
}

func TestSetValue_ReportsRejection(t *testing.T) {
	stub, server := newBackendStub(t)
	stub.on(http.MethodPost, "/api/access", http.StatusBadRequest, `{"error":"type is required"}`)

	err := newTestClient(t, server.URL, session.NewMemoryStore()).SetValue(context.Background(), "p-tok", 5, "port", "80", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}
