package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	v1 "interview-experience-backend/internal/delivery/http/v1"
	"interview-experience-backend/internal/domain"
	"interview-experience-backend/internal/usecase"
	"interview-experience-backend/pkg/auth"
	"interview-experience-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"
)

// In-memory stores with the same atomicity guarantees as the real ones.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func (r *memUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return domain.ErrEmailExists
	}
	r.users[u.Email] = *u
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *memUserRepo) count(email string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.users {
		if u.Email == email {
			n++
		}
	}
	return n
}

type memSubmissionRepo struct {
	mu   sync.Mutex
	rows []domain.Submission
}

func (r *memSubmissionRepo) Create(_ context.Context, s *domain.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	cp.Questions = append([]string(nil), s.Questions...)
	r.rows = append(r.rows, cp)
	return nil
}

func (r *memSubmissionRepo) FindAll(_ context.Context, company string) ([]domain.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Submission{}
	for _, s := range r.rows {
		if company == "" || strings.Contains(strings.ToLower(s.Company), strings.ToLower(company)) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSubmissionRepo) find(id, userID string) int {
	for i, s := range r.rows {
		if s.ID == id && s.UserID == userID {
			return i
		}
	}
	return -1
}

func (r *memSubmissionRepo) FindOneOwned(_ context.Context, id, userID string) (*domain.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.find(id, userID)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	s := r.rows[i]
	return &s, nil
}

func (r *memSubmissionRepo) UpdateOwned(_ context.Context, id, userID string, f domain.SubmissionFields, at time.Time) (*domain.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.find(id, userID)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	r.rows[i].Name, r.rows[i].Country, r.rows[i].Company = f.Name, f.Country, f.Company
	r.rows[i].Questions = f.Questions
	r.rows[i].UpdatedAt = at
	s := r.rows[i]
	return &s, nil
}

func (r *memSubmissionRepo) DeleteOwned(_ context.Context, id, userID string) (*domain.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.find(id, userID)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	s := r.rows[i]
	r.rows = append(r.rows[:i], r.rows[i+1:]...)
	return &s, nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

const secret = "test-secret"

type testServer struct {
	router *gin.Engine
	users  *memUserRepo
	audit  *observer.ObservedLogs
}

func newTestServer() *testServer {
	return newTestServerWithStore(stubPinger{})
}

func newTestServerWithStore(pinger usecase.Pinger) *testServer {
	gin.SetMode(gin.TestMode)
	users := &memUserRepo{users: map[string]domain.User{}}
	subs := &memSubmissionRepo{}
	tokens := auth.NewTokenManager(secret)
	core, logs := observer.New(zapcore.DebugLevel)

	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:         usecase.NewAuthUsecase(users, auth.NewPasswordHasher(bcrypt.MinCost), tokens),
		SubmissionUC:   usecase.NewSubmissionUsecase(subs),
		HealthUC:       usecase.NewHealthUsecase(pinger),
		Tokens:         tokens,
		AllowedOrigins: []string{"http://localhost:3000"},
		Audit:          security.NewSecurityLogger(zap.New(core), "test", "test"),
	})
	return &testServer{router: router, users: users, audit: logs}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/register", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestRegister(t *testing.T) {
	s := newTestServer()

	t.Run("duplicate email fails and leaves one record", func(t *testing.T) {
		creds := gin.H{"email": "dup@example.com", "password": "pw"}
		w := s.do(t, http.MethodPost, "/register", "", creds)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"message":"User registered successfully"}`, w.Body.String())

		w = s.do(t, http.MethodPost, "/register", "", creds)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"message"`)
		assert.Equal(t, 1, s.users.count("dup@example.com"))
	})

	t.Run("concurrent duplicates yield exactly one account", func(t *testing.T) {
		var wg sync.WaitGroup
		codes := make([]int, 6)
		for i := range codes {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				codes[i] = s.do(t, http.MethodPost, "/register", "", gin.H{"email": "race@example.com", "password": "pw"}).Code
			}(i)
		}
		wg.Wait()

		created := 0
		for _, c := range codes {
			if c == http.StatusCreated {
				created++
			} else {
				assert.Equal(t, http.StatusBadRequest, c)
			}
		}
		assert.Equal(t, 1, created)
		assert.Equal(t, 1, s.users.count("race@example.com"))
	})

	t.Run("invalid payloads are 400", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/register", "", gin.H{"email": "x@example.com"}).Code)
		assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/register", "", gin.H{"email": "not-an-email", "password": "pw"}).Code)
		assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/register", "", gin.H{"email": "x@example.com", "password": strings.Repeat("a", 73)}).Code)
	})

	t.Run("password limit counts bytes, not characters", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/register", "", gin.H{"email": "accents@example.com", "password": strings.Repeat("é", 40)})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "at most 72 bytes")
		assert.NotContains(t, w.Body.String(), `"error"`)
		assert.Zero(t, s.users.count("accents@example.com"))

		w = s.do(t, http.MethodPost, "/register", "", gin.H{"email": "accents@example.com", "password": strings.Repeat("é", 36)})
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestLogin(t *testing.T) {
	s := newTestServer()
	token := s.login(t, "alice@example.com", "correct")

	t.Run("token decodes to the registered identity", func(t *testing.T) {
		id, err := auth.NewTokenManager(secret).Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", id.Email)
		stored, err := s.users.GetByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, stored.ID, id.UserID)
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/login", "", gin.H{"email": "alice@example.com", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email is 404", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/login", "", gin.H{"email": "nobody@example.com", "password": "x"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("failures are audited with a masked email", func(t *testing.T) {
		failed := s.audit.FilterMessage(string(security.EventLoginFailed)).All()
		require.Len(t, failed, 2)
		assert.Equal(t, "a***@example.com", failed[0].ContextMap()["subject_value"])
		assert.Contains(t, failed[0].ContextMap()["details"], "invalid_credentials")
		assert.Contains(t, failed[1].ContextMap()["details"], "unknown_email")
		assert.Equal(t, 1, s.audit.FilterMessage(string(security.EventLoginSuccess)).Len())
	})
}

func TestProtectedRoutes(t *testing.T) {
	s := newTestServer()
	token := s.login(t, "alice@example.com", "pw")

	t.Run("greets the caller", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/protected", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Welcome alice@example.com, you have accessed a protected route!"}`, w.Body.String())
	})

	t.Run("missing token is 401 and invalid token is 403", func(t *testing.T) {
		for _, path := range []string{"/protected", "/submissions"} {
			assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, path, "", nil).Code, path)
			assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, path, "garbage", nil).Code, path)
		}
	})

	t.Run("token under another scheme is verified and rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic abc")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), `"message":"Invalid token"`)
	})

	t.Run("foreign secret and expired tokens are 403", func(t *testing.T) {
		foreign, err := auth.NewTokenManager("another-secret").Issue("u", "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/protected", foreign, nil).Code)

		past := time.Now().Add(-2 * time.Hour)
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
			UserID: "u",
			Email:  "alice@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(past),
				ExpiresAt: jwt.NewNumericDate(past.Add(auth.TokenTTL)),
			},
		}).SignedString([]byte(secret))
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/protected", expired, nil).Code)
	})
}

func TestSubmissionLifecycle(t *testing.T) {
	s := newTestServer()
	alice := s.login(t, "alice@example.com", "pw")
	bob := s.login(t, "bob@example.com", "pw")

	w := s.do(t, http.MethodPost, "/submissions", alice, gin.H{
		"name": "Alice", "country": "US", "company": "Acme", "questions": []string{"Q1", "Q2"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[domain.Submission](t, w)
	require.NotEmpty(t, created.ID)

	t.Run("round trip keeps id and question order", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/submissions/"+created.ID, alice, nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[domain.Submission](t, w)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, []string{"Q1", "Q2"}, got.Questions)
		assert.Equal(t, "Alice", got.Name)
		assert.Equal(t, created.UserID, got.UserID)
	})

	t.Run("other users get 404 on get, update and delete", func(t *testing.T) {
		path := "/submissions/" + created.ID
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, path, bob, nil).Code)
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPut, path, bob, gin.H{"name": "x", "country": "x", "company": "x"}).Code)
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, path, bob, nil).Code)

		w := s.do(t, http.MethodGet, path, alice, nil)
		assert.Equal(t, "Acme", decode[domain.Submission](t, w).Company)
	})

	t.Run("malformed id is 404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/submissions/not-an-id", alice, nil).Code)
	})

	t.Run("update replaces every editable field", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/submissions/"+created.ID, alice, gin.H{
			"name": "Alice B", "country": "CA", "company": "Acme Corp", "questions": []string{"Q3"},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		got := decode[domain.Submission](t, w)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "Alice B", got.Name)
		assert.Equal(t, "CA", got.Country)
		assert.Equal(t, []string{"Q3"}, got.Questions)
	})

	t.Run("create with missing fields is 400", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/submissions", alice, gin.H{"name": "Alice", "company": " "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete twice", func(t *testing.T) {
		path := "/submissions/" + created.ID
		w := s.do(t, http.MethodDelete, path, alice, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Submission deleted"}`, w.Body.String())
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, path, alice, nil).Code)
	})
}

func TestSubmissionSearch(t *testing.T) {
	s := newTestServer()
	alice := s.login(t, "alice@example.com", "pw")
	bob := s.login(t, "bob@example.com", "pw")

	for _, tc := range []struct{ token, company string }{
		{alice, "Google"},
		{bob, "GOOGLE INC"},
		{bob, "Amazon"},
	} {
		w := s.do(t, http.MethodPost, "/submissions", tc.token, gin.H{"name": "n", "country": "c", "company": tc.company})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	t.Run("substring match across owners", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/submissions?company=goog", alice, nil)
		require.Equal(t, http.StatusOK, w.Code)
		list := decode[[]domain.Submission](t, w)
		companies := []string{}
		for _, sub := range list {
			companies = append(companies, sub.Company)
		}
		assert.ElementsMatch(t, []string{"Google", "GOOGLE INC"}, companies)
	})

	t.Run("no filter returns everything", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/submissions", bob, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]domain.Submission](t, w), 3)
	})

	t.Run("no match is an empty array", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/submissions?company=netflix", bob, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

func TestHealth(t *testing.T) {
	t.Run("store reachable", func(t *testing.T) {
		s := newTestServer()
		w := s.do(t, http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
	})

	t.Run("store down hides the cause", func(t *testing.T) {
		s := newTestServerWithStore(stubPinger{err: errors.New("dial tcp 10.1.2.3:5432: password authentication failed for user admin")})
		w := s.do(t, http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"database":"unreachable"`)
		assert.NotContains(t, w.Body.String(), "10.1.2.3")
		assert.NotContains(t, w.Body.String(), "admin")
	})
}
