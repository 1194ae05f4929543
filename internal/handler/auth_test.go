package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/propertyhub/propertyhub-go/internal/model"
	"github.com/propertyhub/propertyhub-go/internal/repository"
	"github.com/propertyhub/propertyhub-go/internal/service"
)

const testSecret = "test-secret"

type fakeUserRepo struct {
	byEmail map[string]*model.User
	byID    map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*model.User),
		byID:    make(map[string]*model.User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if _, exists := r.byEmail[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	r.byEmail[user.Email] = user
	r.byID[user.ID.Hex()] = user
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) delete(id string) {
	if u, ok := r.byID[id]; ok {
		delete(r.byEmail, u.Email)
		delete(r.byID, id)
	}
}

type fakePropertyRepo struct {
	properties []model.Property
	seq        int
}

func (r *fakePropertyRepo) Insert(ctx context.Context, p *model.Property) error {
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		r.seq++
		p.CreatedAt = time.Unix(int64(r.seq), 0).UTC()
	}
	r.properties = append(r.properties, *p)
	return nil
}

func (r *fakePropertyRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Property, error) {
	var out []model.Property
	for _, p := range r.properties {
		if p.OwnerID.Hex() == ownerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakePropertyRepo) GetByID(ctx context.Context, ownerID, id string) (*model.Property, error) {
	for i := range r.properties {
		p := r.properties[i]
		if p.ID.Hex() == id && p.OwnerID.Hex() == ownerID {
			return &p, nil
		}
	}
	return nil, repository.ErrPropertyNotFound
}

func (r *fakePropertyRepo) Update(ctx context.Context, ownerID, id string, property *model.Property) error {
	for i := range r.properties {
		if r.properties[i].ID.Hex() == id && r.properties[i].OwnerID.Hex() == ownerID {
			property.ID = r.properties[i].ID
			property.OwnerID = r.properties[i].OwnerID
			property.CreatedAt = r.properties[i].CreatedAt
			r.properties[i] = *property
			return nil
		}
	}
	return repository.ErrPropertyNotFound
}

func (r *fakePropertyRepo) Delete(ctx context.Context, ownerID, id string) error {
	for i := range r.properties {
		if r.properties[i].ID.Hex() == id && r.properties[i].OwnerID.Hex() == ownerID {
			r.properties = append(r.properties[:i], r.properties[i+1:]...)
			return nil
		}
	}
	return repository.ErrPropertyNotFound
}

type testAPI struct {
	router http.Handler
	users  *fakeUserRepo
}

func newTestAPI() *testAPI {
	users := newFakeUserRepo()
	properties := &fakePropertyRepo{}

	authService := service.NewAuthService(users, testSecret, time.Hour)
	propertyService := service.NewPropertyService(properties)

	router := NewRouter(
		NewAuthHandler(authService),
		NewPropertyHandler(propertyService),
		users,
		testSecret,
	)
	return &testAPI{router: router, users: users}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) register(t *testing.T, name, email, password string) model.AuthResponse {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/auth/register", "", model.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp model.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return resp
}

func TestRegisterThenMe(t *testing.T) {
	api := newTestAPI()

	auth := api.register(t, "Ann", "ann@x.com", "secret1")
	if auth.Token == "" {
		t.Fatal("register returned empty token")
	}

	rec := api.do(t, http.MethodGet, "/api/auth/me", auth.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d: %s", rec.Code, rec.Body.String())
	}

	var me model.UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode me response: %v", err)
	}
	if me.ID != auth.User.ID || me.Name != "Ann" || me.Email != "ann@x.com" {
		t.Errorf("me = %+v, want id=%s name=Ann email=ann@x.com", me, auth.User.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	api := newTestAPI()
	api.register(t, "Ann", "ann@x.com", "secret1")

	rec := api.do(t, http.MethodPost, "/api/auth/register", "", model.RegisterRequest{
		Name:     "Impostor",
		Email:    "ann@x.com",
		Password: "secret2",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["detail"] != "Email already registered" {
		t.Errorf("detail = %q, want %q", resp["detail"], "Email already registered")
	}
}

func TestRegisterValidationDetails(t *testing.T) {
	api := newTestAPI()

	rec := api.do(t, http.MethodPost, "/api/auth/register", "", model.RegisterRequest{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "short",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestLoginFailuresAreIdentical(t *testing.T) {
	api := newTestAPI()
	api.register(t, "Ann", "ann@x.com", "secret1")

	wrongPass := api.do(t, http.MethodPost, "/api/auth/login", "", model.LoginRequest{
		Email:    "ann@x.com",
		Password: "wrong-password",
	})
	noUser := api.do(t, http.MethodPost, "/api/auth/login", "", model.LoginRequest{
		Email:    "nobody@x.com",
		Password: "secret1",
	})

	if wrongPass.Code != http.StatusBadRequest || noUser.Code != http.StatusBadRequest {
		t.Fatalf("statuses = %d, %d, want 400, 400", wrongPass.Code, noUser.Code)
	}
	if wrongPass.Body.String() != noUser.Body.String() {
		t.Errorf("responses differ: %q vs %q", wrongPass.Body.String(), noUser.Body.String())
	}
}

func TestLoginSuccessReturnsToken(t *testing.T) {
	api := newTestAPI()
	api.register(t, "Ann", "ann@x.com", "secret1")

	rec := api.do(t, http.MethodPost, "/api/auth/login", "", model.LoginRequest{
		Email:    "ann@x.com",
		Password: "secret1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp model.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	me := api.do(t, http.MethodGet, "/api/auth/me", resp.Token, nil)
	if me.Code != http.StatusOK {
		t.Fatalf("me with login token status = %d", me.Code)
	}
}

func TestMeWithoutTokenRejected(t *testing.T) {
	api := newTestAPI()

	rec := api.do(t, http.MethodGet, "/api/auth/me", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestMeAfterUserDeleted(t *testing.T) {
	api := newTestAPI()
	auth := api.register(t, "Ann", "ann@x.com", "secret1")

	api.users.delete(auth.User.ID)

	rec := api.do(t, http.MethodGet, "/api/auth/me", auth.Token, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["detail"] != "User not found" {
		t.Errorf("detail = %q, want %q", resp["detail"], "User not found")
	}
}

func TestHealth(t *testing.T) {
	api := newTestAPI()

	rec := api.do(t, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
