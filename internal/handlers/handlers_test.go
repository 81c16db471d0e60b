package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/01moynul/containerhub-golang/internal/admission"
	"github.com/01moynul/containerhub-golang/internal/auth"
	"github.com/01moynul/containerhub-golang/internal/collab"
	"github.com/01moynul/containerhub-golang/internal/handlers"
	"github.com/01moynul/containerhub-golang/internal/models"
	"github.com/01moynul/containerhub-golang/internal/repository"
	"github.com/01moynul/containerhub-golang/internal/routes"
	"github.com/01moynul/containerhub-golang/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t      *testing.T
	repo   *repository.Repository
	tokens *auth.TokenManager
	router *gin.Engine
	upload string
}

func newServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := testutil.OpenDB(t)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	uploadDir := t.TempDir()

	app := &handlers.Handlers{
		Repo:       repo,
		Tokens:     tokens,
		Collabs:    collab.NewService(repo, collab.PolicyImporter),
		Containers: admission.NewService(repo),
		UploadDir:  uploadDir,
		BaseURL:    "http://api.test",
	}
	router := routes.SetupRouter(app, routes.Options{
		CORSOrigin:  "http://localhost:5173",
		DeciderRole: collab.PolicyImporter.DeciderRole(),
	})

	return &testServer{t: t, repo: repo, tokens: tokens, router: router, upload: uploadDir}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
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

// login creates a user with the role and returns it with a token.
func (s *testServer) login(role string) (*models.User, string) {
	s.t.Helper()
	u := testutil.User(s.t, s.repo, role)
	token, err := s.tokens.GenerateToken(auth.Principal{ID: u.ID, Role: u.Role})
	require.NoError(s.t, err)
	return u, token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func assertError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) map[string]any {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, code, body["code"])
	assert.NotEmpty(t, body["message"])
	return body
}

func id(t *testing.T, body map[string]any, key string) int64 {
	t.Helper()
	obj, ok := body[key].(map[string]any)
	require.True(t, ok, "missing %q in %v", key, body)
	return int64(obj["id"].(float64))
}

func TestPing(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodGet, "/v1/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	w = s.do(http.MethodOptions, "/v1/containers", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	s := newServer(t)

	register := map[string]any{"email": "sup@example.com", "password": "password123", "name": "Sup", "role": "SUPPLIER"}

	w := s.do(http.MethodPost, "/v1/auth/register", "", register)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")

	w = s.do(http.MethodPost, "/v1/auth/register", "", register)
	assertError(t, w, http.StatusConflict, "EMAIL_TAKEN")

	w = s.do(http.MethodPost, "/v1/auth/register", "", map[string]any{"email": "boss@example.com", "password": "password123", "name": "Boss", "role": "ADMIN"})
	assertError(t, w, http.StatusBadRequest, "VALIDATION_ERROR")

	w = s.do(http.MethodPost, "/v1/auth/login", "", map[string]any{"email": "sup@example.com", "password": "wrong-password"})
	assertError(t, w, http.StatusUnauthorized, "INVALID_CREDENTIALS")

	w = s.do(http.MethodPost, "/v1/auth/login", "", map[string]any{"email": "nobody@example.com", "password": "password123"})
	assertError(t, w, http.StatusUnauthorized, "INVALID_CREDENTIALS")

	w = s.do(http.MethodPost, "/v1/auth/login", "", map[string]any{"email": "sup@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)

	w = s.do(http.MethodGet, "/v1/products", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleGating(t *testing.T) {
	s := newServer(t)
	_, supplierToken := s.login(models.RoleSupplier)
	_, importerToken := s.login(models.RoleImporter)

	assertError(t, s.do(http.MethodGet, "/v1/containers", "", nil), http.StatusUnauthorized, "UNAUTHORIZED")
	assertError(t, s.do(http.MethodGet, "/v1/containers", supplierToken, nil), http.StatusForbidden, "FORBIDDEN")
	assertError(t, s.do(http.MethodPost, "/v1/categories", importerToken, map[string]any{"name": "X"}), http.StatusForbidden, "FORBIDDEN")
	assertError(t, s.do(http.MethodGet, "/v1/products", importerToken, nil), http.StatusForbidden, "FORBIDDEN")
	assertError(t, s.do(http.MethodPatch, "/v1/collaborations/1/approve", supplierToken, nil), http.StatusForbidden, "FORBIDDEN")

	_, adminToken := s.login(models.RoleAdmin)
	assertError(t, s.do(http.MethodPost, "/v1/ai/chat", importerToken, map[string]any{"message": "hi"}), http.StatusForbidden, "FORBIDDEN")
	assertError(t, s.do(http.MethodPost, "/v1/ai/chat", supplierToken, map[string]any{"message": "hi"}), http.StatusForbidden, "FORBIDDEN")
	assertError(t, s.do(http.MethodPost, "/v1/ai/chat", adminToken, map[string]any{"message": "hi"}), http.StatusServiceUnavailable, "AI_UNAVAILABLE")
}

func TestContainerFlow(t *testing.T) {
	s := newServer(t)
	_, adminToken := s.login(models.RoleAdmin)
	_, supplierToken := s.login(models.RoleSupplier)
	importer, importerToken := s.login(models.RoleImporter)
	_, strangerToken := s.login(models.RoleImporter)

	// Category and product.
	w := s.do(http.MethodPost, "/v1/categories", adminToken, map[string]any{"name": "Garden Tools"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	categoryID := id(t, body, "category")
	assert.Equal(t, "garden-tools", body["category"].(map[string]any)["slug"])

	w = s.do(http.MethodPost, "/v1/products", supplierToken, map[string]any{
		"code": "SHOVEL-1", "name": "Shovel", "description": "Steel shovel", "categoryId": categoryID,
		"price": 12.5, "weight": 3, "length": 10, "width": 10, "height": 10,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	productID := id(t, decode(t, w), "product")

	// Container, then an admission before the collaboration exists.
	w = s.do(http.MethodPost, "/v1/containers", importerToken, map[string]any{"name": "Spring order", "maxWeight": 10})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	containerID := id(t, decode(t, w), "container")
	itemsPath := fmt.Sprintf("/v1/containers/%d/items", containerID)

	assertError(t, s.do(http.MethodPost, itemsPath, importerToken, map[string]any{"productId": productID, "quantity": 1}), http.StatusForbidden, "FORBIDDEN")

	// Collaboration handshake.
	w = s.do(http.MethodPost, "/v1/collaborations/request", supplierToken, map[string]any{"importerId": importer.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	collaborationID := id(t, decode(t, w), "collaboration")

	assertError(t, s.do(http.MethodPost, "/v1/collaborations/request", supplierToken, map[string]any{"importerId": importer.ID}), http.StatusConflict, "COLLABORATION_EXISTS")

	approvePath := fmt.Sprintf("/v1/collaborations/%d/approve", collaborationID)
	assertError(t, s.do(http.MethodPatch, approvePath, strangerToken, nil), http.StatusForbidden, "FORBIDDEN")

	w = s.do(http.MethodPatch, approvePath, importerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assertError(t, s.do(http.MethodPatch, fmt.Sprintf("/v1/collaborations/%d/reject", collaborationID), importerToken, nil), http.StatusConflict, "INVALID_STATE")

	// Admissions.
	assertError(t, s.do(http.MethodPost, itemsPath, importerToken, map[string]any{"productId": productID, "quantity": 0}), http.StatusBadRequest, "VALIDATION_ERROR")
	assertError(t, s.do(http.MethodPost, itemsPath, importerToken, map[string]any{"productId": productID, "quantity": 1 << 31}), http.StatusBadRequest, "VALIDATION_ERROR")
	assertError(t, s.do(http.MethodPost, "/v1/containers", importerToken, map[string]any{"name": "Pricey", "maxPrice": 0.001}), http.StatusBadRequest, "VALIDATION_ERROR")

	w = s.do(http.MethodPost, itemsPath, importerToken, map[string]any{"productId": productID, "quantity": 3})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body = assertError(t, s.do(http.MethodPost, itemsPath, importerToken, map[string]any{"productId": productID, "quantity": 1}), http.StatusBadRequest, "LIMIT_EXCEEDED")
	assert.Equal(t, "maxWeight", body["limit"])
	assert.Equal(t, 10.0, body["max"])
	assert.Equal(t, 12.0, body["attempted"])

	// Container view.
	containerPath := fmt.Sprintf("/v1/containers/%d", containerID)
	w = s.do(http.MethodGet, containerPath, importerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view := decode(t, w)
	assert.Equal(t, 9.0, view["totalWeight"])
	assert.Equal(t, 37.5, view["totalPrice"])
	assert.InDelta(t, 0.003, view["totalVolume"], 1e-9)
	items := view["items"].([]any)
	require.Len(t, items, 1)
	line := items[0].(map[string]any)
	assert.Equal(t, 3.0, line["quantity"])
	assert.InDelta(t, 0.001, line["product"].(map[string]any)["volume"], 1e-9)
	assert.Equal(t, 12.5, line["product"].(map[string]any)["price"])

	notFound := assertError(t, s.do(http.MethodGet, containerPath, strangerToken, nil), http.StatusNotFound, "NOT_FOUND")
	missing := assertError(t, s.do(http.MethodGet, "/v1/containers/999999", importerToken, nil), http.StatusNotFound, "NOT_FOUND")
	assert.Equal(t, missing["message"], notFound["message"])

	// Listing and cleanup.
	w = s.do(http.MethodGet, "/v1/containers", importerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	containers := decode(t, w)["containers"].([]any)
	require.Len(t, containers, 1)
	assert.Equal(t, 1.0, containers[0].(map[string]any)["itemCount"])

	w = s.do(http.MethodGet, "/v1/notifications", supplierToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["notifications"].([]any), 1)

	w = s.do(http.MethodDelete, containerPath, importerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assertError(t, s.do(http.MethodGet, containerPath, importerToken, nil), http.StatusNotFound, "NOT_FOUND")
}

func TestCatalogConflicts(t *testing.T) {
	s := newServer(t)
	_, adminToken := s.login(models.RoleAdmin)
	_, supplierToken := s.login(models.RoleSupplier)
	_, otherSupplierToken := s.login(models.RoleSupplier)

	w := s.do(http.MethodPost, "/v1/categories", adminToken, map[string]any{"name": "Textiles"})
	require.Equal(t, http.StatusCreated, w.Code)
	categoryID := id(t, decode(t, w), "category")
	assertError(t, s.do(http.MethodPost, "/v1/categories", adminToken, map[string]any{"name": "Textiles"}), http.StatusConflict, "CATEGORY_EXISTS")

	product := map[string]any{
		"code": "T-1", "name": "Towel", "description": "Cotton", "categoryId": categoryID,
		"price": "4.99", "weight": 0.5, "length": 30, "width": 20, "height": 2,
	}
	w = s.do(http.MethodPost, "/v1/products", supplierToken, product)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	productID := id(t, decode(t, w), "product")

	assertError(t, s.do(http.MethodPost, "/v1/products", supplierToken, product), http.StatusConflict, "PRODUCT_CODE_TAKEN")

	w = s.do(http.MethodPost, "/v1/products", otherSupplierToken, product)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	for _, price := range []string{"1.005", "10000000000"} {
		tooPrecise := map[string]any{"code": "T-3", "name": "Towel", "description": "Cotton", "categoryId": categoryID,
			"price": price, "weight": 0.5, "length": 30, "width": 20, "height": 2}
		assertError(t, s.do(http.MethodPost, "/v1/products", supplierToken, tooPrecise), http.StatusBadRequest, "VALIDATION_ERROR")
	}
	assertError(t, s.do(http.MethodPatch, fmt.Sprintf("/v1/products/%d", productID), supplierToken, map[string]any{"price": "4.999"}), http.StatusBadRequest, "VALIDATION_ERROR")

	missingField := map[string]any{"code": "T-2", "name": "Towel", "description": "Cotton", "categoryId": categoryID, "price": 1}
	assertError(t, s.do(http.MethodPost, "/v1/products", supplierToken, missingField), http.StatusBadRequest, "VALIDATION_ERROR")

	productPath := fmt.Sprintf("/v1/products/%d", productID)
	assertError(t, s.do(http.MethodPatch, productPath, otherSupplierToken, map[string]any{"name": "Mine now"}), http.StatusNotFound, "NOT_FOUND")
	assertError(t, s.do(http.MethodDelete, productPath, otherSupplierToken, nil), http.StatusNotFound, "NOT_FOUND")

	w = s.do(http.MethodPatch, productPath, supplierToken, map[string]any{"name": "Bath towel", "price": 5.25})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode(t, w)["product"].(map[string]any)
	assert.Equal(t, "Bath towel", updated["name"])
	assert.Equal(t, 5.25, updated["price"])

	assertError(t, s.do(http.MethodDelete, fmt.Sprintf("/v1/categories/%d", categoryID), adminToken, nil), http.StatusConflict, "CATEGORY_IN_USE")
	assertError(t, s.do(http.MethodDelete, "/v1/categories/abc", adminToken, nil), http.StatusBadRequest, "VALIDATION_ERROR")
}

func TestCompare(t *testing.T) {
	s := newServer(t)
	supplierA, _ := s.login(models.RoleSupplier)
	supplierB, _ := s.login(models.RoleSupplier)
	pending, _ := s.login(models.RoleSupplier)
	importer, importerToken := s.login(models.RoleImporter)

	cat := testutil.Category(t, s.repo)
	other := testutil.Category(t, s.repo)
	testutil.Collaboration(t, s.repo, supplierA.ID, importer.ID, models.CollaborationApproved)
	testutil.Collaboration(t, s.repo, supplierB.ID, importer.ID, models.CollaborationApproved)
	testutil.Collaboration(t, s.repo, pending.ID, importer.ID, models.CollaborationPending)

	testutil.Product(t, s.repo, supplierA.ID, cat.ID, "10.00", 1, 1, 1, 1)
	testutil.Product(t, s.repo, supplierA.ID, cat.ID, "11.00", 1, 1, 1, 1)
	testutil.Product(t, s.repo, supplierB.ID, other.ID, "9.00", 1, 1, 1, 1)
	testutil.Product(t, s.repo, pending.ID, cat.ID, "1.00", 1, 1, 1, 1)

	assertError(t, s.do(http.MethodGet, "/v1/compare", importerToken, nil), http.StatusBadRequest, "VALIDATION_ERROR")

	w := s.do(http.MethodGet, fmt.Sprintf("/v1/compare?categoryId=%d", cat.ID), importerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	suppliers := decode(t, w)["suppliers"].([]any)
	require.Len(t, suppliers, 1)
	group := suppliers[0].(map[string]any)
	assert.Equal(t, float64(supplierA.ID), group["supplier"].(map[string]any)["id"])
	assert.Len(t, group["products"].([]any), 2)

	w = s.do(http.MethodGet, "/v1/importer/products", importerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["products"].([]any), 3)
}

func TestUploadFile(t *testing.T) {
	s := newServer(t)
	_, supplierToken := s.login(models.RoleSupplier)

	upload := func(name string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("\x89PNG fake image"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/v1/uploads", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+supplierToken)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		return w
	}

	w := upload("photo.PNG")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	url, _ := decode(t, w)["url"].(string)
	require.True(t, strings.HasPrefix(url, "http://api.test/uploads/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	_, err := os.Stat(filepath.Join(s.upload, filepath.Base(url)))
	assert.NoError(t, err)

	assertError(t, upload("script.sh"), http.StatusBadRequest, "VALIDATION_ERROR")
}

func TestNotificationsAndDashboard(t *testing.T) {
	s := newServer(t)
	supplier, supplierToken := s.login(models.RoleSupplier)
	_, importerToken := s.login(models.RoleImporter)
	_, adminToken := s.login(models.RoleAdmin)

	require.NoError(t, s.repo.CreateNotification(t.Context(), supplier.ID, "hello", ""))
	list, err := s.repo.ListNotifications(t.Context(), supplier.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	readPath := fmt.Sprintf("/v1/notifications/%d/read", list[0].ID)

	assertError(t, s.do(http.MethodPatch, readPath, importerToken, nil), http.StatusNotFound, "NOT_FOUND")
	assert.Equal(t, http.StatusOK, s.do(http.MethodPatch, readPath, supplierToken, nil).Code)

	for _, token := range []string{supplierToken, importerToken, adminToken} {
		w := s.do(http.MethodGet, "/v1/dashboard", token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.NotNil(t, decode(t, w)["stats"])
	}
}
