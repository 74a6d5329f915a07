package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"webucket-api/internal/adapter/gin/handler"
	"webucket-api/internal/adapter/gin/router"
	"webucket-api/internal/usecase/auth"
	"webucket-api/internal/usecase/bucket"
	"webucket-api/internal/usecase/user"
	pkgerrors "webucket-api/pkg/errors"
)

// MockAuthUsecase is a mock implementation of the auth Usecase interface.
type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Login(ctx context.Context, in auth.LoginRequest) (*auth.TokenResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.TokenResponse), args.Error(1)
}

func (m *MockAuthUsecase) Authenticate(ctx context.Context, token string) (*user.Response, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Response), args.Error(1)
}

// MockUserUsecase is a mock implementation of the user Usecase interface.
type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) Register(ctx context.Context, in user.RegisterRequest) (*user.Response, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Response), args.Error(1)
}

func (m *MockUserUsecase) GetByUsername(ctx context.Context, username string) (*user.Response, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Response), args.Error(1)
}

func (m *MockUserUsecase) Update(ctx context.Context, in user.UpdateRequest) (*user.Response, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Response), args.Error(1)
}

// MockBucketUsecase is a mock implementation of the bucket Usecase interface.
type MockBucketUsecase struct {
	mock.Mock
}

func (m *MockBucketUsecase) CreateBucket(ctx context.Context, in bucket.CreateBucketRequest) ([]bucket.BucketResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bucket.BucketResponse), args.Error(1)
}

func (m *MockBucketUsecase) ListForUser(ctx context.Context, actor bucket.Actor) ([]bucket.BucketResponse, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bucket.BucketResponse), args.Error(1)
}

func (m *MockBucketUsecase) GetBucket(ctx context.Context, actor bucket.Actor, bucketID string) (*bucket.BucketDetailResponse, error) {
	args := m.Called(ctx, actor, bucketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bucket.BucketDetailResponse), args.Error(1)
}

func (m *MockBucketUsecase) UpdateBucket(ctx context.Context, in bucket.UpdateBucketRequest) ([]bucket.BucketResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bucket.BucketResponse), args.Error(1)
}

func (m *MockBucketUsecase) DeleteBucket(ctx context.Context, actor bucket.Actor, bucketID string) ([]bucket.BucketResponse, error) {
	args := m.Called(ctx, actor, bucketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bucket.BucketResponse), args.Error(1)
}

func (m *MockBucketUsecase) AddMember(ctx context.Context, in bucket.AddMemberRequest) ([]bucket.MemberResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bucket.MemberResponse), args.Error(1)
}

func (m *MockBucketUsecase) AddItem(ctx context.Context, in bucket.AddItemRequest) ([]bucket.ItemResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bucket.ItemResponse), args.Error(1)
}

func (m *MockBucketUsecase) UpdateItem(ctx context.Context, in bucket.UpdateItemRequest) ([]bucket.ItemResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bucket.ItemResponse), args.Error(1)
}

func (m *MockBucketUsecase) DeleteItem(ctx context.Context, actor bucket.Actor, itemID string) ([]bucket.ItemResponse, error) {
	args := m.Called(ctx, actor, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bucket.ItemResponse), args.Error(1)
}

type testEnv struct {
	router   *gin.Engine
	authUC   *MockAuthUsecase
	userUC   *MockUserUsecase
	bucketUC *MockBucketUsecase
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zaptest.NewLogger(t)
	authUC := new(MockAuthUsecase)
	userUC := new(MockUserUsecase)
	bucketUC := new(MockBucketUsecase)

	handlers := router.Handlers{
		Auth:   handler.NewAuthHandler(authUC, log),
		User:   handler.NewUserHandler(userUC, log),
		Bucket: handler.NewBucketHandler(bucketUC, log),
	}

	return &testEnv{
		router:   router.SetupRouter(handlers, authUC, nil, log),
		authUC:   authUC,
		userUC:   userUC,
		bucketUC: bucketUC,
	}
}

func authedUser() *user.Response {
	return &user.Response{
		ID:        "user-1",
		FirstName: "Jane",
		LastName:  "Doe",
		Username:  "janedoe",
		Email:     "jane@example.com",
	}
}

func (e *testEnv) authenticateAs(u *user.Response) {
	e.authUC.On("Authenticate", mock.Anything, "valid-token").Return(u, nil)
}

func (e *testEnv) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer valid-token")
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestRootAndPing(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(http.MethodGet, "/", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"Hello":"World"}`, w.Body.String())

	w = env.do(http.MethodGet, "/ping", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ping":"pong"}`, w.Body.String())

	w = env.do(http.MethodGet, "/health", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestToken_Success(t *testing.T) {
	env := setupTestRouter(t)

	env.authUC.On("Login", mock.Anything, auth.LoginRequest{
		Username: "janedoe",
		Password: "password123",
	}).Return(&auth.TokenResponse{AccessToken: "signed-token", TokenType: "bearer"}, nil)

	form := url.Values{"username": {"janedoe"}, "password": {"password123"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"access_token":"signed-token","token_type":"bearer"}`, w.Body.String())
}

func TestToken_BadCredentials(t *testing.T) {
	env := setupTestRouter(t)

	env.authUC.On("Login", mock.Anything, mock.Anything).
		Return(nil, pkgerrors.NewUnauthorizedError("Incorrect username or password"))

	form := url.Values{"username": {"janedoe"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	assert.Contains(t, w.Body.String(), "Incorrect username or password")
}

func TestAddUser_Success(t *testing.T) {
	env := setupTestRouter(t)

	env.userUC.On("Register", mock.Anything, user.RegisterRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Username:  "janedoe",
		Email:     "jane@example.com",
		Password:  "password123",
	}).Return(authedUser(), nil)

	body := `{"firstname":"Jane","lastname":"Doe","username":"janedoe","email":"jane@example.com","password":"password123"}`
	w := env.do(http.MethodPost, "/api/v1/add_user", body, false)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "janedoe", resp["username"])
	assert.NotContains(t, resp, "hashed_password")
}

func TestAddUser_DuplicateUsername(t *testing.T) {
	env := setupTestRouter(t)

	env.userUC.On("Register", mock.Anything, mock.Anything).
		Return(nil, pkgerrors.NewValidationError("", "User with username: janedoe already exists."))

	body := `{"firstname":"Jane","lastname":"Doe","username":"janedoe","email":"jane@example.com","password":"password123"}`
	w := env.do(http.MethodPost, "/api/v1/add_user", body, false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User with username: janedoe already exists.")
}

func TestAddUser_MalformedBody(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(http.MethodPost, "/api/v1/add_user", `{"firstname":`, false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(http.MethodGet, "/api/v1/get_buckets_for_user", "", false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	assert.Contains(t, w.Body.String(), "Could not validate credentials")
}

func TestProtectedRoutes_RejectBadToken(t *testing.T) {
	env := setupTestRouter(t)

	env.authUC.On("Authenticate", mock.Anything, "bad-token").
		Return(nil, pkgerrors.NewUnauthorizedError("Could not validate credentials"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/get_buckets_for_user", nil)
	req.Header.Set("Authorization", "Bearer bad-token")

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCurrentUser(t *testing.T) {
	env := setupTestRouter(t)
	env.authenticateAs(authedUser())

	w := env.do(http.MethodGet, "/api/v1/auth/current_user", "", true)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "janedoe", resp["username"])
	assert.Equal(t, "Jane", resp["firstname"])
}

func TestCreateBucket(t *testing.T) {
	env := setupTestRouter(t)
	env.authenticateAs(authedUser())

	env.bucketUC.On("CreateBucket", mock.Anything, bucket.CreateBucketRequest{
		Actor:       bucket.Actor{ID: "user-1", Username: "janedoe"},
		Title:       "Summer Trip",
		Description: "Things to do",
	}).Return([]bucket.BucketResponse{{ID: "bucket-1", Title: "Summer Trip"}}, nil)

	w := env.do(http.MethodPost, "/api/v1/create_bucket",
		`{"title":"Summer Trip","description":"Things to do"}`, true)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []bucket.BucketResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Summer Trip", resp[0].Title)
}

func TestCreateBucket_EmptyTitle(t *testing.T) {
	env := setupTestRouter(t)
	env.authenticateAs(authedUser())

	env.bucketUC.On("CreateBucket", mock.Anything, mock.Anything).
		Return(nil, pkgerrors.NewValidationError("title", "Bucket title cannot be empty."))

	w := env.do(http.MethodPost, "/api/v1/create_bucket", `{"title":""}`, true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Bucket title cannot be empty.")
}

func TestGetBucket_GroupedResponse(t *testing.T) {
	env := setupTestRouter(t)
	env.authenticateAs(authedUser())

	detail := &bucket.BucketDetailResponse{
		Activity: []bucket.ItemResponse{{ID: "item-1", Title: "Hiking"}},
		Media:    []bucket.ItemResponse{},
		Food:     []bucket.ItemResponse{},
		Bucket:   bucket.BucketResponse{ID: "bucket-1", Title: "Summer Trip"},
	}
	env.bucketUC.On("GetBucket", mock.Anything,
		bucket.Actor{ID: "user-1", Username: "janedoe"}, "bucket-1").Return(detail, nil)

	w := env.do(http.MethodGet, "/api/v1/bucket/bucket-1", "", true)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp, "activity")
	assert.Contains(t, resp, "media")
	assert.Contains(t, resp, "food")
	assert.Contains(t, resp, "bucket")
}

func TestGetBucket_NotFound(t *testing.T) {
	env := setupTestRouter(t)
	env.authenticateAs(authedUser())

	env.bucketUC.On("GetBucket", mock.Anything, mock.Anything, "missing").
		Return(nil, pkgerrors.NewNotFoundError("bucket", "Bucket with id: missing not found."))

	w := env.do(http.MethodGet, "/api/v1/bucket/missing", "", true)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Bucket with id: missing not found.")
}

func TestAddUserToBucket_RequiresQueryParam(t *testing.T) {
	env := setupTestRouter(t)
	env.authenticateAs(authedUser())

	w := env.do(http.MethodPatch, "/api/v1/add_user_to_bucket/bucket-1", "", true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "add_username")
}

func TestAddUserToBucket_Success(t *testing.T) {
	env := setupTestRouter(t)
	env.authenticateAs(authedUser())

	env.bucketUC.On("AddMember", mock.Anything, bucket.AddMemberRequest{
		Actor:    bucket.Actor{ID: "user-1", Username: "janedoe"},
		BucketID: "bucket-1",
		Username: "friend",
	}).Return([]bucket.MemberResponse{
		{ID: "user-1", Username: "janedoe"},
		{ID: "user-2", Username: "friend"},
	}, nil)

	w := env.do(http.MethodPatch, "/api/v1/add_user_to_bucket/bucket-1?add_username=friend", "", true)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []bucket.MemberResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestAddUserToBucket_AlreadyMember(t *testing.T) {
	env := setupTestRouter(t)
	env.authenticateAs(authedUser())

	env.bucketUC.On("AddMember", mock.Anything, mock.Anything).
		Return(nil, pkgerrors.NewAlreadyExistsError("member", "Username: friend already in bucket: Summer Trip."))

	w := env.do(http.MethodPatch, "/api/v1/add_user_to_bucket/bucket-1?add_username=friend", "", true)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAddItem_Success(t *testing.T) {
	env := setupTestRouter(t)
	env.authenticateAs(authedUser())

	env.bucketUC.On("AddItem", mock.Anything, mock.MatchedBy(func(in bucket.AddItemRequest) bool {
		return in.BucketID == "bucket-1" && in.Title == "Hiking" && string(in.ItemType) == "activity"
	})).Return([]bucket.ItemResponse{{ID: "item-1", Title: "Hiking"}}, nil)

	w := env.do(http.MethodPost, "/api/v1/add_item_to_bucket/bucket-1",
		`{"title":"Hiking","item_type":"activity"}`, true)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAddItem_MissingFields(t *testing.T) {
	env := setupTestRouter(t)
	env.authenticateAs(authedUser())

	w := env.do(http.MethodPost, "/api/v1/add_item_to_bucket/bucket-1", `{"title":"Hiking"}`, true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateItem_ScoreAndComment(t *testing.T) {
	env := setupTestRouter(t)
	env.authenticateAs(authedUser())

	env.bucketUC.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in bucket.UpdateItemRequest) bool {
		return in.ItemID == "item-1" &&
			in.Score != nil && *in.Score == 8 &&
			in.Comment != nil && *in.Comment == "Can't wait"
	})).Return([]bucket.ItemResponse{{ID: "item-1"}}, nil)

	w := env.do(http.MethodPatch, "/api/v1/update_item/item-1",
		`{"score":8,"comment":"Can't wait"}`, true)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteBucket_NotOwner(t *testing.T) {
	env := setupTestRouter(t)
	env.authenticateAs(authedUser())

	env.bucketUC.On("DeleteBucket", mock.Anything, mock.Anything, "bucket-1").
		Return(nil, pkgerrors.NewUnauthorizedError("User: janedoe not authorized to delete bucket: Summer Trip."))

	w := env.do(http.MethodDelete, "/api/v1/delete_bucket/bucket-1", "", true)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateUser(t *testing.T) {
	env := setupTestRouter(t)
	env.authenticateAs(authedUser())

	env.userUC.On("Update", mock.Anything, mock.MatchedBy(func(in user.UpdateRequest) bool {
		return in.ID == "user-1" && in.FirstName != nil && *in.FirstName == "Janet"
	})).Return(&user.Response{ID: "user-1", FirstName: "Janet", Username: "janedoe"}, nil)

	w := env.do(http.MethodPatch, "/api/v1/update_user/user-1", `{"firstname":"Janet"}`, true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Janet")
}
