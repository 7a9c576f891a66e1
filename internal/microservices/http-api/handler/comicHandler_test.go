package handler_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"comicvault/internal/microservices/http-api/handler"
	"comicvault/internal/microservices/http-api/models"
	"comicvault/internal/microservices/http-api/service"
)

const testID = "65a1f0c2e4b0a1b2c3d4e5f6"

// --- MOCK SERVICE ---

type MockComicService struct {
	mock.Mock
}

func (m *MockComicService) GetAll(ctx context.Context) ([]models.Comic, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Comic), args.Error(1)
}

func (m *MockComicService) GetByID(ctx context.Context, id string) (*models.Comic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comic), args.Error(1)
}

func (m *MockComicService) Filter(ctx context.Context, filter models.ComicFilter) ([]models.Comic, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Comic), args.Error(1)
}

func (m *MockComicService) Create(ctx context.Context, c *models.Comic) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockComicService) Import(ctx context.Context, comics []models.Comic) (int, error) {
	args := m.Called(ctx, comics)
	return args.Int(0), args.Error(1)
}

func (m *MockComicService) Update(ctx context.Context, id string, u models.ComicUpdate) (*models.Comic, error) {
	args := m.Called(ctx, id, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comic), args.Error(1)
}

func (m *MockComicService) Delete(ctx context.Context, id string) (*models.Comic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comic), args.Error(1)
}

func (m *MockComicService) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// --- SETUP ---

func setupRouter(svc service.ComicService, exportDir string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.NewComicHandler(svc, logger, time.Second, exportDir)
	h.RegisterRoutes(r.Group("/comics"))
	return r
}

func doRequest(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, _ := http.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["error"]
}

func sampleComic() models.Comic {
	vol := 1
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return models.Comic{
		ID: testID, Title: "Saga", Author: "B.K. Vaughan", Volume: &vol,
		Tags: []string{}, CreatedAt: at, UpdatedAt: at,
	}
}

// --- TESTS ---

func TestCreateComic(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())

		svc.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Comic) bool {
			return c.Title == "Saga" && c.Author == "B.K. Vaughan" && *c.Volume == 1
		})).Run(func(args mock.Arguments) {
			c := args.Get(1).(*models.Comic)
			c.ID = testID
		}).Return(nil)

		w := doRequest(r, http.MethodPost, "/comics", `{"title":"  Saga ","author":"B.K. Vaughan","volume":1}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp struct {
			Message string                 `json:"message"`
			Comic   map[string]interface{} `json:"comic"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "comic created", resp.Message)
		assert.Equal(t, testID, resp.Comic["id"])
		assert.Equal(t, "Saga", resp.Comic["title"])
		assert.Equal(t, []interface{}{}, resp.Comic["tags"])
		svc.AssertExpectations(t)
	})

	t.Run("MissingTitle", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())

		w := doRequest(r, http.MethodPost, "/comics", `{"author":"B.K. Vaughan"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "title is required", errorBody(t, w))
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("RatingOutOfRange", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())

		w := doRequest(r, http.MethodPost, "/comics", `{"title":"Saga","author":"B.K. Vaughan","rating":11}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "rating must be between 0 and 10", errorBody(t, w))
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())

		w := doRequest(r, http.MethodPost, "/comics", `{"title":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())
		svc.On("Create", mock.Anything, mock.Anything).Return(errors.New("mongo: connection refused"))

		w := doRequest(r, http.MethodPost, "/comics", `{"title":"Saga","author":"B.K. Vaughan"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal server error", errorBody(t, w))
		assert.NotContains(t, w.Body.String(), "mongo")
	})
}

func TestCreateComic_WithoutValidatedInput(t *testing.T) {
	svc := new(MockComicService)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewComicHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Second, t.TempDir())
	r.POST("/comics", h.Create)

	w := doRequest(r, http.MethodPost, "/comics", `{"title":"Saga","author":"B.K. Vaughan"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", errorBody(t, w))
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListComics(t *testing.T) {
	svc := new(MockComicService)
	r := setupRouter(svc, t.TempDir())
	svc.On("GetAll", mock.Anything).Return([]models.Comic{sampleComic()}, nil)

	w := doRequest(r, http.MethodGet, "/comics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data  []map[string]interface{} `json:"data"`
		Total int                      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "Saga", resp.Data[0]["title"])
}

func TestGetComic(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())
		c := sampleComic()
		svc.On("GetByID", mock.Anything, testID).Return(&c, nil)

		w := doRequest(r, http.MethodGet, "/comics/"+testID, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"title":"Saga"`)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())
		svc.On("GetByID", mock.Anything, testID).Return(nil, service.ErrComicNotFound)

		w := doRequest(r, http.MethodGet, "/comics/"+testID, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "comic not found", errorBody(t, w))
	})

	t.Run("UppercaseIDNormalized", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())
		c := sampleComic()
		svc.On("GetByID", mock.Anything, testID).Return(&c, nil)

		w := doRequest(r, http.MethodGet, "/comics/"+strings.ToUpper(testID), "")
		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("MalformedID", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())

		w := doRequest(r, http.MethodGet, "/comics/123", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid comic id", errorBody(t, w))
		svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestFilterComics(t *testing.T) {
	t.Run("NoMatch", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())
		vol := 3
		svc.On("Filter", mock.Anything, models.ComicFilter{Volume: &vol}).Return([]models.Comic{}, nil)

		w := doRequest(r, http.MethodGet, "/comics/filter?volume=3", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "no comics match the filter", errorBody(t, w))
	})

	t.Run("Match", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())
		svc.On("Filter", mock.Anything, mock.MatchedBy(func(f models.ComicFilter) bool {
			return f.Title != nil && *f.Title == "saga" && f.Volume == nil
		})).Return([]models.Comic{sampleComic()}, nil)

		w := doRequest(r, http.MethodGet, "/comics/filter?title=saga", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total":1`)
	})

	t.Run("BadVolume", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())

		w := doRequest(r, http.MethodGet, "/comics/filter?volume=abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Filter", mock.Anything, mock.Anything)
	})
}

func TestImportComics(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())
		svc.On("Import", mock.Anything, mock.MatchedBy(func(cs []models.Comic) bool {
			return len(cs) == 2
		})).Return(2, nil)

		body := `[{"title":"Saga","author":"B.K. Vaughan"},{"title":"Watchmen","author":"Alan Moore"}]`
		w := doRequest(r, http.MethodPost, "/comics/import", body)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"message":"comics imported","inserted":2}`, w.Body.String())
	})

	t.Run("OneBadEntryRejectsBatch", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())

		body := `[{"title":"Saga","author":"B.K. Vaughan"},{"title":"Watchmen"}]`
		w := doRequest(r, http.MethodPost, "/comics/import", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "comic at index 1: author is required", errorBody(t, w))
		svc.AssertNotCalled(t, "Import", mock.Anything, mock.Anything)
	})

	t.Run("WrongTypeInEntryNamesIndex", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())

		body := `[{"title":"a","author":"b"},{"title":"c","author":"d","issue":"x"}]`
		w := doRequest(r, http.MethodPost, "/comics/import", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "comic at index 1: issue must be an integer", errorBody(t, w))
		svc.AssertNotCalled(t, "Import", mock.Anything, mock.Anything)
	})

	t.Run("EmptyArray", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())

		w := doRequest(r, http.MethodPost, "/comics/import", `[]`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Import", mock.Anything, mock.Anything)
	})

	t.Run("NotAnArray", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())

		w := doRequest(r, http.MethodPost, "/comics/import", `{"title":"Saga","author":"B.K. Vaughan"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "request body must be a JSON array of comics", errorBody(t, w))
	})
}

func TestUpdateComic(t *testing.T) {
	t.Run("Partial", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())
		updated := sampleComic()
		updated.IsRead = true
		svc.On("Update", mock.Anything, testID, mock.MatchedBy(func(u models.ComicUpdate) bool {
			return u.IsRead != nil && *u.IsRead && u.Title == nil
		})).Return(&updated, nil)

		w := doRequest(r, http.MethodPut, "/comics/"+testID, `{"isRead":true}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"isRead":true`)
	})

	t.Run("EmptyTitle", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())

		w := doRequest(r, http.MethodPut, "/comics/"+testID, `{"title":"   "}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())
		svc.On("Update", mock.Anything, testID, mock.Anything).Return(nil, service.ErrComicNotFound)

		w := doRequest(r, http.MethodPut, "/comics/"+testID, `{"notes":"signed"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteComic(t *testing.T) {
	t.Run("EchoesRecord", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())
		c := sampleComic()
		svc.On("Delete", mock.Anything, testID).Return(&c, nil)

		w := doRequest(r, http.MethodDelete, "/comics/"+testID, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), testID)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())
		svc.On("Delete", mock.Anything, testID).Return(nil, service.ErrComicNotFound)

		w := doRequest(r, http.MethodDelete, "/comics/"+testID, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("MalformedID", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())

		w := doRequest(r, http.MethodDelete, "/comics/nope", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestExportComics(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		dir := t.TempDir()
		svc := new(MockComicService)
		r := setupRouter(svc, dir)
		svc.On("GetAll", mock.Anything).Return([]models.Comic{sampleComic()}, nil)

		w := doRequest(r, http.MethodGet, "/comics/export?format=json", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
		assert.Contains(t, w.Header().Get("Content-Disposition"), ".json")
		var out []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Equal(t, "Saga", out[0]["title"])

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries, "export file should be removed after the response")
	})

	t.Run("CSV", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())
		svc.On("GetAll", mock.Anything).Return([]models.Comic{sampleComic()}, nil)

		w := doRequest(r, http.MethodGet, "/comics/export?format=csv", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
		assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
		rows, err := csv.NewReader(bytes.NewReader(w.Body.Bytes())).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "id", rows[0][0])
		assert.Equal(t, testID, rows[1][0])
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())

		w := doRequest(r, http.MethodGet, "/comics/export?format=xml", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "GetAll", mock.Anything)
	})

	t.Run("MissingFormat", func(t *testing.T) {
		svc := new(MockComicService)
		r := setupRouter(svc, t.TempDir())

		w := doRequest(r, http.MethodGet, "/comics/export", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := new(MockComicService)
	r := gin.New()
	r.GET("/health", handler.NewHealthHandler(svc).Check)

	svc.On("Ping", mock.Anything).Return(nil).Once()
	w := doRequest(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	svc.On("Ping", mock.Anything).Return(errors.New("down")).Once()
	w = doRequest(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
