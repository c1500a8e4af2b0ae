package space_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"easyinventory/internal/api/space"
	"easyinventory/internal/domain"
	apperror "easyinventory/internal/errors"
	"easyinventory/internal/inventory"
	"easyinventory/internal/pkg/logger"
	"easyinventory/internal/service/spaceservice"
)

// MockSpaceService é uma implementação mock de space.SpaceService.
type MockSpaceService struct {
	mock.Mock
}

func (m *MockSpaceService) CreateSpace(ctx context.Context, s domain.Space) (domain.Space, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(domain.Space), args.Error(1)
}

func (m *MockSpaceService) GetSpaceByID(ctx context.Context, id string) (domain.Space, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Space), args.Error(1)
}

func (m *MockSpaceService) ListSpaces(ctx context.Context) ([]domain.Space, error) {
	args := m.Called(ctx)
	spaces, _ := args.Get(0).([]domain.Space)
	return spaces, args.Error(1)
}

func (m *MockSpaceService) UpdateSpace(ctx context.Context, id string, patch domain.SpacePatch) (domain.Space, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.Space), args.Error(1)
}

func (m *MockSpaceService) DeleteSpace(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSpaceService) Summary(ctx context.Context, id, search string) (spaceservice.SpaceSummary, error) {
	args := m.Called(ctx, id, search)
	return args.Get(0).(spaceservice.SpaceSummary), args.Error(1)
}

func newHandler() (*space.Handler, *MockSpaceService) {
	svc := new(MockSpaceService)
	return space.NewHandler(svc, logger.NewLoggerWithWriter("error", &bytes.Buffer{})), svc
}

func TestCreateSpaceHandler_Created(t *testing.T) {
	h, svc := newHandler()
	svc.On("CreateSpace", mock.Anything, domain.Space{Name: "Main", Location: "A"}).
		Return(domain.Space{ID: "id-1", Name: "Main", Location: "A", Type: domain.SpaceTypeWarehouse}, nil)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/spaces", strings.NewReader(`{"name":"Main","location":"A"}`))
	h.CreateSpaceHandler(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	var got domain.Space
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, domain.SpaceTypeWarehouse, got.Type)
}

func TestCreateSpaceHandler_MalformedJSON(t *testing.T) {
	h, svc := newHandler()

	rr := httptest.NewRecorder()
	h.CreateSpaceHandler(rr, httptest.NewRequest(http.MethodPost, "/api/spaces", strings.NewReader(`{`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "CreateSpace", mock.Anything, mock.Anything)
}

func TestCreateSpaceHandler_ValidationError(t *testing.T) {
	h, svc := newHandler()
	svc.On("CreateSpace", mock.Anything, mock.Anything).
		Return(domain.Space{}, apperror.NewFieldValidationError("o campo name é obrigatório.", []domain.FieldError{{Field: "name", Tag: "required"}}))

	rr := httptest.NewRecorder()
	h.CreateSpaceHandler(rr, httptest.NewRequest(http.MethodPost, "/api/spaces", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var body domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Category)
	assert.Equal(t, "name", body.Fields[0].Field)
}

func TestGetSpaceByIDHandler_StatusMapping(t *testing.T) {
	h, svc := newHandler()
	svc.On("GetSpaceByID", mock.Anything, "found").Return(domain.Space{ID: "found"}, nil)
	svc.On("GetSpaceByID", mock.Anything, "missing").Return(domain.Space{}, apperror.NewNotFoundError("espaço"))
	svc.On("GetSpaceByID", mock.Anything, "broken").Return(domain.Space{}, apperror.NewDBError("Falha", errors.New("conn refused")))

	for id, status := range map[string]int{"found": 200, "missing": 404, "broken": 500} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/spaces/"+id, nil)
		req.SetPathValue("id", id)

		h.GetSpaceByIDHandler(rr, req)

		assert.Equal(t, status, rr.Code, id)
	}
}

func TestListSpacesHandler_EmptyIsArray(t *testing.T) {
	h, svc := newHandler()
	svc.On("ListSpaces", mock.Anything).Return(nil, nil)

	rr := httptest.NewRecorder()
	h.ListSpacesHandler(rr, httptest.NewRequest(http.MethodGet, "/api/spaces", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestUpdateSpaceHandler_PassesPatch(t *testing.T) {
	h, svc := newHandler()
	location := "B"
	svc.On("UpdateSpace", mock.Anything, "id-1", domain.SpacePatch{Location: &location}).
		Return(domain.Space{ID: "id-1", Location: "B"}, nil)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/spaces/id-1", strings.NewReader(`{"location":"B"}`))
	req.SetPathValue("id", "id-1")
	h.UpdateSpaceHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestDeleteSpaceHandler(t *testing.T) {
	h, svc := newHandler()
	svc.On("DeleteSpace", mock.Anything, "id-1").Return(nil)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/spaces/id-1", nil)
	req.SetPathValue("id", "id-1")
	h.DeleteSpaceHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Space deleted successfully"}`, rr.Body.String())
}

func TestSummaryHandler_ForwardsSearch(t *testing.T) {
	h, svc := newHandler()
	svc.On("Summary", mock.Anything, "id-1", "hard").Return(spaceservice.SpaceSummary{
		Space:   domain.Space{ID: "id-1"},
		Search:  "hard",
		Summary: inventory.Summary{ItemCount: 1, TotalValue: 3},
	}, nil)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/spaces/id-1/summary?search=hard", nil)
	req.SetPathValue("id", "id-1")
	h.SummaryHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["itemCount"])
	assert.Equal(t, "hard", body["search"])
}
