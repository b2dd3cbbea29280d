package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	bureaurepo "nerve_engine_backend/internal/bureau/repository"
	clientsrepo "nerve_engine_backend/internal/clients/repository"
	"nerve_engine_backend/internal/recommendations/domain"
	"nerve_engine_backend/internal/recommendations/service"
	"nerve_engine_backend/platform/apperr"
	"nerve_engine_backend/platform/logger"
)

type stubStore struct {
	products map[int][]domain.Product
	recs     map[uuid.UUID]domain.Recommendation
}

func (s *stubStore) ListProducts(_ context.Context, option int) ([]domain.Product, error) {
	return s.products[option], nil
}

func (s *stubStore) ListActiveInsuranceProducts(_ context.Context) ([]domain.InsuranceProduct, error) {
	return nil, nil
}

func (s *stubStore) InsuranceCategoryNames(_ context.Context) (map[uuid.UUID]string, error) {
	return nil, nil
}

func (s *stubStore) GetByClientID(_ context.Context, clientID uuid.UUID) (domain.Recommendation, error) {
	rec, ok := s.recs[clientID]
	if !ok {
		return domain.Recommendation{}, apperr.NotFound("recommendation not found")
	}
	return rec, nil
}

func (s *stubStore) Upsert(_ context.Context, rec domain.Recommendation) error {
	s.recs[rec.ClientID] = rec
	return nil
}

func (s *stubStore) UpdateCategory(_ context.Context, clientID uuid.UUID, category domain.Category, slot domain.CategorySlot) error {
	rec, ok := s.recs[clientID]
	if !ok {
		return apperr.NotFound("recommendation not found")
	}
	*rec.Slot(category) = slot
	s.recs[clientID] = rec
	return nil
}

type stubClients struct {
	clients map[uuid.UUID]clientsrepo.Client
}

func (s *stubClients) GetByID(_ context.Context, id uuid.UUID) (clientsrepo.Client, error) {
	c, ok := s.clients[id]
	if !ok {
		return clientsrepo.Client{}, apperr.NotFound("client not found")
	}
	return c, nil
}

type stubBureau struct {
	profiles map[uuid.UUID]bureaurepo.Profile
}

func (s *stubBureau) Resolve(_ context.Context, c clientsrepo.Client) (bureaurepo.Profile, error) {
	if p, ok := s.profiles[c.ID]; ok {
		return p, nil
	}
	p := bureaurepo.Profile{ID: uuid.New(), ClientID: c.ID, PresageScore: 650}
	s.profiles[c.ID] = p
	return p, nil
}

func (s *stubBureau) Lookup(_ context.Context, clientID uuid.UUID) (bureaurepo.Profile, error) {
	p, ok := s.profiles[clientID]
	if !ok {
		return bureaurepo.Profile{}, apperr.NotFound("bureau profile not found")
	}
	return p, nil
}

func newTestRouter(store *stubStore, clients *stubClients, bureau *stubBureau) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.New(store, clients, bureau, nil, logger.New("development"))

	engine := gin.New()
	New(svc).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestProcessCustomerInvalidClientID(t *testing.T) {
	engine := newTestRouter(
		&stubStore{recs: map[uuid.UUID]domain.Recommendation{}},
		&stubClients{},
		&stubBureau{profiles: map[uuid.UUID]bureaurepo.Profile{}},
	)

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/process-customer/not-a-uuid")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProcessCustomerUnknownClient(t *testing.T) {
	engine := newTestRouter(
		&stubStore{recs: map[uuid.UUID]domain.Recommendation{}},
		&stubClients{},
		&stubBureau{profiles: map[uuid.UUID]bureaurepo.Profile{}},
	)

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/process-customer/"+uuid.NewString())
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestProcessCustomerSuccess(t *testing.T) {
	clientID := uuid.New()
	store := &stubStore{
		products: map[int][]domain.Product{
			domain.CategoryAccounts.Option(): {
				{ProductCode: "ACC-GOLD", ProductName: "Gold Account", Benefits: []string{"No fees"}},
			},
		},
		recs: map[uuid.UUID]domain.Recommendation{},
	}
	clients := &stubClients{clients: map[uuid.UUID]clientsrepo.Client{
		clientID: {
			ID: clientID, FirstName: "Thabo", Surname: "Nkosi",
			IDNumber: "8001015009087", PrimaryInterest: "Accounts",
		},
	}}
	engine := newTestRouter(store, clients, &stubBureau{profiles: map[uuid.UUID]bureaurepo.Profile{}})

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/process-customer/"+clientID.String())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		ClientID       uuid.UUID `json:"client_id"`
		Recommendation *struct {
			BestProduct *string `json:"best_product"`
		} `json:"recommendation"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body.ClientID != clientID {
		t.Fatalf("expected client id %s, got %s", clientID, body.ClientID)
	}
	if body.Recommendation == nil || body.Recommendation.BestProduct == nil ||
		*body.Recommendation.BestProduct != "Gold Account" {
		t.Fatalf("unexpected recommendation payload: %s", rec.Body.String())
	}
}

func TestGetStoredRecommendationNotFound(t *testing.T) {
	clientID := uuid.New()
	clients := &stubClients{clients: map[uuid.UUID]clientsrepo.Client{
		clientID: {ID: clientID, FirstName: "Thabo", Surname: "Nkosi",
			IDNumber: "8001015009087", PrimaryInterest: "Loan"},
	}}
	engine := newTestRouter(
		&stubStore{recs: map[uuid.UUID]domain.Recommendation{}},
		clients,
		&stubBureau{profiles: map[uuid.UUID]bureaurepo.Profile{}},
	)

	rec := doRequest(t, engine, http.MethodGet, "/api/v1/customers/"+clientID.String()+"/recommendation")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("stored lookup without record must 404, got %d", rec.Code)
	}
}

func TestRecommendForInterestEndpoint(t *testing.T) {
	clientID := uuid.New()
	store := &stubStore{
		products: map[int][]domain.Product{
			domain.CategoryLoan.Option(): {
				{ProductCode: "PERSONAL-LOAN", ProductName: "Personal Loan", Benefits: []string{"Low rate"}},
			},
		},
		recs: map[uuid.UUID]domain.Recommendation{},
	}
	clients := &stubClients{clients: map[uuid.UUID]clientsrepo.Client{
		clientID: {ID: clientID, FirstName: "Thabo", Surname: "Nkosi",
			IDNumber: "8001015009087", PrimaryInterest: "FNB Loan"},
	}}
	engine := newTestRouter(store, clients, &stubBureau{profiles: map[uuid.UUID]bureaurepo.Profile{}})

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/customers/"+clientID.String()+"/recommendation")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Category    string `json:"category"`
		BestProduct *struct {
			Name string `json:"name"`
		} `json:"best_product"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body.Category != "loan" {
		t.Fatalf("expected loan category, got %q", body.Category)
	}
	if body.BestProduct == nil || body.BestProduct.Name != "Personal Loan" {
		t.Fatalf("unexpected best product: %s", rec.Body.String())
	}

	// The GET must now return the stored fields.
	got := doRequest(t, engine, http.MethodGet, "/api/v1/customers/"+clientID.String()+"/recommendation")
	if got.Code != http.StatusOK {
		t.Fatalf("expected stored recommendation after generation, got %d", got.Code)
	}
}
