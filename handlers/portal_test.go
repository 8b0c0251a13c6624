package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/patitas/patitas/backend/api/internal/appointments"
	"github.com/patitas/patitas/backend/api/internal/config"
	"github.com/patitas/patitas/backend/api/internal/content"
	"github.com/patitas/patitas/backend/api/internal/models"
	"github.com/patitas/patitas/backend/api/internal/pets"
	"github.com/patitas/patitas/backend/api/internal/reviews"
	"github.com/patitas/patitas/backend/api/internal/tokens"
	"github.com/patitas/patitas/backend/api/pkg/middleware"
)

type portalFixture struct {
	router *gin.Engine
	cfg    *config.Config
}

func newPortal(t *testing.T, autoApprove bool) *portalFixture {
	t.Helper()
	cfg := testConfig()

	petsRepo := pets.NewMemoryRepository()
	petsSvc := pets.NewService(petsRepo)
	apptSvc := appointments.NewService(appointments.NewMemoryRepository(), petsRepo)
	revSvc := reviews.NewService(reviews.NewMemoryRepository(), autoApprove)

	contentRepo := content.NewMemoryRepository()
	contentRepo.AddFAQ(&content.FAQ{Question: "¿Atienden gatos?", Answer: "Sí.", Category: "general", Order: 1})
	contentRepo.AddPost(&content.Post{Title: "Vacunas", Slug: "vacunas", Category: "salud",
		PublishedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)})

	r := gin.New()
	public := r.Group("/api")
	NewContentHandler(content.NewService(contentRepo)).Register(public)
	revHandler := NewReviewsHandler(revSvc)
	revHandler.RegisterPublic(public)

	authed := r.Group("/api/v1")
	authed.Use(middleware.AuthMiddleware(tokens.NewVerifier(cfg.JWT.Secret)))
	NewPetsHandler(petsSvc, nil).Register(authed)
	NewAppointmentsHandler(apptSvc).Register(authed)

	admin := authed.Group("/admin")
	admin.Use(middleware.RequireRole(string(models.RoleAdmin)))
	revHandler.RegisterAdmin(admin)

	return &portalFixture{router: r, cfg: cfg}
}

func (f *portalFixture) token(t *testing.T, role models.Role) string {
	t.Helper()
	u := &models.User{ID: primitive.NewObjectID(), Email: "ana@patitas.pe", Name: "Ana", Role: role}
	tok, err := tokens.GenerateAccessToken(f.cfg, u, 15*time.Minute)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return tok
}

func (f *portalFixture) do(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestPortal_RequiresAuth(t *testing.T) {
	f := newPortal(t, true)
	w := f.do("GET", "/api/v1/pets", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPortal_PetAndAppointmentFlow(t *testing.T) {
	f := newPortal(t, true)
	tok := f.token(t, models.RoleCliente)

	// register a pet
	w := f.do("POST", "/api/v1/pets", `{"name":"Firulais","species":"dog","age":4,"weight":12}`, tok)
	assert.Equal(t, http.StatusCreated, w.Code)
	var pet map[string]interface{}
	_ = json.NewDecoder(w.Body).Decode(&pet)
	petID, _ := pet["id"].(string)
	assert.NotEmpty(t, petID)

	// book a slot for it
	w = f.do("POST", "/api/v1/appointments", `{"date":"2024-06-01","time":"10:00","petId":"`+petID+`"}`, tok)
	assert.Equal(t, http.StatusCreated, w.Code)
	var appt map[string]interface{}
	_ = json.NewDecoder(w.Body).Decode(&appt)
	assert.Equal(t, "scheduled", appt["status"])

	// the same slot again conflicts
	w = f.do("POST", "/api/v1/appointments", `{"date":"2024-06-01","time":"10:00","petId":"`+petID+`"}`, tok)
	assert.Equal(t, http.StatusConflict, w.Code)
	var conflict map[string]interface{}
	_ = json.NewDecoder(w.Body).Decode(&conflict)
	assert.Equal(t, "El horario seleccionado ya está reservado", conflict["error"])

	// availability reflects the booking
	w = f.do("GET", "/api/v1/appointments/slots?date=2024-06-01", "", tok)
	assert.Equal(t, http.StatusOK, w.Code)
	var avail struct {
		Slots []struct {
			Time      string `json:"time"`
			Available bool   `json:"available"`
		} `json:"slots"`
	}
	_ = json.NewDecoder(w.Body).Decode(&avail)
	for _, s := range avail.Slots {
		assert.Equal(t, s.Time != "10:00", s.Available, "slot %s", s.Time)
	}

	// cancel frees the slot
	apptID, _ := appt["id"].(string)
	w = f.do("POST", "/api/v1/appointments/"+apptID+"/cancel", "", tok)
	assert.Equal(t, http.StatusOK, w.Code)
	w = f.do("POST", "/api/v1/appointments", `{"date":"2024-06-01","time":"10:00","petId":"`+petID+`"}`, tok)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestPortal_OwnershipIsolation(t *testing.T) {
	f := newPortal(t, true)
	alice := f.token(t, models.RoleCliente)
	bob := f.token(t, models.RoleCliente)

	w := f.do("POST", "/api/v1/pets", `{"name":"Michi","species":"cat","age":2,"weight":4}`, alice)
	assert.Equal(t, http.StatusCreated, w.Code)
	var pet map[string]interface{}
	_ = json.NewDecoder(w.Body).Decode(&pet)
	petID, _ := pet["id"].(string)

	// bob cannot see alice's pet in his list
	w = f.do("GET", "/api/v1/pets", "", bob)
	assert.Equal(t, http.StatusOK, w.Code)
	var list []interface{}
	_ = json.NewDecoder(w.Body).Decode(&list)
	assert.Len(t, list, 0)

	// nor read, mutate, or book against it directly
	w = f.do("GET", "/api/v1/pets/"+petID, "", bob)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = f.do("DELETE", "/api/v1/pets/"+petID, "", bob)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = f.do("POST", "/api/v1/appointments", `{"date":"2024-06-01","time":"09:00","petId":"`+petID+`"}`, bob)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPortal_PublicContent(t *testing.T) {
	f := newPortal(t, true)

	w := f.do("GET", "/api/faqs", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var faqs []map[string]interface{}
	_ = json.NewDecoder(w.Body).Decode(&faqs)
	assert.Len(t, faqs, 1)

	w = f.do("GET", "/api/posts", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do("GET", "/api/posts/vacunas", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do("GET", "/api/posts/no-existe", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPortal_ReviewModeration(t *testing.T) {
	f := newPortal(t, false)

	// anyone can submit without logging in
	w := f.do("POST", "/api/reviews", `{"name":"Ana","petType":"dog","rating":5,"comment":"Excelente"}`, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	var rev map[string]interface{}
	_ = json.NewDecoder(w.Body).Decode(&rev)
	revID, _ := rev["id"].(string)

	// not public until approved
	w = f.do("GET", "/api/reviews", "", "")
	var public []interface{}
	_ = json.NewDecoder(w.Body).Decode(&public)
	assert.Len(t, public, 0)

	// clients cannot moderate
	cliente := f.token(t, models.RoleCliente)
	w = f.do("GET", "/api/v1/admin/reviews/pending", "", cliente)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// admins can
	admin := f.token(t, models.RoleAdmin)
	w = f.do("GET", "/api/v1/admin/reviews/pending", "", admin)
	assert.Equal(t, http.StatusOK, w.Code)
	var pending []interface{}
	_ = json.NewDecoder(w.Body).Decode(&pending)
	assert.Len(t, pending, 1)

	w = f.do("POST", "/api/v1/admin/reviews/"+revID+"/approve", "", admin)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do("GET", "/api/reviews", "", "")
	_ = json.NewDecoder(w.Body).Decode(&public)
	assert.Len(t, public, 1)
}

func TestSwaggerEndpoints(t *testing.T) {
	r := gin.New()
	RegisterSwagger(r)

	req := httptest.NewRequest("GET", "/swagger/doc.json", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	var doc map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.0", doc["openapi"])

	req = httptest.NewRequest("GET", "/swagger/index.html", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "swagger-ui")
}
