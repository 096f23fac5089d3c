package responsible_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	apperrors "github.com/frahmantamala/expense-tracker/internal"
	responsibleDatamodel "github.com/frahmantamala/expense-tracker/internal/core/datamodel/responsible"
	"github.com/frahmantamala/expense-tracker/internal/responsible"
	responsiblePostgres "github.com/frahmantamala/expense-tracker/internal/responsible/postgres"
	"github.com/frahmantamala/expense-tracker/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type responsibleEnvelope struct {
	Data responsible.Responsible `json:"data"`
}

type responsibleListEnvelope struct {
	Data []responsible.Responsible `json:"data"`
}

var _ = Describe("Responsible Handler Integration", func() {
	var (
		db     *gorm.DB
		repo   responsible.RepositoryAPI
		router chi.Router
	)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
		}
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decodeError := func(w *httptest.ResponseRecorder) string {
		var body apperrors.ErrorResponse
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		return body.Error
	}

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&responsibleDatamodel.Responsible{})).To(Succeed())

		repo = responsiblePostgres.NewResponsibleRepository(db)
		service := responsible.NewService(repo, slogger, nil)
		handler := responsible.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Get("/responsibles", handler.ListResponsibles)
		router.Post("/responsibles", handler.CreateResponsible)
		router.Put("/responsibles/{id}", handler.UpdateResponsible)
		router.Delete("/responsibles/{id}", handler.DeleteResponsible)
	})

	It("should create a responsible with a trimmed name", func() {
		w := do(http.MethodPost, "/responsibles", `{"name":"  Carol  "}`)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var body responsibleEnvelope
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body.Data.Name).To(Equal("Carol"))
		Expect(body.Data.ID).To(HaveLen(36))

		var stored responsibleDatamodel.Responsible
		Expect(db.First(&stored, "id = ?", body.Data.ID).Error).NotTo(HaveOccurred())
		Expect(stored.Name).To(Equal("Carol"))
	})

	It("should reject a blank name with a field message", func() {
		w := do(http.MethodPost, "/responsibles", `{"name":"   "}`)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decodeError(w)).To(Equal("name: must contain at least 1 character(s)"))
	})

	It("should treat an empty body as an empty object", func() {
		w := do(http.MethodPost, "/responsibles", "")

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decodeError(w)).To(Equal("name: required"))
	})

	It("should reject malformed JSON", func() {
		w := do(http.MethodPost, "/responsibles", `{"name":`)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decodeError(w)).To(Equal("invalid request body"))
	})

	It("should reject a JSON body that is not an object", func() {
		w := do(http.MethodPost, "/responsibles", `["Carol"]`)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decodeError(w)).To(Equal("field: expected object, received array"))
	})

	It("should list responsibles newest first", func() {
		Expect(db.Create(&responsibleDatamodel.Responsible{Name: "Old", CreatedAt: mustTime("2024-01-01T10:00:00Z")}).Error).To(Succeed())
		Expect(db.Create(&responsibleDatamodel.Responsible{Name: "New", CreatedAt: mustTime("2024-02-01T10:00:00Z")}).Error).To(Succeed())

		w := do(http.MethodGet, "/responsibles", "")

		Expect(w.Code).To(Equal(http.StatusOK))
		var body responsibleListEnvelope
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body.Data).To(HaveLen(2))
		Expect(body.Data[0].Name).To(Equal("New"))
		Expect(body.Data[1].Name).To(Equal("Old"))
	})

	It("should render an empty list as an empty array", func() {
		w := do(http.MethodGet, "/responsibles", "")

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(strings.TrimSpace(w.Body.String())).To(Equal(`{"data":[]}`))
	})

	It("should rename a responsible", func() {
		row := &responsibleDatamodel.Responsible{Name: "Dan"}
		Expect(repo.Create(ctxBackground(), row)).To(Succeed())

		w := do(http.MethodPut, "/responsibles/"+row.ID, `{"name":"Daniel"}`)

		Expect(w.Code).To(Equal(http.StatusOK))
		var body responsibleEnvelope
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body.Data.ID).To(Equal(row.ID))
		Expect(body.Data.Name).To(Equal("Daniel"))
	})

	It("should reject a malformed id before touching the store", func() {
		w := do(http.MethodPut, "/responsibles/not-a-uuid", `{"name":"Daniel"}`)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decodeError(w)).To(Equal("invalid id"))
	})

	It("should report a store error when renaming an unknown id", func() {
		w := do(http.MethodPut, "/responsibles/11111111-1111-4111-8111-111111111111", `{"name":"Ghost"}`)

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(decodeError(w)).To(Equal("record not found"))
	})

	It("should delete a responsible unconditionally", func() {
		row := &responsibleDatamodel.Responsible{Name: "Eve"}
		Expect(repo.Create(ctxBackground(), row)).To(Succeed())

		w := do(http.MethodDelete, "/responsibles/"+row.ID, "")

		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(w.Body.Len()).To(Equal(0))

		var count int64
		db.Model(&responsibleDatamodel.Responsible{}).Count(&count)
		Expect(count).To(Equal(int64(0)))
	})
})
