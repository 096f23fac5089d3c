package main_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	apidoc "github.com/frahmantamala/expense-tracker/api"
	"github.com/frahmantamala/expense-tracker/cmd"
	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/client"
	"github.com/frahmantamala/expense-tracker/internal/core/common/money"
	expenseDatamodel "github.com/frahmantamala/expense-tracker/internal/core/datamodel/expense"
	responsibleDatamodel "github.com/frahmantamala/expense-tracker/internal/core/datamodel/responsible"
	"github.com/frahmantamala/expense-tracker/internal/dashboard"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/platform/metrics"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Expense tracker API", func() {
	var (
		ctx      context.Context
		config   internal.Config
		registry *metrics.Metrics
		router   *chi.Mux
		server   *httptest.Server
		api      *client.Client
	)

	clock := func() time.Time { return time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC) }

	amount := func(s string) money.Amount {
		a, err := money.FromString(s)
		Expect(err).NotTo(HaveOccurred())
		return a
	}

	raw := func(method, path, body string) (int, map[string]interface{}) {
		req, err := http.NewRequest(method, server.URL+path, strings.NewReader(body))
		Expect(err).NotTo(HaveOccurred())
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		var out map[string]interface{}
		if len(data) > 0 {
			Expect(json.Unmarshal(data, &out)).To(Succeed())
		}
		return resp.StatusCode, out
	}

	statusOf := func(err error) int {
		var apiErr *client.APIError
		Expect(err).To(BeAssignableToTypeOf(apiErr))
		return err.(*client.APIError).StatusCode
	}

	BeforeEach(func() {
		ctx = context.Background()
		lg := slog.New(slog.NewTextHandler(GinkgoWriter, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)
		Expect(db.AutoMigrate(&responsibleDatamodel.Responsible{}, &expenseDatamodel.Expense{})).To(Succeed())

		config = internal.DefaultConfig()
		config.Server.AllowedOrigins = "https://app.example.com"
		registry = metrics.New()

		router = cmd.NewAPIRouter(&config, db, lg, registry, clock)
		server = httptest.NewServer(router)
		api = client.New(client.Config{BaseURL: server.URL}, lg)

		DeferCleanup(func() {
			server.Close()
			_ = sqlDB.Close()
		})
	})

	It("should report health and readiness", func() {
		ok, err := api.Health(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())

		status, body := raw(http.MethodGet, "/ready", "")
		Expect(status).To(Equal(http.StatusOK))
		Expect(body["status"]).To(Equal("healthy"))
	})

	It("should list the endpoints on the index", func() {
		status, body := raw(http.MethodGet, "/", "")
		Expect(status).To(Equal(http.StatusOK))
		Expect(body["ok"]).To(BeTrue())
		Expect(body["endpoints"]).NotTo(BeEmpty())
	})

	It("should store the trimmed responsible name", func() {
		created, err := api.CreateResponsible(ctx, "  Dana ")
		Expect(err).NotTo(HaveOccurred())
		Expect(created.Name).To(Equal("Dana"))

		list, err := api.ListResponsibles(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(1))
		Expect(list[0].Name).To(Equal("Dana"))
		Expect(testutil.ToFloat64(registry.ResponsiblesCreated)).To(Equal(1.0))
	})

	It("should store an empty responsible_id as null", func() {
		status, body := raw(http.MethodPost, "/expenses",
			`{"responsible_id":"","description":"Bread","amount":"3.10","spent_at":"2024-03-02"}`)
		Expect(status).To(Equal(http.StatusCreated))
		data := body["data"].(map[string]interface{})
		Expect(data).To(HaveKeyWithValue("responsible_id", BeNil()))
		Expect(data).To(HaveKeyWithValue("status", "open"))
		Expect(data).To(HaveKeyWithValue("amount", 3.1))
	})

	It("should join validation failures in field order", func() {
		status, body := raw(http.MethodPost, "/expenses", `{"description":"  ","amount":-1}`)
		Expect(status).To(Equal(http.StatusBadRequest))
		msg := body["error"].(string)
		Expect(strings.Index(msg, "description")).To(BeNumerically("<", strings.Index(msg, "amount")))
		Expect(msg).To(ContainSubstring("spent_at"))
	})

	It("should delete open expenses and refuse paid ones", func() {
		open, err := api.CreateExpense(ctx, client.ExpenseRequest{Description: "Soap", Amount: amount("4"), SpentAt: "2024-03-03"})
		Expect(err).NotTo(HaveOccurred())
		paid, err := api.CreateExpense(ctx, client.ExpenseRequest{Description: "Rent", Amount: amount("900"), Status: "paid", SpentAt: "2024-03-01"})
		Expect(err).NotTo(HaveOccurred())

		Expect(api.DeleteExpense(ctx, open.ID)).To(Succeed())

		err = api.DeleteExpense(ctx, paid.ID)
		Expect(statusOf(err)).To(Equal(http.StatusBadRequest))
		Expect(err.Error()).To(Equal("only open expenses may be deleted"))

		list, err := api.ListExpenses(ctx, client.ExpenseQuery{})
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(1))
		Expect(list[0].ID).To(Equal(paid.ID))

		Expect(testutil.ToFloat64(registry.ExpensesDeleted)).To(Equal(1.0))
		Expect(testutil.ToFloat64(registry.ExpenseDeleteRejections.WithLabelValues("not_open"))).To(Equal(1.0))
	})

	It("should answer 404 for an unknown expense id", func() {
		err := api.DeleteExpense(ctx, "3f0c8a52-4d7e-4c1e-9a55-0d7a1b9f2e11")
		Expect(statusOf(err)).To(Equal(http.StatusNotFound))
		Expect(err.Error()).To(Equal("expense not found"))

		err = api.DeleteExpense(ctx, "not-a-uuid")
		Expect(statusOf(err)).To(Equal(http.StatusBadRequest))
		Expect(err.Error()).To(Equal("invalid id"))
	})

	It("should refuse to delete an expense after it was paid", func() {
		created, err := api.CreateExpense(ctx, client.ExpenseRequest{Description: "Taxi", Amount: amount("18.5"), SpentAt: "2024-03-04"})
		Expect(err).NotTo(HaveOccurred())

		updated, err := api.SetExpenseStatus(ctx, created.ID, expense.StatusPaid)
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.Status).To(Equal(expense.StatusPaid))

		err = api.DeleteExpense(ctx, created.ID)
		Expect(statusOf(err)).To(Equal(http.StatusBadRequest))
	})

	It("should sort by spent_at then created_at, newest first", func() {
		for _, e := range []struct{ desc, date string }{
			{"first", "2024-03-02"},
			{"second", "2024-03-05"},
			{"third", "2024-03-02"},
		} {
			_, err := api.CreateExpense(ctx, client.ExpenseRequest{Description: e.desc, Amount: amount("1"), SpentAt: e.date})
			Expect(err).NotTo(HaveOccurred())
		}

		list, err := api.ListExpenses(ctx, client.ExpenseQuery{})
		Expect(err).NotTo(HaveOccurred())
		var order []string
		for _, e := range list {
			order = append(order, e.Description)
		}
		Expect(order).To(Equal([]string{"second", "third", "first"}))
	})

	It("should include a new expense in the dashboard of its month", func() {
		status, _ := raw(http.MethodPost, "/expenses",
			`{"description":"Groceries","amount":"25.90","spent_at":"2024-03-05","status":"open"}`)
		Expect(status).To(Equal(http.StatusCreated))
		_, err := api.CreateExpense(ctx, client.ExpenseRequest{Description: "Outside", Amount: amount("100"), SpentAt: "2024-04-01"})
		Expect(err).NotTo(HaveOccurred())

		summary, err := api.Dashboard(ctx, "2024-03-01", "2024-03-31")
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.Total.String()).To(Equal("25.9"))
		Expect(summary.Count).To(Equal(1))
		Expect(summary.Recent).To(HaveLen(1))
		Expect(summary.Recent[0].Description).To(Equal("Groceries"))
		Expect(summary.ByResponsible.Names()).To(Equal([]string{dashboard.UnassignedLabel}))
	})

	It("should group dashboard totals by responsible and default to the current month", func() {
		ana, err := api.CreateResponsible(ctx, "Ana")
		Expect(err).NotTo(HaveOccurred())
		for _, e := range []client.ExpenseRequest{
			{ResponsibleID: ana.ID, Description: "a", Amount: amount("10.10"), SpentAt: "2024-03-01"},
			{ResponsibleID: ana.ID, Description: "b", Amount: amount("0.20"), SpentAt: "2024-03-15"},
			{Description: "c", Amount: amount("5"), SpentAt: "2024-03-10"},
			{Description: "d", Amount: amount("7"), SpentAt: "2024-02-29"},
		} {
			_, err := api.CreateExpense(ctx, e)
			Expect(err).NotTo(HaveOccurred())
		}

		summary, err := api.Dashboard(ctx, "", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.Range).To(Equal(dashboard.Range{From: "2024-03-01", To: "2024-03-15"}))
		Expect(summary.Total.String()).To(Equal("15.3"))
		anaTotal, ok := summary.ByResponsible.Get("Ana")
		Expect(ok).To(BeTrue())
		Expect(anaTotal.String()).To(Equal("10.3"))
		unassigned, ok := summary.ByResponsible.Get(dashboard.UnassignedLabel)
		Expect(ok).To(BeTrue())
		Expect(unassigned.String()).To(Equal("5"))
		Expect(summary.Recent[0].Description).To(Equal("b"))
	})

	It("should unassign expenses when their responsible is deleted", func() {
		bob, err := api.CreateResponsible(ctx, "Bob")
		Expect(err).NotTo(HaveOccurred())
		_, err = api.CreateExpense(ctx, client.ExpenseRequest{ResponsibleID: bob.ID, Description: "Fuel", Amount: amount("60"), SpentAt: "2024-03-06"})
		Expect(err).NotTo(HaveOccurred())

		list, err := api.ListExpenses(ctx, client.ExpenseQuery{ResponsibleID: bob.ID})
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(1))
		Expect(list[0].Responsible).To(Equal(&expense.ResponsibleRef{ID: bob.ID, Name: "Bob"}))

		Expect(api.DeleteResponsible(ctx, bob.ID)).To(Succeed())

		list, err = api.ListExpenses(ctx, client.ExpenseQuery{})
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(1))
		Expect(list[0].ResponsibleID).To(BeNil())
		Expect(list[0].Responsible).To(BeNil())
	})

	It("should reject bodies above the size limit", func() {
		body := `{"name":"` + strings.Repeat("x", int(config.Server.BodyLimitBytes)) + `"}`
		status, resp := raw(http.MethodPost, "/responsibles", body)
		Expect(status).To(Equal(http.StatusRequestEntityTooLarge))
		Expect(resp["error"]).To(Equal("request body too large"))
	})

	It("should answer unknown routes with a JSON error", func() {
		status, body := raw(http.MethodGet, "/nope", "")
		Expect(status).To(Equal(http.StatusNotFound))
		Expect(body["error"]).To(Equal("not found"))
	})

	It("should allow only the configured origins", func() {
		req, _ := http.NewRequest(http.MethodGet, server.URL+"/health", nil)
		req.Header.Set("Origin", "https://app.example.com")
		resp, err := http.DefaultClient.Do(req)
		Expect(err).NotTo(HaveOccurred())
		resp.Body.Close()
		Expect(resp.Header.Get("Access-Control-Allow-Origin")).To(Equal("https://app.example.com"))

		req.Header.Set("Origin", "https://evil.example.com")
		resp, err = http.DefaultClient.Do(req)
		Expect(err).NotTo(HaveOccurred())
		resp.Body.Close()
		Expect(resp.Header.Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})

	It("should expose request metrics", func() {
		_, err := api.ListResponsibles(ctx)
		Expect(err).NotTo(HaveOccurred())

		resp, err := http.Get(server.URL + internal.DefaultMetricsPath)
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring("expense_tracker_http_request_duration_seconds"))
	})

	It("should document every API route", func() {
		doc, err := apidoc.Load(ctx)
		Expect(err).NotTo(HaveOccurred())

		undocumented := map[string]bool{
			"/openapi.yml":              true,
			"/swagger/*":                true,
			internal.DefaultMetricsPath: true,
		}
		err = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			if route != "/" {
				route = strings.TrimSuffix(route, "/")
			}
			if undocumented[route] {
				return nil
			}
			item := doc.Paths.Value(route)
			Expect(item).NotTo(BeNil(), route)
			Expect(item.GetOperation(method)).NotTo(BeNil(), method+" "+route)
			return nil
		})
		Expect(err).NotTo(HaveOccurred())
	})
})
