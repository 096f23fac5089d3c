package internal_test

import (
	"time"

	"github.com/frahmantamala/expense-tracker/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	Describe("LoadConfigFromEnv", func() {
		It("should fall back to the defaults", func() {
			GinkgoT().Setenv("DATABASE_URL", "postgres://localhost/expenses")
			GinkgoT().Setenv("PORT", "")

			cfg := internal.LoadConfigFromEnv()

			Expect(cfg.Server.Port).To(Equal(internal.DefaultPort))
			Expect(cfg.Server.Origins()).To(Equal([]string{"*"}))
			Expect(cfg.Server.BodyLimitBytes).To(Equal(int64(internal.DefaultBodyLimitBytes)))
			Expect(cfg.Observability.Metrics.Path).To(Equal(internal.DefaultMetricsPath))
			Expect(cfg.Validate()).To(Succeed())
		})

		It("should read overrides", func() {
			GinkgoT().Setenv("DATABASE_URL", "postgres://localhost/expenses")
			GinkgoT().Setenv("PORT", "8080")
			GinkgoT().Setenv("CORS_ORIGIN", " https://a.example.com, ,https://b.example.com ")
			GinkgoT().Setenv("DB_CONN_MAX_LIFETIME", "2m")
			GinkgoT().Setenv("METRICS_ENABLED", "false")
			GinkgoT().Setenv("API_BASE_URL", "http://api:3333")

			cfg := internal.LoadConfigFromEnv()

			Expect(cfg.Server.Port).To(Equal(8080))
			Expect(cfg.Server.Origins()).To(Equal([]string{"https://a.example.com", "https://b.example.com"}))
			Expect(cfg.Database.ConnMaxLifetime).To(Equal(2 * time.Minute))
			Expect(cfg.Observability.Metrics.Enabled).To(BeFalse())
			Expect(cfg.Client.BaseURL).To(Equal("http://api:3333"))
		})

		It("should ignore values that do not parse", func() {
			GinkgoT().Setenv("PORT", "eighty")
			GinkgoT().Setenv("READ_TIMEOUT", "soon")

			cfg := internal.LoadConfigFromEnv()

			Expect(cfg.Server.Port).To(Equal(internal.DefaultPort))
			Expect(cfg.Server.ReadTimeout).To(Equal(15 * time.Second))
		})
	})

	Describe("Validate", func() {
		var cfg internal.Config

		BeforeEach(func() {
			cfg = internal.DefaultConfig()
			cfg.Database.Source = "postgres://localhost/expenses"
		})

		It("should require a database source", func() {
			cfg.Database.Source = ""
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("database config: source is required")))
		})

		It("should collect every problem", func() {
			cfg.Server.Port = 0
			cfg.Observability.Logging.Level = "loud"

			err := cfg.Validate()

			Expect(err).To(MatchError(ContainSubstring("port 0 out of range")))
			Expect(err).To(MatchError(ContainSubstring(`unknown log level "loud"`)))
		})

		It("should reject malformed origins", func() {
			cfg.Server.AllowedOrigins = "https://ok.example.com,not-an-origin"
			Expect(cfg.Validate()).To(MatchError(ContainSubstring(`invalid allowed origin "not-an-origin"`)))
		})

		It("should reject a metrics path without a leading slash", func() {
			cfg.Observability.Metrics.Path = "metrics"
			Expect(cfg.Validate()).To(HaveOccurred())
		})
	})
})
