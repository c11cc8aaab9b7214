package config_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/viper"

	"github.com/kubev2v/workpark/internal/config"
)

var _ = Describe("Configuration", func() {
	It("should apply defaults", func() {
		cfg, err := config.NewConfigurationWithDefaults()

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Server.ServerMode).To(Equal("dev"))
		Expect(cfg.Server.HTTPPort).To(Equal(8000))
		Expect(cfg.Pool.NumWorkers).To(Equal(3))
		Expect(cfg.Bench.Mode).To(Equal("coordinator"))
		Expect(cfg.Bench.Rounds).To(Equal(1000))
		Expect(cfg.Bench.Timeout).To(Equal(30 * time.Second))
		Expect(cfg.LogLevel).To(Equal("info"))
		Expect(cfg.Validate()).To(Succeed())
	})

	// Given values set in viper
	// When the configuration is loaded
	// Then set values should override the defaults and the rest should stay
	It("should override defaults with values set in viper", func() {
		// Arrange
		v := viper.New()
		v.Set(config.KeyNumWorkers, 8)
		v.Set(config.KeyBenchMode, "scheduler")
		v.Set(config.KeyMaxDelay, "250us")
		v.Set(config.KeyLogFormat, "json")

		// Act
		cfg, err := config.Load(v)

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Pool.NumWorkers).To(Equal(8))
		Expect(cfg.Bench.Mode).To(Equal("scheduler"))
		Expect(cfg.Bench.MaxDelay).To(Equal(250 * time.Microsecond))
		Expect(cfg.LogFormat).To(Equal("json"))
		Expect(cfg.Bench.Workers).To(Equal(4))
	})

	DescribeTable("should reject invalid values",
		func(key string, value any) {
			v := viper.New()
			v.Set(key, value)

			_, err := config.Load(v)
			Expect(err).To(HaveOccurred())
		},
		Entry("server mode", config.KeyServerMode, "staging"),
		Entry("port", config.KeyHTTPPort, 0),
		Entry("pool workers", config.KeyNumWorkers, 0),
		Entry("bench mode", config.KeyBenchMode, "spin"),
		Entry("rounds", config.KeyRounds, -1),
		Entry("timeout", config.KeyTimeout, "0s"),
		Entry("log format", config.KeyLogFormat, "xml"),
	)

	It("should expose every section in the debug map", func() {
		cfg, err := config.NewConfigurationWithDefaults()
		Expect(err).NotTo(HaveOccurred())

		Expect(cfg.DebugMap()).To(HaveKeyWithValue("pool.workers", 3))
		Expect(cfg.DebugMap()).To(HaveKeyWithValue("bench.timeout", "30s"))
	})
})
