package app_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/workpark/cmd/workpark/app"
)

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := app.NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

var _ = Describe("workpark CLI", func() {
	Context("run", func() {
		It("should print a completed coordinator run", func() {
			out, err := execute("run", "--bench-workers", "3", "--rounds", "20", "--log-level", "error")

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("mode:      coordinator"))
			Expect(out).To(ContainSubstring("wakeups:   60 / 60"))
			Expect(out).To(ContainSubstring("status:    completed"))
		})

		It("should run in scheduler mode", func() {
			out, err := execute("run", "--mode", "scheduler", "--bench-workers", "2", "--rounds", "10", "--log-level", "error")

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("wakeups:   20 / 20"))
		})

		It("should reject an unknown mode", func() {
			_, err := execute("run", "--mode", "threads", "--log-level", "error")
			Expect(err).To(HaveOccurred())
		})

		It("should reject rounds beyond the accepted maximum", func() {
			_, err := execute("run", "--mode", "scheduler", "--bench-workers", "3", "--rounds", "4611686018427387904", "--log-level", "error")
			Expect(err).To(MatchError(ContainSubstring("rounds must not exceed")))
		})

		It("should reject an invalid log level", func() {
			_, err := execute("run", "--log-level", "loud")
			Expect(err).To(HaveOccurred())
		})
	})

	Context("history", func() {
		It("should require a data folder", func() {
			_, err := execute("history", "--log-level", "error")
			Expect(err).To(HaveOccurred())
		})

		It("should list runs stored by previous invocations", func() {
			// Arrange
			dir := GinkgoT().TempDir()
			_, err := execute("run", "--bench-workers", "2", "--rounds", "5", "--data-folder", dir, "--log-level", "error")
			Expect(err).NotTo(HaveOccurred())
			_, err = execute("run", "--mode", "scheduler", "--bench-workers", "2", "--rounds", "5", "--data-folder", dir, "--log-level", "error")
			Expect(err).NotTo(HaveOccurred())

			// Act
			out, err := execute("history", "--data-folder", dir, "--log-level", "error")

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("coordinator"))
			Expect(out).To(ContainSubstring("scheduler"))
			Expect(out).To(ContainSubstring("10/10"))
		})

		It("should filter by mode", func() {
			dir := GinkgoT().TempDir()
			_, err := execute("run", "--bench-workers", "2", "--rounds", "5", "--data-folder", dir, "--log-level", "error")
			Expect(err).NotTo(HaveOccurred())

			out, err := execute("history", "--data-folder", dir, "--filter-mode", "scheduler", "--log-level", "error")

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("no runs stored"))
		})
	})
})
