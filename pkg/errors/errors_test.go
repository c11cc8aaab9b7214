package errors_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	srvErrors "github.com/kubev2v/workpark/pkg/errors"
)

var _ = Describe("Errors", func() {
	It("should detect wrapped not found errors", func() {
		err := fmt.Errorf("loading run: %w", srvErrors.NewRunNotFoundError("abc"))

		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring(`run "abc" not found`))
		Expect(srvErrors.IsBenchInProgressError(err)).To(BeFalse())
	})

	It("should keep the recovered panic value", func() {
		err := srvErrors.NewWorkerPanicError("boom")

		Expect(srvErrors.IsWorkerPanicError(err)).To(BeTrue())
		Expect(err).To(MatchError("worker panicked: boom"))
	})

	It("should format invalid parameters", func() {
		err := srvErrors.NewInvalidParamsError("workers must be positive, got %d", 0)

		Expect(srvErrors.IsInvalidParamsError(err)).To(BeTrue())
		Expect(err).To(MatchError("invalid parameters: workers must be positive, got 0"))
	})

	It("should detect bench in progress", func() {
		Expect(srvErrors.IsBenchInProgressError(srvErrors.NewBenchInProgressError())).To(BeTrue())
	})
})
