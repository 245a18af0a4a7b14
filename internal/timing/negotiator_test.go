package timing_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/neurosim/internal/dynamo"
	"github.com/san-kum/neurosim/internal/timing"
)

var _ = Describe("Table", func() {
	It("accepts the default table", func() {
		_, err := timing.New(timing.DefaultTable())
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects an empty table", func() {
		_, err := timing.New(nil)
		Expect(err).To(MatchError(dynamo.ErrEmptyTable))
	})

	It("rejects unordered step sizes", func() {
		_, err := timing.New([]timing.Entry{{0.01, 100}, {0.005, 50}})
		Expect(err).To(MatchError(dynamo.ErrTableOrder))
	})

	It("rejects non-decreasing points", func() {
		_, err := timing.New([]timing.Entry{{0.005, 100}, {0.01, 100}})
		Expect(err).To(MatchError(dynamo.ErrTableOrder))
	})

	It("rejects non-positive entries", func() {
		_, err := timing.New([]timing.Entry{{0, 100}})
		Expect(err).To(MatchError(dynamo.ErrTableOrder))
	})
})

var _ = Describe("Negotiator", func() {
	var neg *timing.Negotiator

	BeforeEach(func() {
		neg = timing.NewNegotiator(timing.DefaultTable())
	})

	Context("with a positive burst duration", func() {
		It("reproduces the recorded reference pair for burst=1s at 1kHz", func() {
			// No multiple of 1000 points passes the near-integer test, so
			// the fallback picks the entry at the third multiple (3000):
			// dt=0.05 with 5716.9 points, i.e. round(5.7169) = 6 sub-steps.
			dt, steps := neg.Negotiate(0.15, 0.001, 1.0)
			Expect(dt).To(Equal(0.05))
			Expect(steps).To(Equal(6))
		})

		It("accepts a near-integer multiple when one exists", func() {
			// 5716.9 / 500 = 11.4338: fractional part 0.4338 <= 0.1*11.
			dt, steps := neg.Negotiate(0.15, 0.001, 0.5)
			Expect(dt).To(Equal(0.05))
			Expect(steps).To(Equal(11))
		})

		It("accepts on the first multiple for slow hosts", func() {
			// 2829.7 / 100 = 28.297: fractional part 0.297 <= 2.8.
			dt, steps := neg.Negotiate(0.15, 0.01, 1.0)
			Expect(dt).To(Equal(0.1))
			Expect(steps).To(Equal(28))
		})

		It("falls back directly when the request already exceeds the smallest entry", func() {
			dt, steps := neg.Negotiate(0.15, 0.0001, 1.0)
			Expect(dt).To(Equal(0.02))
			Expect(steps).To(Equal(1))
		})

		It("keeps dt and tiles the period when no entry covers the request", func() {
			dt, steps := neg.Negotiate(0.15, 1e-7, 1.0)
			Expect(dt).To(Equal(0.15))
			Expect(steps).To(Equal(1))
		})
	})

	Context("with no burst matching requested", func() {
		It("tiles the host period at the current dt", func() {
			dt, steps := neg.Negotiate(0.0005, 0.001, 0)
			Expect(dt).To(Equal(0.0005))
			Expect(steps).To(Equal(2))
		})

		It("clamps the sub-step count to a minimum of one", func() {
			dt, steps := neg.Negotiate(0.0015, 0.001, -1.0)
			Expect(dt).To(Equal(0.0015))
			Expect(steps).To(Equal(1))
		})

		It("clamps the sub-step count to the cap", func() {
			_, steps := neg.Negotiate(1e-9, 0.1, 0)
			Expect(steps).To(Equal(timing.MaxSubSteps))
		})

		It("degrades to one sub-step for a non-positive dt", func() {
			dt, steps := neg.Negotiate(0, 0.001, 0)
			Expect(dt).To(Equal(0.0))
			Expect(steps).To(Equal(1))
		})
	})

	Context("with a non-positive host period", func() {
		It("performs no search and returns one sub-step", func() {
			dt, steps := neg.Negotiate(0.15, 0, 1.0)
			Expect(dt).To(Equal(0.15))
			Expect(steps).To(Equal(1))

			dt, steps = neg.Negotiate(0.15, -0.001, 1.0)
			Expect(dt).To(Equal(0.15))
			Expect(steps).To(Equal(1))
		})
	})

	It("always selects a table step size and a bounded count", func() {
		table := timing.DefaultTable()
		inTable := func(dt float64) bool {
			for _, e := range table {
				if e.Dt == dt {
					return true
				}
			}
			return false
		}

		for _, period := range []float64{1e-5, 1e-4, 1e-3, 1e-2, 0.1, 1.0} {
			for _, burst := range []float64{0.01, 0.1, 0.5, 1.0, 2.0, 10.0} {
				dt, steps := neg.Negotiate(0.15, period, burst)
				Expect(steps).To(And(BeNumerically(">=", 1), BeNumerically("<=", timing.MaxSubSteps)))
				if dt != 0.15 {
					Expect(inTable(dt)).To(BeTrue(), "dt %v not in table (period=%v burst=%v)", dt, period, burst)
				}
			}
		}
	})

	It("is deterministic", func() {
		dt1, s1 := neg.Negotiate(0.15, 0.001, 1.0)
		dt2, s2 := neg.Negotiate(0.15, 0.001, 1.0)
		Expect(dt1).To(Equal(dt2))
		Expect(s1).To(Equal(s2))
	})
})
