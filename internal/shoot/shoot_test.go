package shoot_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rkshoot/internal/dynamo"
	"github.com/san-kum/rkshoot/internal/models"
	"github.com/san-kum/rkshoot/internal/shoot"
	"github.com/san-kum/rkshoot/internal/sim"
)

func linear(slope float64) shoot.Func {
	return func(theta float64) (float64, error) {
		return slope * theta, nil
	}
}

var _ = Describe("Bracket", func() {
	It("reports midpoint and width", func() {
		b := shoot.Bracket{Low: 1, High: 3}
		Expect(b.Mid()).To(Equal(2.0))
		Expect(b.Width()).To(Equal(2.0))
	})

	It("rejects inverted and empty brackets", func() {
		Expect(shoot.Bracket{Low: 2, High: 1}.Validate()).To(MatchError(dynamo.ErrBracket))
		Expect(shoot.Bracket{Low: 1, High: 1}.Validate()).To(MatchError(dynamo.ErrBracket))
		Expect(shoot.Bracket{Low: 0, High: 1}.Validate()).To(Succeed())
	})
})

var _ = Describe("Search", func() {
	It("converges on an increasing evaluation", func() {
		s := &shoot.Search{Eval: linear(2), Target: 5, Iterations: 20, Slope: shoot.Increasing}
		b, err := s.Run(shoot.Bracket{Low: 0, High: 10})
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Low).To(BeNumerically("<=", 2.5))
		Expect(b.High).To(BeNumerically(">=", 2.5))
		Expect(b.Mid()).To(BeNumerically("~", 2.5, 1e-4))
	})

	It("converges on a decreasing evaluation with the default slope", func() {
		b, err := shoot.Bisect(linear(-2), 0, 10, -5, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Mid()).To(BeNumerically("~", 2.5, 1e-4))
	})

	It("raises the low bound when the value is too high", func() {
		s := &shoot.Search{Eval: linear(-1), Target: -100}
		b, it, err := s.Step(shoot.Bracket{Low: 0, High: 4})
		Expect(err).NotTo(HaveOccurred())
		Expect(it.Theta).To(Equal(2.0))
		Expect(b).To(Equal(shoot.Bracket{Low: 2, High: 4}))
	})

	It("halves the bracket width every iteration", func() {
		var widths []float64
		s := &shoot.Search{
			Eval:       linear(1),
			Target:     0.3,
			Iterations: 12,
			OnIter: func(it shoot.Iter) error {
				widths = append(widths, it.Bracket.Width())
				Expect(it.Bracket.Low).To(BeNumerically("<", it.Bracket.High))
				return nil
			},
		}
		b, err := s.Run(shoot.Bracket{Low: 0, High: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(widths).To(HaveLen(12))
		for k, w := range widths {
			Expect(w).To(Equal(math.Ldexp(1, -(k + 1))))
		}
		Expect(b.Width()).To(Equal(math.Ldexp(1, -12)))
	})

	It("stops early on ErrStopped", func() {
		s := &shoot.Search{
			Eval:       linear(1),
			Target:     0.5,
			Iterations: 10,
			OnIter: func(it shoot.Iter) error {
				if it.K == 3 {
					return shoot.ErrStopped
				}
				return nil
			},
		}
		b, err := s.Run(shoot.Bracket{Low: 0, High: 8})
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Width()).To(Equal(1.0))
	})

	It("propagates evaluation errors", func() {
		boom := errors.New("boom")
		s := &shoot.Search{
			Eval:       func(float64) (float64, error) { return 0, boom },
			Iterations: 3,
		}
		b, err := s.Run(shoot.Bracket{Low: 0, High: 1})
		Expect(err).To(MatchError(boom))
		Expect(b).To(Equal(shoot.Bracket{Low: 0, High: 1}))
	})

	It("rejects an inverted bracket before evaluating", func() {
		called := false
		s := &shoot.Search{
			Eval:       func(float64) (float64, error) { called = true; return 0, nil },
			Iterations: 3,
		}
		_, err := s.Run(shoot.Bracket{Low: 1, High: 0})
		Expect(err).To(MatchError(dynamo.ErrBracket))
		Expect(called).To(BeFalse())
	})
})

var _ = Describe("FinalX", func() {
	pendulum := func(theta float64) dynamo.Model { return models.NewPendulumDrive(theta) }

	It("returns the last recorded x", func() {
		eval := shoot.FinalX(pendulum, shoot.Shot{Step: 0.01, MaxIter: sim.DefaultMaxIter, Stop: sim.Horizon(3)})
		x, err := eval(0.4)
		Expect(err).NotTo(HaveOccurred())
		Expect(x).To(BeNumerically("<=", 3.0))
		Expect(x).To(BeNumerically(">", 2.98))
	})

	It("fails on an empty trajectory", func() {
		eval := shoot.FinalX(pendulum, shoot.Shot{Step: 0.01, MaxIter: 10, Stop: sim.AngleReached(0)})
		_, err := eval(0.4)
		Expect(err).To(MatchError(dynamo.ErrEmptyTrajectory))
	})

	It("finds the drive angle that lifts the rod to pi/2 at x = 3", func() {
		shot := shoot.Shot{Step: 0.01, MaxIter: sim.DefaultMaxIter, Stop: sim.AngleReached(math.Pi / 2)}
		eval := shoot.FinalX(pendulum, shot)

		b, err := shoot.Bisect(eval, 0, math.Pi/2, 3.0, 20)
		Expect(err).NotTo(HaveOccurred())

		x, err := eval(b.Mid())
		Expect(err).NotTo(HaveOccurred())
		Expect(x).To(BeNumerically("~", 3.0, 0.02))
	})
})
