package current_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gaugesim/internal/color"
	"github.com/san-kum/gaugesim/internal/current"
)

var _ = Describe("Density", func() {
	var f color.Factory

	BeforeEach(func() {
		var err error
		f, err = color.NewFactory(2)
		Expect(err).NotTo(HaveOccurred())
	})

	It("spreads a point charge with cloud-in-cell weights", func() {
		d := current.NewDensity([]int{8, 8}, 0.5, f)
		d.Deposit([]float64{1.125, 2.25}, charge(f, 0, 0, 1))

		Expect(d.Cells[2*8+4].Get(2)).To(BeNumerically("~", 0.375, 1e-15))
		Expect(d.Cells[3*8+4].Get(2)).To(BeNumerically("~", 0.125, 1e-15))
		Expect(d.Cells[2*8+5].Get(2)).To(BeNumerically("~", 0.375, 1e-15))
		Expect(d.TotalCharge().Get(2)).To(BeNumerically("~", 1, 1e-15))
	})

	It("finds the center of a single charge", func() {
		d := current.NewDensity([]int{10, 10}, 1, f)
		d.Deposit([]float64{3, 7}, charge(f, -2, 0, 0))

		Expect(d.CenterOfAbsCharge(0)).To(Equal([]float64{3, 7}))
		Expect(d.CenterOfInvariantCharge()).To(Equal([]float64{3, 7}))
		Expect(d.AverageDistance(0)).To(Equal(0.0))
	})

	It("returns NaN centers for an empty density", func() {
		d := current.NewDensity([]int{4, 4}, 1, f)
		for _, x := range d.CenterOfInvariantCharge() {
			Expect(math.IsNaN(x)).To(BeTrue())
		}
		Expect(math.IsNaN(d.AverageDistance(1))).To(BeTrue())
	})

	It("measures the average distance from the center", func() {
		d := current.NewDensity([]int{16}, 1, f)
		d.Deposit([]float64{4}, charge(f, 1, 0, 0))
		d.Deposit([]float64{10}, charge(f, -1, 0, 0))

		Expect(d.CenterOfAbsCharge(0)).To(Equal([]float64{7}))
		Expect(d.AverageDistance(0)).To(Equal(3.0))
	})

	It("removes the monopole moment", func() {
		d := current.NewDensity([]int{6, 6}, 1, f)
		d.Deposit([]float64{2.5, 1.5}, charge(f, 1, -0.5, 0.25))
		d.RemoveMonopoleMoment()

		total := d.TotalCharge()
		for c := 0; c < 3; c++ {
			Expect(total.Get(c)).To(BeNumerically("~", 0, 1e-14))
		}
	})

	It("removes the dipole moment of a neutral density", func() {
		d := current.NewDensity([]int{32, 32}, 1, f)
		d.Deposit([]float64{12, 14}, charge(f, 1, 0, 0))
		d.Deposit([]float64{18.5, 16}, charge(f, -1, 0, 0))
		d.Deposit([]float64{15, 15}, charge(f, 0, 0.5, 0))
		d.Deposit([]float64{15, 20}, charge(f, 0, -0.5, 0))

		Expect(d.DipoleMoment(0)[0]).NotTo(BeNumerically("~", 0, 1e-3))
		d.RemoveDipoleMoment()

		for c := 0; c < 3; c++ {
			for _, m := range d.DipoleMoment(c) {
				Expect(m).To(BeNumerically("~", 0, 1e-10))
			}
			Expect(d.TotalCharge().Get(c)).To(BeNumerically("~", 0, 1e-12))
		}
	})
})
