package clock_test

import (
	"testing"
	"time"

	"github.com/frahmantamala/time-tracking/pkg/clock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestClock(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Clock Suite")
}

var _ = Describe("OfficeClock", func() {
	Describe("Now", func() {
		It("should run ahead of UTC by the configured offset", func() {
			c := clock.NewOfficeClock(3)
			diff := c.Now().Sub(time.Now().UTC())
			Expect(diff).To(BeNumerically("~", 3*time.Hour, time.Second))
		})

		It("should support negative offsets", func() {
			c := clock.NewOfficeClock(-5)
			diff := c.Now().Sub(time.Now().UTC())
			Expect(diff).To(BeNumerically("~", -5*time.Hour, time.Second))
		})
	})

	Describe("Default", func() {
		It("should use the standard office offset", func() {
			diff := clock.Default().Now().Sub(time.Now().UTC())
			Expect(diff).To(BeNumerically("~", time.Duration(clock.DefaultOffsetHours)*time.Hour, time.Second))
		})
	})

	Describe("ToLocal and ToUTC", func() {
		c := clock.NewOfficeClock(3)

		It("should round-trip a timestamp", func() {
			utc := time.Date(2024, 1, 15, 6, 0, 0, 0, time.UTC)
			local := c.ToLocal(&utc)
			Expect(local.Hour()).To(Equal(9))

			back := c.ToUTC(local)
			Expect(back.Equal(utc)).To(BeTrue())
		})

		It("should pass nil through", func() {
			Expect(c.ToLocal(nil)).To(BeNil())
			Expect(c.ToUTC(nil)).To(BeNil())
		})
	})
})
