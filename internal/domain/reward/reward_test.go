package reward_test

import (
	"testing"

	"github.com/okian/stride/internal/domain/model"
	"github.com/okian/stride/internal/domain/reward"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCalculator(t *testing.T) {
	Convey("Given a calculator with default amounts", t, func() {
		c := reward.NewCalculator()

		Convey("When the standard activities are rewarded", func() {
			So(c.Amount(model.ActivityWalk), ShouldEqual, 1)
			So(c.Amount(model.ActivityRun), ShouldEqual, 2)
			So(c.Amount(model.ActivityCycle), ShouldEqual, 1)
		})

		Convey("When an unweighted activity is rewarded", func() {
			So(c.Amount(model.ActivityType(9)), ShouldEqual, 1)
		})
	})

	Convey("Given a calculator with custom weights", t, func() {
		c := reward.NewCalculator(
			reward.WithWeights(map[model.ActivityType]uint64{
				model.ActivityRun:  10,
				model.ActivityWalk: 0, // ignored
			}),
			reward.WithDefaultAmount(3),
		)

		Convey("When amounts are computed", func() {
			So(c.Amount(model.ActivityRun), ShouldEqual, 10)
			So(c.Amount(model.ActivityWalk), ShouldEqual, 1)
			So(c.Amount(model.ActivityType(9)), ShouldEqual, 3)
		})
	})
}
