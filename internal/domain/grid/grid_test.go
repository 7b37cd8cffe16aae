package grid_test

import (
	"fmt"
	"testing"

	"github.com/okian/stride/internal/domain/grid"
	"github.com/okian/stride/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestIndex(t *testing.T) {
	Convey("Given a new grid index", t, func() {
		idx := grid.NewIndex()

		Convey("When a player marks a fresh cell", func() {
			seen := idx.CheckAndMark("p1", 35_000_123, 51_000_456)

			Convey("Then the pair is newly recorded", func() {
				So(seen, ShouldBeFalse)
				So(idx.Size(), ShouldEqual, 1)
			})
		})

		Convey("When the same player marks the same cell again", func() {
			idx.CheckAndMark("p1", 35_000_123, 51_000_456)

			Convey("And the coordinate is identical", func() {
				So(idx.CheckAndMark("p1", 35_000_123, 51_000_456), ShouldBeTrue)
			})

			Convey("And the coordinate differs but rounds to the same cell", func() {
				So(idx.CheckAndMark("p1", 35_000_999, 51_000_001), ShouldBeTrue)
				So(idx.Size(), ShouldEqual, 1)
			})
		})

		Convey("When the same player marks an adjacent cell", func() {
			idx.CheckAndMark("p1", 35_000_123, 51_000_456)
			seen := idx.CheckAndMark("p1", 35_001_123, 51_000_456)

			Convey("Then it is a distinct pair", func() {
				So(seen, ShouldBeFalse)
				So(idx.Size(), ShouldEqual, 2)
			})
		})

		Convey("When a different player marks the same cell", func() {
			idx.CheckAndMark("p1", 35_000_123, 51_000_456)
			seen := idx.CheckAndMark("p2", 35_000_123, 51_000_456)

			Convey("Then the pair is per-player", func() {
				So(seen, ShouldBeFalse)
				So(idx.Size(), ShouldEqual, 2)
			})
		})

		Convey("When Marked probes without recording", func() {
			So(idx.Marked("p1", 35_000_123, 51_000_456), ShouldBeFalse)
			So(idx.Size(), ShouldEqual, 0)

			idx.CheckAndMark("p1", 35_000_123, 51_000_456)
			So(idx.Marked("p1", 35_000_123, 51_000_456), ShouldBeTrue)
		})

		Convey("When many cells are marked the ratchet never releases", func() {
			for n := 0; n < 500; n++ {
				lat := int64(35_000_000 + n*1000)
				So(idx.CheckAndMark("p1", lat, 51_000_000), ShouldBeFalse)
			}
			So(idx.Size(), ShouldEqual, 500)

			for n := 0; n < 500; n++ {
				lat := int64(35_000_000 + n*1000)
				So(idx.CheckAndMark("p1", lat, 51_000_000), ShouldBeTrue)
			}
			So(idx.Size(), ShouldEqual, 500)
		})
	})

	Convey("Given an index with custom precision", t, func() {
		idx := grid.NewIndex(grid.WithPrecision(10_000))

		Convey("When two coordinates fall in the same coarse cell", func() {
			So(idx.CheckAndMark("p1", 35_000_100, 51_000_100), ShouldBeFalse)
			So(idx.CheckAndMark("p1", 35_009_900, 51_009_900), ShouldBeTrue)
		})
	})

	Convey("Given coordinates straddling zero", t, func() {
		idx := grid.NewIndex()

		Convey("When floor division is applied", func() {
			// -1 and +1 must land in different cells; plain truncation would
			// collapse both onto cell 0.
			So(idx.CheckAndMark("p1", -1, 0), ShouldBeFalse)
			So(idx.CheckAndMark("p1", 1, 0), ShouldBeFalse)
			So(idx.Size(), ShouldEqual, 2)
		})
	})
}

func TestIndexKeyDispersion(t *testing.T) {
	Convey("Given many distinct (player, cell) pairs", t, func() {
		idx := grid.NewIndex()

		count := 0
		for p := 0; p < 50; p++ {
			player := model.PlayerID(fmt.Sprintf("player-%d", p))
			for c := 0; c < 50; c++ {
				if !idx.CheckAndMark(player, int64(35_000_000+c*1000), 51_000_000) {
					count++
				}
			}
		}

		Convey("Then no pair collides with another", func() {
			So(count, ShouldEqual, 2500)
			So(idx.Size(), ShouldEqual, 2500)
		})
	})
}
