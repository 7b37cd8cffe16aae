package repository_test

import (
	"testing"

	"github.com/okian/stride/internal/adapters/repository"
	"github.com/okian/stride/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMarkerLedger(t *testing.T) {
	Convey("Given an empty store", t, func() {
		s := repository.NewMemStore()

		Convey("When markers are appended", func() {
			id0 := s.AppendMarker(model.Marker{Player: "p1", Landmark: "first"})
			id1 := s.AppendMarker(model.Marker{Player: "p2", Landmark: "second"})

			Convey("Then ids are sequential and zero-based", func() {
				So(id0, ShouldEqual, 0)
				So(id1, ShouldEqual, 1)
				So(s.MarkerCount(), ShouldEqual, 2)
			})

			Convey("Then markers are readable by id", func() {
				m, err := s.Marker(id1)
				So(err, ShouldBeNil)
				So(m.Landmark, ShouldEqual, "second")
				So(m.ID, ShouldEqual, 1)
			})

			Convey("Then an unknown id is not found", func() {
				_, err := s.Marker(99)
				So(err, ShouldEqual, repository.ErrNotFound)
			})

			Convey("Then recent markers come newest first", func() {
				recent := s.RecentMarkers(2)
				So(recent, ShouldHaveLength, 2)
				So(recent[0].Landmark, ShouldEqual, "second")
				So(recent[1].Landmark, ShouldEqual, "first")
			})

			Convey("Then a recent window larger than the ledger is clamped", func() {
				So(s.RecentMarkers(10), ShouldHaveLength, 2)
				So(s.RecentMarkers(0), ShouldBeEmpty)
			})
		})
	})
}

func TestPlayerRegistry(t *testing.T) {
	Convey("Given an empty store", t, func() {
		s := repository.NewMemStore()
		home := model.HashRegion("tehran")
		state := model.HashRegion("tehran province")

		Convey("When a player registers", func() {
			created := s.RegisterIfNew("p1", state, home)

			Convey("Then the record is created with the home region fixed", func() {
				So(created, ShouldBeTrue)
				p, ok := s.Player("p1")
				So(ok, ShouldBeTrue)
				So(p.Registered, ShouldBeTrue)
				So(p.HomeCity, ShouldEqual, home)
				So(p.HomeState, ShouldEqual, state)
				So(s.PlayerCount(), ShouldEqual, 1)
			})

			Convey("And registering again from another region is a no-op", func() {
				So(s.RegisterIfNew("p1", model.HashRegion("fars"), model.HashRegion("shiraz")), ShouldBeFalse)
				p, _ := s.Player("p1")
				So(p.HomeCity, ShouldEqual, home)
			})
		})

		Convey("When markers are recorded", func() {
			s.RegisterIfNew("p1", state, home)
			s.RecordMarker("p1", 0, 35_000_000, 51_000_000, 100)
			s.RecordMarker("p1", 555, 35_003_000, 51_004_000, 200)

			Convey("Then counters accumulate and last position overwrites", func() {
				p, _ := s.Player("p1")
				So(p.Markers, ShouldEqual, 2)
				So(p.DistanceM, ShouldEqual, 555)
				So(p.LastLat, ShouldEqual, 35_003_000)
				So(p.LastLng, ShouldEqual, 51_004_000)
				So(p.LastTimestamp, ShouldEqual, 200)
			})
		})

		Convey("When an unknown player is queried", func() {
			_, ok := s.Player("ghost")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestRegionAggregator(t *testing.T) {
	Convey("Given an empty store", t, func() {
		s := repository.NewMemStore()
		city := model.HashRegion("tehran")

		Convey("When a player first marks in a city", func() {
			first := s.RecordCityVisit("p1", city, 100)

			Convey("Then it is the first visit and the rollup moves", func() {
				So(first, ShouldBeTrue)
				stats, ok := s.CityStats(city)
				So(ok, ShouldBeTrue)
				So(stats.Markers, ShouldEqual, 1)
				So(stats.Players, ShouldEqual, 1)
				So(stats.LastActivity, ShouldEqual, 100)
				So(s.CityPlayers(city), ShouldResemble, []model.PlayerID{"p1"})
			})
		})

		Convey("When the same player marks the city again", func() {
			s.RecordCityVisit("p1", city, 100)
			first := s.RecordCityVisit("p1", city, 200)

			Convey("Then markers move but the distinct-player count does not", func() {
				So(first, ShouldBeFalse)
				stats, _ := s.CityStats(city)
				So(stats.Markers, ShouldEqual, 2)
				So(stats.Players, ShouldEqual, 1)
				So(stats.LastActivity, ShouldEqual, 200)
				So(s.CityVisits("p1", city), ShouldEqual, 2)
			})
		})

		Convey("When a second player joins the city", func() {
			s.RecordCityVisit("p1", city, 100)
			So(s.RecordCityVisit("p2", city, 150), ShouldBeTrue)

			stats, _ := s.CityStats(city)
			So(stats.Players, ShouldEqual, 2)
			So(s.CityPlayers(city), ShouldResemble, []model.PlayerID{"p1", "p2"})
		})

		Convey("When state visits are recorded independently", func() {
			stateHash := model.HashRegion("tehran province")
			So(s.RecordStateVisit("p1", stateHash, 100), ShouldBeTrue)
			So(s.RecordStateVisit("p1", stateHash, 200), ShouldBeFalse)

			stats, ok := s.StateStats(stateHash)
			So(ok, ShouldBeTrue)
			So(stats.Markers, ShouldEqual, 2)
			So(stats.Players, ShouldEqual, 1)
		})

		Convey("When an unknown region is queried", func() {
			_, ok := s.CityStats(model.HashRegion("nowhere"))
			So(ok, ShouldBeFalse)
			So(s.CityPlayers(model.HashRegion("nowhere")), ShouldBeNil)
			So(s.CityVisits("p1", model.HashRegion("nowhere")), ShouldEqual, 0)
		})
	})
}

func TestStoreLeaderboards(t *testing.T) {
	Convey("Given a store with two cities", t, func() {
		s := repository.NewMemStore()
		cityA := model.HashRegion("tehran")
		cityB := model.HashRegion("shiraz")

		Convey("When ranks are upserted globally and per city", func() {
			So(s.UpsertGlobalRank("p1", 3), ShouldEqual, 1)
			So(s.UpsertGlobalRank("p2", 5), ShouldEqual, 1)
			So(s.UpsertCityRank(cityA, "p1", 3), ShouldEqual, 1)
			So(s.UpsertCityRank(cityB, "p2", 5), ShouldEqual, 1)

			Convey("Then city boards are independent of the global board", func() {
				So(s.GlobalTopN(10), ShouldHaveLength, 2)
				So(s.CityTopN(cityA, 10), ShouldHaveLength, 1)
				So(s.CityTopN(cityB, 10), ShouldHaveLength, 1)

				e, ok := s.GlobalRank("p2")
				So(ok, ShouldBeTrue)
				So(e.Rank, ShouldEqual, 1)

				e, ok = s.CityRank(cityA, "p1")
				So(ok, ShouldBeTrue)
				So(e.Rank, ShouldEqual, 1)
			})
		})

		Convey("When an absent city board is queried", func() {
			So(s.CityTopN(model.HashRegion("nowhere"), 5), ShouldBeNil)
			_, ok := s.CityRank(model.HashRegion("nowhere"), "p1")
			So(ok, ShouldBeFalse)
		})
	})
}
