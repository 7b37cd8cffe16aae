package rank_test

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/okian/stride/internal/domain/model"
	"github.com/okian/stride/internal/domain/rank"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLeaderboardUpsert(t *testing.T) {
	Convey("Given an empty leaderboard", t, func() {
		lb := rank.New()

		Convey("When the first player is upserted", func() {
			r := lb.Upsert("p1", 1)

			Convey("Then they take rank 1", func() {
				So(r, ShouldEqual, 1)
				So(lb.Len(), ShouldEqual, 1)
			})
		})

		Convey("When a higher score arrives", func() {
			lb.Upsert("p1", 1)
			r := lb.Upsert("p2", 5)

			Convey("Then it is inserted ahead", func() {
				So(r, ShouldEqual, 1)
				entries := lb.TopN(10)
				So(entries, ShouldHaveLength, 2)
				So(entries[0].Player, ShouldEqual, model.PlayerID("p2"))
				So(entries[1].Player, ShouldEqual, model.PlayerID("p1"))
			})
		})

		Convey("When a player improves their own score", func() {
			lb.Upsert("p1", 1)
			lb.Upsert("p2", 5)
			r := lb.Upsert("p1", 9)

			Convey("Then they move up without duplication", func() {
				So(r, ShouldEqual, 1)
				So(lb.Len(), ShouldEqual, 2)
				entries := lb.TopN(2)
				So(entries[0].Player, ShouldEqual, model.PlayerID("p1"))
				So(entries[0].Score, ShouldEqual, 9)
			})
		})

		Convey("When scores tie", func() {
			lb.Upsert("p1", 5)
			r := lb.Upsert("p2", 5)

			Convey("Then the incumbent equal-score entry stays ahead", func() {
				So(r, ShouldEqual, 2)
				entries := lb.TopN(2)
				So(entries[0].Player, ShouldEqual, model.PlayerID("p1"))
				So(entries[1].Player, ShouldEqual, model.PlayerID("p2"))
			})
		})

		Convey("When an upsert repeats with an unchanged score", func() {
			lb.Upsert("p1", 5)
			lb.Upsert("p2", 5)
			lb.Upsert("p3", 3)
			lb.Upsert("p2", 5)
			before := lb.TopN(3)
			lb.Upsert("p2", 5)

			Convey("Then the sequence is unchanged", func() {
				So(lb.TopN(3), ShouldResemble, before)
			})
		})
	})

	Convey("Given a leaderboard at capacity", t, func() {
		lb := rank.New(rank.WithCapacity(3))
		lb.Upsert("p1", 30)
		lb.Upsert("p2", 20)
		lb.Upsert("p3", 10)

		Convey("When a score below the floor arrives", func() {
			r := lb.Upsert("p4", 5)

			Convey("Then the player is dropped with no effect", func() {
				So(r, ShouldEqual, 0)
				So(lb.Len(), ShouldEqual, 3)
				_, ok := lb.RankOf("p4")
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When a score above the floor arrives", func() {
			r := lb.Upsert("p4", 25)

			Convey("Then the last entry falls off", func() {
				So(r, ShouldEqual, 2)
				So(lb.Len(), ShouldEqual, 3)
				_, ok := lb.RankOf("p3")
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When a score ties the floor on a full board", func() {
			r := lb.Upsert("p4", 10)

			Convey("Then insertion after the equal entry lands beyond the cap", func() {
				So(r, ShouldEqual, 0)
				_, ok := lb.RankOf("p3")
				So(ok, ShouldBeTrue)
			})
		})
	})
}

func TestLeaderboardQueries(t *testing.T) {
	Convey("Given a populated leaderboard", t, func() {
		lb := rank.New()
		lb.Upsert("p1", 7)
		lb.Upsert("p2", 4)
		lb.Upsert("p3", 1)

		Convey("When RankOf is queried", func() {
			e, ok := lb.RankOf("p2")
			So(ok, ShouldBeTrue)
			So(e.Rank, ShouldEqual, 2)
			So(e.Score, ShouldEqual, 4)

			_, ok = lb.RankOf("ghost")
			So(ok, ShouldBeFalse)
		})

		Convey("When TopN exceeds the length", func() {
			So(lb.TopN(50), ShouldHaveLength, 3)
		})

		Convey("When TopN is zero or negative", func() {
			So(lb.TopN(0), ShouldBeEmpty)
			So(lb.TopN(-1), ShouldBeEmpty)
		})
	})
}

// TestLeaderboardOracle drives the incremental board with random upserts and
// checks after every mutation that it matches a brute-force re-sort of all
// known scores truncated to capacity.
func TestLeaderboardOracle(t *testing.T) {
	Convey("Given random score traffic against a brute-force oracle", t, func() {
		const capacity = 100
		rng := rand.New(rand.NewSource(42))
		lb := rank.New(rank.WithCapacity(capacity))
		scores := make(map[model.PlayerID]uint64)

		for step := 0; step < 5000; step++ {
			player := model.PlayerID(fmt.Sprintf("player-%d", rng.Intn(300)))
			// Scores only grow, as marker counts do.
			scores[player]++
			lb.Upsert(player, scores[player])

			entries := lb.TopN(capacity)

			// Ordering: strictly non-increasing, each player at most once.
			seen := make(map[model.PlayerID]bool, len(entries))
			for i, e := range entries {
				So(seen[e.Player], ShouldBeFalse)
				seen[e.Player] = true
				So(e.Score, ShouldEqual, scores[e.Player])
				if i > 0 {
					So(entries[i-1].Score, ShouldBeGreaterThanOrEqualTo, e.Score)
				}
			}

			// Membership: the multiset of board scores equals the top-N of a
			// brute-force descending sort of every known score.
			all := make([]uint64, 0, len(scores))
			for _, s := range scores {
				all = append(all, s)
			}
			sort.Slice(all, func(a, b int) bool { return all[a] > all[b] })
			want := all[:min(capacity, len(all))]

			So(entries, ShouldHaveLength, len(want))
			for i, e := range entries {
				So(e.Score, ShouldEqual, want[i])
			}
		}
	})
}
