package types_test

import (
	"testing"

	types "github.com/okian/podium/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBucket(t *testing.T) {
	Convey("Given a half-open bucket", t, func() {
		b := types.Bucket{Lower: 10, Upper: 25, Count: 2}

		Convey("Then the label uses interval notation", func() {
			So(b.Label(), ShouldEqual, "[10, 25)")
		})

		Convey("And the upper edge is excluded", func() {
			So(b.Contains(10), ShouldBeTrue)
			So(b.Contains(24.9), ShouldBeTrue)
			So(b.Contains(25), ShouldBeFalse)
			So(b.Contains(9.9), ShouldBeFalse)
		})
	})

	Convey("Given the closed last bucket", t, func() {
		b := types.Bucket{Lower: 25, Upper: 40, Closed: true, Count: 2}

		Convey("Then the upper edge is included", func() {
			So(b.Label(), ShouldEqual, "[25, 40]")
			So(b.Contains(40), ShouldBeTrue)
			So(b.Contains(40.1), ShouldBeFalse)
		})
	})
}

func TestCount(t *testing.T) {
	Convey("Given a zero Count", t, func() {
		var c types.Count

		Convey("Then it should have default values", func() {
			So(c.Key, ShouldEqual, "")
			So(c.Count, ShouldEqual, 0)
		})
	})
}
