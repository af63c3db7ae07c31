package domainindex_test

import (
	"testing"

	"github.com/okian/podium/internal/domain/domainindex"
	"github.com/okian/podium/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func sample() []model.Record {
	return []model.Record{
		{ID: 1, Name: "Zed", NOC: "USA", Year: 2000, Sport: "Swimming", Age: model.Some(22), Medal: model.Gold},
		{ID: 2, Name: "Amy", NOC: "USA", Year: 2004, Sport: "Swimming", Age: model.Some(25)},
		{ID: 3, Name: "Bob", NOC: "FRA", Year: 2000, Sport: "Fencing", Age: model.Some(30), Medal: model.Silver},
		{ID: 4, Name: "Cid", NOC: "GER", Year: 1896, Sport: "Athletics", Age: model.None[int]()},
		{ID: 5, Name: "Amy", NOC: "usa", Year: 2004, Sport: "swimming", Age: model.Some(17), Medal: model.Bronze},
	}
}

func TestBuild(t *testing.T) {
	Convey("Given a small record set", t, func() {
		idx := domainindex.Build(sample())

		Convey("Then countries come only from medal records, sorted by byte order", func() {
			So(idx.Countries, ShouldResemble, []string{"FRA", "USA", "usa"})
		})

		Convey("And years cover every record, ascending", func() {
			So(idx.Years, ShouldResemble, []int{1896, 2000, 2004})
		})

		Convey("And sports cover every record without case folding", func() {
			So(idx.Sports, ShouldResemble, []string{"Athletics", "Fencing", "Swimming", "swimming"})
		})

		Convey("And names are de-duplicated", func() {
			So(idx.Names, ShouldResemble, []string{"Amy", "Bob", "Cid", "Zed"})
		})

		Convey("And the age bounds skip missing ages", func() {
			So(idx.HasAge, ShouldBeTrue)
			So(idx.AgeMin, ShouldEqual, 17)
			So(idx.AgeMax, ShouldEqual, 30)
			lo, hi := idx.AgeBounds(10, 50)
			So(lo, ShouldEqual, 17)
			So(hi, ShouldEqual, 30)
		})
	})

	Convey("Given no records", t, func() {
		idx := domainindex.Build(nil)

		Convey("Then every domain is empty but non-nil", func() {
			So(idx.Countries, ShouldNotBeNil)
			So(idx.Countries, ShouldBeEmpty)
			So(idx.Years, ShouldBeEmpty)
			So(idx.Sports, ShouldBeEmpty)
			So(idx.HasAge, ShouldBeFalse)
		})

		Convey("And the age bounds fall back", func() {
			lo, hi := idx.AgeBounds(10, 50)
			So(lo, ShouldEqual, 10)
			So(hi, ShouldEqual, 50)
		})
	})
}

func TestCountryChoices(t *testing.T) {
	Convey("Given an index with two countries", t, func() {
		idx := domainindex.Index{Countries: []string{"FRA", "USA"}}

		Convey("Then the any entry comes first and carries no value", func() {
			choices := idx.CountryChoices()
			So(len(choices), ShouldEqual, 3)
			So(choices[0], ShouldResemble, domainindex.Choice{Any: true})
			So(choices[1].Value, ShouldEqual, "FRA")
			So(choices[2].Value, ShouldEqual, "USA")
		})
	})

	Convey("Given a country literally named None", t, func() {
		idx := domainindex.Index{Countries: []string{"None"}}

		Convey("Then it is a data value, distinct from the any entry", func() {
			choices := idx.CountryChoices()
			So(choices[1].Any, ShouldBeFalse)
			So(choices[1].Value, ShouldEqual, "None")
		})
	})
}
