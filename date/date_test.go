// Copyright 2022 Stock Parfait

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package date

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDate(t *testing.T) {
	t.Parallel()

	Convey("Date type", t, func() {
		Convey("parses strict YYYY-MM-DD", func() {
			d, err := Parse("2024-01-02")
			So(err, ShouldBeNil)
			So(d, ShouldResemble, NewDate(2024, 1, 2))
			So(d.String(), ShouldEqual, "2024-01-02")

			d, err = Parse(" 2024-12-31 ")
			So(err, ShouldBeNil)
			So(d, ShouldResemble, NewDate(2024, 12, 31))
		})

		Convey("rejects other formats", func() {
			for _, s := range []string{
				"", "not-a-date", "2024-1-2", "2024/01/02", "2024-01-02 15:04:05",
				"2024-02-30", "24-01-02",
			} {
				_, err := Parse(s)
				So(err, ShouldNotBeNil)
			}
		})

		Convey("converts from time.Time", func() {
			tm := time.Date(2019, time.November, 10, 23, 0, 0, 0, time.UTC)
			So(NewDateFromTime(tm), ShouldResemble, NewDate(2019, 11, 10))
		})

		Convey("compares correctly", func() {
			So(NewDate(2019, 10, 15).After(NewDate(2018, 11, 25)), ShouldBeTrue)
			So(NewDate(2019, 10, 15).Before(NewDate(2019, 11, 25)), ShouldBeTrue)
			So(NewDate(2019, 10, 15).Before(NewDate(2019, 10, 25)), ShouldBeTrue)
			So(NewDate(2019, 10, 15).After(NewDate(2019, 10, 5)), ShouldBeTrue)
			So(NewDate(2019, 10, 15).Before(NewDate(2019, 10, 15)), ShouldBeFalse)
			So(NewDate(2019, 10, 15).After(NewDate(2019, 10, 15)), ShouldBeFalse)
		})
	})

	Convey("NullDate type", t, func() {
		Convey("zero value is null", func() {
			var n NullDate
			So(n.Valid, ShouldBeFalse)
			So(n.String(), ShouldEqual, "")
		})

		Convey("Some is valid", func() {
			n := Some(NewDate(2024, 1, 1))
			So(n.Valid, ShouldBeTrue)
			So(n.String(), ShouldEqual, "2024-01-01")
		})
	})
}
