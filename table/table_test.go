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

package table

import (
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTable(t *testing.T) {
	t.Parallel()

	Convey("Table writers work", t, func() {
		header := []string{"Make", "Model"}
		rows := [][]string{{"Toyota", "Prius"}, {"Honda", "Clarity"}}

		Convey("Limit", func() {
			So(Params{}.Limit(5), ShouldEqual, 5)
			So(Params{Rows: 2}.Limit(5), ShouldEqual, 2)
			So(Params{Rows: 10}.Limit(5), ShouldEqual, 5)
		})

		Convey("WriteCSV", func() {
			Convey("Default Params", func() {
				var buf bytes.Buffer
				So(WriteCSV(&buf, header, rows, Params{}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
Make,Model
Toyota,Prius
Honda,Clarity
`)
			})

			Convey("Default Params, headless", func() {
				var buf bytes.Buffer
				So(WriteCSV(&buf, nil, rows, Params{}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
Toyota,Prius
Honda,Clarity
`)
			})

			Convey("Limited rows, no header", func() {
				var buf bytes.Buffer
				So(WriteCSV(&buf, header, rows, Params{Rows: 1, NoHeader: true}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
Toyota,Prius
`)
			})
		})

		Convey("WriteText", func() {
			Convey("Default Params", func() {
				var buf bytes.Buffer
				So(WriteText(&buf, header, rows, Params{}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
  Make |   Model
------ | -------
Toyota |   Prius
 Honda | Clarity
`)
			})

			Convey("Default Params, headless", func() {
				var buf bytes.Buffer
				So(WriteText(&buf, nil, rows, Params{}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
Toyota |   Prius
 Honda | Clarity
`)
			})

			Convey("Limited rows and width, no header", func() {
				var buf bytes.Buffer
				So(WriteText(&buf, header, rows, Params{Rows: 1, NoHeader: true, MaxColWidth: 4}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
To.. | Pr..
`)
			})

			Convey("Errors", func() {
				var buf bytes.Buffer
				So(WriteText(&buf, header, rows, Params{MaxColWidth: 3}), ShouldNotBeNil)
				So(WriteText(&buf, header, [][]string{{"a"}}, Params{}), ShouldNotBeNil)
				So(WriteText(&buf, nil, [][]string{{}}, Params{}), ShouldNotBeNil)
			})
		})
	})
}
