package sheets_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/cadenas/internal/adapters/sheets"
	"github.com/okian/cadenas/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// fakeSheets serves a canned response for the values endpoint.
func fakeSheets(status int, body string, hits *int32, seen *http.Request) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		if seen != nil {
			*seen = *r.Clone(context.Background())
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func newClient(srv *httptest.Server, opts ...sheets.Option) *sheets.Client {
	opts = append([]sheets.Option{sheets.WithEndpoint(srv.URL)}, opts...)
	c, err := sheets.New(context.Background(), "test-key", "sheet-1", opts...)
	So(err, ShouldBeNil)
	return c
}

func TestNew(t *testing.T) {
	Convey("Given missing credentials", t, func() {
		Convey("Then construction fails", func() {
			_, err := sheets.New(context.Background(), "", "sheet-1")
			So(errors.Is(err, sheets.ErrMissingCredentials), ShouldBeTrue)

			_, err = sheets.New(context.Background(), "key", "")
			So(errors.Is(err, sheets.ErrMissingCredentials), ShouldBeTrue)
		})
	})
}

func TestFetch(t *testing.T) {
	Convey("Given a sheet with rows", t, func() {
		var seen http.Request
		srv := fakeSheets(http.StatusOK, `{
			"range": "cadenas1!A2:O3",
			"majorDimension": "ROWS",
			"values": [
				["Ana", "", "", "", "", "2024-03-01", "Diedro", "Pedra", "6a", "FlashVia", "", "", "", "", "10.5"],
				["Ben", "", "", "", "", "2024-03-02", "Teto", "Pedra", "7a", "TrabBoulder", "", "", "", "", 12],
				["Caio"]
			]
		}`, nil, &seen)
		defer srv.Close()

		Convey("When fetching", func() {
			rows, err := newClient(srv).Fetch(context.Background())

			Convey("Then every cell comes back as a string and short rows stay short", func() {
				So(err, ShouldBeNil)
				So(len(rows), ShouldEqual, 3)
				So(rows[0][0], ShouldEqual, "Ana")
				So(rows[0][14], ShouldEqual, "10.5")
				So(rows[1][14], ShouldEqual, "12")
				So(rows[2], ShouldResemble, []string{"Caio"})
			})

			Convey("Then the configured spreadsheet and key are requested", func() {
				So(seen.URL.Path, ShouldStartWith, "/v4/spreadsheets/sheet-1/values/")
				So(seen.URL.Path, ShouldContainSubstring, "cadenas1!A2:O")
				So(seen.URL.Query().Get("key"), ShouldEqual, "test-key")
			})
		})

		Convey("When a custom range is configured", func() {
			_, err := newClient(srv, sheets.WithRange("results!A2:O")).Fetch(context.Background())

			Convey("Then it is used in the request", func() {
				So(err, ShouldBeNil)
				So(seen.URL.Path, ShouldContainSubstring, "results!A2:O")
			})
		})
	})

	Convey("Given a sheet with no data rows", t, func() {
		srv := fakeSheets(http.StatusOK, `{"range": "cadenas1!A2:O", "majorDimension": "ROWS"}`, nil, nil)
		defer srv.Close()

		Convey("Then the fetch reports an empty sheet", func() {
			rows, err := newClient(srv).Fetch(context.Background())
			So(rows, ShouldBeNil)
			So(errors.Is(err, sheets.ErrEmptySheet), ShouldBeTrue)
		})
	})

	Convey("Given API error responses", t, func() {
		cases := []struct {
			status int
			want   error
		}{
			{http.StatusForbidden, sheets.ErrAccessDenied},
			{http.StatusNotFound, sheets.ErrSheetNotFound},
			{http.StatusBadRequest, sheets.ErrBadRange},
			{http.StatusInternalServerError, sheets.ErrFetch},
		}

		Convey("Then each status maps to its error", func() {
			for _, c := range cases {
				body := `{"error": {"code": ` + strconv.Itoa(c.status) + `, "message": "boom"}}`
				srv := fakeSheets(c.status, body, nil, nil)
				_, err := newClient(srv).Fetch(context.Background())
				srv.Close()
				So(errors.Is(err, c.want), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "boom")
			}
		})
	})

	Convey("Given a minimum interval between fetches", t, func() {
		var hits int32
		srv := fakeSheets(http.StatusOK, `{"values": [["Ana"]]}`, &hits, nil)
		defer srv.Close()
		c := newClient(srv, sheets.WithMinInterval(time.Hour))

		Convey("When a second fetch cannot wait long enough", func() {
			_, err := c.Fetch(context.Background())
			So(err, ShouldBeNil)

			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			_, err = c.Fetch(ctx)

			Convey("Then it fails without reaching the API", func() {
				So(errors.Is(err, sheets.ErrFetch), ShouldBeTrue)
				So(atomic.LoadInt32(&hits), ShouldEqual, int32(1))
			})
		})
	})
}
