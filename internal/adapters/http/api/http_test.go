package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/okian/scout/internal/adapters/http/api"
	"github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/policy"
	"github.com/okian/scout/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

type mockShortlist struct {
	entries []types.Entry
	topNErr error
	rankErr error
	policy  policy.ScoringPolicy
	lastN   int
}

func (m *mockShortlist) TopN(_ context.Context, n int) ([]types.Entry, error) {
	m.lastN = n
	if m.topNErr != nil {
		return nil, m.topNErr
	}
	return m.entries[:min(n, len(m.entries))], nil
}

func (m *mockShortlist) Rank(_ context.Context, name string) (types.Entry, error) {
	if m.rankErr != nil {
		return types.Entry{}, m.rankErr
	}
	for _, e := range m.entries {
		if e.Name == name {
			return e, nil
		}
	}
	return types.Entry{}, fmt.Errorf("%w: %s", repository.ErrNotFound, name)
}

func (m *mockShortlist) Policy() policy.ScoringPolicy { return m.policy }

type mockStatsProvider struct {
	stats map[string]any
}

func (m *mockStatsProvider) GetStats() map[string]any { return m.stats }

func newMux(deps *mockShortlist, maxLimit int) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, &mockStatsProvider{stats: map[string]any{"run_id": "r-1", "candidates": 2}}, maxLimit).
		Register(context.Background(), mux)
	return mux
}

func get(mux *http.ServeMux, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServer(t *testing.T) {
	Convey("Given a server over a two-entry shortlist", t, func() {
		deps := &mockShortlist{
			entries: []types.Entry{
				{Rank: 1, Name: "Cheap Kid", Score: 0.875},
				{Rank: 2, Name: "Mid Pro", Score: 0.61},
			},
			policy: policy.ScoringPolicy{
				Strategy: policy.StrategyHeuristic,
				Weights:  policy.Weights{Price: 0.3, AbilityInRole: 0.5, Age: 0.1, PlayerTypePriority: 0.1},
				PriceBands: map[model.Category]policy.PriceBand{
					model.CategoryStarter: {Mid: 50e6, Expensive: 100e6},
				},
			},
		}
		mux := newMux(deps, 10)

		Convey("When requesting the shortlist with a limit", func() {
			w := get(mux, "/shortlist?limit=1")

			Convey("Then the top entries are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var got []types.Entry
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got, ShouldHaveLength, 1)
				So(got[0].Name, ShouldEqual, "Cheap Kid")
			})
		})

		Convey("When requesting the shortlist without a limit", func() {
			w := get(mux, "/shortlist")

			Convey("Then the maximum limit is used", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastN, ShouldEqual, 10)
			})
		})

		Convey("When the limit is invalid or too large", func() {
			for _, q := range []string{"0", "-3", "abc"} {
				w := get(mux, "/shortlist?limit="+q)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "bad_request")
			}
			w := get(mux, "/shortlist?limit=11")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, "limit_exceeded")
		})

		Convey("When the store fails", func() {
			deps.topNErr = errors.New("boom")
			w := get(mux, "/shortlist?limit=1")

			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})

		Convey("When asking for a known name with spaces", func() {
			w := get(mux, "/rank/"+url.PathEscape("Mid Pro"))

			Convey("Then its entry is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var got types.Entry
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got.Rank, ShouldEqual, 2)
			})
		})

		Convey("When asking for an unknown or malformed name", func() {
			So(get(mux, "/rank/Nobody").Code, ShouldEqual, http.StatusNotFound)
			So(get(mux, "/rank/").Code, ShouldEqual, http.StatusBadRequest)
			So(get(mux, "/rank/a/b").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the rank lookup fails for another reason", func() {
			deps.rankErr = errors.New("boom")
			So(get(mux, "/rank/Mid%20Pro").Code, ShouldEqual, http.StatusInternalServerError)
		})

		Convey("When requesting the policy", func() {
			w := get(mux, "/policy")

			Convey("Then it is encoded with the strategy name", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"strategy":"heuristic"`)
				So(w.Body.String(), ShouldContainSubstring, `"starter":{"cheap":0,"mid":50000000,"expensive":100000000}`)
			})
		})

		Convey("When requesting stats", func() {
			w := get(mux, "/stats")

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")
			So(w.Body.String(), ShouldContainSubstring, `"run_id":"r-1"`)
		})

		Convey("When scraping health", func() {
			get(mux, "/shortlist?limit=1")
			w := get(mux, "/healthz")

			Convey("Then the Prometheus exposition includes HTTP metrics", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "scout_shortlist_http_requests_total")
			})
		})

		Convey("When using a write method", func() {
			for _, path := range []string{"/shortlist", "/rank/Mid", "/policy", "/stats"} {
				req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{}"))
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusNotFound)
			}
		})
	})
}
