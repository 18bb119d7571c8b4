package controllers_test

import (
	"encoding/json"
	"net/http"

	"lottodesk/internal/pkg/cwl"
	"lottodesk/internal/routes"
	"lottodesk/internal/store"
	"lottodesk/internal/testhelpers"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

var _ = Describe("DrawController", func() {
	const (
		apiHost = "http://www.cwl.gov.cn"
		apiPath = "/cwl_admin/front/cwlkj/search/kjxx/findDrawNotice"
	)

	var (
		router *gin.Engine
		mock   *testhelpers.MockTransport
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)

		mock = testhelpers.NewMockTransport()
		client := cwl.New(cwl.WithHTTPClient(mock.Client()), cwl.WithLogger(zap.NewNop()))
		router = routes.SetupRouter(store.New(store.Options{Driver: "sqlite"}), client, zap.NewNop())
	})

	Describe("GET /api/v1/draws", func() {
		It("returns the requested number of recent draws", func() {
			mock.Expect(apiHost).Get(apiPath + "?pageNo=1&pageSize=2").
				Body(testhelpers.MustLoadFixture("draws_page.json"))

			w := doRequest(router, http.MethodGet, "/api/v1/draws?count=2", "")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(mock.IsDone()).To(BeTrue())

			var draws []cwl.Draw
			Expect(json.Unmarshal(decodeBody(w)["draws"], &draws)).To(Succeed())
			Expect(draws).To(HaveLen(2))
			Expect(draws[0].IssueCode).To(Equal("2024003"))
			Expect(draws[1].BlueBall).To(Equal("16"))
		})

		DescribeTable("falls back to thirty draws",
			func(query string) {
				mock.Expect(apiHost).Get(apiPath + "?pageNo=1&pageSize=30").
					Body(testhelpers.MustLoadFixture("draws_page.json"))

				w := doRequest(router, http.MethodGet, "/api/v1/draws"+query, "")
				Expect(w.Code).To(Equal(http.StatusOK))
				Expect(mock.IsDone()).To(BeTrue())
			},
			Entry("without count", ""),
			Entry("with a non-numeric count", "?count=lots"),
			Entry("with a zero count", "?count=0"),
		)

		It("returns an empty list when the API fails", func() {
			mock.Expect(apiHost).Get(apiPath).BodyString(`{"state":1,"message":"系统繁忙"}`)

			w := doRequest(router, http.MethodGet, "/api/v1/draws", "")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"draws":[]}`))
		})
	})

	Describe("GET /api/v1/draws/details", func() {
		It("returns the parsed details page", func() {
			mock.Expect(apiHost).Get("/c/2024/01/07/557213.shtml").
				Body(testhelpers.MustLoadFixture("draw_details.html"))

			w := doRequest(router, http.MethodGet, "/api/v1/draws/details?link=/c/2024/01/07/557213.shtml", "")
			Expect(w.Code).To(Equal(http.StatusOK))

			var details cwl.Details
			Expect(json.Unmarshal(decodeBody(w)["details"], &details)).To(Succeed())
			Expect(details.Title).To(ContainSubstring("2024003"))
			Expect(details.Tables).To(HaveLen(2))
		})

		It("requires a link", func() {
			w := doRequest(router, http.MethodGet, "/api/v1/draws/details", "")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects links to other hosts", func() {
			w := doRequest(router, http.MethodGet, "/api/v1/draws/details?link=https://example.com/x", "")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(mock.Requests()).To(BeEmpty())
		})

		It("maps upstream failures to 502", func() {
			mock.Expect(apiHost).Get("/c/gone.shtml").Reply(http.StatusNotFound)

			w := doRequest(router, http.MethodGet, "/api/v1/draws/details?link=/c/gone.shtml", "")
			Expect(w.Code).To(Equal(http.StatusBadGateway))
		})
	})
})
