package cwl_test

import (
	"encoding/json"
	"fmt"
	"strconv"

	"lottodesk/internal/pkg/cwl"
	"lottodesk/internal/testhelpers"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const (
	apiHost = "http://www.cwl.gov.cn"
	apiPath = "/cwl_admin/front/cwlkj/search/kjxx/findDrawNotice"
)

func newTestClient() (*cwl.Client, *testhelpers.MockTransport, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	mock := testhelpers.NewMockTransport()
	client := cwl.New(
		cwl.WithHTTPClient(mock.Client()),
		cwl.WithLogger(zap.New(core)),
	)
	return client, mock, logs
}

// pageResponse builds a successful response with n draws counting down
// from issue firstIssue.
func pageResponse(firstIssue, n int) map[string]any {
	result := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		result = append(result, map[string]any{
			"code":      strconv.Itoa(firstIssue - i),
			"date":      "2024-01-02(二)",
			"red":       "01,02,03,04,05,06",
			"blue":      "07",
			"sales":     "300000000",
			"poolmoney": "2000000000",
			"content":   "共1注。",
		})
	}

	return map[string]any{
		"state":   0,
		"message": "查询成功",
		"result":  result,
	}
}

func pageBody(firstIssue, n int) string {
	b, err := json.Marshal(pageResponse(firstIssue, n))
	if err != nil {
		panic(err)
	}
	return string(b)
}

func expectPage(mock *testhelpers.MockTransport, pageNo, pageSize int) *testhelpers.Expectation {
	return mock.Expect(apiHost).
		Get(apiPath).
		Query("pageNo", strconv.Itoa(pageNo)).
		Query("pageSize", fmt.Sprint(pageSize))
}

func warnings(logs *observer.ObservedLogs) []observer.LoggedEntry {
	return logs.FilterLevelExact(zap.WarnLevel).All()
}
