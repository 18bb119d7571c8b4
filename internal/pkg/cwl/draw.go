package cwl

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RawDraw is one element of the "result" array as the API sent it.
type RawDraw map[string]any

// Draw is a normalized draw notice.
type Draw struct {
	IssueCode       string   `json:"issue_code"`
	DrawDate        string   `json:"draw_date"`
	RedBalls        []string `json:"red_balls"`
	BlueBall        string   `json:"blue_ball"`
	SalesAmount     string   `json:"sales_amount"`
	PoolAmount      string   `json:"pool_amount"`
	FirstPrizeCount string   `json:"first_prize_count"` // raw "content" text, e.g. "广东1注,共1注。"
	DetailsLink     string   `json:"details_link"`
}

// Normalize maps a raw record onto Draw. Missing keys become empty values;
// it never fails.
func Normalize(raw RawDraw) Draw {
	redBalls := []string{}
	if red := raw.str("red"); red != "" {
		redBalls = strings.Split(red, ",")
	}

	return Draw{
		IssueCode:       raw.str("code"),
		DrawDate:        raw.str("date"),
		RedBalls:        redBalls,
		BlueBall:        raw.str("blue"),
		SalesAmount:     raw.str("sales"),
		PoolAmount:      raw.str("poolmoney"),
		FirstPrizeCount: raw.str("content"),
		DetailsLink:     raw.str("detailsLink"),
	}
}

func NormalizeAll(raws []RawDraw) []Draw {
	draws := make([]Draw, 0, len(raws))
	for _, raw := range raws {
		draws = append(draws, Normalize(raw))
	}
	return draws
}

func (r RawDraw) str(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
