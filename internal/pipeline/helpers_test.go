package pipeline

import (
	"context"

	"kosis-cpi/pkg/kosisapi"
)

// cpiRowJSON is one row as KOSIS returns it for DT_1J22003
const cpiRowJSON = `{"TBL_NM":"CPI","PRD_DE":"202401","TBL_ID":"DT_1J22003","ITM_NM":"Total","ITM_NM_ENG":"Total","ITM_ID":"T+","UNIT_NM":"2020=100","ORG_ID":"101","UNIT_NM_ENG":"2020=100","C1_OBJ_NM":"Region","C1_OBJ_NM_ENG":"Region","DT":"105.2","PRD_SE":"M","C1":"00","C1_NM":"National","C1_NM_ENG":"National","LST_CHN_DE":"20240305"}`

// cpiRowValues are the values of cpiRowJSON in column order
var cpiRowValues = []string{
	"CPI", "202401", "DT_1J22003", "Total", "Total", "T+", "2020=100", "101", "2020=100",
	"Region", "Region", "105.2", "M", "00", "National", "National", "20240305",
}

type fetcherFunc func(ctx context.Context, p kosisapi.Params) ([]byte, error)

func (f fetcherFunc) Fetch(ctx context.Context, p kosisapi.Params) ([]byte, error) {
	return f(ctx, p)
}

func staticFetcher(body string) fetcherFunc {
	return func(context.Context, kosisapi.Params) ([]byte, error) {
		return []byte(body), nil
	}
}
