package model

// GenericRecord is a schema-agnostic map for one KOSIS row
type GenericRecord map[string]interface{}

// CPIColumns are the columns kept from a statisticsParameterData.do row, in output order
var CPIColumns = []string{
	"TBL_NM",        // table name
	"PRD_DE",        // period
	"TBL_ID",        // table ID
	"ITM_NM",        // item name
	"ITM_NM_ENG",    // item name (English)
	"ITM_ID",        // item ID
	"UNIT_NM",       // unit name
	"ORG_ID",        // organization ID
	"UNIT_NM_ENG",   // unit name (English)
	"C1_OBJ_NM",     // classification-1 object name
	"C1_OBJ_NM_ENG", // classification-1 object name (English)
	"DT",            // data value
	"PRD_SE",        // period type
	"C1",            // classification-1 code
	"C1_NM",         // classification-1 name
	"C1_NM_ENG",     // classification-1 name (English)
	"LST_CHN_DE",    // last change date
}

// Table is an ordered set of rows restricted to Columns.
// Rows keep the order the API returned them in.
type Table struct {
	Columns []string        `json:"columns"`
	Rows    []GenericRecord `json:"rows"`
}

// Len returns the number of rows
func (t Table) Len() int { return len(t.Rows) }

// Records returns the rows as plain records, e.g. to project them again
func (t Table) Records() []GenericRecord {
	return t.Rows
}
