package models

import "time"

// SalesRecord is one sales event as it arrives from the upstream sheet.
// Every numeric field is a string on the wire and must be parsed
// defensively; missing columns materialize as empty strings.
type SalesRecord struct {
	MemberID             string `json:"member_id"`
	CustomerName         string `json:"customer_name"`
	CustomerEmail        string `json:"customer_email"`
	PaymentDate          string `json:"payment_date"`
	PaymentValue         string `json:"payment_value"`
	PaymentVAT           string `json:"payment_vat"`
	PaymentItem          string `json:"payment_item"`
	PaymentMethod        string `json:"payment_method"`
	PaymentStatus        string `json:"payment_status"`
	PaymentTransactionID string `json:"payment_transaction_id"`
	SoldBy               string `json:"sold_by"`
	CalculatedLocation   string `json:"calculated_location"`
	CleanedProduct       string `json:"cleaned_product"`
	CleanedCategory      string `json:"cleaned_category"`

	// Derived fields, computed once after parsing. Month is 1-12.
	Month          int     `json:"month,omitempty"`
	Year           int     `json:"year,omitempty"`
	MonthYear      string  `json:"month_year,omitempty"`
	TaxAmount      float64 `json:"tax_amount,omitempty"`
	RevenuePostTax float64 `json:"revenue_post_tax,omitempty"`
	RevenuePreTax  float64 `json:"revenue_pre_tax,omitempty"`
	SalesAssociate string  `json:"sales_associate,omitempty"`
}

// Field names a groupable record dimension.
type Field string

const (
	FieldLocation  Field = "location"
	FieldProduct   Field = "product"
	FieldCategory  Field = "category"
	FieldAssociate Field = "associate"
	FieldMethod    Field = "method"
	FieldStatus    Field = "status"
)

// FieldValue returns the raw value of the given dimension, or "" when
// the record has none.
func (r SalesRecord) FieldValue(f Field) string {
	switch f {
	case FieldLocation:
		return r.CalculatedLocation
	case FieldProduct:
		return r.CleanedProduct
	case FieldCategory:
		return r.CleanedCategory
	case FieldAssociate:
		return r.SoldBy
	case FieldMethod:
		return r.PaymentMethod
	case FieldStatus:
		return r.PaymentStatus
	default:
		return ""
	}
}

// DateRange is the earliest/latest parseable payment date of a record
// set. Both ends are the zero time when no record carries a parseable
// date.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Summary is the full aggregate view over a record set.
type Summary struct {
	TotalSales         float64            `json:"total_sales"`
	TotalTransactions  int                `json:"total_transactions"`
	AverageOrderValue  float64            `json:"average_order_value"`
	TotalProducts      int                `json:"total_products"`
	TotalUniqueClients int                `json:"total_unique_clients"`
	RevenueByCategory  map[string]float64 `json:"revenue_by_category"`
	RevenueByProduct   map[string]float64 `json:"revenue_by_product"`
	SalesByMethod      map[string]float64 `json:"sales_by_method"`
	SalesByLocation    map[string]float64 `json:"sales_by_location"`
	SalesByAssociate   map[string]float64 `json:"sales_by_associate"`
	MonthlyData        []MonthlySummary   `json:"monthly_data"`
	DateRange          DateRange          `json:"date_range"`
}

// MonthlySummary is one calendar-month bucket of the rollup.
type MonthlySummary struct {
	MonthYear      string  `json:"month_year"`
	SortKey        string  `json:"sort_key"`
	TotalSales     float64 `json:"total_sales"`
	TotalTax       float64 `json:"total_tax"`
	UnitsSold      int     `json:"units_sold"`
	Transactions   int     `json:"transactions"`
	UniqueClients  int     `json:"unique_clients"`
	PreTaxRevenue  float64 `json:"pre_tax_revenue"`
	PostTaxRevenue float64 `json:"post_tax_revenue"`
	ATV            float64 `json:"atv"`
	AUV            float64 `json:"auv"`
	AverageSpend   float64 `json:"average_spend"`
}

// GroupTotals is the per-key aggregate used by category/product/location
// breakdowns.
type GroupTotals struct {
	TotalRevenue  float64 `json:"total_revenue"`
	PreTaxRevenue float64 `json:"pre_tax_revenue"`
	TaxAmount     float64 `json:"tax_amount"`
	UnitsSold     int     `json:"units_sold"`
	Transactions  int     `json:"transactions"`
	UniqueClients int     `json:"unique_clients"`
	ATV           float64 `json:"atv"`
	AUV           float64 `json:"auv"`
}

// ChartPoint is the universal label/value shape consumed by ranking and
// chart endpoints.
type ChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// KeyMetrics carries the standalone calculator outputs for a record set.
type KeyMetrics struct {
	UnitsSold int     `json:"units_sold"`
	ATV       float64 `json:"atv"`
	AUV       float64 `json:"auv"`
	UPT       float64 `json:"upt"`
}

// Filters is the conjunction of all record filters. Zero values impose
// no constraint.
type Filters struct {
	Days           int        `json:"days"`
	Search         string     `json:"search"`
	MinValue       *float64   `json:"min_value,omitempty"`
	MaxValue       *float64   `json:"max_value,omitempty"`
	Locations      []string   `json:"locations,omitempty"`
	Products       []string   `json:"products,omitempty"`
	Categories     []string   `json:"categories,omitempty"`
	Sellers        []string   `json:"sellers,omitempty"`
	PaymentMethods []string   `json:"payment_methods,omitempty"`
	Start          *time.Time `json:"start,omitempty"`
	End            *time.Time `json:"end,omitempty"`
}
