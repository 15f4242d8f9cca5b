// Package schema declares the canonical column contract for the ONRR federal
// oil/gas/NGL sales table. Every stage of the pipeline (parsing, cleaning,
// DDL generation, loading, reporting) keys off the names and logical kinds
// defined here.
package schema

// Kind is the logical type of a column as seen by the cleaning stages.
// Backends map kinds onto their own SQL types in their ddl packages.
type Kind string

const (
	KindYear  Kind = "year"  // integer calendar year
	KindText  Kind = "text"  // categorical text
	KindMoney Kind = "money" // NUMERIC(22,2) monetary or volume amount
	KindRate  Kind = "rate"  // NUMERIC(9,4) fractional rate
)

// Column names of the sales table. The derived royalty_efficiency column is
// appended by the metric deriver and is the only nullable numeric column.
const (
	ColCalendarYear          = "calendar_year"
	ColRegion                = "state_offshore_region"
	ColLandClass             = "land_class"
	ColLandCategory          = "land_category"
	ColRevenueType           = "revenue_type"
	ColCommodity             = "commodity"
	ColSalesVolume           = "sales_volume"
	ColGasMMBtuVolume        = "gas_mmbtu_volume"
	ColSalesValue            = "sales_value"
	ColRoyaltyValue          = "royalty_value_less_allowances"
	ColTransportAllowances   = "transportation_allowances"
	ColProcessingAllowances  = "processing_allowances"
	ColEffectiveRoyaltyRate  = "effective_royalty_rate"
	ColRoyaltyEfficiency     = "royalty_efficiency"
)

// Column describes one column of the sales contract.
type Column struct {
	Name     string
	Kind     Kind
	Nullable bool
}

// Sales returns the ordered column contract of the cleaned sales table,
// including the derived royalty_efficiency column.
func Sales() []Column {
	return []Column{
		{Name: ColCalendarYear, Kind: KindYear},
		{Name: ColRegion, Kind: KindText},
		{Name: ColLandClass, Kind: KindText},
		{Name: ColLandCategory, Kind: KindText},
		{Name: ColRevenueType, Kind: KindText},
		{Name: ColCommodity, Kind: KindText},
		{Name: ColSalesVolume, Kind: KindMoney},
		{Name: ColGasMMBtuVolume, Kind: KindMoney},
		{Name: ColSalesValue, Kind: KindMoney},
		{Name: ColRoyaltyValue, Kind: KindMoney},
		{Name: ColTransportAllowances, Kind: KindMoney},
		{Name: ColProcessingAllowances, Kind: KindMoney},
		{Name: ColEffectiveRoyaltyRate, Kind: KindRate},
		{Name: ColRoyaltyEfficiency, Kind: KindMoney, Nullable: true},
	}
}

// ColumnNames returns the column names of the sales contract in table order.
func ColumnNames() []string {
	cols := Sales()
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Name
	}
	return out
}

// SourceColumnNames returns the columns present in the raw CSV, in table
// order. This is the full contract minus the derived royalty_efficiency.
func SourceColumnNames() []string {
	var out []string
	for _, c := range Sales() {
		if c.Name == ColRoyaltyEfficiency {
			continue
		}
		out = append(out, c.Name)
	}
	return out
}

// NumericColumns returns the seven coerced money/volume/rate columns, in
// table order. The derived royalty_efficiency is excluded: it is computed,
// not coerced, and stays nil when undefined.
func NumericColumns() []string {
	return []string{
		ColSalesVolume,
		ColGasMMBtuVolume,
		ColSalesValue,
		ColRoyaltyValue,
		ColTransportAllowances,
		ColProcessingAllowances,
		ColEffectiveRoyaltyRate,
	}
}

// TextColumns returns the five categorical text columns, in table order.
func TextColumns() []string {
	return []string{
		ColRegion,
		ColLandClass,
		ColLandCategory,
		ColRevenueType,
		ColCommodity,
	}
}

// Scale returns the fraction-digit scale used when coercing and rounding a
// numeric column: 2 for money/volume amounts, 4 for the royalty rate.
func Scale(col string) int32 {
	if col == ColEffectiveRoyaltyRate {
		return 4
	}
	return 2
}
