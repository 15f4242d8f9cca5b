// Package report defines the fixed battery of read-only analytic queries run
// against the cleaned sales table, and the runner that executes them.
//
// Each report is an independent, stateless aggregate query: it has no side
// effects and may run in any order or in isolation. Reports are written in
// portable SQL over the contract columns; the only dialect difference is how
// a row limit is rendered (LIMIT n vs SQL Server's SELECT TOP n), handled at
// render time.
package report

import (
	"fmt"
	"strings"
)

// Report is one named analytic query.
type Report struct {
	// Name is the stable identifier, used for report selection and output
	// file names.
	Name string

	// Title is a short human-readable description for logs.
	Title string

	// limit is the row limit, 0 for none.
	limit int

	// body is the SQL text with {table}, {top} and {limit} placeholders.
	body string
}

// SQL renders the report for the given backend kind and cleaned-table name.
func (r Report) SQL(kind, table string) string {
	top, limit := "", ""
	if r.limit > 0 {
		if kind == "mssql" {
			top = fmt.Sprintf("TOP %d ", r.limit)
		} else {
			limit = fmt.Sprintf("\nLIMIT %d", r.limit)
		}
	}
	return strings.NewReplacer(
		"{table}", table,
		"{top}", top,
		"{limit}", limit,
	).Replace(r.body)
}

// All returns the full battery in its canonical order.
func All() []Report {
	return []Report{
		{
			Name:  "royalties_by_year",
			Title: "total royalties per calendar year",
			body: `SELECT calendar_year, SUM(royalty_value_less_allowances) AS total_royalties
FROM {table}
GROUP BY calendar_year
ORDER BY calendar_year`,
		},
		{
			Name:  "top_regions_by_royalties",
			Title: "top 10 regions by total royalties",
			limit: 10,
			body: `SELECT {top}state_offshore_region, SUM(royalty_value_less_allowances) AS total_royalties
FROM {table}
GROUP BY state_offshore_region
ORDER BY total_royalties DESC{limit}`,
		},
		{
			Name:  "avg_rate_by_land_category",
			Title: "average effective royalty rate per land category",
			body: `SELECT land_category, AVG(effective_royalty_rate) AS avg_rate
FROM {table}
GROUP BY land_category
ORDER BY avg_rate DESC`,
		},
		{
			Name:  "sales_vs_royalty_by_year",
			Title: "sales value vs royalty value per year",
			body: `SELECT calendar_year, SUM(sales_value) AS total_sales, SUM(royalty_value_less_allowances) AS total_royalties
FROM {table}
GROUP BY calendar_year
ORDER BY calendar_year`,
		},
		{
			Name:  "commodity_ranking",
			Title: "commodities ranked by volume and value",
			body: `SELECT commodity, SUM(sales_volume) AS total_volume, SUM(sales_value) AS total_value
FROM {table}
GROUP BY commodity
ORDER BY total_value DESC`,
		},
		{
			Name:  "rate_histogram",
			Title: "histogram of effective royalty rate (2 decimals)",
			body: `SELECT ROUND(effective_royalty_rate, 2) AS rate_bucket, COUNT(*) AS row_count
FROM {table}
GROUP BY ROUND(effective_royalty_rate, 2)
ORDER BY rate_bucket`,
		},
		{
			Name:  "royalty_per_mmbtu_by_land_category",
			Title: "royalty per unit gas volume per land category",
			body: `SELECT land_category,
       SUM(royalty_value_less_allowances) * 1.0 / NULLIF(SUM(gas_mmbtu_volume), 0) AS royalty_per_mmbtu
FROM {table}
GROUP BY land_category
ORDER BY royalty_per_mmbtu DESC`,
		},
		{
			Name:  "top_regions_by_avg_rate",
			Title: "top 5 regions by average effective rate",
			limit: 5,
			body: `SELECT {top}state_offshore_region, AVG(effective_royalty_rate) AS avg_rate
FROM {table}
GROUP BY state_offshore_region
ORDER BY avg_rate DESC{limit}`,
		},
		{
			Name:  "top_years_by_transport_ratio",
			Title: "top 3 years by transport-cost-to-royalty ratio",
			limit: 3,
			body: `SELECT {top}calendar_year,
       SUM(transportation_allowances) * 100.0 / NULLIF(SUM(royalty_value_less_allowances), 0) AS transport_pct_of_royalty
FROM {table}
GROUP BY calendar_year
ORDER BY transport_pct_of_royalty DESC{limit}`,
		},
		{
			Name:  "yearly_summary",
			Title: "full yearly summary with YoY change and running total",
			body: `SELECT calendar_year,
       total_sales,
       total_royalties,
       avg_rate,
       LAG(total_royalties) OVER (ORDER BY calendar_year) AS prev_year_royalties,
       ROUND((total_royalties - LAG(total_royalties) OVER (ORDER BY calendar_year)) * 100.0
             / NULLIF(LAG(total_royalties) OVER (ORDER BY calendar_year), 0), 2) AS yoy_pct_change,
       SUM(total_royalties) OVER (ORDER BY calendar_year) AS cumulative_royalties
FROM (
    SELECT calendar_year,
           SUM(sales_value) AS total_sales,
           SUM(royalty_value_less_allowances) AS total_royalties,
           AVG(effective_royalty_rate) AS avg_rate
    FROM {table}
    GROUP BY calendar_year
) y
ORDER BY calendar_year`,
		},
		{
			Name:  "top_regions_with_avg_rate",
			Title: "top 5 regions by total royalties with average rate",
			limit: 5,
			body: `SELECT {top}state_offshore_region,
       SUM(royalty_value_less_allowances) AS total_royalties,
       AVG(effective_royalty_rate) AS avg_rate
FROM {table}
GROUP BY state_offshore_region
ORDER BY total_royalties DESC{limit}`,
		},
		{
			Name:  "duplicate_candidates",
			Title: "possible duplicates by composite key (heuristic)",
			body: `SELECT calendar_year, state_offshore_region, sales_value, royalty_value_less_allowances, dup_rank
FROM (
    SELECT calendar_year, state_offshore_region, sales_value, royalty_value_less_allowances,
           ROW_NUMBER() OVER (
               PARTITION BY calendar_year, state_offshore_region, sales_value, royalty_value_less_allowances
               ORDER BY sales_value
           ) AS dup_rank
    FROM {table}
) d
WHERE dup_rank > 1
ORDER BY calendar_year, state_offshore_region`,
		},
	}
}

// ByName returns the named report, or false when unknown.
func ByName(name string) (Report, bool) {
	for _, r := range All() {
		if r.Name == name {
			return r, true
		}
	}
	return Report{}, false
}
