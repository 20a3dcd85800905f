package webui

import "horaris.manresa.cat/internal/schedule"

// Placeholder fills table cells of stops a trip does not serve.
const Placeholder = "—"

// Table is the trips × stops view of one service type on one day.
type Table struct {
	Caption string
	Columns []string
	Rows    []TableRow
}

type TableRow struct {
	Label string
	Cells []TableCell
}

// TableCell holds the time a trip reaches a column's stop, or Placeholder.
type TableCell struct {
	Time   string
	Served bool
}

// StopOrder lists the distinct stop names of trips in first-seen order.
func StopOrder(trips []schedule.Trip) []string {
	seen := make(map[string]bool)
	var order []string
	for _, trip := range trips {
		for _, stop := range trip.Stops {
			if seen[stop.Stop] {
				continue
			}
			seen[stop.Stop] = true
			order = append(order, stop.Stop)
		}
	}
	return order
}

// BuildTable cross-tabulates trips against StopOrder. When a trip calls at
// the same stop twice the first time is shown.
func BuildTable(caption string, trips []schedule.Trip) *Table {
	columns := StopOrder(trips)
	table := &Table{Caption: caption, Columns: columns, Rows: make([]TableRow, 0, len(trips))}

	for _, trip := range trips {
		times := make(map[string]string, len(trip.Stops))
		for _, stop := range trip.Stops {
			if _, ok := times[stop.Stop]; !ok {
				times[stop.Stop] = stop.Time
			}
		}

		row := TableRow{Label: trip.StartTime, Cells: make([]TableCell, len(columns))}
		for i, name := range columns {
			if t, ok := times[name]; ok {
				row.Cells[i] = TableCell{Time: t, Served: true}
			} else {
				row.Cells[i] = TableCell{Time: Placeholder}
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}
