package settlement

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	dayKeyLayout   = "2006-01-02"
	monthKeyLayout = "2006-01"
)

// DailyGroup is every item last updated on one calendar day.
type DailyGroup struct {
	Key       string // YYYY-MM-DD
	Date      time.Time
	Items     []domain.LineItem
	SubTotal  decimal.Decimal
	ItemCount int
}

// GroupByCalendarDate buckets items by the calendar day of their last update in loc
// (UTC when loc is nil). For settled items that is the day the settlement was
// recorded, not a backdated batch SettlementDate. Groups are returned newest
// first; items inside a group keep their input order.
func GroupByCalendarDate(items []domain.LineItem, loc *time.Location) []DailyGroup {
	if loc == nil {
		loc = time.UTC
	}
	groups := make([]DailyGroup, 0)
	index := make(map[string]int)
	for _, item := range items {
		t := item.LastUpdatedAt.In(loc)
		key := t.Format(dayKeyLayout)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DailyGroup{
				Key:      key,
				Date:     time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc),
				SubTotal: decimal.Zero,
			})
		}
		groups[i].Items = append(groups[i].Items, item)
		groups[i].SubTotal = groups[i].SubTotal.Add(item.Amount())
		groups[i].ItemCount++
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Date.After(groups[b].Date)
	})
	return groups
}

// MonthlyRow aggregates every item of one month sharing a name and payment status.
type MonthlyRow struct {
	Name          string
	PaymentStatus domain.PaymentStatus
	Unit          domain.Unit // unit of the first item seen
	Quantity      decimal.Decimal
	Amount        decimal.Decimal
	Count         int
}

// MonthlyGroup is the merged summary of one year-month.
type MonthlyGroup struct {
	Key       string // YYYY-MM
	Year      int
	Month     time.Month
	Rows      []MonthlyRow
	Total     decimal.Decimal
	ItemCount int
}

type rowKey struct {
	name   string
	status domain.PaymentStatus
}

// GroupByMonth buckets items by the year-month they were recorded in loc
// (UTC when loc is nil) and merges rows sharing (name, payment status),
// summing quantity, amount and count. Months are returned newest first and
// rows keep first-seen order.
func GroupByMonth(items []domain.LineItem, loc *time.Location) []MonthlyGroup {
	if loc == nil {
		loc = time.UTC
	}
	groups := make([]MonthlyGroup, 0)
	monthIndex := make(map[string]int)
	rowIndex := make(map[string]map[rowKey]int)
	for _, item := range items {
		t := item.CreatedAt.In(loc)
		key := t.Format(monthKeyLayout)
		mi, ok := monthIndex[key]
		if !ok {
			mi = len(groups)
			monthIndex[key] = mi
			rowIndex[key] = make(map[rowKey]int)
			groups = append(groups, MonthlyGroup{
				Key:   key,
				Year:  t.Year(),
				Month: t.Month(),
				Total: decimal.Zero,
			})
		}

		g := &groups[mi]
		rk := rowKey{name: item.Name, status: item.PaymentStatus}
		ri, ok := rowIndex[key][rk]
		if !ok {
			ri = len(g.Rows)
			rowIndex[key][rk] = ri
			g.Rows = append(g.Rows, MonthlyRow{
				Name:          item.Name,
				PaymentStatus: item.PaymentStatus,
				Unit:          item.Unit,
				Quantity:      decimal.Zero,
				Amount:        decimal.Zero,
			})
		}
		row := &g.Rows[ri]
		row.Quantity = row.Quantity.Add(item.Quantity)
		row.Amount = row.Amount.Add(item.Amount())
		row.Count++

		g.Total = g.Total.Add(item.Amount())
		g.ItemCount++
	}
	sort.SliceStable(groups, func(a, b int) bool {
		if groups[a].Year != groups[b].Year {
			return groups[a].Year > groups[b].Year
		}
		return groups[a].Month > groups[b].Month
	})
	return groups
}

// ExpandedKeys is the set of history groups whose items are shown.
// It is a value type; Toggle returns a new set.
type ExpandedKeys struct {
	keys map[string]struct{}
}

// ParseExpandedKeys reads a comma separated list of group keys.
func ParseExpandedKeys(csv string) ExpandedKeys {
	e := ExpandedKeys{keys: make(map[string]struct{})}
	for _, k := range strings.Split(csv, ",") {
		k = strings.TrimSpace(k)
		if k != "" {
			e.keys[k] = struct{}{}
		}
	}
	return e
}

// IsExpanded reports whether the group with key is expanded.
func (e ExpandedKeys) IsExpanded(key string) bool {
	_, ok := e.keys[key]
	return ok
}

// Toggle flips the expanded state of key.
func (e ExpandedKeys) Toggle(key string) ExpandedKeys {
	next := ExpandedKeys{keys: make(map[string]struct{}, len(e.keys)+1)}
	for k := range e.keys {
		next.keys[k] = struct{}{}
	}
	if _, ok := next.keys[key]; ok {
		delete(next.keys, key)
	} else {
		next.keys[key] = struct{}{}
	}
	return next
}

// Keys returns the expanded keys in sorted order.
func (e ExpandedKeys) Keys() []string {
	out := make([]string, 0, len(e.keys))
	for k := range e.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// MonthLabel renders a month group key for display, e.g. "January 2026".
func MonthLabel(g MonthlyGroup) string {
	return fmt.Sprintf("%s %d", g.Month.String(), g.Year)
}
