// Package report derives read-only views from the mirrored board state:
// sorted and paginated tables, per-restaurant summaries, and the
// hour/weekday/month histograms behind the charts.
package report

import (
	"fmt"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"orderboard/board-svc/internal/domain"
	"orderboard/board-svc/internal/mxtime"
)

type RestaurantSort string

const (
	RestaurantsByNameAsc  RestaurantSort = "name-asc"
	RestaurantsByNameDesc RestaurantSort = "name-desc"
	RestaurantsNewest     RestaurantSort = "newest"
	RestaurantsOldest     RestaurantSort = "oldest"
)

type OrderSort string

const (
	OrdersByDateDesc       OrderSort = "date-desc"
	OrdersByDateAsc        OrderSort = "date-asc"
	OrdersByRestaurantAsc  OrderSort = "restaurant-asc"
	OrdersByRestaurantDesc OrderSort = "restaurant-desc"
)

// Restaurant names carry accents, so plain byte comparison misorders them.
func newCollator() *collate.Collator {
	return collate.New(language.Spanish)
}

// SortRestaurants returns a sorted copy. Ties keep the original collection
// order.
func SortRestaurants(list []domain.Restaurant, mode RestaurantSort) []domain.Restaurant {
	out := append([]domain.Restaurant(nil), list...)
	col := newCollator()
	switch mode {
	case RestaurantsByNameDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Name, out[j].Name) > 0
		})
	case RestaurantsNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case RestaurantsOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Name, out[j].Name) < 0
		})
	}
	return out
}

// SortOrders returns a sorted copy. Ties keep the original collection order.
func SortOrders(list []domain.Order, mode OrderSort) []domain.Order {
	out := append([]domain.Order(nil), list...)
	switch mode {
	case OrdersByDateAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ISO.Before(out[j].ISO)
		})
	case OrdersByRestaurantAsc:
		col := newCollator()
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Restaurant, out[j].Restaurant) < 0
		})
	case OrdersByRestaurantDesc:
		col := newCollator()
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Restaurant, out[j].Restaurant) > 0
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ISO.After(out[j].ISO)
		})
	}
	return out
}

// Paginate returns the 1-based page slice [(page-1)*size, page*size).
func Paginate(orders []domain.Order, size, page int) []domain.Order {
	if size < 1 || page < 1 {
		return []domain.Order{}
	}
	start := (page - 1) * size
	if start >= len(orders) {
		return []domain.Order{}
	}
	end := start + size
	if end > len(orders) {
		end = len(orders)
	}
	return orders[start:end]
}

// PageCount is ceil(total/size), never below 1.
func PageCount(total, size int) int {
	if size < 1 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

type Bucket struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

type Summary struct {
	Count        int               `json:"count"`
	Total        float64           `json:"totalAmount"`
	ByRestaurant map[string]Bucket `json:"byRestaurant"`
}

// Summarize totals any subset of orders, overall and grouped by the exact
// restaurant string.
func Summarize(orders []domain.Order) Summary {
	summary := Summary{ByRestaurant: map[string]Bucket{}}
	for _, order := range orders {
		summary.Count++
		summary.Total += order.Amount

		bucket := summary.ByRestaurant[order.Restaurant]
		bucket.Count++
		bucket.Total += order.Amount
		summary.ByRestaurant[order.Restaurant] = bucket
	}
	return summary
}

type Histogram struct {
	Labels  []string  `json:"labels"`
	Counts  []int     `json:"counts"`
	Revenue []float64 `json:"revenue"`
}

// HourlyHistogram buckets one operating day's orders into the 17 hour labels
// 08 through 24. Orders before 08:00 or on another date are excluded.
func HourlyHistogram(orders []domain.Order, date string) Histogram {
	h := Histogram{
		Labels:  make([]string, 17),
		Counts:  make([]int, 17),
		Revenue: make([]float64, 17),
	}
	for i := range h.Labels {
		h.Labels[i] = fmt.Sprintf("%02d", i+8)
	}
	for _, order := range orders {
		day, hour := mxtime.OperatingParts(order.ISO)
		if day != date || hour < 8 {
			continue
		}
		idx := hour - 8
		h.Counts[idx]++
		h.Revenue[idx] += order.Amount
	}
	return h
}

var weekdayLabels = []string{"Lun", "Mar", "Mié", "Jue", "Vie", "Sáb", "Dom"}

// WeeklyHistogram buckets orders falling on the given Monday..Sunday dates
// into seven weekday buckets.
func WeeklyHistogram(orders []domain.Order, weekDates []string) Histogram {
	h := Histogram{
		Labels:  append([]string(nil), weekdayLabels...),
		Counts:  make([]int, 7),
		Revenue: make([]float64, 7),
	}
	index := make(map[string]int, len(weekDates))
	for i, date := range weekDates {
		index[date] = i
	}
	for _, order := range orders {
		idx, ok := index[mxtime.LocalParts(order.ISO).Date]
		if !ok {
			continue
		}
		h.Counts[idx]++
		h.Revenue[idx] += order.Amount
	}
	return h
}

type RangeMode string

const (
	RangeByRestaurant RangeMode = "by-restaurant"
	RangeByWeekday    RangeMode = "by-weekday"
	RangeByHour       RangeMode = "by-hour"
	RangeCumulative   RangeMode = "cumulative-by-date"
	RangeByMonth      RangeMode = "by-month"
)

type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// RangeHistogram buckets the orders whose local date falls in the inclusive
// [from, to] range. The restaurant filter, when non-empty, applies before
// bucketing in every mode.
func RangeHistogram(orders []domain.Order, from, to string, mode RangeMode, restaurant string) []Point {
	var filtered []domain.Order
	for _, order := range orders {
		if restaurant != "" && order.Restaurant != restaurant {
			continue
		}
		date := mxtime.LocalParts(order.ISO).Date
		if date < from || date > to {
			continue
		}
		filtered = append(filtered, order)
	}

	switch mode {
	case RangeByWeekday:
		points := make([]Point, 7)
		for i, label := range weekdayLabels {
			points[i].Label = label
		}
		for _, order := range filtered {
			points[mxtime.WeekdayIndex(order.ISO)].Value++
		}
		return points

	case RangeByHour:
		points := make([]Point, 24)
		for i := range points {
			points[i].Label = fmt.Sprintf("%02d", i)
		}
		for _, order := range filtered {
			points[mxtime.LocalParts(order.ISO).Hour].Value++
		}
		return points

	case RangeCumulative:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].ISO.Before(filtered[j].ISO)
		})
		points := make([]Point, 0, len(filtered))
		running := 0.0
		for _, order := range filtered {
			running += order.Amount
			points = append(points, Point{
				Label: mxtime.LocalParts(order.ISO).Date,
				Value: running,
			})
		}
		return points

	case RangeByMonth:
		totals := map[string]float64{}
		for _, order := range filtered {
			totals[mxtime.LocalParts(order.ISO).YearMonth] += order.Amount
		}
		months := make([]string, 0, len(totals))
		for month := range totals {
			months = append(months, month)
		}
		// Zero-padded year-month strings sort chronologically.
		sort.Strings(months)
		points := make([]Point, 0, len(months))
		for _, month := range months {
			points = append(points, Point{Label: month, Value: totals[month]})
		}
		return points

	default: // by-restaurant, one bucket per distinct name in first-seen order
		counts := map[string]int{}
		var names []string
		for _, order := range filtered {
			if _, seen := counts[order.Restaurant]; !seen {
				names = append(names, order.Restaurant)
			}
			counts[order.Restaurant]++
		}
		points := make([]Point, 0, len(names))
		for _, name := range names {
			points = append(points, Point{Label: name, Value: float64(counts[name])})
		}
		return points
	}
}

// MonthRange returns the first and last calendar day of a month.
func MonthRange(year int, month time.Month) (string, string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, mxtime.Zone)
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02")
}

// YearRange returns January 1 and December 31 of a year.
func YearRange(year int) (string, string) {
	return fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year)
}
