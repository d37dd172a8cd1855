package valuation

import (
	"fmt"
	"sort"

	"github.com/jmolenaar/wealth-tracker/internal/model"
)

// pricePoint is one known closing price on a calendar day.
type pricePoint struct {
	day   Day
	price float64
}

// PriceIndex holds the sparse historical price series per asset, sorted
// ascending by day. It is built once per replay and read through a
// forwardFiller cursor, so the day loop never re-scans a series.
type PriceIndex struct {
	points map[string][]pricePoint
}

// BuildPriceIndex converts the sparse per-asset price history (date string to
// price) into sorted series. Entries with unparseable dates are skipped and
// reported; the rest of the series stays usable. Both maps are walked in
// sorted key order so the same input always yields the same diagnostics.
func BuildPriceIndex(history map[string]map[string]float64) (*PriceIndex, []Diagnostic) {
	var diags []Diagnostic
	index := &PriceIndex{points: make(map[string][]pricePoint, len(history))}

	assetIDs := make([]string, 0, len(history))
	for assetID := range history {
		assetIDs = append(assetIDs, assetID)
	}
	sort.Strings(assetIDs)

	for _, assetID := range assetIDs {
		series := history[assetID]
		dates := make([]string, 0, len(series))
		for dateStr := range series {
			dates = append(dates, dateStr)
		}
		sort.Strings(dates)

		points := make([]pricePoint, 0, len(series))
		for _, dateStr := range dates {
			day, err := ParseDay(dateStr)
			if err != nil {
				diags = append(diags, Diagnostic{
					Code:    DiagMalformedDate,
					AssetID: assetID,
					Date:    dateStr,
					Message: fmt.Sprintf("price point for asset %s skipped: %v", assetID, err),
				})
				continue
			}
			points = append(points, pricePoint{day: day, price: series[dateStr]})
		}
		sort.Slice(points, func(i, j int) bool {
			return points[i].day.Before(points[j].day)
		})
		index.points[assetID] = points
	}

	return index, diags
}

// forwardFiller tracks the last known price per asset while the replay walks
// forward through calendar days. Days without a price point retain the
// previous known price; before any point exists, the asset's stored current
// price acts as the seed. Manually valued assets have no series at all and
// keep their stored price throughout.
type forwardFiller struct {
	points map[string][]pricePoint
	cursor map[string]int
	last   map[string]float64
}

// filler creates a forward-fill cursor over the index, seeded with each
// asset's stored current price.
func (ix *PriceIndex) filler(assets []model.Asset) *forwardFiller {
	f := &forwardFiller{
		points: ix.points,
		cursor: make(map[string]int, len(assets)),
		last:   make(map[string]float64, len(assets)),
	}
	for _, asset := range assets {
		f.last[asset.ID] = asset.CurrentPrice
	}
	return f
}

// advance consumes every price point dated on or before day, updating the
// last known price per asset. Must be called with monotonically increasing days.
func (f *forwardFiller) advance(day Day) {
	for assetID, points := range f.points {
		i := f.cursor[assetID]
		for i < len(points) && !points[i].day.After(day) {
			f.last[assetID] = points[i].price
			i++
		}
		f.cursor[assetID] = i
	}
}

// priceOf returns the current forward-filled price for an asset.
func (f *forwardFiller) priceOf(assetID string) float64 {
	return f.last[assetID]
}
