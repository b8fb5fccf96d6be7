package stats

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// NotAvailable is rendered for metrics whose eligible-record pool was empty.
const NotAvailable = "N/A"

// MeanViewsDisplay formats the mean view count with thousands separators.
func (r *Report) MeanViewsDisplay() string {
	if !r.HasViewStats {
		return NotAvailable
	}
	return humanize.CommafWithDigits(r.MeanViews, 2)
}

// MedianViewsDisplay formats the median view count with thousands separators.
func (r *Report) MedianViewsDisplay() string {
	if !r.HasViewStats {
		return NotAvailable
	}
	return humanize.CommafWithDigits(r.MedianViews, 2)
}

// LikeRatioDisplay formats the mean like-to-view ratio as a percentage.
func (r *Report) LikeRatioDisplay() string {
	if !r.HasLikeRatio {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f%%", r.LikeRatioPct)
}

// FormatCount formats a raw counter with thousands separators. Aggregation
// always runs on the raw integers; this is presentation only.
func FormatCount(n int64) string {
	return humanize.Comma(n)
}
