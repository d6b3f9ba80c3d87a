// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package portfolio

import (
	"sort"
	"strconv"
	"strings"

	"github.com/danielhkuo/braiding-studio/models"
)

// All matches every style or year
const All = "all"

// OtherStyle is shown for images with no linked style
const OtherStyle = "Other"

// Query narrows a portfolio listing. Empty fields match everything.
type Query struct {
	Search string
	Style  string
	Year   string
}

// Filter returns the images matching q, preserving their order.
// Search is a case-insensitive substring match over title, client name and
// style name. Style must equal the image's style name exactly. Year compares
// against the completion date; undated images never match a specific year.
func Filter(images []models.PortfolioImage, q Query) []models.PortfolioImage {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	matched := make([]models.PortfolioImage, 0, len(images))
	for _, img := range images {
		if search != "" && !matchesSearch(img, search) {
			continue
		}
		if q.Style != "" && q.Style != All && img.StyleName != q.Style {
			continue
		}
		if q.Year != "" && q.Year != All {
			year, ok := completionYear(img)
			if !ok || strconv.Itoa(year) != q.Year {
				continue
			}
		}
		matched = append(matched, img)
	}
	return matched
}

// AvailableYears returns the distinct completion years, newest first
func AvailableYears(images []models.PortfolioImage) []int {
	seen := make(map[int]bool)
	years := []int{}
	for _, img := range images {
		year, ok := completionYear(img)
		if !ok || seen[year] {
			continue
		}
		seen[year] = true
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// StyleName resolves the display name for an image's style
func StyleName(name *string) string {
	if name == nil || *name == "" {
		return OtherStyle
	}
	return *name
}

func matchesSearch(img models.PortfolioImage, search string) bool {
	if strings.Contains(strings.ToLower(img.Title), search) {
		return true
	}
	if img.ClientName != nil && strings.Contains(strings.ToLower(*img.ClientName), search) {
		return true
	}
	return strings.Contains(strings.ToLower(img.StyleName), search)
}

// completionYear reads the year from a YYYY-MM-DD completion date
func completionYear(img models.PortfolioImage) (int, bool) {
	if img.CompletionDate == nil || len(*img.CompletionDate) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi((*img.CompletionDate)[:4])
	if err != nil {
		return 0, false
	}
	return year, true
}
