// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package portfolio filters the public portfolio listing.

The whole list is loaded (it is small) and narrowed in memory:

	matched := portfolio.Filter(images, portfolio.Query{Search: "box", Year: "2024"})
	years := portfolio.AvailableYears(images)

The value "all" for Style or Year behaves like an empty field.
*/
package portfolio
