// Package slug derives URL-safe group slugs from titles.
//
//	slug.Make("Café & Restaurant")    // "cafe-restaurant"
//	slug.Make("Лев Толстой")          // "lev-tolstoy"
//	slug.Make("Long title", slug.MaxLength(4), slug.Separator("_"))
package slug
