package views

import (
	twmerge "github.com/Oudwins/tailwind-merge-go"

	"sitemap-service/internal/core"
)

const badgeBase = "inline-block rounded px-2 py-0.5 text-xs font-semibold bg-gray-200 text-gray-700"

// StatusPage is the data shown on the service landing page
type StatusPage struct {
	SiteURL      string
	CatalogSize  int
	CatalogError string
	Features     []core.FeatureStatus
}

func badgeClass(enabled bool) string {
	if enabled {
		return twmerge.Merge(badgeBase, "bg-green-100 text-green-800")
	}
	return twmerge.Merge(badgeBase, "bg-red-100 text-red-800")
}

func siteLabel(siteURL string) string {
	if siteURL == "" {
		return "not configured"
	}
	return siteURL
}

func stateLabel(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
