// Package tenant contains the Tenant aggregate (a restaurant account) and the
// Plan subscription tier with its quota and capability table.
package tenant
