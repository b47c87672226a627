package engine

import (
	"github.com/dukapos/api/internal/enum"
	"github.com/shopspring/decimal"
)

// DefaultBusiness is the out-of-the-box configuration used when no
// snapshot exists yet.
func DefaultBusiness() Business {
	return Business{
		Name:     "Kenya Liquor Master",
		Type:     enum.BusinessTypeLiquorStore,
		Currency: "KES",
		TaxRate:  decimal.NewFromInt(16),
	}
}

// DefaultModules is the stock feature-module matrix. Order is display
// order on the admin screen.
func DefaultModules() []Module {
	return []Module{
		{
			ID:      "mpesa",
			Name:    "M-Pesa Payments",
			Enabled: true,
			RequiredFor: []string{
				enum.BusinessTypeLiquorStore,
				enum.BusinessTypeBarRestaurant,
			},
		},
		{
			ID:      "etims",
			Name:    "KRA eTIMS Invoicing",
			Enabled: true,
			RequiredFor: []string{
				enum.BusinessTypeLiquorStore,
				enum.BusinessTypeRetail,
				enum.BusinessTypeWholesale,
			},
		},
		{
			ID:      "returnables",
			Name:    "Returnable Bottle Deposits",
			Enabled: true,
			RequiredFor: []string{
				enum.BusinessTypeLiquorStore,
				enum.BusinessTypeBarRestaurant,
			},
		},
		{
			ID:      "tables",
			Name:    "Tables & Waiter Orders",
			Enabled: true,
			RequiredFor: []string{
				enum.BusinessTypeRestaurant,
				enum.BusinessTypeBarRestaurant,
			},
		},
		{
			ID:      "batch-expiry",
			Name:    "Batch & Expiry Tracking",
			Enabled: false,
			RequiredFor: []string{
				enum.BusinessTypePharmacy,
			},
		},
		{
			ID:      "credit",
			Name:    "Credit Sales & Invoicing",
			Enabled: false,
			RequiredFor: []string{
				enum.BusinessTypeHardware,
				enum.BusinessTypeWholesale,
			},
		},
	}
}
