package enum

// ── Group A: State machines ──

const (
	OrderStatusPending    = "PENDING"
	OrderStatusDispatched = "DISPATCHED"
	OrderStatusPaid       = "PAID"
	OrderStatusVoid       = "VOID"
)

// ── Group B: Business verticals ──

const (
	BusinessTypeLiquorStore   = "LIQUOR_STORE"
	BusinessTypeRetail        = "RETAIL"
	BusinessTypePharmacy      = "PHARMACY"
	BusinessTypeRestaurant    = "RESTAURANT"
	BusinessTypeHardware      = "HARDWARE"
	BusinessTypeBarRestaurant = "BAR_RESTAURANT"
	BusinessTypeWholesale     = "WHOLESALE"
)

// BusinessTypes lists every supported vertical, in display order.
var BusinessTypes = []string{
	BusinessTypeLiquorStore,
	BusinessTypeRetail,
	BusinessTypePharmacy,
	BusinessTypeRestaurant,
	BusinessTypeHardware,
	BusinessTypeBarRestaurant,
	BusinessTypeWholesale,
}

// ValidBusinessType reports whether t is a known business type.
func ValidBusinessType(t string) bool {
	for _, bt := range BusinessTypes {
		if bt == t {
			return true
		}
	}
	return false
}

// ── Group C: Configurable labels ──

const (
	PaymentMethodCash  = "CASH"
	PaymentMethodMpesa = "MPESA"
	PaymentMethodCard  = "CARD"
)

const (
	UserRoleOwner   = "OWNER"
	UserRoleManager = "MANAGER"
	UserRoleCashier = "CASHIER"
	UserRoleWaiter  = "WAITER"
)
