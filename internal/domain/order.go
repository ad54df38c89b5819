package domain

// UserDetails is the renter block submitted with an order.
type UserDetails struct {
	Name       string `json:"name"`
	WhatsApp   string `json:"whatsapp"`
	Campus     string `json:"campus"`
	RentalDate string `json:"rentalDate"` // pickup date, YYYY-MM-DD
	Duration   int    `json:"duration"`   // days, min 2
}

const OrderStatusPending = "pending"

// Order is an immutable booking snapshot.
type Order struct {
	ID         string      `json:"id"`
	SessionID  string      `json:"-"`
	CreatedAt  string      `json:"createdAt"`
	RentalDate string      `json:"rentalDate"`
	Duration   int         `json:"duration"`
	TotalPrice int64       `json:"totalPrice"`
	Lines      []CartLine  `json:"lines"`
	Status     string      `json:"status"`
	Renter     UserDetails `json:"renter"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty"`
}

// LowStockThreshold marks products the admin should restock.
const LowStockThreshold = 3
