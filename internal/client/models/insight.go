package models

// Inventory insight statuses produced by the backend.
const (
	InsightStockoutRisk       = "stockout_risk"
	InsightPromotionCandidate = "promotion_candidate"
)

// InventoryInsight flags a product whose stock level and traffic are out of
// balance: about to sell out, or overstocked but well visited.
type InventoryInsight struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Status      string `json:"status"`
	Stock       int64  `json:"stock"`
	Views       int64  `json:"views"`
	Message     string `json:"message"`
}
