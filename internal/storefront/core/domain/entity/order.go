package entity

type OrderRequest struct {
	Amount     int64  `json:"amount"`
	ProductID  string `json:"productId"`
	CustomerID string `json:"customerId"`
}

type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}
