package entity

// Customer holds the buyer contact details collected by the checkout form.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// RawResponse is a decoded JSON body whose shape is not contractually fixed.
type RawResponse any
