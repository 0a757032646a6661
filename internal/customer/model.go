package customer

type Customer struct {
	ID      int64  `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	TaxCode string `json:"tax_code,omitempty"`
}
