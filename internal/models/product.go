package models

// Product sources a recommendation can link to.
const (
	SourcePhilips  = "Philips"
	SourceAmazon   = "Amazon"
	SourceFlipkart = "Flipkart"
)

// Product is a related-product recommendation shown after submission.
type Product struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Price  string `json:"price"`
	Image  string `json:"image"`
	Link   string `json:"link"`
	Source string `json:"source"`
}
