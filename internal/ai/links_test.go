package ai

import "testing"

func TestProductLink(t *testing.T) {
	tests := []struct {
		source, title, want string
	}{
		{"Philips", "Air Fryer XXL", "https://www.philips.co.in/c-m-ho/search?q=Air%20Fryer%20XXL"},
		{"Philips", "Air Fryer (XXL)!", "https://www.philips.co.in/c-m-ho/search?q=Air%20Fryer%20(XXL)!"},
		{"Amazon", "Hair Dryer BHD274/00", "https://www.amazon.in/s?k=Hair%20Dryer%20BHD274%2F00"},
		{"Amazon", "Kid's 1+1 *combo* ~pack", "https://www.amazon.in/s?k=Kid's%201%2B1%20*combo*%20~pack"},
		{"flipkart", "Steam Iron", "https://www.flipkart.com/search?q=Steam%20Iron"},
		{"Flipkart", "Rasoi ₹", "https://www.flipkart.com/search?q=Rasoi%20%E2%82%B9"},
		{"eBay", "Trimmer & Kit", "https://www.philips.co.in/c-m-ho/search?q=Trimmer%20%26%20Kit"},
		{"", "x", "https://www.philips.co.in/c-m-ho/search?q=x"},
	}
	for _, tt := range tests {
		t.Run(tt.source+"/"+tt.title, func(t *testing.T) {
			if got := ProductLink(tt.source, tt.title); got != tt.want {
				t.Errorf("ProductLink() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeSource(t *testing.T) {
	for in, want := range map[string]string{
		"AMAZON":    "Amazon",
		" Flipkart": "Flipkart",
		"philips":   "Philips",
		"other":     "Philips",
	} {
		if got := NormalizeSource(in); got != want {
			t.Errorf("NormalizeSource(%q) = %q, want %q", in, got, want)
		}
	}
}
