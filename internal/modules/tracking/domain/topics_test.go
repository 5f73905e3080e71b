package domain

import "testing"

func TestOrderTopic(t *testing.T) {
	cases := map[string]string{
		"BO4014714":   "order:BO4014714",
		" BO4014714 ": "order:BO4014714",
		"":            "",
		"   ":         "",
	}
	for input, expected := range cases {
		if actual := OrderTopic(input); actual != expected {
			t.Fatalf("OrderTopic(%q) expected %q got %q", input, expected, actual)
		}
	}
}

func TestRestaurantTopic(t *testing.T) {
	cases := map[string]string{
		"R42":   "restaurant:R42",
		" R42 ": "restaurant:R42",
		"":      "",
	}
	for input, expected := range cases {
		if actual := RestaurantTopic(input); actual != expected {
			t.Fatalf("RestaurantTopic(%q) expected %q got %q", input, expected, actual)
		}
	}
}
