package domain

import "strings"

const (
	orderTopicPrefix      = "order:"
	restaurantTopicPrefix = "restaurant:"

	// TopicTest is the diagnostic channel used by operational tooling.
	TopicTest = "test"
)

// OrderTopic returns the canonical tracking topic for the given order.
func OrderTopic(orderID string) string {
	return buildTopic(orderTopicPrefix, orderID)
}

// RestaurantTopic returns the canonical dashboard topic for the given restaurant.
func RestaurantTopic(restaurantID string) string {
	return buildTopic(restaurantTopicPrefix, restaurantID)
}

func buildTopic(prefix, id string) string {
	clean := strings.TrimSpace(id)
	if clean == "" {
		return ""
	}
	return prefix + clean
}
