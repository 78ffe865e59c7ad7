package kafka

import "fmt"

// TopicPrefix namespaces every topic this service writes to.
const TopicPrefix = "estatehub"

// Topic builds "<prefix>.<aggregate>.<action>", e.g. estatehub.property.created.
func Topic(aggregate, action string) string {
	return fmt.Sprintf("%s.%s.%s", TopicPrefix, aggregate, action)
}
