package textutil

// Unknown is printed in place of an absent optional value.
const Unknown = "unknown"

// ValueOr dereferences value, returning fallback when it is nil.
func ValueOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}

// OrUnknown dereferences value, returning Unknown when it is nil.
func OrUnknown(value *string) string {
	return ValueOr(value, Unknown)
}
