package settings

const (
	KeyEnablePAYE = "enable_paye"
	KeyEnableUIF  = "enable_uif"
	KeyDarkMode   = "dark_mode"

	ValueOn  = "1"
	ValueOff = "0"
)

// defaults mirror the seeded settings rows; used when a key was never written.
var defaults = map[string]string{
	KeyEnablePAYE: ValueOn,
	KeyEnableUIF:  ValueOn,
	KeyDarkMode:   ValueOff,
}

func Enabled(value string) bool {
	return value == ValueOn
}

// IsBooleanKey reports whether a key holds an on/off toggle. Toggle writes
// are restricted to the literal "0"/"1" values; anything else is rejected
// rather than silently read as off.
func IsBooleanKey(key string) bool {
	switch key {
	case KeyEnablePAYE, KeyEnableUIF, KeyDarkMode:
		return true
	}
	return false
}
