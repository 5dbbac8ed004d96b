package reveal

// Easing maps raw progress in [0,1] to eased progress in [0,1].
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// EaseInQuad starts slow and accelerates.
func EaseInQuad(t float64) float64 { return t * t }

// EaseOutQuad starts fast and decelerates.
func EaseOutQuad(t float64) float64 { return t * (2 - t) }

// EaseInOutQuad accelerates through the first half and decelerates through
// the second.
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// EaseOutCubic decelerates hard toward the end of the reveal.
func EaseOutCubic(t float64) float64 {
	u := t - 1
	return u*u*u + 1
}

// EasingByName resolves an easing preset from config files and flags. The
// empty string means linear.
func EasingByName(name string) (Easing, bool) {
	switch name {
	case "", "linear":
		return Linear, true
	case "ease-in":
		return EaseInQuad, true
	case "ease-out":
		return EaseOutQuad, true
	case "ease-in-out":
		return EaseInOutQuad, true
	case "ease-out-cubic":
		return EaseOutCubic, true
	default:
		return nil, false
	}
}
