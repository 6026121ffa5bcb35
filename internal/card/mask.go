package card

const maskPrefix = "**** **** **** "

// Mask returns a display-safe form of a card number exposing only the last
// four characters. Inputs shorter than four characters are returned unchanged.
// Masking happens before persistence; the raw number never reaches storage.
func Mask(pan string) string {
	if len(pan) < 4 {
		return pan
	}
	return maskPrefix + pan[len(pan)-4:]
}
