package v1

import "strings"

// arabicToLatin maps Arabic plate characters to their Latin plate spelling.
var arabicToLatin = map[rune]string{
	'ا': "A", 'أ': "A", 'آ': "A", 'إ': "A", 'ب': "B", 'ت': "T", 'ث': "TH",
	'ج': "G", 'ح': "H", 'خ': "KH", 'د': "D", 'ذ': "TH", 'ر': "R", 'ز': "Z",
	'س': "S", 'ش': "SH", 'ص': "C", 'ض': "D", 'ط': "T", 'ظ': "TH", 'ع': "E",
	'غ': "GH", 'ف': "F", 'ق': "Q", 'ك': "K", 'ل': "L", 'م': "M", 'ن': "N",
	'ه': "H", 'ة': "H", 'و': "W", 'ي': "Y", 'ى': "Y", 'ؤ': "W", 'ئ': "Y",

	'٠': "0", '١': "1", '٢': "2", '٣': "3", '٤': "4",
	'٥': "5", '٦': "6", '٧': "7", '٨': "8", '٩': "9",
}

// NormalizeVehicleID turns a free-form plate string into the canonical
// VehicleID: Arabic characters are transliterated, then all Latin letters
// are emitted (upper-cased) followed by all digits. Anything else is dropped.
//
//	NormalizeVehicleID("ن ص ١٢٣") == "NC123"
//	NormalizeVehicleID("abc-123")  == "ABC123"
func NormalizeVehicleID(raw string) string {
	var letters, digits strings.Builder

	emit := func(s string) {
		for _, r := range s {
			switch {
			case r >= 'a' && r <= 'z':
				letters.WriteRune(r - 'a' + 'A')
			case r >= 'A' && r <= 'Z':
				letters.WriteRune(r)
			case r >= '0' && r <= '9':
				digits.WriteRune(r)
			}
		}
	}

	for _, r := range raw {
		if latin, ok := arabicToLatin[r]; ok {
			emit(latin)
			continue
		}
		emit(string(r))
	}

	return letters.String() + digits.String()
}
