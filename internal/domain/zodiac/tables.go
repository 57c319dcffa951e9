package zodiac

import "github.com/okian/kpastro/internal/domain/vimshottari"

// Arc sizes in degrees.
const (
	SignArc      = 30.0
	NakshatraArc = 360.0 / 27
	PadaArc      = NakshatraArc / 4
	SuperCycle   = 120.0
)

// Signs in zodiacal order.
var signs = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var signLords = [12]string{
	"Mars", "Venus", "Mercury", "Moon", "Sun", "Mercury",
	"Venus", "Mars", "Jupiter", "Saturn", "Saturn", "Jupiter",
}

var nakshatras = [27]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashīrsha", "Ardra", "Punarvasu", "Pushya", "Āshleshā",
	"Maghā", "PūrvaPhalgunī", "UttaraPhalgunī", "Hasta", "Chitra", "Svati", "Vishakha", "Anuradha", "Jyeshtha",
	"Mula", "PurvaAshadha", "UttaraAshadha", "Shravana", "Dhanishta", "Shatabhisha", "PurvaBhādrapadā",
	"UttaraBhādrapadā", "Revati",
}

// SignName returns the name of sign index i (0 = Aries).
func SignName(i int) string { return signs[i] }

// SignLord returns the ruler of sign index i.
func SignLord(i int) string { return signLords[i] }

// NakshatraName returns the name of nakshatra index i (0 = Ashwini).
func NakshatraName(i int) string { return nakshatras[i] }

// NakshatraLord returns the Vimshottari lord of nakshatra index i.
func NakshatraLord(i int) vimshottari.Lord { return vimshottari.Lord(i % vimshottari.Count) }

// SignIndex returns the index of the named sign.
func SignIndex(name string) (int, bool) {
	for i, s := range signs {
		if s == name {
			return i, true
		}
	}
	return 0, false
}

// Signs returns the sign names in zodiacal order.
func Signs() []string {
	out := make([]string, len(signs))
	copy(out, signs[:])
	return out
}
