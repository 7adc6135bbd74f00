package edgecases

import "math/rand/v2"

// DICOMPNMaxLength is the longest value a PN component group may hold.
const DICOMPNMaxLength = 64

var longLastNames = []string{
	"ALEXANDROPOULOSWILLIAMSONBERG",
	"VANDENBERGHEMONTGOMERYSMITH",
	"CHRISTODOULOPOULOSSMITHBAUER",
	"SCHWARZENEGGERBAUERWILLIAMS",
	"MCCARTHYWILKINSONTHOMPSON",
}

var longFirstNamesMale = []string{
	"ALEXANDERMAXIMILIANWILLIAM",
	"CHRISTOPHERJOHNATHANMICHAEL",
	"BENJAMINFREDERICKNATHANJOHN",
}

var longFirstNamesFemale = []string{
	"ELIZABETHCATHERINEANNAMARIE",
	"MARGARETISABELLAVICTORIAJANE",
	"ALEXANDRAGWENDOLYNROSEMARIE",
}

// GenerateLongPatientName generates a patient name close to the PN maximum,
// wider than the info panel.
func GenerateLongPatientName(sex string, rng *rand.Rand) string {
	firstNames := longFirstNamesMale
	if sex == "F" {
		firstNames = longFirstNamesFemale
	}
	name := longLastNames[rng.IntN(len(longLastNames))] + "^" + firstNames[rng.IntN(len(firstNames))]
	if len(name) > DICOMPNMaxLength {
		name = name[:DICOMPNMaxLength]
	}
	return name
}
