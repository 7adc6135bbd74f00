package edgecases

import "math/rand/v2"

// UTF8CharacterSet is the SpecificCharacterSet value written alongside
// special-character names.
const UTF8CharacterSet = "ISO_IR 192"

var specialCharFirstNamesMale = []string{
	"Jean-Pierre", "François", "André", "José", "Ángel",
	"Søren", "Björn", "Łukasz", "Jürgen", "Đorđe",
}

var specialCharFirstNamesFemale = []string{
	"Marie-Claire", "Françoise", "Éléonore", "María", "Ángela",
	"Siân", "Zoë", "Renée", "Hélène", "Ågot",
}

var specialCharLastNames = []string{
	"Müller-Schmidt", "O'Connor", "D'Agostino", "García-López",
	"Björnsson", "Østergaard", "Çelik", "Škvorecký",
	"Nguyễn", "Pérez-Rodríguez",
}

// GenerateSpecialCharName generates a patient name with accents, apostrophes
// and hyphens, which the info panel must print unchanged.
func GenerateSpecialCharName(sex string, rng *rand.Rand) string {
	firstNames := specialCharFirstNamesMale
	if sex == "F" {
		firstNames = specialCharFirstNamesFemale
	}
	lastName := specialCharLastNames[rng.IntN(len(specialCharLastNames))]
	return lastName + "^" + firstNames[rng.IntN(len(firstNames))]
}
