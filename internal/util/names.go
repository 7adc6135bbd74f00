package util

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Package-level default RNG to avoid allocations when rng is nil
var defaultRNG = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))

// FrenchNameProbability is the probability (0.0-1.0) of generating a French name
const FrenchNameProbability = 0.20

var (
	EnglishMaleFirstNames = []string{
		"James", "John", "Robert", "Michael", "William", "David", "Richard", "Joseph",
		"Thomas", "Charles", "Christopher", "Daniel", "Matthew", "Anthony", "Mark",
		"Steven", "Paul", "Andrew", "Joshua", "Kevin", "Brian", "George", "Edward",
	}

	EnglishFemaleFirstNames = []string{
		"Mary", "Patricia", "Jennifer", "Linda", "Barbara", "Elizabeth", "Susan", "Jessica",
		"Sarah", "Karen", "Lisa", "Nancy", "Margaret", "Sandra", "Ashley", "Emily",
		"Michelle", "Dorothy", "Carol", "Amanda", "Melissa", "Rebecca", "Laura",
	}

	EnglishLastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
		"Wilson", "Anderson", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Thompson",
		"White", "Harris", "Clark", "Lewis", "Robinson", "Walker", "Young", "Allen",
	}

	FrenchMaleFirstNames = []string{
		"Jean", "Pierre", "Michel", "André", "Philippe", "Alain", "Bernard", "Jacques",
		"François", "Nicolas", "Olivier", "Laurent", "Julien", "Sébastien", "Antoine",
	}

	FrenchFemaleFirstNames = []string{
		"Marie", "Nathalie", "Isabelle", "Sylvie", "Catherine", "Françoise", "Valérie",
		"Sophie", "Céline", "Julie", "Aurélie", "Camille", "Léa", "Chloé", "Hélène",
	}

	FrenchLastNames = []string{
		"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard", "Petit",
		"Durand", "Leroy", "Moreau", "Simon", "Laurent", "Lefebvre", "Michel",
		"Fournier", "Girard", "Mercier", "Dupont", "Lambert", "Bonnet", "Rousseau",
	}
)

// GeneratePatientName generates a realistic patient name based on sex.
// Names are 80% English and 20% French.
//
// Sex should be "M" or "F". Invalid values default to "F".
// If rng is nil, uses shared default RNG.
// Returns name in DICOM format: "LASTNAME^FIRSTNAME"
func GeneratePatientName(sex string, rng *rand.Rand) string {
	if rng == nil {
		rng = defaultRNG
	}

	useFrench := rng.Float64() < FrenchNameProbability

	var firstName, lastName string
	if useFrench {
		if sex == "M" {
			firstName = FrenchMaleFirstNames[rng.IntN(len(FrenchMaleFirstNames))]
		} else {
			firstName = FrenchFemaleFirstNames[rng.IntN(len(FrenchFemaleFirstNames))]
		}
		lastName = FrenchLastNames[rng.IntN(len(FrenchLastNames))]
	} else {
		if sex == "M" {
			firstName = EnglishMaleFirstNames[rng.IntN(len(EnglishMaleFirstNames))]
		} else {
			firstName = EnglishFemaleFirstNames[rng.IntN(len(EnglishFemaleFirstNames))]
		}
		lastName = EnglishLastNames[rng.IntN(len(EnglishLastNames))]
	}

	return lastName + "^" + firstName
}

// GenerateStudyDate returns a DICOM DA value (YYYYMMDD) within the last five years of ref.
func GenerateStudyDate(ref time.Time, rng *rand.Rand) string {
	if rng == nil {
		rng = defaultRNG
	}
	d := ref.AddDate(0, 0, -rng.IntN(5*365))
	return fmt.Sprintf("%04d%02d%02d", d.Year(), int(d.Month()), d.Day())
}
