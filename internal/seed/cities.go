// Package seed holds the demo data loaded by the seed command and POST /cities/seed.
package seed

import "propertyhub-api/internal/models"

func city(name string, areas ...string) models.City {
	return models.City{Name: name, Slug: models.Slugify(name), PopularAreas: areas, IsActive: true}
}

// Cities returns a fresh copy of the default city list.
func Cities() []models.City {
	return []models.City{
		city("Islamabad",
			"DHA Islamabad", "Bahria Town", "F-6", "F-7", "F-8", "F-10", "F-11", "G-6", "G-7", "G-8",
			"G-9", "G-10", "G-11", "I-8", "I-9", "I-10", "Blue Area", "PWD", "Gulberg Greens", "Sector E-11"),
		city("Karachi",
			"DHA Phase 1", "DHA Phase 2", "DHA Phase 5", "DHA Phase 6", "DHA Phase 7", "DHA Phase 8",
			"Clifton", "Gulshan-e-Iqbal", "Gulistan-e-Jauhar", "Malir", "Nazimabad", "North Karachi",
			"North Nazimabad", "PECHS", "Saddar", "Bahria Town Karachi"),
		city("Lahore",
			"DHA Phase 1", "DHA Phase 2", "DHA Phase 3", "DHA Phase 4", "DHA Phase 5", "DHA Phase 6",
			"DHA Phase 7", "DHA Phase 8", "DHA Phase 9", "Bahria Town", "Gulberg", "Johar Town",
			"Model Town", "Wapda Town", "Cantt", "Garden Town", "Iqbal Town", "Faisal Town", "Allama Iqbal Town"),
		city("Rawalpindi",
			"Bahria Town Phase 1", "Bahria Town Phase 2", "Bahria Town Phase 3", "Bahria Town Phase 4",
			"Bahria Town Phase 7", "Bahria Town Phase 8", "DHA Phase 1", "DHA Phase 2", "Satellite Town",
			"Saddar", "Commercial Market", "Chaklala Scheme", "Gulzar-e-Quaid", "PWD Road", "Westridge"),
		city("Faisalabad",
			"Canal Road", "Civil Lines", "D Ground", "Eden Valley", "Kohinoor City", "Model Town",
			"Peoples Colony", "Samanabad", "Sargodha Road", "Susan Road"),
		city("Multan",
			"Bahauddin Zakariya University", "Bosan Road", "Cantt", "DHA Multan", "Gulgasht Colony",
			"Model Town", "New Multan", "Officers Colony", "Royal Orchard", "Shah Rukn-e-Alam Colony"),
		city("Peshawar",
			"Hayatabad", "University Town", "Regi Model Town", "Gulbahar", "Saddar", "Cantt",
			"Phase 5 Hayatabad", "Phase 6 Hayatabad", "Phase 7 Hayatabad", "Ring Road"),
		city("Quetta",
			"Satellite Town", "Samungli Road", "Jinnah Town", "Zarghoon Road", "Chiltan Housing Scheme",
			"Gulistan Road", "Model Town", "Cantt", "Brewery Road", "Hanna Road"),
		city("Sialkot",
			"Cantt", "Defence Road", "Gulshan-e-Iqbal", "Model Town", "Paris Road", "Pasrur Road",
			"Rangpura", "Sambrial Road", "Satrah", "Zafarwal Road"),
		city("Gujranwala",
			"Cantt", "Civil Lines", "DC Road", "Model Town", "Peoples Colony", "Rahwali Cantt",
			"Satellite Town", "Wapda Town", "GT Road", "Green Cap Housing Society"),
	}
}
