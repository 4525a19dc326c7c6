package seed

import (
	"fmt"

	"propertyhub-api/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PerCategory is how many listings each of the four demo categories gets.
const PerCategory = 20

const unsplash = "https://images.unsplash.com/photo-%s?w=800&q=80"

var (
	homeImages = [][]string{
		{"1600596542815-ffad4c1539a9", "1600607687939-ce8a6c25118c", "1600585154340-be6161a56a0c"},
		{"1600047509807-ba8f99d2cdde", "1600566753190-17f0baa2a6c3", "1600573472591-ee6b68d14c68"},
		{"1600210492493-0946911123ea", "1600585154526-990dced4db0d", "1600607687644-c7171b42498b"},
		{"1600566753151-384129cf4e3e", "1600585152220-90363fe7e115", "1600607687920-4e2a09cf159d"},
		{"1605276374104-dee2a0ed3cd6", "1600585154363-67eb9e2e2099", "1600566753376-12c8ab7fb75b"},
	}
	plotImages = [][]string{
		{"1500382017468-9049fed747ef", "1500534314209-a25ddb2bd429"},
		{"1464146072230-91cabc968266", "1501594907352-04cda38ebc29"},
		{"1441974231531-c6227db76b6e", "1508739773434-c26b3d09e071"},
	}
	commercialImages = [][]string{
		{"1497366216548-37526070297c", "1497366754035-f200968a6e72", "1497215728101-856f4ea42174"},
		{"1486406146926-c627a92ad1ab", "1497366412874-3415097a27e7", "1486325212027-8081e485255e"},
		{"1524758631624-e2822e304c36", "1497215842964-222b430dc094", "1497366811353-6870744d04b2"},
	}

	demoCities = []string{"Islamabad", "Rawalpindi", "Lahore", "Karachi"}
	demoAreas  = map[string][]string{
		"Islamabad":  {"F-10", "F-11", "G-10", "G-11", "DHA", "Bahria Town"},
		"Rawalpindi": {"Bahria Town", "Saddar", "Satellite Town", "DHA", "Gulraiz", "PWD"},
		"Lahore":     {"DHA Phase 6", "Bahria Town", "Gulberg", "Johar Town", "Model Town", "Cantt"},
		"Karachi":    {"DHA Phase 8", "Clifton", "Bahria Town", "North Nazimabad", "Gulshan-e-Iqbal"},
	}

	homeTitles = []string{
		"Luxury Villa", "Modern House", "Beautiful Bungalow", "Spacious Home", "Contemporary House",
		"Elegant Residence", "Family House", "Stylish Home", "Comfortable House", "Premium Villa",
		"Cozy House", "Designer Home", "Classic House", "Grand Villa", "Smart Home",
		"Traditional House", "Lavish Bungalow", "Charming Home", "Sophisticated House", "Peaceful Residence",
	}
	rentTitles = []string{
		"Furnished Apartment", "Upper Portion", "Lower Portion", "Studio Apartment", "Flat",
		"Penthouse", "Family Home", "Bachelor Pad", "Serviced Apartment", "Duplex",
		"Townhouse", "Garden Home", "Terrace House", "Loft Apartment", "Villa",
		"Cottage", "Bungalow Portion", "Independent Floor", "Corner House", "End Unit",
	}
	plotKinds = []string{
		"Residential", "Corner", "Park Facing", "Boulevard", "Main Road",
		"Prime Location", "Investment", "Development", "Agricultural", "Commercial",
		"Industrial", "Farmhouse", "Society", "Gated Community", "Developed",
		"Undeveloped", "Near Park", "Near Market", "Near School", "Near Mosque",
	}
	commercialKinds = []string{
		"Shop", "Office", "Plaza", "Warehouse", "Showroom",
		"Restaurant Space", "Retail Store", "Building", "Mall Space", "Factory",
		"Gym Space", "Salon Space", "Clinic", "Call Center", "Co-working Space",
		"Hotel", "Guest House", "Banquet Hall", "Petrol Pump", "Car Showroom",
	}
)

func images(sets [][]string, i int) []string {
	ids := sets[i%len(sets)]
	out := make([]string, len(ids))
	for j, id := range ids {
		out[j] = fmt.Sprintf(unsplash, id)
	}
	return out
}

// location spreads listing i over the demo cities and their areas.
func location(i int) models.Location {
	city := demoCities[i%len(demoCities)]
	areas := demoAreas[city]
	area := areas[i%len(areas)]
	return models.Location{
		City:    city,
		Area:    area,
		Address: fmt.Sprintf("Block %c, %s", 'A'+rune(i%10), area),
	}
}

func pick(i int, options ...string) string {
	return options[i%len(options)]
}

func unit(even bool, a, b string) string {
	if even {
		return a
	}
	return b
}

func homesForSale(owner primitive.ObjectID) []models.Property {
	out := make([]models.Property, 0, PerCategory)
	for i := 0; i < PerCategory; i++ {
		loc := location(i)
		beds, baths := 3+i%5, 2+i%4
		out = append(out, models.Property{
			Title: fmt.Sprintf("%s with %d Bedrooms in %s", homeTitles[i], beds, loc.Area),
			Description: fmt.Sprintf("Beautiful %s featuring modern amenities, spacious rooms, and excellent location. "+
				"This property offers %d bedrooms, %d bathrooms, and premium finishes throughout. "+
				"Perfect for families looking for comfort and style in %s.", homeTitles[i], beds, baths, loc.Area),
			Purpose:      models.PurposeBuy,
			PropertyType: models.TypeHome,
			SubType:      pick(i, "house", "flat", "penthouse"),
			Price:        float64(5000000 + i*3000000 + (i%10)*500000),
			Area:         models.Area{Value: float64(5 + i*2), Unit: unit(i%2 == 0, "marla", "kanal")},
			Location:     loc,
			Features:     models.Features{Bedrooms: beds, Bathrooms: baths, Parking: 1 + i%3, Furnished: i%3 == 0},
			Images:       images(homeImages, i),
			Owner:        owner,
			Status:       models.StatusActive,
			Featured:     i%4 == 0,
		})
	}
	return out
}

func homesForRent(owner primitive.ObjectID) []models.Property {
	out := make([]models.Property, 0, PerCategory)
	for i := 0; i < PerCategory; i++ {
		loc := location(i)
		furnishing := "Unfurnished ready to move in."
		if i%3 == 0 {
			furnishing = "Fully furnished with appliances."
		}
		out = append(out, models.Property{
			Title: fmt.Sprintf("%s %s in %s", rentTitles[i], unit(i%2 == 0, "for Rent", "Available"), loc.Area),
			Description: fmt.Sprintf("Well-maintained %s available for rent in prime location of %s. "+
				"Features %d bedrooms, modern kitchen, and all necessary amenities. %s Ideal for %s.",
				rentTitles[i], loc.Area, 2+i%4, furnishing, unit(i%2 == 0, "families", "professionals")),
			Purpose:      models.PurposeRent,
			PropertyType: models.TypeHome,
			SubType:      pick(i, "upper-portion", "lower-portion", "flat", "house"),
			Price:        float64(25000 + i*15000 + (i%10)*5000),
			Area:         models.Area{Value: 3 + float64(i)*0.5, Unit: unit(i%2 == 0, "marla", "kanal")},
			Location:     loc,
			Features:     models.Features{Bedrooms: 2 + i%4, Bathrooms: 2 + i%3, Parking: 1 + i%2, Furnished: i%3 == 0},
			Images:       images(homeImages, i),
			Owner:        owner,
			Status:       models.StatusActive,
			Featured:     i%5 == 0,
		})
	}
	return out
}

func plots(owner primitive.ObjectID) []models.Property {
	out := make([]models.Property, 0, PerCategory)
	for i := 0; i < PerCategory; i++ {
		loc := location(i)
		pitch := "Great investment opportunity in rapidly developing area."
		if i%2 == 0 {
			pitch = "Possession ready, ideal for building your dream home."
		}
		areaUnit := "marla"
		if i%3 == 0 {
			areaUnit = "kanal"
		}
		out = append(out, models.Property{
			Title: fmt.Sprintf("%s Plot %d Marla in %s", plotKinds[i], 5+i*3, loc.Area),
			Description: fmt.Sprintf("%s plot available for sale in %s. Clear title, all NOCs approved, and utilities available. "+
				"%s Located in prime location with easy access to main roads and facilities.", plotKinds[i], loc.Area, pitch),
			Purpose:      models.PurposeBuy,
			PropertyType: models.TypePlot,
			SubType:      pick(i, "agricultural", "commercial", "industrial", "residential", "residential"),
			Price:        float64(2000000 + i*800000 + (i%10)*200000),
			Area:         models.Area{Value: float64(5 + i*2), Unit: areaUnit},
			Location:     loc,
			Images:       images(plotImages, i),
			Owner:        owner,
			Status:       models.StatusActive,
			Featured:     i%5 == 0,
		})
	}
	return out
}

func commercial(owner primitive.ObjectID) []models.Property {
	out := make([]models.Property, 0, PerCategory)
	for i := 0; i < PerCategory; i++ {
		loc := location(i)
		loc.Address = fmt.Sprintf("%s %s", unit(i%2 == 0, "Main", "Commercial"), loc.Area)
		forRent := i%2 == 0

		purpose, price := models.PurposeBuy, float64(5000000+i*2000000)
		offer, pitch := "for sale", "Great investment opportunity with high rental yield potential."
		if forRent {
			purpose, price = models.PurposeRent, float64(50000+i*30000)
			offer, pitch = "available for rent", "Ready to occupy with all facilities."
		}
		spot := "Excellent location with ample parking and easy access."
		if i%3 == 0 {
			spot = "Corner location with high visibility and foot traffic."
		}

		out = append(out, models.Property{
			Title:        fmt.Sprintf("%s %s in %s", commercialKinds[i], unit(forRent, "for Rent", "for Sale"), loc.Area),
			Description:  fmt.Sprintf("Prime commercial %s %s in %s. %s %s", commercialKinds[i], offer, loc.Area, spot, pitch),
			Purpose:      purpose,
			PropertyType: models.TypeCommercial,
			SubType:      pick(i, "office", "shop", "warehouse", "plaza", "showroom", "building"),
			Price:        price,
			Area:         models.Area{Value: float64(500 + i*300), Unit: "sq-ft"},
			Location:     loc,
			Features:     models.Features{Bathrooms: 1 + i%3, Parking: 2 + i%5, Furnished: i%4 == 0},
			Images:       images(commercialImages, i),
			Owner:        owner,
			Status:       models.StatusActive,
			Featured:     i%4 == 0,
		})
	}
	return out
}

// Properties generates the demo listings, all owned by owner: homes for sale,
// homes for rent, plots, and commercial units, PerCategory of each.
func Properties(owner primitive.ObjectID) []models.Property {
	out := make([]models.Property, 0, 4*PerCategory)
	out = append(out, homesForSale(owner)...)
	out = append(out, homesForRent(owner)...)
	out = append(out, plots(owner)...)
	out = append(out, commercial(owner)...)
	return out
}
