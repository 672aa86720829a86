package services

import "katalog/internal/models"

// SampleProducts returns the fixed data set written by SeedProducts.
// A fresh slice is built on every call.
func SampleProducts() []models.ProductDraft {
	return []models.ProductDraft{
		{
			Name:        "VF-1S Valkyrie",
			Description: "A VF-1 variant with the heaviest weapon loadout.",
			Price:       models.Float64(70000),
			Category:    models.CategoryVehicles,
			InStock:     models.Bool(true),
			Tags: []string{
				"The VF-1S mounts four of the Mauler series RÖV-20 anti-aircraft laser cannons and enjoys several upgrades in addition to firepower.",
				"The engines are improved Shinnakasu Heavy Industry/P&W/Roice FF-2001D models resulting in measurably improved thrust and an enhanced avionics package is featured in each VF-1S.",
			},
		},
		{
			Name:        "Super Pack System",
			Description: "A specialized system designed to enhance VF-1's defensive and armaments capabilities in Battroid Mode",
			Price:       models.Float64(12000),
			Category:    models.CategoryArmaments,
			InStock:     models.Bool(true),
			Tags: []string{
				"GBP-1S Armored Pack System",
				"A customized VF-1S painted in Skull Squadron's marking with yellow highlights.",
			},
		},
		{
			Name:        "GU-11 Gunpod",
			Description: "A tri-barrel gatling type weapon that shoots 55m caliber round.",
			Price:       models.Float64(5500),
			Category:    models.CategoryArmaments,
			InStock:     models.Bool(true),
			Tags: []string{
				"This weapon had the capacity of 200 rounds with rate of fire 1200 per second.",
			},
		},
		{
			Name:        "VF-1J Armored Valkyrie",
			Description: "The VF-1J Armored Valkyrie is a heavily armored configuration of VF-1J Valkyrie equipped with the GBP-1S Armored Pack System.",
			Price:       models.Float64(93000),
			Category:    models.CategoryVehicles,
			InStock:     models.Bool(false),
			Tags: []string{
				"This particular equipment was developed in parallel with the VF-1 Valkyrie series to mitigate its weakness, while also enhanced its overall defensive and ground combat capabilities for the Battroid mode.",
				"Despite the GBP-1S impressive firepower and defensive capabilities it had several weakness and disadvantages.",
			},
		},
		{
			Name:        "Zentraedi Flight Suit",
			Description: "As a part of the development of the Zentraedi military, the Robotech Masters created a flight suit tailored to the artificial physiologies of their pilots.",
			Price:       models.Float64(1170),
			Category:    models.CategoryEquipment,
			InStock:     models.Bool(false),
			Tags: []string{
				"Its primary purpose was to act as a G-suit, and was equipped with electrically controlled gel packs that expanded and contracted as needed to aid in pilot circulation.",
				"As with most Zentraedi equipment, the flight suit fell out of use following the mass-micronisation of the Zentraedi population after the First Robotech War.",
			},
		},
		{
			Name:        "Zentraedi Battle Armour",
			Description: "The Zentraedi Battle Armour was designed to be a heavier counterpart to the Zentraedi Infantry Armour for use by soldiers wielding heavy weapons",
			Price:       models.Float64(3300),
			Category:    models.CategoryEquipment,
			InStock:     models.Bool(true),
			Tags: []string{
				"As the Zentraedi forces expanded, the role of the Battle Armour changed. The suit was repurposed as protection for pilots operating Zentraedi Battle Pods",
				"Originally Designed for use by heavy soldiers, the Zentraedi Battle Armour consisted of a breastplate as well as waist/groin, lower leg/foot and forearm armour, as well as a helmet.",
			},
		},
	}
}
