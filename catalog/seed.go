package catalog

// DefaultMedicines returns the built-in hospital pharmacy catalog used when
// no external catalog file is configured.
func DefaultMedicines() []Medicine {
	return []Medicine{
		{
			ID:                   "1",
			Name:                 "Amoxicillin",
			GenericName:          "Amoxicillin",
			Brand:                "Amoxil",
			Category:             "Antibiotics",
			Price:                12.99,
			Stock:                150,
			Description:          "Broad-spectrum antibiotic used to treat various bacterial infections including respiratory tract infections, urinary tract infections, and skin infections.",
			Dosage:               "500mg",
			Form:                 "Capsule",
			Manufacturer:         "GlaxoSmithKline",
			ExpiryDate:           "2025-12-31",
			PrescriptionRequired: true,
			SideEffects:          []string{"Nausea", "Diarrhea", "Stomach pain", "Headache"},
			Contraindications:    []string{"Penicillin allergy", "Severe kidney disease"},
		},
		{
			ID:                   "2",
			Name:                 "Ibuprofen",
			GenericName:          "Ibuprofen",
			Brand:                "Advil",
			Category:             "Pain Relief",
			Price:                8.49,
			Stock:                200,
			Description:          "Non-steroidal anti-inflammatory drug (NSAID) used for pain relief, fever reduction, and inflammation control.",
			Dosage:               "200mg",
			Form:                 "Tablet",
			Manufacturer:         "Pfizer",
			ExpiryDate:           "2026-06-30",
			PrescriptionRequired: false,
			SideEffects:          []string{"Stomach upset", "Dizziness", "Headache"},
			Contraindications:    []string{"Stomach ulcers", "Severe heart disease", "Kidney problems"},
		},
		{
			ID:                   "3",
			Name:                 "Omeprazole",
			GenericName:          "Omeprazole",
			Brand:                "Prilosec",
			Category:             "Digestive Health",
			Price:                15.99,
			Stock:                80,
			Description:          "Proton pump inhibitor used to treat gastroesophageal reflux disease (GERD), stomach ulcers, and other acid-related conditions.",
			Dosage:               "20mg",
			Form:                 "Capsule",
			Manufacturer:         "AstraZeneca",
			ExpiryDate:           "2025-09-15",
			PrescriptionRequired: false,
			SideEffects:          []string{"Headache", "Nausea", "Diarrhea", "Stomach pain"},
			Contraindications:    []string{"Liver disease", "Osteoporosis risk"},
		},
		{
			ID:                   "4",
			Name:                 "Metformin",
			GenericName:          "Metformin Hydrochloride",
			Brand:                "Glucophage",
			Category:             "Diabetes",
			Price:                22.50,
			Stock:                120,
			Description:          "First-line medication for type 2 diabetes that helps control blood sugar levels.",
			Dosage:               "850mg",
			Form:                 "Tablet",
			Manufacturer:         "Bristol Myers Squibb",
			ExpiryDate:           "2025-11-20",
			PrescriptionRequired: true,
			SideEffects:          []string{"Nausea", "Diarrhea", "Metallic taste"},
			Contraindications:    []string{"Severe kidney disease", "Metabolic acidosis"},
		},
		{
			ID:                   "5",
			Name:                 "Lisinopril",
			GenericName:          "Lisinopril",
			Brand:                "Prinivil",
			Category:             "Cardiovascular",
			Price:                18.75,
			Stock:                90,
			Description:          "ACE inhibitor used to treat high blood pressure and heart failure.",
			Dosage:               "10mg",
			Form:                 "Tablet",
			Manufacturer:         "Merck",
			ExpiryDate:           "2026-03-10",
			PrescriptionRequired: true,
			SideEffects:          []string{"Dry cough", "Dizziness", "Fatigue"},
			Contraindications:    []string{"Pregnancy", "Angioedema history"},
		},
		{
			ID:                   "6",
			Name:                 "Aspirin",
			GenericName:          "Acetylsalicylic Acid",
			Brand:                "Bayer",
			Category:             "Cardiovascular",
			Price:                6.99,
			Stock:                300,
			Description:          "Low-dose aspirin for cardiovascular protection and pain relief.",
			Dosage:               "81mg",
			Form:                 "Tablet",
			Manufacturer:         "Bayer",
			ExpiryDate:           "2026-08-25",
			PrescriptionRequired: false,
			SideEffects:          []string{"Stomach irritation", "Bleeding risk"},
			Contraindications:    []string{"Bleeding disorders", "Stomach ulcers"},
		},
		{
			ID:                   "7",
			Name:                 "Atorvastatin",
			GenericName:          "Atorvastatin Calcium",
			Brand:                "Lipitor",
			Category:             "Cardiovascular",
			Price:                28.99,
			Stock:                75,
			Description:          "Statin medication used to lower cholesterol and reduce cardiovascular risk.",
			Dosage:               "20mg",
			Form:                 "Tablet",
			Manufacturer:         "Pfizer",
			ExpiryDate:           "2025-10-30",
			PrescriptionRequired: true,
			SideEffects:          []string{"Muscle pain", "Headache", "Digestive issues"},
			Contraindications:    []string{"Liver disease", "Pregnancy"},
		},
		{
			ID:                   "8",
			Name:                 "Vitamin D3",
			GenericName:          "Cholecalciferol",
			Brand:                "Nature Made",
			Category:             "Vitamins",
			Price:                12.49,
			Stock:                250,
			Description:          "Essential vitamin supplement for bone health and immune function.",
			Dosage:               "1000IU",
			Form:                 "Tablet",
			Manufacturer:         "Nature Made",
			ExpiryDate:           "2026-12-31",
			PrescriptionRequired: false,
			SideEffects:          []string{"Rare at normal doses"},
			Contraindications:    []string{"Hypercalcemia", "Kidney stones"},
		},
		{
			ID:                   "9",
			Name:                 "Cetirizine",
			GenericName:          "Cetirizine Hydrochloride",
			Brand:                "Zyrtec",
			Category:             "Allergy",
			Price:                9.99,
			Stock:                180,
			Description:          "Second-generation antihistamine used to treat allergic reactions, hay fever, and chronic urticaria.",
			Dosage:               "10mg",
			Form:                 "Tablet",
			Manufacturer:         "Johnson & Johnson",
			ExpiryDate:           "2026-05-15",
			PrescriptionRequired: false,
			SideEffects:          []string{"Drowsiness", "Dry mouth", "Fatigue"},
			Contraindications:    []string{"Severe kidney disease", "End-stage renal disease"},
		},
		{
			ID:                   "10",
			Name:                 "Prednisone",
			GenericName:          "Prednisone",
			Brand:                "Deltasone",
			Category:             "Anti-inflammatory",
			Price:                16.25,
			Stock:                60,
			Description:          "Corticosteroid medication used to treat inflammatory conditions, autoimmune disorders, and allergic reactions.",
			Dosage:               "5mg",
			Form:                 "Tablet",
			Manufacturer:         "Pfizer",
			ExpiryDate:           "2025-07-20",
			PrescriptionRequired: true,
			SideEffects:          []string{"Weight gain", "Mood changes", "Increased appetite", "Sleep disturbances"},
			Contraindications:    []string{"Systemic infections", "Live vaccines", "Peptic ulcer disease"},
		},
	}
}
