package curriculum

// Default returns the built-in genetics curriculum for grades 9-10.
// Deployments can replace it via NewRegistryFromDir.
func Default() *Registry {
	r, err := NewRegistry(
		Topic{
			ID:          "1_grundlagen",
			Title:       "DNA-Grundlagen",
			Description: "Aufbau und Struktur der DNA",
			Concepts: []string{
				"Aufbau eines Nukleotids",
				"Die vier Basen",
				"Komplementäre Basenpaarung",
				"Die Doppelhelix",
			},
			Difficulty: 1,
			Sources: []string{
				"https://www.planet-wissen.de/natur/forschung/dna/index.html",
				"https://simpleclub.com/lessons/biologie-dna-aufbau",
			},
		},
		Topic{
			ID:          "2_aufbau",
			Title:       "Chromosomen und Gene",
			Description: "Von Chromosomen zu Genen",
			Concepts: []string{
				"Aufbau eines Chromosoms",
				"Der menschliche Chromosomensatz",
				"Gene als DNA-Abschnitte",
			},
			Difficulty: 2,
			Sources: []string{
				"https://www.planet-wissen.de/natur/forschung/genetik/index.html",
			},
		},
		Topic{
			ID:          "3_replikation",
			Title:       "DNA-Replikation",
			Description: "Verdopplung der DNA",
			Concepts: []string{
				"Das semikonservative Prinzip",
				"Enzyme der Replikation",
				"Ablauf an der Replikationsgabel",
			},
			Difficulty: 3,
			Sources: []string{
				"https://www.spektrum.de/lexikon/biologie/replikation/56678",
			},
		},
		Topic{
			ID:          "4_vererbung",
			Title:       "Vererbung und Merkmale",
			Description: "Wie Merkmale vererbt werden",
			Concepts: []string{
				"Genotyp und Phänotyp",
				"Allele und Dominanz",
				"Die Mendelschen Regeln",
				"Erbgänge im Stammbaum",
			},
			Difficulty: 3,
			Sources: []string{
				"https://www.spektrum.de/lexikon/biologie/mendelsche-regeln/42232",
				"https://simpleclub.com/lessons/biologie-mendelsche-regeln",
			},
		},
	)
	if err != nil {
		// The built-in curriculum is validated by tests; this cannot
		// happen at runtime.
		panic(err)
	}
	return r
}
