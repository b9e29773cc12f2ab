package media

// Default returns the built-in image catalog matching the genetics
// curriculum. Assets are served from baseURL by the host.
func Default(baseURL string) *Index {
	return NewIndex(baseURL, map[string][]Item{
		"1_grundlagen": {
			{
				ID:          "basen",
				File:        "Basen.png",
				Description: "Die vier DNA-Basen und ihre Struktur",
				Keywords:    []string{"basen", "adenin", "thymin", "guanin", "cytosin", "purin", "pyrimidin"},
			},
			{
				ID:          "basenpaarung",
				File:        "Basenpaarungen.png",
				Description: "Komplementäre Basenpaarung mit Wasserstoffbrücken",
				Keywords:    []string{"basenpaarung", "paarung", "wasserstoff", "a-t", "g-c", "komplementär"},
			},
			{
				ID:          "nucleotid",
				File:        "Nucleotidstruktur.png",
				Description: "Aufbau eines DNA-Nukleotids",
				Keywords:    []string{"nukleotid", "aufbau", "phosphat", "zucker", "desoxyribose"},
			},
			{
				ID:          "leiter",
				File:        "Leitermodell.png",
				Description: "DNA-Leitermodell (vereinfachte Darstellung)",
				Keywords:    []string{"leitermodell", "struktur", "strickleiter"},
			},
			{
				ID:          "helix",
				File:        "DNA_Helix.png",
				Description: "Die DNA-Doppelhelix-Struktur",
				Keywords:    []string{"helix", "doppelhelix", "spirale", "windung"},
			},
			{
				ID:          "doppelhelix",
				File:        "Doppelhelix.png",
				Description: "Detaillierte Doppelhelix mit antiparallelen Strängen",
				Keywords:    []string{"doppelhelix", "antiparallel", "3'", "5'"},
			},
		},
		"2_aufbau": {
			{
				ID:          "chromosom",
				File:        "Chromosom_Aufbau.png",
				Description: "Aufbau eines Chromosoms",
				Keywords:    []string{"chromosom", "chromatid", "zentromer", "aufbau"},
			},
			{
				ID:          "karyogramm",
				File:        "Chromosomensatz.png",
				Description: "Menschlicher Chromosomensatz",
				Keywords:    []string{"chromosomensatz", "karyogramm", "diploid", "haploid", "autosomen"},
			},
			{
				ID:          "gen",
				File:        "Gen.png",
				Description: "Ein Gen als DNA-Abschnitt",
				Keywords:    []string{"gen", "dna-abschnitt", "merkmal"},
			},
			{
				ID:          "zellkern",
				File:        "Zellkern.png",
				Description: "Der Zellkern mit DNA",
				Keywords:    []string{"zellkern", "nucleus", "chromatin", "wo liegt"},
			},
		},
		"3_replikation": {
			{
				ID:          "replikation",
				File:        "Replikation.png",
				Description: "Der DNA-Replikationsprozess",
				Keywords:    []string{"replikation", "verdopplung", "kopie", "zellteilung"},
			},
			{
				ID:          "schema",
				File:        "Replikationsschema.png",
				Description: "Schema der semikonservativen Replikation",
				Keywords:    []string{"semikonservativ", "helikase", "polymerase", "replikationsgabel"},
			},
		},
		"4_vererbung": {
			{
				ID:          "mendel1",
				File:        "Mendelregel_1.png",
				Description: "1. Mendelsche Regel (Uniformitätsregel)",
				Keywords:    []string{"mendel", "uniformität", "erste regel", "f1"},
			},
			{
				ID:          "mendel2",
				File:        "Mendelregel_2.png",
				Description: "2. Mendelsche Regel (Spaltungsregel)",
				Keywords:    []string{"spaltung", "zweite regel", "f2", "3:1"},
			},
			{
				ID:          "erbgang",
				File:        "Erbgang_Beispiel.png",
				Description: "Beispiel eines Erbgangs",
				Keywords:    []string{"erbgang", "stammbaum", "vererbung", "generationen"},
			},
			{
				ID:          "phaenotyp",
				File:        "Phanotyp_Genotyp.png",
				Description: "Unterschied zwischen Phänotyp und Genotyp",
				Keywords:    []string{"phänotyp", "genotyp", "erscheinungsbild", "erbanlage"},
			},
			{
				ID:          "allele",
				File:        "Allelschema.png",
				Description: "Schema verschiedener Allel-Kombinationen",
				Keywords:    []string{"allel", "homozygot", "heterozygot", "dominant", "rezessiv"},
			},
		},
	})
}
