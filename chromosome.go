package bed

// Chromosome takes the chromosome field of a .bim record, which PLINK
// writes as a numeric code, and returns its standard string translation.
// Fields that already carry a non-numeric name pass through unchanged.
func Chromosome(chr string) string {
	chromosome := chr
	switch chr {
	case "1":
		chromosome = "01"
	case "2":
		chromosome = "02"
	case "3":
		chromosome = "03"
	case "4":
		chromosome = "04"
	case "5":
		chromosome = "05"
	case "6":
		chromosome = "06"
	case "7":
		chromosome = "07"
	case "8":
		chromosome = "08"
	case "9":
		chromosome = "09"
	case "23", "X":
		chromosome = "0X"
	case "24", "Y":
		chromosome = "0Y"
	case "25", "XY":
		chromosome = "XY"
	case "26", "MT":
		chromosome = "MT"
	}

	return chromosome
}
