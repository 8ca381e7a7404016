package main

import (
	"flag"
	"fmt"
	"log"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/carbocation/bed"
	"github.com/carbocation/pfx"
)

func main() {
	path := flag.String("filename", "example.bed", "Filename of the bed file to process (with or without the .bed suffix)")
	flag.Parse()

	if strings.HasPrefix(*path, "~/") {
		usr, err := user.Current()
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
		*path = filepath.Join(usr.HomeDir, (*path)[2:])
	}

	b, err := bed.Open(*path)
	if err != nil {
		log.Fatalln(err)
	}
	defer b.Close()

	log.Printf("%+v\n", b)
	log.Printf("Mode %s: %d samples x %d SNPs, %d bytes per row\n", b.Mode, b.NSamples, b.NSNPs, b.ChunkSizeBytes)

	famPath := strings.TrimSuffix(*path, ".bed") + ".fam"
	fam, err := bed.OpenFAM(famPath)
	if err != nil {
		log.Println(err)
	} else {
		i := 0
		for {
			sample := fam.Read()
			if sample == nil {
				break
			}
			fmt.Println(i, sample.FamilyID, sample.IndividualID)
			i++

			if i > 10 {
				break
			}
		}
		if err := fam.Err(); err != nil {
			log.Println("FAM error:", err)
		}
		fam.Close()

		log.Println("Iterated over", i, "samples")
	}

	rr := b.NewRowReader()
	for i := 1; ; i++ {
		row := rr.Read()
		if row == nil {
			break
		}

		if i > 10 {
			break
		}

		var counts [4]int
		for _, code := range row {
			counts[code]++
		}
		log.Printf("Row %d) %d hom major, %d het, %d missing, %d hom minor\n",
			i, counts[bed.HomozygousMajor], counts[bed.Heterozygous], counts[bed.Missing], counts[bed.HomozygousMinor])
	}

	if rr.Error() != nil {
		log.Println("RowReader error:", rr.Error())
	}
}
