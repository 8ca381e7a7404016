package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/carbocation/bed"
)

func main() {
	path := flag.String("bed", "", "Filename of the bed file to process")
	idxPath := flag.String("bdi", "", "Filename of the bdi (index) file to open, created if absent")
	rsid := flag.String("rsid", "", "Optional rsid to look up and decode")
	flag.Parse()

	if *path == "" {
		flag.PrintDefaults()
		log.Fatalln("No bed file given")
	}

	*path = expandHome(*path)

	if *idxPath == "" {
		*idxPath = strings.TrimSuffix(*path, ".bed") + ".bdi"
	}
	*idxPath = expandHome(*idxPath)

	log.Println("Opening bed:", *path)
	b, err := bed.Open(*path)
	if err != nil {
		log.Fatalln(err)
	}
	defer b.Close()

	if _, err := os.Stat(*idxPath); os.IsNotExist(err) {
		log.Println("Building index with driver", bed.WhichSQLiteDriver())
		bimPath := strings.TrimSuffix(*path, ".bed") + ".bim"
		if err := bed.CreateBDI(b, bimPath, *idxPath); err != nil {
			log.Fatalln(err)
		}
	}

	bdi, err := bed.OpenBDI(*idxPath)
	if err != nil {
		log.Fatalln(err)
	}
	defer bdi.Close()
	bdi.Metadata.FirstThousandBytes = nil

	log.Printf("BDI Metadata: %+v\n", bdi.Metadata)
	log.Printf("BED data: %+v\n", b)

	rows, err := bdi.DB.Queryx("SELECT * FROM Variant ORDER BY chromosome ASC, position ASC")
	if err != nil {
		log.Fatalln(err)
	}
	defer rows.Close()
	i := 0
	var row bed.VariantIndex
	for rows.Next() {
		if err := rows.StructScan(&row); err != nil {
			log.Fatalln(err)
		}
		if i%30 == 0 {
			fmt.Printf("%d) %+v\n", i, row)
		}
		i++
	}
	rows.Close()

	log.Println("Saw indexes for", i, "variants")

	if *rsid != "" {
		v, err := bdi.VariantByRSID(*rsid)
		if err != nil {
			log.Fatalln(err)
		}

		genotypes, err := b.ReadRow(v.RowIndex)
		if err != nil {
			log.Fatalln(err)
		}

		var counts [4]int
		for _, code := range genotypes {
			counts[code]++
		}
		log.Printf("%s (row %d): %d hom major, %d het, %d missing, %d hom minor\n",
			v.RSID, v.RowIndex, counts[0], counts[1], counts[2], counts[3])
	}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			log.Fatalln(err)
		}
		path = filepath.Join(usr.HomeDir, path[2:])
	}

	return path
}
