package main

import (
	"flag"
	"log"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/carbocation/bed"
)

func main() {
	path := flag.String("bed", "", "Filename of the bed file to process")
	flag.Parse()

	if *path == "" {
		flag.PrintDefaults()
		log.Fatalln("No bed file given")
	}

	if strings.HasPrefix(*path, "~/") {
		usr, err := user.Current()
		if err != nil {
			log.Fatalln(err)
		}
		*path = filepath.Join(usr.HomeDir, (*path)[2:])
	}

	// Learn the row count once, up front
	b, err := bed.Open(*path)
	if err != nil {
		log.Fatalln(err)
	}
	nRows := b.Len()
	log.Printf("Mode %s: %d samples x %d SNPs, %d rows\n", b.Mode, b.NSamples, b.NSNPs, nRows)
	b.Close()

	rowIdx := make(chan int)
	output := make(chan GenotypeCounter)

	// Accumulate worker output
	done := make(chan struct{})
	go func() {
		accumulator := GenotypeCounter{}
		for o := range output {
			accumulator.HomozygousMajor += o.HomozygousMajor
			accumulator.Heterozygous += o.Heterozygous
			accumulator.Missing += o.Missing
			accumulator.HomozygousMinor += o.HomozygousMinor
		}
		log.Println("Final accumulated stats")
		log.Printf("%+v\n", accumulator)
		close(done)
	}()

	// Prep the Workers:
	log.Println("Launching", runtime.NumCPU(), "workers")
	var wg sync.WaitGroup
	for i := 0; i < runtime.NumCPU(); i++ {
		wg.Add(1)
		go Worker(i, *path, rowIdx, output, &wg)
	}

	for i := 0; i < nRows; i++ {
		rowIdx <- i
	}
	close(rowIdx)
	wg.Wait()
	close(output)
	<-done
}

type GenotypeCounter struct {
	HomozygousMajor, Heterozygous, Missing, HomozygousMinor int
}

// Each worker has to maintain its own BED since it is not safe for
// concurrent reads
func Worker(workerID int, path string, rowIdx <-chan int, output chan<- GenotypeCounter, wg *sync.WaitGroup) {
	defer wg.Done()

	b, err := bed.Open(path)
	if err != nil {
		log.Printf("Worker %d exited: %v\n", workerID, err)
		return
	}
	defer b.Close()
	rr := b.NewRowReader()

	for incoming := range rowIdx {
		row := rr.ReadAt(incoming)
		if row == nil {
			log.Fatalln(rr.Error())
		}

		gc := GenotypeCounter{}
		for _, code := range row {
			switch code {
			case bed.HomozygousMajor:
				gc.HomozygousMajor++
			case bed.Heterozygous:
				gc.Heterozygous++
			case bed.Missing:
				gc.Missing++
			case bed.HomozygousMinor:
				gc.HomozygousMinor++
			}
		}

		output <- gc
	}
}
