package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jinjor/desktop-sine/src/audio"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

type noteEntry struct {
	Note    int       `yaml:"note"`
	Freq    float64   `yaml:"freq"`
	Deltas  []float64 `yaml:"deltas,flow"`
	Audible int       `yaml:"audible"`
}

type tableFile struct {
	SampleRate int             `yaml:"sample_rate"`
	A4         float64         `yaml:"a4"`
	Notes      []noteEntry     `yaml:"notes"`
}

func main() {
	rates := flag.String("rates", "44100,48000,96000", "comma separated sample rates")
	a4 := flag.Float64("a4", audio.StandardTuning.A4, "frequency of note 69")
	harmonics := flag.String("partials", "1", "comma separated harmonics")
	flag.Parse()
	dir := flag.Arg(0)
	if dir == "" {
		panic("dir is not passed")
	}
	log.SetFlags(log.Lshortfile)

	sampleRates, err := parseInts(*rates)
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	partials, err := parsePartials(*harmonics)
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	var g errgroup.Group
	for _, sampleRate := range sampleRates {
		g.Go(func() error {
			table, err := audio.NewDeltaTable(sampleRate, audio.Tuning{A4: *a4}, partials)
			if err != nil {
				return err
			}
			log.Printf("generated %d Hz\n", sampleRate)
			filename := filepath.Join(dir, fmt.Sprintf("delta_%d.yml", sampleRate))
			if err := save(filename, table); err != nil {
				return err
			}
			log.Printf("saved %s\n", filename)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("error: %v\n", err)
	}
	log.Println("Successfully generated delta tables.")
}

func toFile(table *audio.DeltaTable) *tableFile {
	f := &tableFile{
		SampleRate: table.SampleRate(),
		A4:         table.Tuning().A4,
	}
	for n := 0; n < table.Len(); n++ {
		note := audio.Note(n)
		entry := noteEntry{
			Note:    n,
			Freq:    table.Freq(note),
			Audible: table.Audible(note),
		}
		for k := 0; k < table.NumPartials(); k++ {
			entry.Deltas = append(entry.Deltas, table.Delta(note, k))
		}
		f.Notes = append(f.Notes, entry)
	}
	return f
}

func save(filename string, table *audio.DeltaTable) error {
	data, err := yaml.Marshal(toFile(table))
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

func parseInts(s string) ([]int, error) {
	var values []int
	for _, item := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(item))
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", item, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// parsePartials gives harmonic n an amplitude of 1/n.
func parsePartials(s string) ([]audio.Partial, error) {
	harmonics, err := parseInts(s)
	if err != nil {
		return nil, err
	}
	partials := make([]audio.Partial, len(harmonics))
	for i, h := range harmonics {
		if h < 1 {
			return nil, fmt.Errorf("invalid harmonic: %d", h)
		}
		partials[i] = audio.Partial{Harmonic: h, Amplitude: 1 / float64(h)}
	}
	return partials, nil
}
