package main

import (
	"context"
	"flag"
	"log"

	"github.com/cognicore/annot/internal/loader"
	"github.com/cognicore/annot/pkg/annot"
	"github.com/cognicore/annot/pkg/annot/config"
	"github.com/cognicore/annot/pkg/annot/store/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "", "Configuration file (required)")
		dbPath     = flag.String("db", "", "SQLite database to persist the run (optional)")
		htmlPath   = flag.String("html", "", "HTML file to annotate in addition to the CSV texts (optional)")
		workers    = flag.Int("workers", 0, "Matching workers (0 = one per CPU)")
	)
	flag.Parse()

	if *configPath == "" {
		log.Fatal("--config required")
	}

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	log.Println(cfg.Summary())

	a := annot.New(annot.Options{Config: cfg, Workers: *workers})

	if cfg.Entities.Input.Path != "" {
		ents, err := loader.Entities(cfg.Entities.Input.Path)
		if err != nil {
			log.Fatal("Failed to read entities:", err)
		}
		for _, e := range ents {
			if err := a.AddEntity(e); err != nil {
				log.Fatal("Failed to add entity:", err)
			}
		}
		log.Printf("Loaded %d entities from %s", len(ents), cfg.Entities.Input.Path)
	}

	if cfg.Entities.Excludes.Path != "" {
		excludes, err := loader.Excludes(cfg.Entities.Excludes.Path)
		if err != nil {
			log.Fatal("Failed to read excludes:", err)
		}
		a.SetExcludes(excludes)
		log.Printf("Loaded %d excluded names from %s", len(excludes), cfg.Entities.Excludes.Path)
	}

	if cfg.Texts.Input.Path != "" {
		texts, err := loader.Texts(cfg.Texts.Input.Path)
		if err != nil {
			log.Fatal("Failed to read texts:", err)
		}
		kept := 0
		for _, t := range texts {
			if a.AddText(t) {
				kept++
			}
		}
		log.Printf("Loaded %d/%d texts from %s", kept, len(texts), cfg.Texts.Input.Path)
	}

	if *htmlPath != "" {
		text, err := loader.HTMLFile(*htmlPath)
		if err != nil {
			log.Fatal("Failed to read HTML:", err)
		}
		if a.AddText(text) {
			log.Printf("Added HTML document from %s", *htmlPath)
		} else {
			log.Printf("HTML document from %s rejected by text filters", *htmlPath)
		}
	}

	store, err := a.Process(ctx)
	if err != nil {
		log.Fatal("Annotation failed:", err)
	}

	stats := store.Stats()
	log.Printf("Run %s: %d documents, %d entities, %d spans", a.RunID(), stats.Documents, stats.Entities, stats.Spans)
	for label, n := range stats.Labels {
		log.Printf("  %s: %d", label, n)
	}

	if cfg.Annotations.Output.Path != "" {
		path, err := a.Save()
		if err != nil {
			log.Fatal("Failed to save annotations:", err)
		}
		log.Printf("Annotations saved to %s (%s)", path, cfg.Annotations.Format)
	}

	if *dbPath != "" {
		db, err := sqlite.Open(ctx, *dbPath)
		if err != nil {
			log.Fatal("Failed to open database:", err)
		}
		defer db.Close()
		if err := db.SaveCorpus(ctx, a.RunID(), store); err != nil {
			log.Fatal("Failed to persist run:", err)
		}
		log.Printf("Run %s persisted to %s", a.RunID(), *dbPath)
	}
}
