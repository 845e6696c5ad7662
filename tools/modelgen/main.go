package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gen"
	"gorm.io/gorm"
)

var stationTables = []string{
	"stations",
	"station_modules",
	"station_tanks",
	"station_boxes",
	"station_batteries",
	"station_peripherals",
	"station_outposts",
	"station_bioboxes",
	"station_people",
	"station_produce",
	"station_events",
}

func main() {
	var dsn, out string
	flag.StringVar(&dsn, "dsn", os.Getenv("SKYNATION_DB_DSN"), "postgres dsn")
	flag.StringVar(&out, "out", "internal/adapter/repo/gorm/model", "output dir for generated models")
	flag.Parse()

	if dsn == "" {
		log.Fatal("missing --dsn or SKYNATION_DB_DSN")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:      out,
		ModelPkgPath: "model",
		Mode:         gen.WithoutContext,
	})
	g.UseDB(db)
	for _, table := range stationTables {
		g.GenerateModel(table)
	}
	g.Execute()

	fmt.Printf("generated gorm models at %s\n", out)
}
