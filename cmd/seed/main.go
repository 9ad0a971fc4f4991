// main.go
//
// A construction materials catalog service: stores, brands, items, inventory and material attributes
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of materials-catalog.
// materials-catalog is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// materials-catalog is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with materials-catalog.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/localnerve/materials-catalog/data"
	"github.com/localnerve/materials-catalog/internal/config"
	"github.com/localnerve/materials-catalog/internal/database"
	"github.com/localnerve/materials-catalog/internal/seed"
	"github.com/localnerve/materials-catalog/internal/services"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var catalogFile string
	flag.StringVar(&catalogFile, "f", "", "path to a YAML catalog, defaults to the embedded catalog")
	flag.Parse()

	usage := `
Load a YAML catalog into the database configured by the environment.
Every record goes through the same checks as the API; nothing is written on error.

Usage:

seed [-h] [-f CATALOG_YAML_PATH]

example
  ENV_FILE=.env seed -f /path/to/catalog.yaml
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	raw := data.SeedCatalog
	if catalogFile != "" {
		if raw, err = os.ReadFile(catalogFile); err != nil {
			log.Fatalf("Failed to read %s: %v", catalogFile, err)
		}
		log.Printf("Loading catalog from %s", catalogFile)
	} else {
		log.Printf("Loading embedded catalog")
	}

	catalog, err := seed.ParseBytes(raw)
	if err != nil {
		log.Fatalf("%v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	result, err := seed.Apply(db, services.PolicyFromConfig(cfg), catalog)
	if err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	output, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(output))
}
