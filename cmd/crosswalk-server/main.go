package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-crosswalk/pkg/api"
	"github.com/dd0wney/cluso-crosswalk/pkg/catalog"
	"github.com/dd0wney/cluso-crosswalk/pkg/store"
)

// Config is the server configuration, loadable from YAML with
// environment overrides.
type Config struct {
	Port        int    `yaml:"port"`
	DatabaseURL string `yaml:"database_url"`
	JWTSecret   string `yaml:"jwt_secret"`
}

func loadConfig(path string) (*Config, error) {
	cfg := &Config{Port: 8080}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// Environment overrides
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("CROSSWALK_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	return cfg, nil
}

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	port := flag.Int("port", 0, "Server port (overrides config)")
	demo := flag.Bool("demo", false, "Run with an in-memory demo catalog instead of PostgreSQL")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Port = *port
	}

	log.Printf("🚀 Cluso Crosswalk starting...")

	var st store.Store
	switch {
	case *demo:
		log.Printf("📂 Using in-memory demo catalog")
		st = demoCatalog()
	case cfg.DatabaseURL != "":
		pg, err := store.NewPGStore(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pg.Close()
		log.Printf("✅ Connected to PostgreSQL")
		st = pg
	default:
		log.Fatalf("No database configured: set database_url, DATABASE_URL, or pass -demo")
	}

	server := api.NewServer(st, cfg.Port)
	if cfg.JWTSecret != "" {
		server.SetJWTSecret([]byte(cfg.JWTSecret))
		log.Printf("🔒 Bearer-token authentication enabled")
	}

	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// demoCatalog seeds a small cross-framework catalog: a central taxonomy
// slice plus NIST CSF and ISO fragments crosswalked through it.
func demoCatalog() *store.MemoryStore {
	m := store.NewMemoryStore()

	scf := m.AddFramework(catalog.Framework{Code: catalog.FrameworkSCF, Name: "Secure Controls Framework", Version: "2024.1"})
	csf := m.AddFramework(catalog.Framework{Code: catalog.FrameworkNISTCSF, Name: "NIST Cybersecurity Framework", Version: "2.0"})
	iso := m.AddFramework(catalog.Framework{Code: catalog.FrameworkISO27001, Name: "ISO/IEC 27001", Version: "2022"})

	gov1 := m.AddControl(catalog.Control{FrameworkID: scf.ID, RefCode: "GOV-01", Domain: "Governance", Title: "Cybersecurity Governance Program"})
	gov2 := m.AddControl(catalog.Control{FrameworkID: scf.ID, RefCode: "GOV-02", Domain: "Governance", Title: "Publishing Security Policies"})
	iac1 := m.AddControl(catalog.Control{FrameworkID: scf.ID, RefCode: "IAC-01", Domain: "Identification & Authentication", Title: "Identity & Access Management"})

	gvrm01 := m.AddControl(catalog.Control{FrameworkID: csf.ID, RefCode: "GV.RM-01", Title: "Risk management objectives are established"})
	gvpo01 := m.AddControl(catalog.Control{FrameworkID: csf.ID, RefCode: "GV.PO-01", Title: "Policy is established and communicated"})
	praa01 := m.AddControl(catalog.Control{FrameworkID: csf.ID, RefCode: "PR.AA-01", Title: "Identities and credentials are managed"})

	a511 := m.AddControl(catalog.Control{FrameworkID: iso.ID, RefCode: "A.5.1.1", Title: "Policies for information security"})
	a924 := m.AddControl(catalog.Control{FrameworkID: iso.ID, RefCode: "A.9.2.4", Title: "Management of secret authentication information"})

	m.AddEdge(catalog.MappingEdge{CentralControlID: gov1.ID, ExternalControlID: gvrm01.ID, FrameworkID: csf.ID})
	m.AddEdge(catalog.MappingEdge{CentralControlID: gov2.ID, ExternalControlID: gvpo01.ID, FrameworkID: csf.ID})
	m.AddEdge(catalog.MappingEdge{CentralControlID: iac1.ID, ExternalControlID: praa01.ID, FrameworkID: csf.ID})
	m.AddEdge(catalog.MappingEdge{CentralControlID: gov2.ID, ExternalControlID: a511.ID, FrameworkID: iso.ID})
	m.AddEdge(catalog.MappingEdge{CentralControlID: iac1.ID, ExternalControlID: a924.ID, FrameworkID: iso.ID, Strength: catalog.StrengthPartial})

	return m
}
