// Package neo4j persists patent analysis chains in a Neo4j graph over Bolt.
package neo4j

import (
	"context"
	"fmt"

	"github.com/yppgo/patentgraph/pkg/logger"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Store implements store.AnalysisStore on a Neo4j database.
//
// A Store should be created using NewStore, which verifies connectivity and
// seeds the global Dataset nodes.
type Store struct {
	driver neo4j.DriverWithContext
}

// NewStoreParams configures the Bolt connection.
type NewStoreParams struct {
	URI      string
	User     string
	Password string
}

// globalDataset is one well-known patent or literature database every
// deployment shares.
type globalDataset struct {
	Name         string
	FullName     string
	Type         string
	URL          string
	APIEndpoint  string
	AccessMethod string
}

var globalDatasets = []globalDataset{
	{"USPTO", "United States Patent and Trademark Office", "Patent Database",
		"https://www.uspto.gov", "https://developer.uspto.gov/api-catalog", "API / Web Interface"},
	{"EPO", "European Patent Office", "Patent Database",
		"https://www.epo.org", "https://ops.epo.org", "OPS API"},
	{"JPO", "Japan Patent Office", "Patent Database",
		"https://www.jpo.go.jp", "https://www.j-platpat.inpit.go.jp", "J-PlatPat"},
	{"CNIPA", "China National Intellectual Property Administration", "Patent Database",
		"https://www.cnipa.gov.cn", "http://epub.cnipa.gov.cn", "Web Interface"},
	{"WIPO", "World Intellectual Property Organization", "Patent Database",
		"https://www.wipo.int", "https://patentscope.wipo.int", "PATENTSCOPE"},
	{"Derwent Innovation Index", "Derwent Innovation Index", "Patent Database",
		"https://clarivate.com/derwent", "Subscription Required", "Commercial Platform"},
	{"Google Patents", "Google Patents", "Patent Database",
		"https://patents.google.com", "https://patents.google.com", "Web Scraping / BigQuery"},
	{"PatSnap", "PatSnap", "Patent Database",
		"https://www.patsnap.com", "Subscription Required", "Commercial API"},
	{"Orbit Intelligence", "Orbit Intelligence", "Patent Database",
		"https://www.questel.com", "Subscription Required", "Commercial Platform"},
	{"Web of Science", "Clarivate Web of Science", "Scientific Literature Database",
		"https://www.webofscience.com", "https://developer.clarivate.com/apis/wos", "WoS API"},
	{"Scopus", "Elsevier Scopus", "Scientific Literature Database",
		"https://www.scopus.com", "https://dev.elsevier.com/scopus.html", "Scopus API"},
	{"PubMed", "PubMed", "Scientific Literature Database",
		"https://pubmed.ncbi.nlm.nih.gov", "https://www.ncbi.nlm.nih.gov/home/develop/api/", "E-utilities API"},
	{"arXiv", "arXiv", "Preprint Repository",
		"https://arxiv.org", "https://arxiv.org/help/api", "arXiv API"},
}

// NewStore opens a Bolt connection, verifies it and MERGEs the global
// Dataset nodes so imports always have link targets.
func NewStore(ctx context.Context, params NewStoreParams) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(
		params.URI,
		neo4j.BasicAuth(params.User, params.Password, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to neo4j at %s: %w", params.URI, err)
	}

	st := &Store{driver: driver}
	if err := st.seedGlobalDatasets(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, err
	}

	logger.Info("[Neo4j] Connected", "uri", params.URI)
	return st, nil
}

// Close releases the driver connection.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func (s *Store) seedGlobalDatasets(ctx context.Context) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MERGE (d:Dataset {name: $name})
		ON CREATE SET
			d.full_name = $full_name,
			d.type = $type,
			d.url = $url,
			d.api_endpoint = $api_endpoint,
			d.access_method = $access_method,
			d.created_at = datetime()
	`

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, dataset := range globalDatasets {
			_, err := tx.Run(ctx, query, map[string]any{
				"name":          dataset.Name,
				"full_name":     dataset.FullName,
				"type":          dataset.Type,
				"url":           dataset.URL,
				"api_endpoint":  dataset.APIEndpoint,
				"access_method": dataset.AccessMethod,
			})
			if err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("failed to seed global datasets: %w", err)
	}
	return nil
}
