package db

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/habibrosyad/pocketbase-go-sdk"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"hidato_go/internal/types"
)

const collection = "hidatos"

var log = logrus.New()

// PuzzleRecord represents a record in the PocketBase database
type PuzzleRecord struct {
	ID         string       `json:"id"`
	Puzzle     types.Puzzle `json:"puzzle"`
	Difficulty string       `json:"difficulty"`
	Size       string       `json:"size"`
	Created    string       `json:"created"`
	Updated    string       `json:"updated"`
}

var client *pocketbase.Client

// Init builds the PocketBase client from the environment. Call it before
// any other function in this package.
func Init() error {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file found")
	}

	url := os.Getenv("POCKETBASE_URL")
	if url == "" {
		return errors.New("POCKETBASE_URL is not set")
	}

	// Create client with superuser authentication
	client = pocketbase.NewClient(url,
		pocketbase.WithSuperuserEmailPassword(
			os.Getenv("POCKETBASE_EMAIL"),
			os.Getenv("POCKETBASE_PASSWORD")))
	return nil
}

// Authenticate tries to authenticate with PocketBase
func Authenticate() error {
	err := client.Authorize()
	if err != nil {
		return fmt.Errorf("authentication failed: %v", err)
	}

	// Start the re-authentication timer
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		for range ticker.C {
			if err := client.Authorize(); err != nil {
				log.Warnf("re-authentication failed: %v", err)
			} else {
				log.Info("re-authenticated with PocketBase")
			}
		}
	}()
	return nil
}

func UploadPuzzle(id string, p *types.Puzzle) (*pocketbase.ResponseCreate, error) {
	// Validate ID length
	if id == "" || len(id) > 6 {
		return nil, fmt.Errorf("invalid ID: must be a string of max 6 characters")
	}

	puzzleJSON, err := p.ToJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal puzzle data: %v", err)
	}

	data := map[string]any{
		"id":         id,
		"puzzle":     string(puzzleJSON),
		"difficulty": fmt.Sprintf("%d", p.Difficulty),
		"size":       p.Dimensions(),
		"maxValue":   p.MaxValue,
	}

	// Check if record with this ID already exists
	exists, err := PuzzleExists(id)
	if err != nil {
		return nil, fmt.Errorf("failed to check if puzzle exists: %v", err)
	}
	if exists {
		return nil, fmt.Errorf("puzzle with ID %s already exists", id)
	}

	record, err := client.Create(collection, data)
	if err != nil {
		return nil, fmt.Errorf("failed to upload puzzle: %v", err)
	}
	return &record, nil
}

func GetPuzzle(id string) (*PuzzleRecord, error) {
	record, err := client.One(collection, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load puzzle %s: %v", id, err)
	}

	raw, ok := record["puzzle"].(string)
	if !ok {
		return nil, fmt.Errorf("record %s has no puzzle payload", id)
	}

	p, err := types.FromJSON([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal puzzle data: %v", err)
	}

	return &PuzzleRecord{
		ID:         fmt.Sprintf("%v", record["id"]),
		Puzzle:     *p,
		Difficulty: fmt.Sprintf("%v", record["difficulty"]),
		Size:       fmt.Sprintf("%v", record["size"]),
		Created:    fmt.Sprintf("%v", record["created"]),
		Updated:    fmt.Sprintf("%v", record["updated"]),
	}, nil
}

// buildFilter turns the supported filter keys into a PocketBase filter
// expression. Unknown keys are ignored.
func buildFilter(filters map[string]string) string {
	var rules []string
	if diff, ok := filters["difficulty"]; ok {
		rules = append(rules, fmt.Sprintf("difficulty = %s", diff))
	}
	if size, ok := filters["size"]; ok {
		rules = append(rules, fmt.Sprintf("size = \"%s\"", size))
	}
	return strings.Join(rules, " && ")
}

func ListPuzzles(page int, perPage int, filters map[string]string, sortField string, sortOrder string) (*pocketbase.ResponseList[map[string]any], error) {
	sort := sortField
	if sortOrder == "desc" {
		sort = "-" + sortField
	}

	params := pocketbase.ParamsList{
		Page:    page,
		Size:    perPage,
		Sort:    sort,
		Filters: buildFilter(filters),
	}

	result, err := client.List(collection, params)
	return &result, err
}

func PuzzleExists(id string) (bool, error) {
	_, err := client.One(collection, id)
	if err != nil {
		if strings.Contains(err.Error(), "404") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
