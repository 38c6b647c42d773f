package job

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"jobni/internal/domain/job"
)

const searchKeyPrefix = "jobs:search:"

type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type searchKeyInput struct {
	Category     string `json:"category"`
	DurationType string `json:"duration_type"`
	Location     string `json:"location"`
	Search       string `json:"search"`
	Status       string `json:"status"`
	EmployerID   string `json:"employer_id"`
	Limit        int    `json:"limit"`
	Offset       int    `json:"offset"`
}

func normalizeSearchValue(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// SearchCacheKey hashes the normalized filter, so equivalent queries that
// differ only in case or spacing share an entry.
func SearchCacheKey(f job.Filter) string {
	in := searchKeyInput{
		Category:     string(f.Category),
		DurationType: string(f.DurationType),
		Location:     normalizeSearchValue(f.Location),
		Search:       normalizeSearchValue(f.Search),
		Status:       string(f.Status),
		Limit:        f.Limit,
		Offset:       f.Offset,
	}
	if f.EmployerID != nil {
		in.EmployerID = f.EmployerID.String()
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return searchKeyPrefix + hex.EncodeToString(sum[:])
}
